// Package scale computes the weighted error-scaling vector and the
// weighted-RMS norm shared by the Radau and RKF45 step kernels.
package scale

import "math"

// errorFloor keeps the Gustafsson controller from dividing by zero when a
// step is effectively exact.
const errorFloor = 1e-10

// Init sets sc[i] = 1 / (atol + |y0[i]|*rtol), used once before the first
// step of an IVP.
func Init(y0 []float64, atol, rtol float64, sc []float64) {
	for i, v := range y0 {
		sc[i] = 1.0 / (atol + math.Abs(v)*rtol)
	}
}

// Update recomputes sc[i] = 1 / (atol + max(|y0[i]|, |y[i]|)*rtol) after an
// accepted step, from the previous and new state.
func Update(y0, y []float64, atol, rtol float64, sc []float64) {
	for i := range y {
		sc[i] = 1.0 / (atol + math.Max(math.Abs(y0[i]), math.Abs(y[i]))*rtol)
	}
}

// Norm computes the weighted RMS norm ||v||_sc = sqrt(mean((sc[i]*v[i])^2)),
// floored at errorFloor.
func Norm(sc, v []float64) float64 {
	sum := 0.0
	for i, vi := range v {
		w := sc[i] * vi
		sum += w * w
	}
	return math.Max(errorFloor, math.Sqrt(sum/float64(len(v))))
}
