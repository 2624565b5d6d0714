// Package stepctl implements the Gustafsson step-size controller shared by
// the Radau and RKF45 step kernels: given the current error estimate and a
// little history, it proposes the next step size within fixed safety and
// clamp bounds.
package stepctl

import "math"

const (
	FacMin  = 0.2
	FacMax  = 8.0
	FacSafe = 0.9
	FacRej  = 0.1
	Qmin    = 1.0
	Qmax    = 1.2
)

// History carries the state the Gustafsson controller needs across steps:
// whether Gustafsson damping applies yet, and the last accepted step/error.
type History struct {
	Gustafsson bool
	FirstStep  bool
	HAcc       float64
	ErrOld     float64
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Next computes Fac (the step-ratio factor Reject applies after a failed
// error test: the classical factor, or the smaller of the classical and
// Gustafsson factors once the Gustafsson branch applies) and the proposed
// h_new = Fac*h, given the current
// error estimate, the Newton iteration count k, the embedded order p, and
// the current step size h.
func Next(err float64, k, newtonMaxIt, order int, h float64, hist *History) (fac, hNew float64) {
	facClassic := math.Pow(err, -1.0/float64(order)) * (1.0 + 2.0*float64(newtonMaxIt)) / (float64(k) + 1.0 + 2.0*float64(newtonMaxIt))
	facClassic = clamp(facClassic, FacMin, FacMax)
	hNew = facClassic * h
	fac = facClassic

	if hist.Gustafsson && !hist.FirstStep {
		facGus := FacSafe * (h / hist.HAcc) * math.Pow(err*err/hist.ErrOld, -0.25)
		facGus = clamp(facGus, FacMin, FacMax)
		fac = math.Min(facClassic, facGus)
		hNew = fac * h
	}
	return fac, hNew
}

// Accept records the bookkeeping Next's Gustafsson branch needs for the
// following step, and clamps h_new into [hMin, tf-t], additionally capping
// it to h_old when the previous step had been rejected. It returns the
// final h_new and whether the step should be contracted to land exactly on
// tf.
func Accept(h, hNew, err, hMin, t, tf float64, wasRejected bool, hist *History) (hFinal float64, hitEnd bool) {
	hist.HAcc = h
	hist.ErrOld = math.Max(1e-2, err)
	hist.FirstStep = false

	hFinal = math.Max(hMin, math.Min(hNew, tf-t))
	if wasRejected {
		hFinal = math.Min(hFinal, h)
	}

	hitEnd = t+hFinal/Qmin-tf >= 0.0
	return hFinal, hitEnd
}

// Reject computes h after a rejected step: FacRej*h on the first step or
// immediately after a previous rejection, otherwise Fac*h using the Fac
// returned from Next.
func Reject(h, fac float64, firstStepOrPrevReject bool) float64 {
	if firstStepOrPrevReject {
		return FacRej * h
	}
	return fac * h
}
