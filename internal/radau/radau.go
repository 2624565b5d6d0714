// Package radau implements the 3-stage Radau-IIA(5) implicit Runge-Kutta
// step kernel: simplified Newton iteration on the diagonalized stage
// system (one real n×n solve, one complex n×n solve), Gustafsson step-size
// control, and LU-reuse across steps when the step size hasn't moved far
// enough to justify refactoring.
//
// This package supplies only the single-IVP state machine; batching and
// worker dispatch live in internal/batch and internal/ivp.
package radau

import (
	"math"

	"github.com/san-kum/radaubatch/internal/hook"
	"github.com/san-kum/radaubatch/internal/linalg"
	"github.com/san-kum/radaubatch/internal/scale"
	"github.com/san-kum/radaubatch/internal/stepctl"
	"github.com/san-kum/radaubatch/internal/stepper"
)

// Outcome is the terminal status of a single Integrate call. It is
// translated to the batch-wide ivp.ReturnCode by the driver; this package
// has no dependency on ivp so it can be tested in isolation.
type Outcome int

const (
	Success Outcome = iota
	MaxConsecutiveErrors
	MaxStepsExceeded
	HPlusTEqualsH
	MaxNewtonIterExceeded
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case MaxConsecutiveErrors:
		return "max_consecutive_errors_exceeded"
	case MaxStepsExceeded:
		return "max_steps_exceeded"
	case HPlusTEqualsH:
		return "h_plus_t_equals_h"
	case MaxNewtonIterExceeded:
		return "max_newton_iter_exceeded"
	default:
		return "unknown"
	}
}

// Options configures a single Integrate call.
type Options struct {
	Atol, Rtol float64
	H0         float64
	HMax       float64
	HMin       float64
	MaxSteps   int

	// MaxConsecutiveErrors bounds repeated rejected steps (LU failure or
	// error-test failure) in a row before giving up on the IVP.
	MaxConsecutiveErrors int

	// Logger, if non-nil, records the accepted-step (t, y) trajectory.
	// Callers driving a batch under the concurrent dispatcher must leave
	// this nil except for at most one nominated IVP driven sequentially.
	Logger *stepper.Log
}

// Result is the outcome of a single Integrate call.
type Result struct {
	T         float64
	Y         []float64
	Steps     int
	Accepted  int
	Rejected  int
	LUFactors int
	Outcome   Outcome
}

// Solver holds the scratch buffers for one IVP's worth of Radau-IIA
// integration. It is sized once for a given state dimension n and reused
// across many Integrate calls (one per worker, never shared across
// goroutines) so a batch run of W workers allocates W of these, not one
// per IVP.
type Solver struct {
	n int

	y0, yNew   []float64
	f0         []float64
	ff1, ff2, ff3 []float64
	tf1, tf2, tf3 []float64
	z1, z2, z3    []float64
	zNew1, zNew2, zNew3 []float64
	w1, w2, w3    []float64
	dw1           []float64
	dw23          []complex128
	rhsComplex    []complex128
	jac           []float64
	cont          []float64

	realLU *linalg.RealLU
	cplxLU *linalg.ComplexLU

	sc []float64

	// NewtonRate is the persistent contraction-rate estimate carried across
	// Newton iterations and across steps within one Integrate call. It is
	// seeded at the start of Integrate and decayed once per step; the
	// convergence test multiplies it directly against the correction norm.
	NewtonRate float64
}

// NewSolver allocates the scratch for an n-dimensional IVP.
func NewSolver(n int) *Solver {
	return &Solver{
		n:          n,
		y0:         make([]float64, n),
		yNew:       make([]float64, n),
		f0:         make([]float64, n),
		ff1:        make([]float64, n),
		ff2:        make([]float64, n),
		ff3:        make([]float64, n),
		tf1:        make([]float64, n),
		tf2:        make([]float64, n),
		tf3:        make([]float64, n),
		z1:         make([]float64, n),
		z2:         make([]float64, n),
		z3:         make([]float64, n),
		zNew1:      make([]float64, n),
		zNew2:      make([]float64, n),
		zNew3:      make([]float64, n),
		w1:         make([]float64, n),
		w2:         make([]float64, n),
		w3:         make([]float64, n),
		dw1:        make([]float64, n),
		dw23:       make([]complex128, n),
		rhsComplex: make([]complex128, n),
		jac:        make([]float64, n*n),
		cont:       make([]float64, 3*n),
		realLU:     linalg.NewRealLU(n),
		cplxLU:     linalg.NewComplexLU(n),
		sc:         make([]float64, n),
	}
}

// toW applies the 3×3 matrix rkM across three per-stage n-vectors,
// component-wise across state indices. newton uses it with T^-1*A^-1.
func toW(rkM [3][3]float64, a, b, c, out1, out2, out3 []float64) {
	for k := range a {
		x, y, z := a[k], b[k], c[k]
		out1[k] = rkM[0][0]*x + rkM[0][1]*y + rkM[0][2]*z
		out2[k] = rkM[1][0]*x + rkM[1][1]*y + rkM[1][2]*z
		out3[k] = rkM[2][0]*x + rkM[2][1]*y + rkM[2][2]*z
	}
}

// Integrate advances y from t0 to tf, mutating y in place and returning
// the final state and step statistics. p is the (read-only) parameter
// vector passed through to every Dydt/Jacobian call.
func (s *Solver) Integrate(sys hook.System, p, y []float64, t0, tf float64, opts Options) Result {
	n := s.n
	copy(s.y0, y)

	t := t0
	h := opts.H0
	if h <= 0 {
		h = (tf - t0) / 100
	}
	h = math.Min(h, opts.HMax)

	scale.Init(s.y0, opts.Atol, opts.Rtol, s.sc)

	hist := stepctl.History{FirstStep: true}
	consecErrors := 0
	steps, accepted, rejected, luFactors := 0, 0, 0, 0

	haveInterpolant := false
	hLU := 0.0
	jacValid := false
	wasRejected := false

	s.NewtonRate = math.Pow(2.0, 1.25)

	for {
		if steps >= opts.MaxSteps {
			copy(y, s.y0)
			return Result{T: t, Y: append([]float64(nil), s.y0...), Steps: steps, Accepted: accepted, Rejected: rejected, LUFactors: luFactors, Outcome: MaxStepsExceeded}
		}
		if t+h == t {
			copy(y, s.y0)
			return Result{T: t, Y: append([]float64(nil), s.y0...), Steps: steps, Accepted: accepted, Rejected: rejected, LUFactors: luFactors, Outcome: HPlusTEqualsH}
		}
		steps++
		s.NewtonRate = math.Pow(math.Max(s.NewtonRate, uround), 0.8)

		sys.Dydt(t, p, s.y0, s.f0)

		if !jacValid {
			sys.Jacobian(t, p, s.y0, s.jac)
			jacValid = true
		}
		if !haveFactor(hLU, h, s.NewtonRate) {
			if err := s.realLU.Factor(s.jac, rkGamma, h); err != nil {
				consecErrors++
				if consecErrors > opts.MaxConsecutiveErrors {
					copy(y, s.y0)
					return Result{T: t, Y: append([]float64(nil), s.y0...), Steps: steps, Accepted: accepted, Rejected: rejected, LUFactors: luFactors, Outcome: MaxConsecutiveErrors}
				}
				h *= 0.5
				jacValid = false
				continue
			}
			if err := s.cplxLU.Factor(s.jac, rkAlpha, rkBeta, h); err != nil {
				consecErrors++
				if consecErrors > opts.MaxConsecutiveErrors {
					copy(y, s.y0)
					return Result{T: t, Y: append([]float64(nil), s.y0...), Steps: steps, Accepted: accepted, Rejected: rejected, LUFactors: luFactors, Outcome: MaxConsecutiveErrors}
				}
				h *= 0.5
				jacValid = false
				continue
			}
			hLU = h
			luFactors++
		}

		if haveInterpolant {
			interpolate(h, hist.HAcc, s.cont, s.z1, s.z2, s.z3)
		} else {
			for i := 0; i < n; i++ {
				s.z1[i], s.z2[i], s.z3[i] = 0, 0, 0
			}
		}

		converged, newtonIters := s.newton(sys, p, t, h)
		if !converged {
			consecErrors++
			if consecErrors > opts.MaxConsecutiveErrors {
				copy(y, s.y0)
				return Result{T: t, Y: append([]float64(nil), s.y0...), Steps: steps, Accepted: accepted, Rejected: rejected, LUFactors: luFactors, Outcome: MaxNewtonIterExceeded}
			}
			h *= 0.25
			jacValid = false
			haveInterpolant = false
			continue
		}

		errEst := s.errorEstimate(sys, p, t, h, hist.FirstStep, wasRejected)
		fac, hNew := stepctl.Next(errEst, newtonIters, newtonMaxIt, rkELO, h, &hist)

		if errEst <= 1.0 {
			accepted++
			consecErrors = 0

			for i := 0; i < n; i++ {
				s.yNew[i] = s.y0[i] + s.z3[i]
			}
			makeInterpolant(s.z1, s.z2, s.z3, s.cont)
			haveInterpolant = true

			t += h
			scale.Update(s.y0, s.yNew, opts.Atol, opts.Rtol, s.sc)
			copy(s.y0, s.yNew)
			if opts.Logger != nil {
				opts.Logger.Record(t, s.y0)
			}

			hFinal, hitEnd := stepctl.Accept(h, hNew, errEst, opts.HMin, t, tf, wasRejected, &hist)
			wasRejected = false
			if t >= tf {
				copy(y, s.y0)
				return Result{T: t, Y: append([]float64(nil), s.y0...), Steps: steps, Accepted: accepted, Rejected: rejected, LUFactors: luFactors, Outcome: Success}
			}
			if hitEnd {
				hFinal = tf - t
			}
			h = hFinal
			hist.Gustafsson = true
			jacValid = newtonIters == 1 || s.NewtonRate <= thetaMin
		} else {
			rejected++
			consecErrors++
			if consecErrors > opts.MaxConsecutiveErrors {
				copy(y, s.y0)
				return Result{T: t, Y: append([]float64(nil), s.y0...), Steps: steps, Accepted: accepted, Rejected: rejected, LUFactors: luFactors, Outcome: MaxConsecutiveErrors}
			}
			h = stepctl.Reject(h, fac, wasRejected || hist.FirstStep)
			wasRejected = true
			haveInterpolant = false
			jacValid = true
		}
	}
}

// haveFactor reports whether the current factorization (made at hLU) is
// close enough to h, and the Newton iteration contracting fast enough, to
// be reused without refactoring: the step ratio must sit within
// [stepctl.Qmin, stepctl.Qmax] and the contraction rate must be below
// thetaMin.
func haveFactor(hLU, h, rate float64) bool {
	if hLU == 0 {
		return false
	}
	if rate > thetaMin {
		return false
	}
	ratio := h / hLU
	return ratio >= stepctl.Qmin && ratio <= stepctl.Qmax
}

// newton runs the simplified-Newton iteration on the current stage
// increments s.z1..s.z3 until NewtonRate*dNorm falls under newtonTol or
// newtonMaxIt is exceeded. It returns whether the iteration converged and
// how many iterations it took.
func (s *Solver) newton(sys hook.System, p []float64, t, h float64) (bool, int) {
	n := s.n
	stageY := s.yNew // reuse as scratch for the stage state vector

	for it := 0; it < newtonMaxIt; it++ {
		for i := 0; i < n; i++ {
			stageY[i] = s.y0[i] + s.z1[i]
		}
		sys.Dydt(t+rkC[0]*h, p, stageY, s.ff1)
		for i := 0; i < n; i++ {
			stageY[i] = s.y0[i] + s.z2[i]
		}
		sys.Dydt(t+rkC[1]*h, p, stageY, s.ff2)
		for i := 0; i < n; i++ {
			stageY[i] = s.y0[i] + s.z3[i]
		}
		sys.Dydt(t+rkC[2]*h, p, stageY, s.ff3)

		for i := 0; i < n; i++ {
			s.tf1[i] = s.z1[i]/h - (rkA[0][0]*s.ff1[i] + rkA[0][1]*s.ff2[i] + rkA[0][2]*s.ff3[i])
			s.tf2[i] = s.z2[i]/h - (rkA[1][0]*s.ff1[i] + rkA[1][1]*s.ff2[i] + rkA[1][2]*s.ff3[i])
			s.tf3[i] = s.z3[i]/h - (rkA[2][0]*s.ff1[i] + rkA[2][1]*s.ff2[i] + rkA[2][2]*s.ff3[i])
		}
		toW(rkTinvAinv, s.tf1, s.tf2, s.tf3, s.dw1, s.w2, s.w3)
		for i := 0; i < n; i++ {
			s.rhsComplex[i] = complex(s.w2[i], s.w3[i])
		}

		s.realLU.Solve(s.dw1)
		s.cplxLU.Solve(s.rhsComplex)
		for i := 0; i < n; i++ {
			s.w2[i], s.w3[i] = real(s.rhsComplex[i]), imag(s.rhsComplex[i])
		}
		toZ(s.dw1, s.w2, s.w3, s.zNew1, s.zNew2, s.zNew3)

		dNorm := 0.0
		for i := 0; i < n; i++ {
			d1 := s.zNew1[i]
			d2 := s.zNew2[i]
			d3 := s.zNew3[i]
			w := s.sc[i]
			dNorm += (w * d1) * (w * d1)
			dNorm += (w * d2) * (w * d2)
			dNorm += (w * d3) * (w * d3)
		}
		dNorm = math.Sqrt(dNorm / float64(3*n))

		for i := 0; i < n; i++ {
			s.z1[i] -= s.zNew1[i]
			s.z2[i] -= s.zNew2[i]
			s.z3[i] -= s.zNew3[i]
		}

		if s.NewtonRate*dNorm <= newtonTol {
			return true, it + 1
		}
	}
	return false, -1
}

// toZ transforms transformed-space coordinates back to stage increments
// using T.
func toZ(w1, w2, w3, z1, z2, z3 []float64) {
	for k := range w1 {
		a, b, c := w1[k], w2[k], w3[k]
		z1[k] = rkT[0][0]*a + rkT[0][1]*b + rkT[0][2]*c
		z2[k] = rkT[1][0]*a + rkT[1][1]*b + rkT[1][2]*c
		z3[k] = rkT[2][0]*a + rkT[2][1]*b + rkT[2][2]*c
	}
}

// errorEstimate computes the embedded error norm for the just-converged
// step using the classical (non-SDIRK) error estimator rkE. If the first
// estimate comes back at or above 1 on the first step of the IVP or right
// after a rejection, it is retried once: perturb y0 by the tentative error
// vector, re-evaluate f there, and redo the weighted combination and solve
// against the perturbed derivative. This avoids spurious rejections at
// startup, where the unperturbed f0 is a poor proxy for the local error.
func (s *Solver) errorEstimate(sys hook.System, p []float64, t, h float64, firstStep, prevRejected bool) float64 {
	n := s.n
	err := s.dw1 // reuse as scratch for the error vector
	for i := 0; i < n; i++ {
		err[i] = rkE[0]*s.f0[i] + (rkE[1]*s.z1[i]+rkE[2]*s.z2[i]+rkE[3]*s.z3[i])/h
	}
	s.realLU.Solve(err)
	errNorm := scale.Norm(s.sc, err)

	if errNorm >= 1.0 && (firstStep || prevRejected) {
		tmp := s.ff1 // scratch for the perturbed state
		for i := 0; i < n; i++ {
			tmp[i] = s.y0[i] + err[i]
		}
		sys.Dydt(t, p, tmp, s.ff2) // s.ff2 now holds f(t, y0+err)
		for i := 0; i < n; i++ {
			err[i] = rkE[0]*s.ff2[i] + (rkE[1]*s.z1[i]+rkE[2]*s.z2[i]+rkE[3]*s.z3[i])/h
		}
		s.realLU.Solve(err)
		errNorm = scale.Norm(s.sc, err)
	}

	return errNorm
}
