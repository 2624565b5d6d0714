// Package rkf45 implements the classical Fehlberg 4(5) explicit embedded
// Runge-Kutta pair: 6 stages, 4th-order solution advanced, 5th-order
// embedded estimate used only for step-size control. Used for non-stiff
// IVPs in the batch where the Jacobian-based Radau-IIA kernel would be
// needlessly expensive.
package rkf45

import (
	"math"

	"github.com/san-kum/radaubatch/internal/hook"
	"github.com/san-kum/radaubatch/internal/scale"
	"github.com/san-kum/radaubatch/internal/stepctl"
	"github.com/san-kum/radaubatch/internal/stepper"
)

// Outcome is the terminal status of a single Integrate call.
type Outcome int

const (
	Success Outcome = iota
	MaxConsecutiveErrors
	MaxStepsExceeded
	HPlusTEqualsH
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
	default:
		return "unknown"
	}
}

// Options configures a single Integrate call.
type Options struct {
	Atol, Rtol           float64
	H0                   float64
	HMax                 float64
	HMin                 float64
	MaxSteps             int
	MaxConsecutiveErrors int

	// Logger, if non-nil, records the accepted-step (t, y) trajectory.
	Logger *stepper.Log
}

// Result is the outcome of a single Integrate call.
type Result struct {
	T        float64
	Y        []float64
	Steps    int
	Accepted int
	Rejected int
	Outcome  Outcome
}

// Solver holds the per-IVP scratch for the Fehlberg 4(5) stage loop, sized
// once for a state dimension n and reused across many Integrate calls by
// a single worker.
type Solver struct {
	n    int
	y0   []float64
	yc   []float64
	err  []float64
	k    [numStages][]float64
	sc   []float64
}

// NewSolver allocates the scratch for an n-dimensional IVP.
func NewSolver(n int) *Solver {
	s := &Solver{
		n:   n,
		y0:  make([]float64, n),
		yc:  make([]float64, n),
		err: make([]float64, n),
		sc:  make([]float64, n),
	}
	for i := range s.k {
		s.k[i] = make([]float64, n)
	}
	return s
}

// Integrate advances y from t0 to tf, mutating y in place.
func (s *Solver) Integrate(sys hook.System, p, y []float64, t0, tf float64, opts Options) Result {
	n := s.n
	copy(s.y0, y)
	defer copy(y, s.y0)

	t := t0
	h := opts.H0
	if h <= 0 {
		h = (tf - t0) / 100
	}
	h = math.Min(h, opts.HMax)

	scale.Init(s.y0, opts.Atol, opts.Rtol, s.sc)

	hist := stepctl.History{FirstStep: true}
	consecErrors := 0
	steps, accepted, rejected := 0, 0, 0

	sys.Dydt(t, p, s.y0, s.k[0])

	for {
		if steps >= opts.MaxSteps {
			return s.result(t, steps, accepted, rejected, MaxStepsExceeded)
		}
		if t+h == t {
			return s.result(t, steps, accepted, rejected, HPlusTEqualsH)
		}
		steps++

		if t+h > tf {
			h = tf - t
		}

		for stage := 1; stage < numStages; stage++ {
			tc := t + h*rkC[stage]
			for i := 0; i < n; i++ {
				sum := s.y0[i]
				for j := 0; j < stage; j++ {
					sum += h * rkA[stage][j] * s.k[j][i]
				}
				s.yc[i] = sum
			}
			sys.Dydt(tc, p, s.yc, s.k[stage])
		}

		for i := 0; i < n; i++ {
			e := 0.0
			for stage := 0; stage < numStages; stage++ {
				e += h * rkE[stage] * s.k[stage][i]
			}
			s.err[i] = e
		}
		errEst := scale.Norm(s.sc, s.err)

		fac, hNew := stepctl.Next(errEst, 0, 0, order, h, &hist)

		if errEst <= 1.0 {
			accepted++
			consecErrors = 0

			for i := 0; i < n; i++ {
				sum := s.y0[i]
				for stage := 0; stage < numStages; stage++ {
					sum += h * rkB[stage] * s.k[stage][i]
				}
				s.yc[i] = sum
			}
			t += h
			copy(s.y0, s.yc)
			scale.Update(s.y0, s.y0, opts.Atol, opts.Rtol, s.sc)
			if opts.Logger != nil {
				opts.Logger.Record(t, s.y0)
			}

			if t >= tf {
				return s.result(t, steps, accepted, rejected, Success)
			}

			hFinal, hitEnd := stepctl.Accept(h, hNew, errEst, opts.HMin, t, tf, false, &hist)
			if hitEnd {
				hFinal = tf - t
			}
			h = hFinal

			sys.Dydt(t, p, s.y0, s.k[0])
		} else {
			rejected++
			consecErrors++
			if consecErrors > opts.MaxConsecutiveErrors {
				return s.result(t, steps, accepted, rejected, MaxConsecutiveErrors)
			}
			h = stepctl.Reject(h, fac, hist.FirstStep)
		}
	}
}

func (s *Solver) result(t float64, steps, accepted, rejected int, outcome Outcome) Result {
	return Result{
		T:        t,
		Y:        append([]float64(nil), s.y0...),
		Steps:    steps,
		Accepted: accepted,
		Rejected: rejected,
		Outcome:  outcome,
	}
}
