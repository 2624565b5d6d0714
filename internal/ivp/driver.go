package ivp

import (
	"github.com/san-kum/radaubatch/internal/hook"
	"github.com/san-kum/radaubatch/internal/radau"
	"github.com/san-kum/radaubatch/internal/rkf45"
	"github.com/san-kum/radaubatch/internal/stepper"
)

// Method selects which step kernel drives an IVP.
type Method int

const (
	// Radau selects the implicit Radau-IIA(5) kernel, for stiff systems.
	Radau Method = iota
	// RKF45 selects the explicit Fehlberg 4(5) kernel, for non-stiff systems.
	RKF45
)

func (m Method) String() string {
	switch m {
	case Radau:
		return "radau"
	case RKF45:
		return "rkf45"
	default:
		return "unknown"
	}
}

// Options bundles the tolerances and limits common to both step kernels.
// A zero-value MaxConsecutiveErrors or MaxSteps is filled with a sane
// default by Drive.
type Options struct {
	Atol, Rtol           float64
	H0, HMax, HMin       float64
	MaxSteps             int
	MaxConsecutiveErrors int

	// Logger, if non-nil, records the driven IVP's accepted-step (t, y)
	// trajectory. Only ever set on a single sequentially-driven IVP, never
	// on a batch running under internal/batch's concurrent dispatcher.
	Logger *stepper.Log
}

const (
	defaultMaxSteps             = 200000
	defaultMaxConsecutiveErrors = 10
)

func (o Options) normalized() Options {
	if o.MaxSteps <= 0 {
		o.MaxSteps = defaultMaxSteps
	}
	if o.MaxConsecutiveErrors <= 0 {
		o.MaxConsecutiveErrors = defaultMaxConsecutiveErrors
	}
	if o.HMin <= 0 {
		o.HMin = 1e-12
	}
	if o.HMax <= 0 {
		o.HMax = 1.0
	}
	return o
}

// Drive runs a single IVP to completion with the chosen Method, checking
// a Solver out of pool for the duration of the call and returning it
// before it returns. index is carried through into the Outcome for the
// caller to correlate results back to the batch's IVP slice; it plays no
// role in the integration itself.
func Drive(pool *SolverPool, index int, method Method, sys hook.System, p, y0 []float64, t0, tf float64, opts Options) Outcome {
	opts = opts.normalized()
	n := sys.Dim()
	y := append([]float64(nil), y0...)

	switch method {
	case RKF45:
		s := pool.GetRKF45(n)
		defer pool.PutRKF45(n, s)

		res := s.Integrate(sys, p, y, t0, tf, rkf45.Options{
			Atol:                 opts.Atol,
			Rtol:                 opts.Rtol,
			H0:                   opts.H0,
			HMax:                 opts.HMax,
			HMin:                 opts.HMin,
			MaxSteps:             opts.MaxSteps,
			MaxConsecutiveErrors: opts.MaxConsecutiveErrors,
			Logger:               opts.Logger,
		})
		return Outcome{
			Index: index,
			T:     res.T,
			Y:     res.Y,
			Code:  fromRKF45(res.Outcome),
			Counters: Counters{
				Steps:    res.Steps,
				Accepted: res.Accepted,
				Rejected: res.Rejected,
			},
		}

	default:
		s := pool.GetRadau(n)
		defer pool.PutRadau(n, s)

		res := s.Integrate(sys, p, y, t0, tf, radau.Options{
			Atol:                 opts.Atol,
			Rtol:                 opts.Rtol,
			H0:                   opts.H0,
			HMax:                 opts.HMax,
			HMin:                 opts.HMin,
			MaxSteps:             opts.MaxSteps,
			MaxConsecutiveErrors: opts.MaxConsecutiveErrors,
			Logger:               opts.Logger,
		})
		return Outcome{
			Index: index,
			T:     res.T,
			Y:     res.Y,
			Code:  fromRadau(res.Outcome),
			Counters: Counters{
				Steps:     res.Steps,
				Accepted:  res.Accepted,
				Rejected:  res.Rejected,
				LUFactors: res.LUFactors,
			},
		}
	}
}
