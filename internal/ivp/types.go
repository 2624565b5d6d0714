// Package ivp drives a single initial-value problem to completion using
// whichever step kernel (internal/radau or internal/rkf45) the batch
// selects for it, and unifies their per-kernel Outcome types into one
// ReturnCode the rest of the batch reports against.
package ivp

import (
	"github.com/san-kum/radaubatch/internal/radau"
	"github.com/san-kum/radaubatch/internal/rkf45"
)

// ReturnCode is the batch-wide terminal status of one IVP. Unlike a batch-
// fatal error (bad Options, allocation failure), a ReturnCode never aborts
// sibling IVPs: it is recorded per-IVP and the batch continues.
type ReturnCode int

const (
	Success ReturnCode = iota
	MaxConsecutiveErrorsExceeded
	MaxStepsExceeded
	HPlusTEqualsH
	MaxNewtonIterExceeded
)

func (rc ReturnCode) String() string {
	switch rc {
	case Success:
		return "SUCCESS"
	case MaxConsecutiveErrorsExceeded:
		return "MAX_CONSECUTIVE_ERRORS_EXCEEDED"
	case MaxStepsExceeded:
		return "MAX_STEPS_EXCEEDED"
	case HPlusTEqualsH:
		return "H_PLUS_T_EQUALS_H"
	case MaxNewtonIterExceeded:
		return "MAX_NEWTON_ITER_EXCEEDED"
	default:
		return "UNKNOWN"
	}
}

func fromRadau(o radau.Outcome) ReturnCode {
	switch o {
	case radau.Success:
		return Success
	case radau.MaxConsecutiveErrors:
		return MaxConsecutiveErrorsExceeded
	case radau.MaxStepsExceeded:
		return MaxStepsExceeded
	case radau.HPlusTEqualsH:
		return HPlusTEqualsH
	case radau.MaxNewtonIterExceeded:
		return MaxNewtonIterExceeded
	default:
		return MaxStepsExceeded
	}
}

func fromRKF45(o rkf45.Outcome) ReturnCode {
	switch o {
	case rkf45.Success:
		return Success
	case rkf45.MaxConsecutiveErrors:
		return MaxConsecutiveErrorsExceeded
	case rkf45.MaxStepsExceeded:
		return MaxStepsExceeded
	case rkf45.HPlusTEqualsH:
		return HPlusTEqualsH
	default:
		return MaxStepsExceeded
	}
}

// Counters accumulates step statistics for one IVP, surfaced in the batch
// summary and the optional persisted run log (internal/rblog).
type Counters struct {
	Steps     int
	Accepted  int
	Rejected  int
	LUFactors int
}

// Outcome is the result of driving a single IVP: the final state, the
// unified return code, and its step counters.
type Outcome struct {
	Index    int
	T        float64
	Y        []float64
	Code     ReturnCode
	Counters Counters
}
