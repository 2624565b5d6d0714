// Package hook defines the external problem-hook contract: the per-IVP
// right-hand side and Jacobian the batch solver calls back into, plus the
// optional scratch-sizing and tunable-parameter interfaces a System may
// implement.
package hook

import "errors"

// System is the user-supplied right-hand side of dy/dt = f(t, p, y).
// Implementations must be pure and deterministic: same (t, p, y) in, same
// dy out, no hidden state mutated between calls.
type System interface {
	// Dim returns N, the number of state components.
	Dim() int

	// Dydt evaluates f(t, p, y) into dy. dy has length Dim() and is owned
	// by the caller; Dydt must not retain it.
	Dydt(t float64, p, y, dy []float64)

	// Jacobian evaluates J = df/dy at (t, p, y) into J, stored column-major,
	// length Dim()*Dim(). Only called by the Radau kernel; RKF45 never
	// calls it.
	Jacobian(t float64, p, y, j []float64)
}

// ScratchBytes is implemented by Systems that need per-IVP workspace beyond
// what the step kernels already allocate (e.g. a problem with expensive
// auxiliary state). Systems that don't implement it are assumed to need 0
// extra bytes.
type ScratchBytes interface {
	ScratchBytes() int
}

// Configurable is implemented by demo problems that expose named scalar
// parameters tunable at runtime.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

var (
	// ErrDimensionMismatch indicates a buffer passed to Dydt/Jacobian does
	// not match the System's declared Dim().
	ErrDimensionMismatch = errors.New("hook: dimension mismatch between buffer and system")

	// ErrUnknownParam indicates SetParam was called with a name the
	// Configurable system does not recognize.
	ErrUnknownParam = errors.New("hook: unknown parameter name")
)
