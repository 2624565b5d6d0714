package problems

import (
	"errors"

	"github.com/san-kum/radaubatch/internal/hook"
)

// ErrUnknownProblem is returned by Get for a name not in the registry.
var ErrUnknownProblem = errors.New("problems: unknown problem name")

// Spec bundles a demo System with the default initial state and horizon
// the CLI runs it with when no override is given.
type Spec struct {
	System hook.System
	Y0     []float64
	T0, Tf float64
}

// Get looks up a named demo problem: van der Pol in both its non-stiff
// and stiff configurations, linear decay, the identity (zero-RHS)
// system, and the forced-singular-Jacobian system.
func Get(name string) (Spec, error) {
	switch name {
	case "vanderpol":
		return Spec{System: NewVanDerPol(1.0), Y0: []float64{2.0, 0.0}, T0: 0, Tf: 20}, nil
	case "vanderpol-stiff":
		return Spec{System: NewVanDerPol(1000.0), Y0: []float64{2.0, 0.0}, T0: 0, Tf: 3000}, nil
	case "linear":
		return Spec{System: NewLinear([]float64{-1.0, -10.0, -100.0}), Y0: []float64{1.0, 1.0, 1.0}, T0: 0, Tf: 5}, nil
	case "identity":
		return Spec{System: NewIdentity(2), Y0: []float64{1.0, -1.0}, T0: 0, Tf: 1}, nil
	case "singular":
		return Spec{System: NewSingular(5), Y0: []float64{1.0, 1.0, 1.0, 1.0, 1.0}, T0: 0, Tf: 1}, nil
	default:
		return Spec{}, ErrUnknownProblem
	}
}

// Names lists every registered problem name, in the order Get's switch
// declares them.
func Names() []string {
	return []string{"vanderpol", "vanderpol-stiff", "linear", "identity", "singular"}
}
