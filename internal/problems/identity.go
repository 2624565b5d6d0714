package problems

// Identity implements dy/dt = 0: the state never moves. Every step should
// accept immediately with zero error, exercising the step controller's
// behavior at its error-floor boundary rather than any real dynamics.
type Identity struct {
	dim int
}

// NewIdentity returns a zero-RHS system of the given dimension.
func NewIdentity(dim int) *Identity {
	return &Identity{dim: dim}
}

func (id *Identity) Dim() int { return id.dim }

func (id *Identity) Dydt(t float64, p, y, dy []float64) {
	for i := range dy {
		dy[i] = 0
	}
}

func (id *Identity) Jacobian(t float64, p, y, j []float64) {
	for i := range j {
		j[i] = 0
	}
}
