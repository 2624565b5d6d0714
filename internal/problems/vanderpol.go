package problems

import "github.com/san-kum/radaubatch/internal/hook"

// VanDerPol implements the Van der Pol oscillator:
//
//	dx/dt = y
//	dy/dt = mu*(1-x^2)*y - x
//
// Large mu makes the second equation increasingly stiff near x=±1; this
// is the canonical non-stiff (mu~1) vs. stiff (mu>>1) demo pair.
type VanDerPol struct {
	mu float64
}

// NewVanDerPol returns a Van der Pol system with the given nonlinearity
// parameter.
func NewVanDerPol(mu float64) *VanDerPol {
	return &VanDerPol{mu: mu}
}

func (v *VanDerPol) Dim() int { return 2 }

func (v *VanDerPol) Dydt(t float64, p, y, dy []float64) {
	x, yy := y[0], y[1]
	dy[0] = yy
	dy[1] = v.mu*(1-x*x)*yy - x
}

// Jacobian is column-major: j[0..1] is column 0 (d/dx), j[2..3] is
// column 1 (d/dy).
func (v *VanDerPol) Jacobian(t float64, p, y, j []float64) {
	x, yy := y[0], y[1]
	j[0] = 0
	j[1] = -2*v.mu*x*yy - 1
	j[2] = 1
	j[3] = v.mu * (1 - x*x)
}

func (v *VanDerPol) DefaultState() []float64 { return []float64{2.0, 0.0} }

func (v *VanDerPol) GetParams() map[string]float64 {
	return map[string]float64{"mu": v.mu}
}

func (v *VanDerPol) SetParam(name string, value float64) error {
	if name != "mu" {
		return hook.ErrUnknownParam
	}
	v.mu = value
	return nil
}
