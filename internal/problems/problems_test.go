package problems

import (
	"testing"

	"github.com/san-kum/radaubatch/internal/radau"
)

func TestVanDerPolParams(t *testing.T) {
	v := NewVanDerPol(2.5)
	if got := v.GetParams()["mu"]; got != 2.5 {
		t.Errorf("mu = %v, want 2.5", got)
	}
	if err := v.SetParam("mu", 4.0); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	if got := v.GetParams()["mu"]; got != 4.0 {
		t.Errorf("mu after SetParam = %v, want 4.0", got)
	}
	if err := v.SetParam("nope", 1.0); err == nil {
		t.Error("SetParam with unknown name should error")
	}
}

func TestLinearDydtAndJacobian(t *testing.T) {
	l := NewLinear([]float64{-1, -2})
	dy := make([]float64, 2)
	l.Dydt(0, nil, []float64{1, 1}, dy)
	if dy[0] != -1 || dy[1] != -2 {
		t.Errorf("dy = %v, want [-1 -2]", dy)
	}

	j := make([]float64, 4)
	l.Jacobian(0, nil, []float64{1, 1}, j)
	want := []float64{-1, 0, 0, -2}
	for i := range want {
		if j[i] != want[i] {
			t.Errorf("j[%d] = %v, want %v", i, j[i], want[i])
		}
	}
}

func TestIdentityIsZero(t *testing.T) {
	id := NewIdentity(3)
	dy := make([]float64, 3)
	id.Dydt(0, nil, []float64{1, 2, 3}, dy)
	for i, v := range dy {
		if v != 0 {
			t.Errorf("dy[%d] = %v, want 0", i, v)
		}
	}
}

func TestSingularForcesFiveConsecutiveLUFailures(t *testing.T) {
	const dim = 5
	sys := NewSingular(dim)
	s := radau.NewSolver(dim)
	y := make([]float64, dim)
	for i := range y {
		y[i] = 1.0
	}

	opts := radau.Options{
		Atol:                 1e-8,
		Rtol:                 1e-6,
		H0:                   1.0,
		HMax:                 1.0,
		HMin:                 1e-14,
		MaxSteps:             10000,
		MaxConsecutiveErrors: 4,
	}

	res := s.Integrate(sys, nil, y, 0.0, 1.0, opts)
	if res.Outcome != radau.MaxConsecutiveErrors {
		t.Fatalf("outcome = %v, want MaxConsecutiveErrors after 5 consecutive singular factorizations", res.Outcome)
	}
}

func TestRegistryGetKnownAndUnknown(t *testing.T) {
	for _, name := range Names() {
		if _, err := Get(name); err != nil {
			t.Errorf("Get(%q): %v", name, err)
		}
	}
	if _, err := Get("bogus"); err != ErrUnknownProblem {
		t.Errorf("Get(bogus) err = %v, want ErrUnknownProblem", err)
	}
}
