package ivp

import (
	"math"
	"testing"
)

type decaySystem struct{}

func (decaySystem) Dim() int { return 1 }

func (decaySystem) Dydt(t float64, p, y, dy []float64) {
	dy[0] = -y[0]
}

func (decaySystem) Jacobian(t float64, p, y, j []float64) {
	j[0] = -1
}

func TestDriveRadau(t *testing.T) {
	pool := NewSolverPool()
	sys := decaySystem{}
	opts := Options{Atol: 1e-9, Rtol: 1e-7, H0: 0.01}

	out := Drive(pool, 0, Radau, sys, nil, []float64{1.0}, 0.0, 2.0, opts)
	if out.Code != Success {
		t.Fatalf("code = %v, want Success", out.Code)
	}
	if math.Abs(out.Y[0]-math.Exp(-2.0)) > 1e-4 {
		t.Errorf("y(2) = %v, want approx %v", out.Y[0], math.Exp(-2.0))
	}
}

func TestDriveRKF45(t *testing.T) {
	pool := NewSolverPool()
	sys := decaySystem{}
	opts := Options{Atol: 1e-9, Rtol: 1e-7, H0: 0.01}

	out := Drive(pool, 1, RKF45, sys, nil, []float64{1.0}, 0.0, 2.0, opts)
	if out.Code != Success {
		t.Fatalf("code = %v, want Success", out.Code)
	}
	if math.Abs(out.Y[0]-math.Exp(-2.0)) > 1e-4 {
		t.Errorf("y(2) = %v, want approx %v", out.Y[0], math.Exp(-2.0))
	}
}

func TestDriveReusesPooledSolver(t *testing.T) {
	pool := NewSolverPool()
	sys := decaySystem{}
	opts := Options{Atol: 1e-9, Rtol: 1e-7, H0: 0.01}

	for i := 0; i < 5; i++ {
		out := Drive(pool, i, Radau, sys, nil, []float64{1.0}, 0.0, 1.0, opts)
		if out.Code != Success {
			t.Fatalf("iteration %d: code = %v, want Success", i, out.Code)
		}
	}
}

func TestReturnCodeString(t *testing.T) {
	if Success.String() != "SUCCESS" {
		t.Errorf("Success.String() = %q", Success.String())
	}
	if MaxStepsExceeded.String() != "MAX_STEPS_EXCEEDED" {
		t.Errorf("MaxStepsExceeded.String() = %q", MaxStepsExceeded.String())
	}
}
