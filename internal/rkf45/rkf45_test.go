package rkf45

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

func TestIntegrateDecayMatchesAnalytic(t *testing.T) {
	sys := decaySystem{}
	s := NewSolver(1)
	y := []float64{1.0}

	opts := Options{
		Atol:                 1e-10,
		Rtol:                 1e-8,
		H0:                   0.01,
		HMax:                 1.0,
		HMin:                 1e-10,
		MaxSteps:             10000,
		MaxConsecutiveErrors: 20,
	}

	res := s.Integrate(sys, nil, y, 0.0, 2.0, opts)
	if res.Outcome != Success {
		t.Fatalf("outcome = %v, want Success", res.Outcome)
	}

	want := math.Exp(-2.0)
	if got := res.Y[0]; math.Abs(got-want) > 1e-5 {
		t.Errorf("y(2) = %v, want approx %v", got, want)
	}
}

type harmonicOscillator struct{}

func (harmonicOscillator) Dim() int { return 2 }

func (harmonicOscillator) Dydt(t float64, p, y, dy []float64) {
	dy[0] = y[1]
	dy[1] = -y[0]
}

func (harmonicOscillator) Jacobian(t float64, p, y, j []float64) {
	j[0], j[1] = 0, -1
	j[2], j[3] = 1, 0
}

func TestIntegrateHarmonicOscillatorConservesEnergy(t *testing.T) {
	sys := harmonicOscillator{}
	s := NewSolver(2)
	y := []float64{1.0, 0.0}

	opts := Options{
		Atol:                 1e-10,
		Rtol:                 1e-9,
		H0:                   0.01,
		HMax:                 0.1,
		HMin:                 1e-10,
		MaxSteps:             100000,
		MaxConsecutiveErrors: 20,
	}

	res := s.Integrate(sys, nil, y, 0.0, 2*math.Pi, opts)
	if res.Outcome != Success {
		t.Fatalf("outcome = %v, want Success", res.Outcome)
	}

	energy := res.Y[0]*res.Y[0] + res.Y[1]*res.Y[1]
	if math.Abs(energy-1.0) > 1e-4 {
		t.Errorf("energy = %v, want approx 1.0 after one full period", energy)
	}
}

func TestMaxStepsExceeded(t *testing.T) {
	sys := decaySystem{}
	s := NewSolver(1)
	y := []float64{1.0}

	opts := Options{
		Atol:                 1e-9,
		Rtol:                 1e-7,
		H0:                   0.01,
		HMax:                 1.0,
		HMin:                 1e-10,
		MaxSteps:             1,
		MaxConsecutiveErrors: 20,
	}

	res := s.Integrate(sys, nil, y, 0.0, 100.0, opts)
	if res.Outcome != MaxStepsExceeded {
		t.Errorf("outcome = %v, want MaxStepsExceeded", res.Outcome)
	}
}
