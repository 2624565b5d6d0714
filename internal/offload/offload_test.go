package offload

import (
	"testing"

	"github.com/san-kum/radaubatch/internal/batch"
	"github.com/san-kum/radaubatch/internal/ivp"
)

type decaySystem struct{}

func (decaySystem) Dim() int { return 1 }

func (decaySystem) Dydt(t float64, p, y, dy []float64) {
	dy[0] = -y[0]
}

func (decaySystem) Jacobian(t float64, p, y, j []float64) {
	j[0] = -1
}

func TestAutoSelectBackendFallsBackToCPU(t *testing.T) {
	b := AutoSelectBackend()
	if b.Name() != "cpu" {
		t.Errorf("Name() = %q, want cpu in a non-gpu build with no device", b.Name())
	}
	if !b.Available() {
		t.Error("CPU backend should always be available")
	}
}

func TestCPUBackendRunBatch(t *testing.T) {
	b := NewCPUBackend()
	items := []batch.IVP{
		{System: decaySystem{}, Y0: []float64{1.0}, T0: 0, Tf: 1.0, Method: ivp.Radau},
	}
	opts := batch.Options{Workers: 1, Mode: batch.StaticChunked, Solver: ivp.Options{Atol: 1e-8, Rtol: 1e-6, H0: 0.01}}

	out, err := b.RunBatch(items, opts)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if out[0].Code != ivp.Success {
		t.Errorf("code = %v, want Success", out[0].Code)
	}
}

func TestSetBackendAndGetBackend(t *testing.T) {
	original := GetBackend()
	defer SetBackend(original)

	SetBackend(NewCPUBackend())
	if GetBackend().Name() != "cpu" {
		t.Errorf("GetBackend().Name() = %q, want cpu", GetBackend().Name())
	}
}
