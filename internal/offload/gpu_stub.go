//go:build !gpu

package offload

import (
	"github.com/san-kum/radaubatch/internal/batch"
	"github.com/san-kum/radaubatch/internal/ivp"
)

// GPUBackend is the non-gpu-build stand-in: always unavailable.
type GPUBackend struct{}

// NewGPUBackend returns an unavailable GPU backend.
func NewGPUBackend() *GPUBackend {
	return &GPUBackend{}
}

func (g *GPUBackend) Name() string    { return "gpu (not available)" }
func (g *GPUBackend) Available() bool { return false }
func (g *GPUBackend) Cleanup()        {}

func (g *GPUBackend) RunBatch(ivps []batch.IVP, opts batch.Options) ([]ivp.Outcome, error) {
	cpu := NewCPUBackend()
	return cpu.RunBatch(ivps, opts)
}
