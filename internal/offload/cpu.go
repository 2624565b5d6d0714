package offload

import (
	"github.com/san-kum/radaubatch/internal/batch"
	"github.com/san-kum/radaubatch/internal/ivp"
)

// CPUBackend runs a batch on the host via internal/batch's goroutine
// dispatch. It is always available.
type CPUBackend struct{}

// NewCPUBackend returns the CPU backend.
func NewCPUBackend() *CPUBackend {
	return &CPUBackend{}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

// RunBatch delegates straight to batch.Run.
func (c *CPUBackend) RunBatch(ivps []batch.IVP, opts batch.Options) ([]ivp.Outcome, error) {
	return batch.Run(ivps, opts)
}
