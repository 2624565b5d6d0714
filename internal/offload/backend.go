// Package offload selects where a batch's IVPs are actually driven: the
// CPU backend (internal/batch's goroutine dispatch) or, when built with
// the gpu tag and a device is present, a GPU backend. Both implement the
// same Backend interface so callers never branch on which is active.
package offload

import (
	"github.com/san-kum/radaubatch/internal/batch"
	"github.com/san-kum/radaubatch/internal/ivp"
)

// Backend runs a batch of IVPs to completion on some device.
type Backend interface {
	Name() string
	Available() bool
	RunBatch(ivps []batch.IVP, opts batch.Options) ([]ivp.Outcome, error)
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

// SetBackend replaces the active backend, cleaning up the previous one.
func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

// GetBackend returns the currently active backend.
func GetBackend() Backend {
	return activeBackend
}

// AutoSelectBackend picks the GPU backend if one is available (only
// possible in a gpu-tagged build with a device present), else CPU.
func AutoSelectBackend() Backend {
	gpu := NewGPUBackend()
	if gpu.Available() {
		return gpu
	}
	return NewCPUBackend()
}
