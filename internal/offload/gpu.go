//go:build gpu

package offload

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -lcudart
#include <stdlib.h>

extern int cuda_device_count();
extern const char* cuda_device_name_get();
*/
import "C"

import (
	"github.com/san-kum/radaubatch/internal/batch"
	"github.com/san-kum/radaubatch/internal/ivp"
)

// GPUBackend queries for a CUDA device but, absent a device-side Radau/
// RKF45 kernel, still drives the batch on the host CPU backend. It exists
// as the transport seam a real device kernel would plug into; the
// dispatch logic in internal/batch is what would need a GPU-side twin.
type GPUBackend struct {
	available  bool
	deviceName string
}

// NewGPUBackend probes for a CUDA device.
func NewGPUBackend() *GPUBackend {
	count := int(C.cuda_device_count())
	name := ""
	if count > 0 {
		name = C.GoString(C.cuda_device_name_get())
	}
	return &GPUBackend{available: count > 0, deviceName: name}
}

func (g *GPUBackend) Name() string {
	if g.available {
		return "gpu (" + g.deviceName + ")"
	}
	return "gpu (not available)"
}

func (g *GPUBackend) Available() bool { return g.available }
func (g *GPUBackend) Cleanup()        {}

func (g *GPUBackend) RunBatch(ivps []batch.IVP, opts batch.Options) ([]ivp.Outcome, error) {
	cpu := NewCPUBackend()
	return cpu.RunBatch(ivps, opts)
}
