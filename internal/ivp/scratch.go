package ivp

import (
	"sync"

	"github.com/san-kum/radaubatch/internal/radau"
	"github.com/san-kum/radaubatch/internal/rkf45"
)

// SolverPool recycles per-dimension step-kernel scratch (internal/radau
// and internal/rkf45 Solvers, each of which owns n- and n²-sized buffers)
// across IVPs of the same dimension, so a long batch run doesn't
// reallocate a fresh set of Newton/LU buffers per IVP. Distinct worker
// goroutines never share a checked-out Solver; Get/Put pairs bracket
// exactly one IVP.
type SolverPool struct {
	mu    sync.Mutex
	radau map[int]*sync.Pool
	rkf45 map[int]*sync.Pool
}

// NewSolverPool returns an empty pool; per-dimension sync.Pools are
// created lazily on first use.
func NewSolverPool() *SolverPool {
	return &SolverPool{
		radau: make(map[int]*sync.Pool),
		rkf45: make(map[int]*sync.Pool),
	}
}

func (p *SolverPool) radauPool(n int) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pool, ok := p.radau[n]
	if !ok {
		pool = &sync.Pool{New: func() any { return radau.NewSolver(n) }}
		p.radau[n] = pool
	}
	return pool
}

func (p *SolverPool) rkf45Pool(n int) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pool, ok := p.rkf45[n]
	if !ok {
		pool = &sync.Pool{New: func() any { return rkf45.NewSolver(n) }}
		p.rkf45[n] = pool
	}
	return pool
}

// GetRadau returns a Radau Solver sized for n, either recycled or freshly
// allocated.
func (p *SolverPool) GetRadau(n int) *radau.Solver {
	return p.radauPool(n).Get().(*radau.Solver)
}

// PutRadau returns a Radau Solver to the pool for reuse by a later IVP of
// the same dimension.
func (p *SolverPool) PutRadau(n int, s *radau.Solver) {
	p.radauPool(n).Put(s)
}

// GetRKF45 returns an RKF45 Solver sized for n, either recycled or freshly
// allocated.
func (p *SolverPool) GetRKF45(n int) *rkf45.Solver {
	return p.rkf45Pool(n).Get().(*rkf45.Solver)
}

// PutRKF45 returns an RKF45 Solver to the pool for reuse by a later IVP of
// the same dimension.
func (p *SolverPool) PutRKF45(n int, s *rkf45.Solver) {
	p.rkf45Pool(n).Put(s)
}
