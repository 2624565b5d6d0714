package batch

import (
	"sync"
	"sync/atomic"

	"github.com/san-kum/radaubatch/internal/ivp"
)

// Run drives every IVP in ivps to completion and returns one ivp.Outcome
// per input, in input order, regardless of dispatch Mode. A per-IVP
// failure never aborts the others: it is simply recorded in that IVP's
// Outcome.Code.
func Run(ivps []IVP, opts Options) ([]ivp.Outcome, error) {
	if len(ivps) == 0 {
		return nil, ErrEmptyBatch
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	for _, item := range ivps {
		if len(item.Y0) != item.System.Dim() {
			return nil, ErrInvalidDimensions
		}
	}

	pool := ivp.NewSolverPool()
	outcomes := make([]ivp.Outcome, len(ivps))

	switch opts.Mode {
	case WorkQueue:
		runQueue(ivps, opts, pool, outcomes)
	default:
		runStatic(ivps, opts, pool, outcomes)
	}

	return outcomes, nil
}

func driveOne(pool *ivp.SolverPool, idx int, item IVP, opts Options) ivp.Outcome {
	out := ivp.Drive(pool, idx, item.Method, item.System, item.Params, item.Y0, item.T0, item.Tf, opts.Solver)
	out.Index = idx
	return out
}

// runStatic splits ivps into opts.Workers contiguous chunks, one per
// worker goroutine.
func runStatic(ivps []IVP, opts Options, pool *ivp.SolverPool, outcomes []ivp.Outcome) {
	n := len(ivps)
	workers := opts.Workers
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * n / workers
		end := (w + 1) * n / workers
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				outcomes[i] = driveOne(pool, i, ivps[i], opts)
			}
		}(start, end)
	}
	wg.Wait()
}

// runQueue has every worker fetch-add a shared cursor to claim the next
// unclaimed IVP index, so a worker that finishes a cheap IVP early picks
// up more work instead of idling while a sibling worker churns through a
// stiff one.
func runQueue(ivps []IVP, opts Options, pool *ivp.SolverPool, outcomes []ivp.Outcome) {
	n := int64(len(ivps))
	var cursor atomic.Int64

	workers := opts.Workers
	if int64(workers) > n {
		workers = int(n)
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := cursor.Add(1) - 1
				if i >= n {
					return
				}
				outcomes[i] = driveOne(pool, int(i), ivps[i], opts)
			}
		}()
	}
	wg.Wait()
}
