package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/radaubatch/internal/batch"
	"github.com/san-kum/radaubatch/internal/ivp"
	"github.com/san-kum/radaubatch/internal/problems"
	"github.com/san-kum/radaubatch/internal/rblog"
	"github.com/san-kum/radaubatch/internal/rbconfig"
	"github.com/san-kum/radaubatch/internal/stepper"
)

// buildBatch expands one problem Spec into Copies independent IVP
// instances. Each copy perturbs the initial state slightly so a batch
// exercises more than one trajectory through the same kernel, rather
// than solving the identical problem Copies times.
func buildBatch(spec problems.Spec, method ivp.Method, cfg *rbconfig.Config) []batch.IVP {
	ivps := make([]batch.IVP, cfg.Copies)
	for i := 0; i < cfg.Copies; i++ {
		y0 := append([]float64(nil), spec.Y0...)
		jitter := 1.0 + 0.01*float64(i%8)
		for j := range y0 {
			y0[j] *= jitter
		}
		ivps[i] = batch.IVP{
			System: spec.System,
			Y0:     y0,
			T0:     spec.T0,
			Tf:     spec.Tf,
			Method: method,
		}
	}
	return ivps
}

func methodOf(s string) ivp.Method {
	if s == "rkf45" {
		return ivp.RKF45
	}
	return ivp.Radau
}

func modeOf(s string) batch.Mode {
	if s == "queue" {
		return batch.WorkQueue
	}
	return batch.StaticChunked
}

func batchOptions(cfg *rbconfig.Config) batch.Options {
	return batch.Options{
		Workers: cfg.Workers,
		Mode:    modeOf(cfg.Mode),
		Solver: ivp.Options{
			Atol: cfg.Atol,
			Rtol: cfg.Rtol,
			H0:   cfg.H0,
			HMax: cfg.HMax,
			HMin: cfg.HMin,
		},
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	problemName := args[0]
	cfg, err := resolveConfig(cmd, problemName)
	if err != nil {
		return err
	}

	spec, err := problems.Get(problemName)
	if err != nil {
		return fmt.Errorf("unknown problem %q (known: %v)", problemName, problems.Names())
	}

	ivps := buildBatch(spec, methodOf(cfg.Method), cfg)
	opts := batchOptions(cfg)

	start := time.Now()
	outcomes, err := batch.Run(ivps, opts)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	printSummary(problemName, cfg, outcomes, elapsed)

	if plotRun {
		plotTrajectory(ivps, opts, plotIndex)
	}

	if cfg.LogRun {
		store := rblog.New(cfg.LogDir)
		if err := store.Init(); err != nil {
			return fmt.Errorf("init log dir: %w", err)
		}
		runID, err := store.Save(problemName, opts, outcomes)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("\nsaved run %s under %s\n", runID, cfg.LogDir)
	}

	return nil
}

// plotTrajectory re-drives a single nominated IVP sequentially, outside
// the batch's concurrent dispatch, with a stepper.Log attached, then
// renders its first state component with asciigraph. Re-driving rather
// than reusing the batch's Outcome keeps the concurrent run free of the
// per-step allocation the logger costs.
func plotTrajectory(ivps []batch.IVP, opts batch.Options, index int) {
	if index < 0 || index >= len(ivps) {
		index = 0
	}
	item := ivps[index]

	log := stepper.New()
	solverOpts := opts.Solver
	solverOpts.Logger = log

	pool := ivp.NewSolverPool()
	ivp.Drive(pool, index, item.Method, item.System, item.Params, item.Y0, item.T0, item.Tf, solverOpts)

	series := log.Series(0)
	if len(series) < 2 {
		fmt.Printf("\nivp %d: not enough accepted steps to plot\n", index)
		return
	}
	graph := asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("ivp %d, y[0] over %d accepted steps", index, len(series))),
	)
	fmt.Println("\n" + graph)
}

func printSummary(problemName string, cfg *rbconfig.Config, outcomes []ivp.Outcome, elapsed time.Duration) {
	succeeded, totalSteps, totalAccepted, totalRejected := 0, 0, 0, 0
	for _, o := range outcomes {
		if o.Code == ivp.Success {
			succeeded++
		}
		totalSteps += o.Counters.Steps
		totalAccepted += o.Counters.Accepted
		totalRejected += o.Counters.Rejected
	}

	fmt.Printf("problem=%s method=%s copies=%d workers=%d mode=%s\n",
		problemName, cfg.Method, cfg.Copies, cfg.Workers, cfg.Mode)
	fmt.Printf("%d/%d succeeded in %s\n", succeeded, len(outcomes), formatDuration(elapsed))

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "index\tt_final\tcode\tsteps\taccepted\trejected")
	limit := len(outcomes)
	if limit > 20 {
		limit = 20
	}
	for _, o := range outcomes[:limit] {
		fmt.Fprintf(w, "%d\t%.6f\t%s\t%d\t%d\t%d\n",
			o.Index, o.T, o.Code, o.Counters.Steps, o.Counters.Accepted, o.Counters.Rejected)
	}
	w.Flush()
	if len(outcomes) > limit {
		fmt.Printf("... (%d more, use --log to persist the full table)\n", len(outcomes)-limit)
	}

	if totalSteps > 0 {
		fmt.Printf("totals: steps=%d accepted=%d rejected=%d steps/sec=%.0f\n",
			totalSteps, totalAccepted, totalRejected, float64(totalSteps)/elapsed.Seconds())
	}
}
