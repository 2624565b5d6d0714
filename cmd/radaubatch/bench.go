package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/radaubatch/internal/batch"
	"github.com/san-kum/radaubatch/internal/ivp"
	"github.com/san-kum/radaubatch/internal/problems"
	"github.com/san-kum/radaubatch/internal/radau"
)

// benchBatch sweeps worker count and dispatch mode for a fixed problem
// and copy count, reporting steps/sec for each configuration.
func benchBatch(cmd *cobra.Command, args []string) error {
	problemName := args[0]
	cfg, err := resolveConfig(cmd, problemName)
	if err != nil {
		return err
	}

	spec, err := problems.Get(problemName)
	if err != nil {
		return fmt.Errorf("unknown problem %q (known: %v)", problemName, problems.Names())
	}

	if err := runVerification(); err != nil {
		return err
	}
	fmt.Println()

	workerCounts := []int{1, 2, 4, 8, 16}
	modes := []string{"static", "queue"}

	fmt.Printf("benchmarking %s, method=%s, copies=%d\n\n", problemName, cfg.Method, cfg.Copies)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKERS\tMODE\tSTEPS\tTIME\tSTEPS/SEC")

	for _, workers := range workerCounts {
		for _, mode := range modes {
			sweepCfg := *cfg
			sweepCfg.Workers = workers
			sweepCfg.Mode = mode

			ivps := buildBatch(spec, methodOf(sweepCfg.Method), &sweepCfg)
			opts := batchOptions(&sweepCfg)

			start := time.Now()
			outcomes, err := batch.Run(ivps, opts)
			elapsed := time.Since(start)
			if err != nil {
				return fmt.Errorf("workers=%d mode=%s: %w", workers, mode, err)
			}

			steps := 0
			for _, o := range outcomes {
				steps += o.Counters.Steps
			}
			stepsPerSec := float64(steps) / elapsed.Seconds()

			fmt.Fprintf(w, "%d\t%s\t%d\t%v\t%.0f\n", workers, mode, steps, elapsed.Round(time.Microsecond), stepsPerSec)
		}
	}

	return w.Flush()
}

// scenario is one end-to-end correctness check: drive a single IVP to
// completion and compare against a documented reference outcome.
type scenario struct {
	name string
	run  func() (ok bool, detail string)
}

const verifyTol = 1e-6

func closeEnough(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol*math.Max(1.0, math.Abs(want))
}

// driveRef runs one IVP sequentially through the given method and returns
// its outcome, for comparison against a closed-form or documented
// reference value.
func driveRef(pool *ivp.SolverPool, method ivp.Method, spec problems.Spec, opts ivp.Options) ivp.Outcome {
	return ivp.Drive(pool, 0, method, spec.System, nil, spec.Y0, spec.T0, spec.Tf, opts)
}

// verificationScenarios reproduces the end-to-end reference cases: van der
// Pol non-stiff, a fast linear decay whose analytic answer underflows to
// zero, the general linear-decay demo problem against its closed-form
// exp(lambda*t) solution, the identity system's fixed point, and the
// persistently-singular Jacobian's mandated failure after 5 consecutive
// LU-factorization failures.
func verificationScenarios(pool *ivp.SolverPool) []scenario {
	stdOpts := ivp.Options{Atol: 1e-9, Rtol: 1e-6, H0: 0.01, HMax: 1.0, HMin: 1e-12}

	return []scenario{
		{
			name: "vanderpol mu=1 t=20",
			run: func() (bool, string) {
				spec, _ := problems.Get("vanderpol")
				out := driveRef(pool, ivp.Radau, spec, stdOpts)
				want := []float64{2.00861986087837, -0.07548432910115}
				for i := range want {
					if !closeEnough(out.Y[i], want[i], verifyTol) {
						return false, fmt.Sprintf("y=%v want=%v", out.Y, want)
					}
				}
				return true, fmt.Sprintf("y=%v", out.Y)
			},
		},
		{
			name: "linear decay lambda=-1000 t=1",
			run: func() (bool, string) {
				spec := problems.Spec{System: problems.NewLinear([]float64{-1000}), Y0: []float64{1.0}, T0: 0, Tf: 1}
				out := driveRef(pool, ivp.Radau, spec, stdOpts)
				want := math.Exp(-1000)
				if !closeEnough(out.Y[0], want, 1e-3) {
					return false, fmt.Sprintf("y=%v want=%v", out.Y[0], want)
				}
				return true, fmt.Sprintf("y=%v want=%v", out.Y[0], want)
			},
		},
		{
			name: "linear decay demo t=5",
			run: func() (bool, string) {
				spec, _ := problems.Get("linear")
				out := driveRef(pool, ivp.Radau, spec, stdOpts)
				lambda := []float64{-1.0, -10.0, -100.0}
				for i, lam := range lambda {
					want := spec.Y0[i] * math.Exp(lam*spec.Tf)
					if !closeEnough(out.Y[i], want, verifyTol) {
						return false, fmt.Sprintf("y=%v want[%d]=%v", out.Y, i, want)
					}
				}
				return true, fmt.Sprintf("y=%v", out.Y)
			},
		},
		{
			name: "identity is a fixed point",
			run: func() (bool, string) {
				spec, _ := problems.Get("identity")
				out := driveRef(pool, ivp.Radau, spec, stdOpts)
				for i, want := range spec.Y0 {
					if !closeEnough(out.Y[i], want, verifyTol) {
						return false, fmt.Sprintf("y=%v want=%v", out.Y, spec.Y0)
					}
				}
				return true, fmt.Sprintf("y=%v", out.Y)
			},
		},
		{
			name: "singular jacobian exhausts retries",
			run: func() (bool, string) {
				sys := problems.NewSingular(5)
				y0 := []float64{1, 1, 1, 1, 1}
				s := radau.NewSolver(5)
				res := s.Integrate(sys, nil, append([]float64(nil), y0...), 0, 1, radau.Options{
					Atol: 1e-8, Rtol: 1e-6, H0: 1.0, HMax: 1.0, HMin: 1e-14,
					MaxSteps: 10000, MaxConsecutiveErrors: 4,
				})
				if res.Outcome != radau.MaxConsecutiveErrors {
					return false, fmt.Sprintf("outcome=%v want=%v", res.Outcome, radau.MaxConsecutiveErrors)
				}
				return true, fmt.Sprintf("outcome=%v", res.Outcome)
			},
		},
	}
}

// runVerification runs every documented end-to-end scenario and reports
// pass/fail; the only error it returns is the table writer's flush error,
// never one caused by a failing scenario. A panicking scenario is not
// recovered.
func runVerification() error {
	pool := ivp.NewSolverPool()
	fmt.Println("verifying end-to-end scenarios against documented reference values")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tRESULT\tDETAIL")
	for _, sc := range verificationScenarios(pool) {
		ok, detail := sc.run()
		result := "PASS"
		if !ok {
			result = "FAIL"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", sc.name, result, detail)
	}
	return w.Flush()
}
