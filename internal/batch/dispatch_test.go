package batch

import (
	"math"
	"testing"

	"github.com/san-kum/radaubatch/internal/ivp"
)

type decaySystem struct{ lambda float64 }

func (d decaySystem) Dim() int { return 1 }

func (d decaySystem) Dydt(t float64, p, y, dy []float64) {
	dy[0] = d.lambda * y[0]
}

func (d decaySystem) Jacobian(t float64, p, y, j []float64) {
	j[0] = d.lambda
}

func makeBatch(n int) []IVP {
	items := make([]IVP, n)
	for i := range items {
		items[i] = IVP{
			System: decaySystem{lambda: -1.0 - float64(i%3)},
			Y0:     []float64{1.0},
			T0:     0,
			Tf:     2.0,
			Method: ivp.Radau,
		}
	}
	return items
}

func defaultOptions(workers int, mode Mode) Options {
	return Options{
		Workers: workers,
		Mode:    mode,
		Solver:  ivp.Options{Atol: 1e-9, Rtol: 1e-7, H0: 0.01},
	}
}

func TestRunRejectsNonPowerOfTwoWorkers(t *testing.T) {
	_, err := Run(makeBatch(4), defaultOptions(3, StaticChunked))
	if err != ErrNoWorkers {
		t.Fatalf("err = %v, want ErrNoWorkers", err)
	}
}

func TestRunRejectsEmptyBatch(t *testing.T) {
	_, err := Run(nil, defaultOptions(4, StaticChunked))
	if err != ErrEmptyBatch {
		t.Fatalf("err = %v, want ErrEmptyBatch", err)
	}
}

func TestRunRejectsDimensionMismatch(t *testing.T) {
	items := makeBatch(1)
	items[0].Y0 = []float64{1.0, 2.0}
	_, err := Run(items, defaultOptions(4, StaticChunked))
	if err != ErrInvalidDimensions {
		t.Fatalf("err = %v, want ErrInvalidDimensions", err)
	}
}

func TestRunStaticAllSucceed(t *testing.T) {
	out, err := Run(makeBatch(17), defaultOptions(4, StaticChunked))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, o := range out {
		if o.Code != ivp.Success {
			t.Errorf("outcome %d: code = %v, want Success", i, o.Code)
		}
		if o.Index != i {
			t.Errorf("outcome %d: Index = %d, want %d", i, o.Index, i)
		}
	}
}

func TestRunQueueAllSucceed(t *testing.T) {
	out, err := Run(makeBatch(17), defaultOptions(4, WorkQueue))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, o := range out {
		if o.Code != ivp.Success {
			t.Errorf("outcome %d: code = %v, want Success", i, o.Code)
		}
	}
}

func TestStaticAndQueueAgree(t *testing.T) {
	items := makeBatch(33)

	staticOut, err := Run(items, defaultOptions(8, StaticChunked))
	if err != nil {
		t.Fatalf("static Run: %v", err)
	}
	queueOut, err := Run(items, defaultOptions(8, WorkQueue))
	if err != nil {
		t.Fatalf("queue Run: %v", err)
	}

	for i := range items {
		if staticOut[i].Code != queueOut[i].Code {
			t.Errorf("ivp %d: static code %v != queue code %v", i, staticOut[i].Code, queueOut[i].Code)
		}
		if math.Abs(staticOut[i].Y[0]-queueOut[i].Y[0]) > 1e-12 {
			t.Errorf("ivp %d: static y=%v != queue y=%v", i, staticOut[i].Y[0], queueOut[i].Y[0])
		}
	}
}
