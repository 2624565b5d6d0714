package batch_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/radaubatch/internal/batch"
	"github.com/san-kum/radaubatch/internal/ivp"
)

type harmonicOscillator struct{}

func (harmonicOscillator) Dim() int { return 2 }

func (harmonicOscillator) Dydt(t float64, p, y, dy []float64) {
	dy[0] = y[1]
	dy[1] = -y[0]
}

func (harmonicOscillator) Jacobian(t float64, p, y, j []float64) {
	j[0], j[1] = 0, -1
	j[2], j[3] = 1, 0
}

func oscillatorBatch(n int) []batch.IVP {
	items := make([]batch.IVP, n)
	for i := range items {
		items[i] = batch.IVP{
			System: harmonicOscillator{},
			Y0:     []float64{1.0, 0.0},
			T0:     0,
			Tf:     3.0,
			Method: ivp.Radau,
		}
	}
	return items
}

var _ = Describe("batch dispatch", func() {
	solverOpts := ivp.Options{Atol: 1e-9, Rtol: 1e-7, H0: 0.01}

	It("produces the same outcome for every IVP run twice under StaticChunked", func() {
		items := oscillatorBatch(20)
		opts := batch.Options{Workers: 4, Mode: batch.StaticChunked, Solver: solverOpts}

		first, err := batch.Run(items, opts)
		Expect(err).NotTo(HaveOccurred())
		second, err := batch.Run(items, opts)
		Expect(err).NotTo(HaveOccurred())

		for i := range items {
			Expect(first[i].Code).To(Equal(second[i].Code))
			Expect(first[i].Y).To(Equal(second[i].Y))
		}
	})

	It("is independent of worker count", func() {
		items := oscillatorBatch(23)

		withOne, err := batch.Run(items, batch.Options{Workers: 1, Mode: batch.StaticChunked, Solver: solverOpts})
		Expect(err).NotTo(HaveOccurred())
		withEight, err := batch.Run(items, batch.Options{Workers: 8, Mode: batch.StaticChunked, Solver: solverOpts})
		Expect(err).NotTo(HaveOccurred())

		for i := range items {
			Expect(withOne[i].Code).To(Equal(withEight[i].Code))
			Expect(withOne[i].Y).To(Equal(withEight[i].Y))
		}
	})

	It("gives StaticChunked and WorkQueue the same result for every IVP", func() {
		items := oscillatorBatch(31)

		static, err := batch.Run(items, batch.Options{Workers: 4, Mode: batch.StaticChunked, Solver: solverOpts})
		Expect(err).NotTo(HaveOccurred())
		queue, err := batch.Run(items, batch.Options{Workers: 4, Mode: batch.WorkQueue, Solver: solverOpts})
		Expect(err).NotTo(HaveOccurred())

		for i := range items {
			Expect(static[i].Code).To(Equal(queue[i].Code))
			Expect(static[i].Y).To(Equal(queue[i].Y))
		}
	})

	It("returns results in input order regardless of dispatch mode", func() {
		items := oscillatorBatch(9)
		out, err := batch.Run(items, batch.Options{Workers: 4, Mode: batch.WorkQueue, Solver: solverOpts})
		Expect(err).NotTo(HaveOccurred())

		for i, o := range out {
			Expect(o.Index).To(Equal(i))
		}
	})

	It("rejects a non-power-of-two worker count", func() {
		_, err := batch.Run(oscillatorBatch(4), batch.Options{Workers: 5, Mode: batch.StaticChunked, Solver: solverOpts})
		Expect(err).To(MatchError(batch.ErrNoWorkers))
	})
})
