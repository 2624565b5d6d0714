// Package stepper records the per-step (t, y) trajectory of a single
// nominated IVP as it is driven by the Radau or RKF45 kernel, so the CLI
// can render it after the fact. It has no opinion on how many state
// components there are or how the log is displayed; internal/radau and
// internal/rkf45 only ever call Record.
package stepper

// Entry is one accepted step's state, sampled after the step is taken.
type Entry struct {
	T float64
	Y []float64
}

// Log accumulates Entry values across a single Integrate call. It is not
// safe for concurrent use; the CLI attaches one Log to exactly one IVP's
// Options, never to a batch running under the concurrent dispatcher.
type Log struct {
	entries []Entry
}

// New returns an empty Log.
func New() *Log {
	return &Log{}
}

// Record appends the current (t, y) to the log. y is copied; callers may
// reuse the slice they passed in.
func (l *Log) Record(t float64, y []float64) {
	l.entries = append(l.entries, Entry{T: t, Y: append([]float64(nil), y...)})
}

// Entries returns the recorded trajectory in step order.
func (l *Log) Entries() []Entry {
	return l.entries
}

// Series extracts the time series of a single state component, for
// plotting. dim must be within the recorded state's dimension; a Log with
// no entries returns nil.
func (l *Log) Series(dim int) []float64 {
	if len(l.entries) == 0 {
		return nil
	}
	out := make([]float64, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Y[dim]
	}
	return out
}
