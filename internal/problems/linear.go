package problems

import "github.com/san-kum/radaubatch/internal/hook"

// Linear implements a diagonal decay system dy_i/dt = lambda_i * y_i, the
// simplest problem with a known closed-form solution y_i(t) =
// y_i(0)*exp(lambda_i*t). Used to validate the step kernels against an
// exact reference.
type Linear struct {
	lambda []float64
}

// NewLinear returns a diagonal decay system with the given per-component
// rate constants.
func NewLinear(lambda []float64) *Linear {
	return &Linear{lambda: append([]float64(nil), lambda...)}
}

func (l *Linear) Dim() int { return len(l.lambda) }

func (l *Linear) Dydt(t float64, p, y, dy []float64) {
	for i, lam := range l.lambda {
		dy[i] = lam * y[i]
	}
}

func (l *Linear) Jacobian(t float64, p, y, j []float64) {
	n := len(l.lambda)
	for i := range j {
		j[i] = 0
	}
	for i, lam := range l.lambda {
		j[i*n+i] = lam
	}
}

func (l *Linear) GetParams() map[string]float64 {
	params := make(map[string]float64, len(l.lambda))
	for i, lam := range l.lambda {
		params[paramName(i)] = lam
	}
	return params
}

func (l *Linear) SetParam(name string, value float64) error {
	for i := range l.lambda {
		if name == paramName(i) {
			l.lambda[i] = value
			return nil
		}
	}
	return hook.ErrUnknownParam
}

func paramName(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if i < len(letters) {
		return "lambda_" + string(letters[i])
	}
	return "lambda"
}
