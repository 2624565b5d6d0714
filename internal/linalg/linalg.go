// Package linalg factors the real and complex N×N systems the Radau step
// kernel's diagonalized Newton iteration solves once per step and
// back-substitutes against once per iteration. The real factorization
// (E1 = gamma/h*I - J) delegates to gonum's native dgetrf/dgetrs; gonum's
// LAPACK binding has no complex (zgetrf/zgetrs) counterpart, so the
// complex factorization (E2 = (alpha+i*beta)/h*I - J) is a hand-rolled
// Gaussian elimination with partial pivoting over complex128.
package linalg

import (
	"errors"
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/lapack/gonum"
)

// ErrSingular is returned by Factor when the matrix is exactly singular;
// the caller (the Radau step kernel) treats this as an LU failure and
// retries with a halved step size.
var ErrSingular = errors.New("linalg: matrix is singular")

var impl gonum.Implementation

// RealLU holds a factored N×N real matrix, stored column-major, ready for
// repeated back-substitution.
type RealLU struct {
	n     int
	a     []float64 // column-major N*N, overwritten in place by Dgetrf
	pivot []int
}

// NewRealLU allocates the scratch for an N×N real factorization. Call
// Factor to populate it; the same RealLU may be refactored repeatedly
// across steps without reallocating.
func NewRealLU(n int) *RealLU {
	return &RealLU{
		n:     n,
		a:     make([]float64, n*n),
		pivot: make([]int, n),
	}
}

// Factor computes E1 = (gamma/h)*I - J and factors it in place. j must be
// the N*N Jacobian, column-major. gamma and h follow the Radau-IIA
// diagonalization.
func (lu *RealLU) Factor(j []float64, gamma, h float64) error {
	n := lu.n
	diag := gamma / h
	for col := 0; col < n; col++ {
		for row := 0; row < n; row++ {
			lu.a[col*n+row] = -j[col*n+row]
		}
		lu.a[col*n+col] += diag
	}

	ok := impl.Dgetrf(n, n, lu.a, n, lu.pivot)
	if !ok {
		return ErrSingular
	}
	return nil
}

// Solve back-substitutes b in place against the most recent factorization.
func (lu *RealLU) Solve(b []float64) {
	impl.Dgetrs(blas.NoTrans, lu.n, 1, lu.a, lu.n, lu.pivot, b, 1)
}

// ComplexLU holds a factored N×N complex matrix.
type ComplexLU struct {
	n     int
	a     []complex128
	pivot []int
}

// NewComplexLU allocates the scratch for an N×N complex factorization.
func NewComplexLU(n int) *ComplexLU {
	return &ComplexLU{
		n:     n,
		a:     make([]complex128, n*n),
		pivot: make([]int, n),
	}
}

// Factor computes E2 = ((alpha+i*beta)/h)*I - J (J embedded as real) and
// factors it in place via Gaussian elimination with partial pivoting.
func (lu *ComplexLU) Factor(j []float64, alpha, beta, h float64) error {
	n := lu.n
	diag := complex(alpha/h, beta/h)
	for col := 0; col < n; col++ {
		for row := 0; row < n; row++ {
			lu.a[col*n+row] = complex(-j[col*n+row], 0)
		}
		lu.a[col*n+col] += diag
	}

	for i := range lu.pivot {
		lu.pivot[i] = i
	}

	a := lu.a
	at := func(r, c int) complex128 { return a[c*n+r] }
	for k := 0; k < n; k++ {
		maxRow, maxVal := k, cmplx.Abs(at(k, k))
		for i := k + 1; i < n; i++ {
			if v := cmplx.Abs(at(i, k)); v > maxVal {
				maxRow, maxVal = i, v
			}
		}
		if maxVal == 0 {
			return ErrSingular
		}
		if maxRow != k {
			for c := 0; c < n; c++ {
				a[c*n+k], a[c*n+maxRow] = a[c*n+maxRow], a[c*n+k]
			}
			lu.pivot[k] = maxRow
		} else {
			lu.pivot[k] = k
		}

		pivotVal := at(k, k)
		for i := k + 1; i < n; i++ {
			factor := at(i, k) / pivotVal
			a[k*n+i] = factor
			for c := k + 1; c < n; c++ {
				a[c*n+i] -= factor * at(k, c)
			}
		}
	}
	return nil
}

// Solve back-substitutes b (packed as a complex vector) in place against
// the most recent factorization: apply the recorded row swaps, then
// forward-substitute against the unit-lower-triangular factor L, then
// back-substitute against the upper-triangular factor U.
func (lu *ComplexLU) Solve(b []complex128) {
	n := lu.n
	a := lu.a

	for k := 0; k < n; k++ {
		if p := lu.pivot[k]; p != k {
			b[k], b[p] = b[p], b[k]
		}
	}

	for i := 1; i < n; i++ {
		sum := b[i]
		for j := 0; j < i; j++ {
			sum -= a[j*n+i] * b[j]
		}
		b[i] = sum
	}

	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= a[j*n+i] * b[j]
		}
		b[i] = sum / a[i*n+i]
	}
}
