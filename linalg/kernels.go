// SPDX-License-Identifier: MIT

package linalg

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvleq/matrix"
)

const (
	opSolve = "linalg.Solve"
	opPinv  = "linalg.PseudoInverse"
)

// Kernels is the default backend. The zero value is not usable; call New.
type Kernels struct {
	matrixOpts []matrix.Option // forwarded to LU-based kernels (pivot tolerance)
}

// Option configures Kernels.
type Option func(*Kernels)

// WithMatrixOptions forwards numeric policy (e.g. matrix.WithEpsilon) to the
// LU-based kernels Inverse and Solve (square systems).
func WithMatrixOptions(opts ...matrix.Option) Option {
	return func(k *Kernels) { k.matrixOpts = append(k.matrixOpts, opts...) }
}

// New returns a backend with the given options applied.
func New(opts ...Option) *Kernels {
	k := &Kernels{}
	for _, fn := range opts {
		if fn != nil {
			fn(k)
		}
	}

	return k
}

// dense narrows a kernel result to *matrix.Dense.
func dense(m matrix.Matrix, err error) (*matrix.Dense, error) {
	if err != nil {
		return nil, err
	}

	return matrix.AsDense(m)
}

// Mul returns a·b.
func (k *Kernels) Mul(a, b *matrix.Dense) (*matrix.Dense, error) {
	return dense(matrix.Mul(a, b))
}

// Transpose returns aᵀ.
func (k *Kernels) Transpose(a *matrix.Dense) (*matrix.Dense, error) {
	return dense(matrix.Transpose(a))
}

// Inverse returns a⁻¹ via pivoted LU.
// Errors: matrix.ErrNonSquare, matrix.ErrSingular.
func (k *Kernels) Inverse(a *matrix.Dense) (*matrix.Dense, error) {
	return dense(matrix.Inverse(a, k.matrixOpts...))
}

// Det returns the determinant via pivoted LU. Singular input yields 0.
// The pivot tolerance does not apply: det reports the product of the actual
// pivots, so a nearly singular matrix yields a small value rather than 0.
func (k *Kernels) Det(a *matrix.Dense) (float64, error) {
	return matrix.Det(a)
}

// Trace returns the sum of the diagonal of a square matrix.
func (k *Kernels) Trace(a *matrix.Dense) (float64, error) {
	return matrix.Trace(a)
}

// NormF returns the Frobenius norm.
func (k *Kernels) NormF(a *matrix.Dense) (float64, error) {
	return matrix.NormF(a)
}

// Solve returns x with a·x = b.
// Implementation:
//   - Square a: matrix.Solve (pivoted LU, same tolerance as Inverse), so a
//     matrix rejected by inv is rejected here too.
//   - Tall a (rows > cols): QR least-squares.
//   - Wide a (rows < cols): LQ minimum-norm solution.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (a.Rows != b.Rows).
//   - matrix.ErrSingular for a singular square a, or when gonum reports a
//     rank-deficient non-square system.
//
// Complexity:
//   - O(m·n·min(m,n) + m·n·k).
func (k *Kernels) Solve(a, b *matrix.Dense) (*matrix.Dense, error) {
	// gonum panics on shape errors; validate first.
	if err := matrix.ValidateSameRows(a, b); err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}
	if a.Rows() == a.Cols() {
		return dense(matrix.Solve(a, b, k.matrixOpts...))
	}

	var x mat.Dense
	if err := x.Solve(toGonum(a), toGonum(b)); err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, translate(err))
	}

	return fromGonum(&x)
}

// PseudoInverse returns the Moore–Penrose pseudo-inverse a⁺ (cols×rows).
// Implementation:
//   - Thin SVD a = U·Σ·Vᵀ; singular values below max(m,n)·σ₀·ε are dropped.
//   - a⁺ = V·Σ⁺·Uᵀ.
//
// Errors:
//   - matrix.ErrNilMatrix; matrix.ErrNaNInf for non-finite input;
//     matrix.ErrDecompositionFailed if the SVD does not converge.
func (k *Kernels) PseudoInverse(a *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, fmt.Errorf("%s: %w", opPinv, err)
	}
	for _, v := range a.Data() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s: %w", opPinv, matrix.ErrNaNInf)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(toGonum(a), mat.SVDThin); !ok {
		return nil, fmt.Errorf("%s: %w", opPinv, matrix.ErrDecompositionFailed)
	}
	s := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	rows, cols := a.Rows(), a.Cols()
	tol := float64(max(rows, cols)) * s[0] * eps
	// Scale V's columns by 1/σ (or zero them) to form V·Σ⁺.
	vr, _ := v.Dims()
	for j, sv := range s {
		inv := 0.0
		if sv > tol {
			inv = 1 / sv
		}
		for i := 0; i < vr; i++ {
			v.Set(i, j, v.At(i, j)*inv)
		}
	}

	var p mat.Dense
	p.Mul(&v, u.T())

	return fromGonum(&p)
}

// eps is the float64 machine epsilon.
var eps = math.Nextafter(1, 2) - 1

// translate maps gonum solver failures onto matrix sentinels.
func translate(err error) error {
	var cond mat.Condition
	if errors.As(err, &cond) || errors.Is(err, mat.ErrSingular) {
		return fmt.Errorf("%w (%v)", matrix.ErrSingular, err)
	}

	return err
}
