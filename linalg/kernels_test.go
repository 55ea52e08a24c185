// SPDX-License-Identifier: MIT
package linalg_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvleq/equation"
	"github.com/katalvlaran/lvleq/linalg"
	"github.com/katalvlaran/lvleq/matrix"
)

// Kernels must satisfy the engine's backend contract.
var _ equation.Backend = (*linalg.Kernels)(nil)

const tol = 1e-9

func dense(t *testing.T, r, c int, vals ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

func requireClose(t *testing.T, want, got *matrix.Dense) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, tol)
	require.NoError(t, err)
	require.Truef(t, ok, "want\n%v\ngot\n%v", want, got)
}

func TestSolve_Square(t *testing.T) {
	k := linalg.New()
	a := dense(t, 2, 2, 2, 1, 1, 3)
	b := dense(t, 2, 1, 3, 5)

	x, err := k.Solve(a, b)
	require.NoError(t, err)
	requireClose(t, dense(t, 2, 1, 0.8, 1.4), x)

	// Agrees with the pure-Go LU path.
	lu, err := matrix.Solve(a, b)
	require.NoError(t, err)
	requireClose(t, lu.(*matrix.Dense), x)
}

func TestSolve_LeastSquares(t *testing.T) {
	k := linalg.New()
	// Overdetermined but consistent: y = 1 + 2t sampled at t = 0, 1, 2.
	a := dense(t, 3, 2, 1, 0, 1, 1, 1, 2)
	b := dense(t, 3, 1, 1, 3, 5)

	x, err := k.Solve(a, b)
	require.NoError(t, err)
	require.Equal(t, 2, x.Rows()) // a.cols × b.cols
	require.Equal(t, 1, x.Cols())
	requireClose(t, dense(t, 2, 1, 1, 2), x)

	// Inconsistent system: residual is orthogonal to the columns of a.
	b = dense(t, 3, 1, 1, 2, 4)
	x, err = k.Solve(a, b)
	require.NoError(t, err)
	ax, err := k.Mul(a, x)
	require.NoError(t, err)
	r, err := matrix.Sub(b, ax)
	require.NoError(t, err)
	at, err := k.Transpose(a)
	require.NoError(t, err)
	normal, err := matrix.Mul(at, r)
	require.NoError(t, err)
	requireClose(t, dense(t, 2, 1, 0, 0), normal.(*matrix.Dense))
}

func TestSolve_Errors(t *testing.T) {
	k := linalg.New()
	_, err := k.Solve(dense(t, 2, 2, 1, 2, 2, 4), dense(t, 2, 1, 1, 1))
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, err = k.Solve(dense(t, 2, 2, 1, 0, 0, 1), dense(t, 3, 1, 1, 1, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestSolve_PivotTolerance(t *testing.T) {
	a := dense(t, 2, 2, 1, 0, 0, 1e-13)
	b := dense(t, 2, 1, 1, 1)

	// Default tolerance treats the 1e-13 pivot as zero, for solve and inverse alike.
	k := linalg.New()
	_, err := k.Solve(a, b)
	require.ErrorIs(t, err, matrix.ErrSingular)
	_, err = k.Inverse(a)
	require.ErrorIs(t, err, matrix.ErrSingular)

	// A tighter epsilon accepts it on both paths.
	k = linalg.New(linalg.WithMatrixOptions(matrix.WithEpsilon(1e-15)))
	x, err := k.Solve(a, b)
	require.NoError(t, err)
	inv, err := k.Inverse(a)
	require.NoError(t, err)
	ix, err := k.Mul(inv, b)
	require.NoError(t, err)
	requireClose(t, ix, x)
	require.InDelta(t, 1e13, x.Data()[1], 1)
}

func TestPseudoInverse(t *testing.T) {
	k := linalg.New()

	// Invertible: pinv == inv.
	a := dense(t, 2, 2, 4, 7, 2, 6)
	p, err := k.PseudoInverse(a)
	require.NoError(t, err)
	inv, err := k.Inverse(a)
	require.NoError(t, err)
	requireClose(t, inv, p)

	// Rank-deficient and rectangular: Penrose condition A·A⁺·A = A.
	for _, m := range []*matrix.Dense{
		dense(t, 2, 2, 1, 2, 2, 4),
		dense(t, 2, 3, 1, 2, 3, 4, 5, 6),
		dense(t, 3, 2, 1, 2, 3, 4, 5, 6),
	} {
		p, err = k.PseudoInverse(m)
		require.NoError(t, err)
		require.Equal(t, m.Cols(), p.Rows())
		require.Equal(t, m.Rows(), p.Cols())
		ap, err := k.Mul(m, p)
		require.NoError(t, err)
		apa, err := k.Mul(ap, m)
		require.NoError(t, err)
		requireClose(t, m, apa)
	}

	// Zero matrix maps to the zero matrix transposed.
	z, err := matrix.NewZeros(2, 3)
	require.NoError(t, err)
	p, err = k.PseudoInverse(z)
	require.NoError(t, err)
	zt, err := matrix.NewZeros(3, 2)
	require.NoError(t, err)
	requireClose(t, zt, p)

	nan, err := matrix.NewDenseFrom(1, 1, []float64{math.NaN()}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	_, err = k.PseudoInverse(nan)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestScalarReductions(t *testing.T) {
	k := linalg.New()
	a := dense(t, 2, 2, 1, 2, 3, 4)

	d, err := k.Det(a)
	require.NoError(t, err)
	require.InDelta(t, -2, d, tol)

	tr, err := k.Trace(a)
	require.NoError(t, err)
	require.Equal(t, 5.0, tr)

	n, err := k.NormF(a)
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(30), n, tol)

	_, err = k.Det(dense(t, 1, 2, 1, 2))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestWithMatrixOptions_Epsilon(t *testing.T) {
	a := dense(t, 2, 2, 1, 1, 1, 1+1e-10)

	_, err := linalg.New().Inverse(a)
	require.NoError(t, err)

	_, err = linalg.New(linalg.WithMatrixOptions(matrix.WithEpsilon(1e-6))).Inverse(a)
	require.ErrorIs(t, err, matrix.ErrSingular)
}
