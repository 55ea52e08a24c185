// SPDX-License-Identifier: MIT
package equation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvleq/equation"
	"github.com/katalvlaran/lvleq/matrix"
)

const tol = 1e-8

// MustDense builds an r×c matrix from row-major values or fails the test.
func MustDense(t *testing.T, r, c int, vals ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

// MustAlias binds each name/value pair or fails the test.
func MustAlias(t *testing.T, eq *equation.Equation, pairs ...any) {
	t.Helper()
	require.Zero(t, len(pairs)%2, "pairs must be name/value")
	for i := 0; i < len(pairs); i += 2 {
		require.NoError(t, eq.Alias(pairs[i+1], pairs[i].(string)))
	}
}

// MustProcess runs formula or fails the test.
func MustProcess(t *testing.T, eq *equation.Equation, formula string) {
	t.Helper()
	require.NoError(t, eq.Process(formula), formula)
}

// RequireMatrixClose asserts got ≈ want element-wise within tol.
func RequireMatrixClose(t *testing.T, want, got matrix.Matrix) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, tol)
	require.NoError(t, err)
	require.Truef(t, ok, "want\n%v\ngot\n%v", want, got)
}

// fakeBackend records calls and returns fixed-shape zero results.
type fakeBackend struct {
	calls     []string
	solveArgs [2]*matrix.Dense
}

var _ equation.Backend = (*fakeBackend)(nil)

func (f *fakeBackend) Mul(a, b *matrix.Dense) (*matrix.Dense, error) {
	f.calls = append(f.calls, "Mul")
	return matrix.NewZeros(a.Rows(), b.Cols())
}

func (f *fakeBackend) Transpose(a *matrix.Dense) (*matrix.Dense, error) {
	f.calls = append(f.calls, "Transpose")
	return matrix.NewZeros(a.Cols(), a.Rows())
}

func (f *fakeBackend) Solve(a, b *matrix.Dense) (*matrix.Dense, error) {
	f.calls = append(f.calls, "Solve")
	f.solveArgs = [2]*matrix.Dense{a, b}
	return matrix.NewZeros(a.Cols(), b.Cols())
}

func (f *fakeBackend) Inverse(*matrix.Dense) (*matrix.Dense, error) {
	f.calls = append(f.calls, "Inverse")
	return nil, matrix.ErrSingular
}

func (f *fakeBackend) PseudoInverse(a *matrix.Dense) (*matrix.Dense, error) {
	f.calls = append(f.calls, "PseudoInverse")
	return matrix.NewZeros(a.Cols(), a.Rows())
}

func (f *fakeBackend) Det(*matrix.Dense) (float64, error) {
	f.calls = append(f.calls, "Det")
	return 42, nil
}

func (f *fakeBackend) Trace(*matrix.Dense) (float64, error) {
	f.calls = append(f.calls, "Trace")
	return 7, nil
}

func (f *fakeBackend) NormF(*matrix.Dense) (float64, error) {
	f.calls = append(f.calls, "NormF")
	return 1, nil
}
