// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic test fixtures and utilities for kernels.
//   - Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvleq/matrix"
	"github.com/stretchr/testify/require"
)

// closeTol is the absolute tolerance used by numeric comparisons in this package.
const closeTol = 1e-9

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force non-*Dense (fallback) paths in the code under test.
type hide struct{ matrix.Matrix }

// MustDense ALLOCATES an r×c *Dense or fails the test (fatal on error).
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// NewFilledDense BUILDS r×c *Dense from a row-major flat slice.
func NewFilledDense(t *testing.T, r, c int, vals ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err, "NewDenseFrom(%d,%d)", r, c)

	return m
}

// RandFilledDense returns an r×c *Dense filled with values in [-1, 1) from a seeded source.
func RandFilledDense(t *testing.T, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := MustDense(t, r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			MustSet(t, m, i, j, 2*rng.Float64()-1)
		}
	}

	return m
}

// MustSet writes v at (i,j) or fails the test.
func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v), "Set(%d,%d)", i, j)
}

// MustAt reads (i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// CompareExact asserts m has exactly the shape and values of want.
func CompareExact(t *testing.T, want [][]float64, m matrix.Matrix) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "rows")
	for i := range want {
		require.Equal(t, len(want[i]), m.Cols(), "cols of row %d", i)
		for j := range want[i] {
			require.Equal(t, want[i][j], MustAt(t, m, i, j), "[%d,%d]", i, j)
		}
	}
}

// RequireClose asserts a and b agree within closeTol element-wise.
func RequireClose(t *testing.T, want, got matrix.Matrix) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, closeTol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ:\nwant\n%v\ngot\n%v", want, got)
}
