// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvleq/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // zero rows
	_, err = matrix.NewDense(2, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // negative cols
}

func TestNewDense_ShapeAndZero(t *testing.T) {
	m := MustDense(t, 2, 3)
	require.Equal(t, 2, m.Rows()) // rows preserved
	require.Equal(t, 3, m.Cols()) // cols preserved
	require.Equal(t, 6, m.Len())  // r*c elements
	for _, v := range m.Data() {
		require.Zero(t, v) // zero-initialized
	}
}

func TestNewDenseFrom(t *testing.T) {
	src := []float64{1, 2, 3, 4}
	m, err := matrix.NewDenseFrom(2, 2, src)
	require.NoError(t, err)
	src[0] = 99                               // caller mutation must not leak
	require.Equal(t, 1.0, MustAt(t, m, 0, 0)) // data was copied
	require.Equal(t, 3.0, MustAt(t, m, 1, 0)) // row-major layout

	_, err = matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrBadShape) // length mismatch

	_, err = matrix.NewDenseFrom(1, 2, []float64{1, math.NaN()})
	require.ErrorIs(t, err, matrix.ErrNaNInf) // policy on by default

	m, err = matrix.NewDenseFrom(1, 2, []float64{1, math.Inf(1)}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)                            // policy disabled
	require.True(t, math.IsInf(MustAt(t, m, 0, 1), 1)) // Inf stored as-is
}

func TestDense_AtSetBounds(t *testing.T) {
	m := MustDense(t, 2, 2)
	_, err := m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange) // negative row
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)                  // col too large
	require.ErrorIs(t, m.Set(2, 0, 1), matrix.ErrIndexOutOfBounds) // alias still matches

	require.NoError(t, m.Set(1, 1, 7.5))
	require.Equal(t, 7.5, MustAt(t, m, 1, 1)) // round-trip

	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf) // numeric policy
}

func TestDense_CloneIsDeep(t *testing.T) {
	m := NewFilledDense(t, 1, 2, 1, 2)
	c := m.Clone()
	MustSet(t, c, 0, 0, 3)
	require.Equal(t, 1.0, MustAt(t, m, 0, 0)) // original untouched
	require.Equal(t, 3.0, MustAt(t, c, 0, 0)) // clone changed
}

func TestDense_CopyFromKeepsIdentity(t *testing.T) {
	dst := NewFilledDense(t, 1, 1, 5)
	alias := dst // another holder of the same handle
	src := NewFilledDense(t, 2, 3, 1, 2, 3, 4, 5, 6)

	require.NoError(t, dst.CopyFrom(src))
	require.Same(t, alias, dst) // identity kept
	CompareExact(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, alias)

	MustSet(t, src, 0, 0, 42)
	require.Equal(t, 1.0, MustAt(t, dst, 0, 0)) // no sharing with src

	require.NoError(t, dst.CopyFrom(dst))                      // self-copy is a no-op
	require.ErrorIs(t, dst.CopyFrom(nil), matrix.ErrNilMatrix) // nil source
}

func TestDense_String(t *testing.T) {
	m := NewFilledDense(t, 2, 2, 1, 2.5, -3, 4)
	require.Equal(t, "[1, 2.5]\n[-3, 4]\n", m.String())
}

func TestDense_DoAndApply(t *testing.T) {
	m := NewFilledDense(t, 2, 2, 1, 2, 3, 4)
	var sum float64
	m.Do(func(_, _ int, v float64) bool { sum += v; return true })
	require.Equal(t, 10.0, sum) // visited all

	var visited int
	m.Do(func(_, _ int, _ float64) bool { visited++; return visited < 2 })
	require.Equal(t, 2, visited) // early stop

	require.NoError(t, m.Apply(func(i, j int, v float64) float64 { return v * 2 }))
	CompareExact(t, [][]float64{{2, 4}, {6, 8}}, m)

	err := m.Apply(func(_, _ int, v float64) float64 { return v / 0 })
	require.ErrorIs(t, err, matrix.ErrNaNInf) // policy enforced on Apply
}
