// SPDX-License-Identifier: MIT
package equation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvleq/equation"
)

func TestTable_EntriesCoverEveryOp(t *testing.T) {
	entries := equation.NewTable().Entries()

	seen := map[equation.Op]bool{}
	for _, e := range entries {
		seen[e.Op] = true
	}
	for _, name := range []string{"zeros", "ones", "eye", "diag", "dot", "solve", "transpose", "inv", "pinv", "det", "trace", "normF", "copy"} {
		op, ok := equation.LookupFunc(name)
		require.True(t, ok, name)
		require.True(t, op.IsFunc(), name)
		require.True(t, seen[op], name)
		require.Equal(t, name, op.String())
	}
	for _, op := range []equation.Op{equation.OpAdd, equation.OpSub, equation.OpMul, equation.OpDiv, equation.OpPow, equation.OpNeg} {
		require.True(t, seen[op], op.String())
		require.False(t, op.IsFunc(), op.String())
	}

	// ordered by op first
	require.Equal(t, "+ (scalar, scalar)", entries[0].String())
	for i := 1; i < len(entries); i++ {
		require.LessOrEqual(t, entries[i-1].Op, entries[i].Op)
	}

	_, ok := equation.LookupFunc("Det")
	require.False(t, ok) // case-sensitive
}

func TestTable_Resolve(t *testing.T) {
	tbl := equation.NewTable()
	m := equation.NewMatrix(MustDense(t, 1, 1, 1))
	s := equation.NewReal(2)

	impl, err := tbl.Resolve(equation.OpMul, []equation.Variable{s, m})
	require.NoError(t, err)
	out, err := impl(&fakeBackend{}, []equation.Variable{s, m})
	require.NoError(t, err)
	require.Equal(t, equation.KindMatrix, out.Kind())

	_, err = tbl.Resolve(equation.OpTrace, []equation.Variable{s})
	require.ErrorIs(t, err, equation.ErrUnsupportedOperation)
	require.ErrorContains(t, err, "trace on (real)")
}

func TestTable_RegisterAndWithTable(t *testing.T) {
	tbl := equation.NewTable()
	// det of a scalar is the scalar itself
	tbl.Register(equation.OpDet, equation.TypePair{Left: equation.ClassScalar, Arity: 1},
		func(_ equation.Backend, args []equation.Variable) (equation.Variable, error) {
			return args[0].Copy(), nil
		})

	eq := equation.New(equation.WithTable(tbl))
	MustAlias(t, eq, "s", 4.5)
	MustProcess(t, eq, "d = det(s)")
	d, err := eq.LookupScalar("d")
	require.NoError(t, err)
	require.Equal(t, 4.5, d)
	require.Same(t, tbl, eq.Table())
}
