// SPDX-License-Identifier: MIT

package equation

import (
	"fmt"

	"github.com/katalvlaran/lvleq/matrix"
)

// registerFuncs installs the built-in functions.
func registerFuncs(t *Table) {
	t.Register(OpZeros, pairSS, shape2(OpZeros, matrix.NewZeros))
	t.Register(OpOnes, pairSS, shape2(OpOnes, matrix.NewOnes))
	t.Register(OpEye, pairS, func(_ Backend, args []Variable) (Variable, error) {
		n, err := integerArg(OpEye, args[0])
		if err != nil {
			return nil, err
		}

		return denseResult(matrix.NewIdentity(n))
	})
	t.Register(OpEye, pairSS, shape2(OpEye, matrix.NewEye))

	t.Register(OpDiag, pairM, func(_ Backend, args []Variable) (Variable, error) {
		v := denseOf(args[0])
		if v.IsVector() {
			return matrixResult(matrix.Diag(v))
		}

		return matrixResult(matrix.DiagOf(v))
	})
	t.Register(OpDot, pairMM, func(_ Backend, args []Variable) (Variable, error) {
		return realResult(matrix.Dot(denseOf(args[0]), denseOf(args[1])))
	})

	t.Register(OpSolve, pairMM, func(b Backend, args []Variable) (Variable, error) {
		return denseResult(b.Solve(denseOf(args[0]), denseOf(args[1])))
	})
	t.Register(OpTranspose, pairM, unaryDense(Backend.Transpose))
	t.Register(OpInv, pairM, unaryDense(Backend.Inverse))
	t.Register(OpPinv, pairM, unaryDense(Backend.PseudoInverse))
	t.Register(OpDet, pairM, unaryReal(Backend.Det))
	t.Register(OpTrace, pairM, unaryReal(Backend.Trace))
	t.Register(OpNormF, pairM, unaryReal(Backend.NormF))

	copyImpl := func(_ Backend, args []Variable) (Variable, error) { return args[0].Copy(), nil }
	t.Register(OpCopy, pairS, copyImpl)
	t.Register(OpCopy, pairM, copyImpl)
}

// integerArg extracts an integer argument or fails with ErrTypeMismatch.
func integerArg(op Op, v Variable) (int, error) {
	i, ok := v.(*Integer)
	if !ok {
		return 0, fmt.Errorf("%w: %s expects integer arguments, got %s", ErrTypeMismatch, op, v.Kind())
	}

	return i.Value, nil
}

// shape2 adapts a rows×cols constructor taking two integer arguments.
func shape2(op Op, ctor func(rows, cols int) (*matrix.Dense, error)) Impl {
	return func(_ Backend, args []Variable) (Variable, error) {
		r, err := integerArg(op, args[0])
		if err != nil {
			return nil, err
		}
		c, err := integerArg(op, args[1])
		if err != nil {
			return nil, err
		}

		return denseResult(ctor(r, c))
	}
}

// unaryDense adapts a backend method producing a matrix.
func unaryDense(fn func(Backend, *matrix.Dense) (*matrix.Dense, error)) Impl {
	return func(b Backend, args []Variable) (Variable, error) {
		return denseResult(fn(b, denseOf(args[0])))
	}
}

// unaryReal adapts a backend method producing a real scalar.
func unaryReal(fn func(Backend, *matrix.Dense) (float64, error)) Impl {
	return func(b Backend, args []Variable) (Variable, error) {
		return realResult(fn(b, denseOf(args[0])))
	}
}
