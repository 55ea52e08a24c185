// SPDX-License-Identifier: MIT

package equation

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvleq/matrix"
)

// registerArith installs + - * / ^ and unary negation.
func registerArith(t *Table) {
	t.Register(OpAdd, pairSS, scalarBinary(
		checkedInt(addInt),
		func(a, b float64) float64 { return a + b }))
	t.Register(OpAdd, pairMM, matrixBinary(matrix.Add))
	t.Register(OpAdd, pairMS, matrixScalar(matrix.AddScalar))
	t.Register(OpAdd, pairSM, scalarMatrix(matrix.AddScalar))

	t.Register(OpSub, pairSS, scalarBinary(
		checkedInt(subInt),
		func(a, b float64) float64 { return a - b }))
	t.Register(OpSub, pairMM, matrixBinary(matrix.Sub))
	t.Register(OpSub, pairMS, matrixScalar(matrix.SubScalar))
	t.Register(OpSub, pairSM, scalarMatrix(rsubScalar))

	t.Register(OpMul, pairSS, scalarBinary(
		checkedInt(mulInt),
		func(a, b float64) float64 { return a * b }))
	t.Register(OpMul, pairMM, mulMM)
	t.Register(OpMul, pairMS, matrixScalar(matrix.Scale))
	t.Register(OpMul, pairSM, scalarMatrix(matrix.Scale))

	t.Register(OpDiv, pairSS, scalarBinary(divInt,
		func(a, b float64) float64 { return a / b }))
	t.Register(OpDiv, pairMS, matrixScalar(matrix.DivScalar))
	t.Register(OpDiv, pairMM, divMM)

	t.Register(OpPow, pairSS, scalarBinary(powInt, math.Pow))
	t.Register(OpPow, pairMS, powMS)

	t.Register(OpNeg, pairS, negScalar)
	t.Register(OpNeg, pairM, func(_ Backend, args []Variable) (Variable, error) {
		return matrixResult(matrix.Negate(denseOf(args[0])))
	})
}

// denseOf returns the storage of a matrix variable. Callers rely on the
// table key having already established the class.
func denseOf(v Variable) *matrix.Dense { return v.(*Matrix).M }

// matrixResult narrows a kernel result and translates its error.
func matrixResult(m matrix.Matrix, err error) (Variable, error) {
	if err != nil {
		return nil, translate(err)
	}
	d, err := matrix.AsDense(m)
	if err != nil {
		return nil, translate(err)
	}

	return NewMatrix(d), nil
}

// denseResult wraps a backend result.
func denseResult(d *matrix.Dense, err error) (Variable, error) {
	if err != nil {
		return nil, translate(err)
	}

	return NewMatrix(d), nil
}

// realResult wraps a backend scalar.
func realResult(v float64, err error) (Variable, error) {
	if err != nil {
		return nil, translate(err)
	}

	return NewReal(v), nil
}

// scalarBinary applies ints when both operands are integers, reals otherwise.
func scalarBinary(ints func(a, b int) (Variable, error), reals func(a, b float64) float64) Impl {
	return func(_ Backend, args []Variable) (Variable, error) {
		if promote(args...) == KindInteger {
			return ints(args[0].(*Integer).Value, args[1].(*Integer).Value)
		}
		a, _ := scalarOf(args[0])
		b, _ := scalarOf(args[1])

		return NewReal(reals(a, b)), nil
	}
}

// matrixBinary lifts a matrix-matrix kernel.
func matrixBinary(fn func(a, b matrix.Matrix) (matrix.Matrix, error)) Impl {
	return func(_ Backend, args []Variable) (Variable, error) {
		return matrixResult(fn(denseOf(args[0]), denseOf(args[1])))
	}
}

// matrixScalar lifts fn(M, s) for (matrix, scalar) operands.
func matrixScalar(fn func(m matrix.Matrix, s float64) (matrix.Matrix, error)) Impl {
	return func(_ Backend, args []Variable) (Variable, error) {
		s, _ := scalarOf(args[1])

		return matrixResult(fn(denseOf(args[0]), s))
	}
}

// scalarMatrix lifts fn(M, s) for (scalar, matrix) operands.
func scalarMatrix(fn func(m matrix.Matrix, s float64) (matrix.Matrix, error)) Impl {
	return func(_ Backend, args []Variable) (Variable, error) {
		s, _ := scalarOf(args[0])

		return matrixResult(fn(denseOf(args[1]), s))
	}
}

// rsubScalar computes s - M elementwise.
func rsubScalar(m matrix.Matrix, s float64) (matrix.Matrix, error) {
	neg, err := matrix.Negate(m)
	if err != nil {
		return nil, err
	}

	return matrix.AddScalar(neg, s)
}

// checkedInt lifts an overflow-reporting integer operation.
func checkedInt(fn func(a, b int) (int, bool)) func(a, b int) (Variable, error) {
	return func(a, b int) (Variable, error) {
		c, ok := fn(a, b)
		if !ok {
			return nil, fmt.Errorf("%w: %d, %d", ErrIntegerOverflow, a, b)
		}

		return NewInteger(c), nil
	}
}

func addInt(a, b int) (int, bool) {
	c := a + b

	return c, (c > a) == (b > 0)
}

func subInt(a, b int) (int, bool) {
	c := a - b

	return c, (c < a) == (b > 0)
}

func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, false
	}
	c := a * b

	return c, c/b == a
}

// divInt truncates toward zero, as Go's integer division does.
func divInt(a, b int) (Variable, error) {
	if b == 0 {
		return nil, ErrDivideByZero
	}
	if a == math.MinInt && b == -1 {
		return nil, fmt.Errorf("%w: %d / %d", ErrIntegerOverflow, a, b)
	}

	return NewInteger(a / b), nil
}

// powInt stays integral for non-negative exponents; negative ones yield a real.
// A result outside the int range is ErrIntegerOverflow.
func powInt(base, exp int) (Variable, error) {
	if exp < 0 {
		return NewReal(math.Pow(float64(base), float64(exp))), nil
	}
	b, e := base, exp
	result, ok := 1, true
	for e > 0 {
		if e&1 == 1 {
			if result, ok = mulInt(result, b); !ok {
				break
			}
		}
		if e >>= 1; e == 0 {
			break
		}
		if b, ok = mulInt(b, b); !ok {
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %d ^ %d", ErrIntegerOverflow, base, exp)
	}

	return NewInteger(result), nil
}

func mulMM(b Backend, args []Variable) (Variable, error) {
	return denseResult(b.Mul(denseOf(args[0]), denseOf(args[1])))
}

// divMM evaluates B / A as the solution x of A·x = B. The left operand is B.
func divMM(b Backend, args []Variable) (Variable, error) {
	return denseResult(b.Solve(denseOf(args[1]), denseOf(args[0])))
}

// powMS raises a square matrix to an integer power. Negative exponents
// invert first.
func powMS(b Backend, args []Variable) (Variable, error) {
	exp, ok := args[1].(*Integer)
	if !ok {
		return nil, fmt.Errorf("%w: matrix exponent must be an integer, got %s", ErrTypeMismatch, args[1].Kind())
	}
	base := denseOf(args[0])
	p := exp.Value
	if p < 0 {
		inv, err := b.Inverse(base)
		if err != nil {
			return nil, translate(err)
		}
		base, p = inv, -p
	}

	return matrixResult(matrix.Power(base, p))
}

func negScalar(_ Backend, args []Variable) (Variable, error) {
	switch v := args[0].(type) {
	case *Integer:
		if v.Value == math.MinInt {
			return nil, fmt.Errorf("%w: -(%d)", ErrIntegerOverflow, v.Value)
		}
		return NewInteger(-v.Value), nil
	case *Real:
		return NewReal(-v.Value), nil
	}

	return nil, fmt.Errorf("%w: neg on %s", ErrTypeMismatch, args[0].Kind())
}
