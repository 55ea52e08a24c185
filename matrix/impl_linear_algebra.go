// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, matrix multiplication,
// transpose, scalar scaling and LU-based inversion. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Purpose:
//   - Declare canonical linear-algebra kernels used by the equation engine backend.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - All kernels use central validators and wrap sentinels via matrixErrorf.
//   - Results are always freshly allocated; operands are never mutated.

package matrix

import (
	"fmt"
	"math"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opInverse   = "Inverse"
	opLU        = "LU"
	opDet       = "Det"
	opSolve     = "Solve"
	opPower     = "Power"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
//   - Keep `tag` to the canonical constants to simplify log/search pipelines.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// toDense returns m itself when it is a *Dense, otherwise a Dense copy built via At.
// Kernels that only have a flat-slice implementation use it as their fallback.
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	rows, cols := m.Rows(), m.Cols()
	out, err := newDenseNoPolicy(rows, cols)
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*cols+j] = v
		}
	}

	return out, nil
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are not mutated.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate result Dense(rows, cols).
//   - Stage 2: Fast-path if both are *Dense - single flat loop 0..n-1.
//     Otherwise, fallback At/Set with fixed i→j order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (from ValidateBinarySameShape).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (Matrix, error) {
	// Validate shapes match
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Allocate result Dense
	rows, cols := a.Rows(), a.Cols()
	res, err := newDenseNoPolicy(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Fast path: *Dense with *Dense → single flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			length := rows * cols
			for idx := 0; idx < length; idx++ { // deterministic 0..n-1
				res.data[idx] = da.data[idx] + sign*db.data[idx]
			}

			return res, nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var i, j int       // loop iterators (deterministic order)
	var av, bv float64 // element temporaries
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			av, err = a.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			bv, err = b.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.data[i*cols+j] = av + sign*bv
		}
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c). The fast path is bandwidth-bound.
func Add(a, b Matrix) (Matrix, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Sub(a, b Matrix) (Matrix, error) { return addSub(a, b, -1, opSub) }

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: If A and B are *Dense, use i→k→j with row-major strides and skip zeros;
//     otherwise use i→j→k with a fixed order and zero-skip on A[i,k].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Determinism:
//   - Fixed loop orders (i→k→j for fast path, i→j→k for fallback).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c). Skipping zero A[i,k] avoids useless multiplies.
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := newDenseNoPolicy(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k         int // loop iterators
		av, bv, current float64
	)
	// Fast-path for two Dense matrices
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			// da.data layout: i*aCols + k
			// db.data layout: k*bCols + j
			var rowOffsetA, rowOffsetB, rowOffsetR int
			for i = 0; i < aRows; i++ {
				rowOffsetA = i * aCols
				rowOffsetR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowOffsetA+k]
					if av == 0 {
						continue // skip zero for performance
					}
					rowOffsetB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
					}
				}
			}

			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k)
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				av, err = a.At(i, k)
				if err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", i, k, err))
				}
				if av == 0 {
					continue
				}
				bv, err = b.At(k, j)
				if err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", k, j, err))
				}
				current += av * bv
			}
			res.data[i*bCols+j] = current
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Fast-path copies *Dense data via flat indexing; fallback uses At.
//
// Errors:
//   - ErrNilMatrix (from ValidateNotNil).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the returned matrix.
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := newDenseNoPolicy(cols, rows) // dims flipped
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int // loop iterators
	if dm, ok := m.(*Dense); ok {
		// data[i*cols + j] → res.data[j*rows + i]
		var baseSrc int
		for i = 0; i < rows; i++ {
			baseSrc = i * cols
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = dm.data[baseSrc+j]
			}
		}

		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
// The original matrix is never mutated; NaN/Inf in alpha propagate.
//
// Errors:
//   - ErrNilMatrix (from ValidateNotNil).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// Notes:
//   - alpha = 0 yields an explicit zero matrix with the same shape.
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := newDenseNoPolicy(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	if dm, ok := m.(*Dense); ok {
		n := rows * cols
		for idx := 0; idx < n; idx++ {
			res.data[idx] = dm.data[idx] * alpha
		}

		return res, nil
	}

	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opScale, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.data[i*cols+j] = v * alpha
		}
	}

	return res, nil
}

// LUFactors is the result of a partially pivoted LU factorization P·A = L·U.
//   - LU packs L (strictly lower part, unit diagonal implied) and U (upper part, diagonal included).
//   - Perm[i] is the row of A that ended up in row i of P·A.
//   - Sign is +1 or -1 depending on the parity of the row swaps.
//   - Tol is the absolute pivot tolerance derived from eps*max|A|.
type LUFactors struct {
	LU   *Dense
	Perm []int
	Sign float64
	Tol  float64
}

// LU computes the Doolittle factorization with partial pivoting: P·A = L·U.
// Implementation:
//   - Stage 1: Validate m (not nil, square); copy into a work buffer.
//   - Stage 2: For each column k pick the row with the largest |a[i,k]| (i≥k),
//     swap it into place, then eliminate below the pivot.
//
// Behavior highlights:
//   - Singular inputs are NOT an error here: a column with no usable pivot is
//     skipped, leaving a (near) zero on the U diagonal. Det then yields ~0 and
//     Inverse/Solve report ErrSingular.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Determinism:
//   - Ties in pivot magnitude resolve to the lowest row index.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func LU(m Matrix, opts ...Option) (*LUFactors, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	o := gatherOptions(opts...)

	src, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	n := src.r
	work, err := newDenseNoPolicy(n, n)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	copy(work.data, src.data)

	// Absolute tolerance relative to the largest magnitude in A.
	var maxAbs float64
	for _, v := range work.data {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	tol := o.eps * maxAbs

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sign := 1.0
	d := work.data

	var i, j, k, p int
	var pivot, factor, best, a float64
	for k = 0; k < n; k++ {
		// Select pivot row p with max |a[i,k]|.
		p, best = k, math.Abs(d[k*n+k])
		for i = k + 1; i < n; i++ {
			if a = math.Abs(d[i*n+k]); a > best {
				p, best = i, a
			}
		}
		if p != k {
			for j = 0; j < n; j++ {
				d[k*n+j], d[p*n+j] = d[p*n+j], d[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
			sign = -sign
		}
		pivot = d[k*n+k]
		if math.Abs(pivot) <= tol || pivot == 0 {
			continue // rank-deficient column; nothing to eliminate with
		}
		for i = k + 1; i < n; i++ {
			factor = d[i*n+k] / pivot
			d[i*n+k] = factor // store L below the diagonal
			if factor == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				d[i*n+j] -= factor * d[k*n+j]
			}
		}
	}

	return &LUFactors{LU: work, Perm: perm, Sign: sign, Tol: tol}, nil
}

// Det returns the product of U's diagonal times the permutation sign.
func (f *LUFactors) Det() float64 {
	n := f.LU.r
	det := f.Sign
	for i := 0; i < n; i++ {
		det *= f.LU.data[i*n+i]
	}

	return det
}

// Singular reports whether any U diagonal entry is within the pivot tolerance.
func (f *LUFactors) Singular() bool {
	n := f.LU.r
	for i := 0; i < n; i++ {
		if p := f.LU.data[i*n+i]; p == 0 || math.Abs(p) <= f.Tol {
			return true
		}
	}

	return false
}

// solveInto solves A·x = b for one right-hand side using the factors.
// b is indexed in original row order; x receives the solution. y is scratch.
func (f *LUFactors) solveInto(b, y, x []float64) {
	n := f.LU.r
	d := f.LU.data
	var i, k int
	var sum float64
	// Forward substitution: L*y = P*b (unit diagonal).
	for i = 0; i < n; i++ {
		sum = b[f.Perm[i]]
		for k = 0; k < i; k++ {
			sum -= d[i*n+k] * y[k]
		}
		y[i] = sum
	}
	// Backward substitution: U*x = y.
	for i = n - 1; i >= 0; i-- {
		sum = y[i]
		for k = i + 1; k < n; k++ {
			sum -= d[i*n+k] * x[k]
		}
		x[i] = sum / d[i*n+i]
	}
}

// Inverse returns A⁻¹ via partially pivoted LU.
// Implementation:
//   - Stage 1: Validate square non-nil; factorize.
//   - Stage 2: Reject singular factors; solve A·x = e_col for every column.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - If you only need A⁻¹·B, call Solve instead of forming A⁻¹.
func Inverse(m Matrix, opts ...Option) (Matrix, error) {
	f, err := LU(m, opts...)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if f.Singular() {
		return nil, matrixErrorf(opInverse, ErrSingular)
	}

	n := f.LU.r
	inv, err := newDenseNoPolicy(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	e := make([]float64, n)
	y := make([]float64, n)
	x := make([]float64, n)
	var col, i int
	for col = 0; col < n; col++ {
		for i = range e {
			e[i] = 0
		}
		e[col] = 1
		f.solveInto(e, y, x)
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

// Det returns the determinant of a square matrix via pivoted LU.
// Singular matrices yield 0 (or a value within rounding of 0), not an error.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
func Det(m Matrix) (float64, error) {
	f, err := LU(m, WithEpsilon(0))
	if err != nil {
		return 0, matrixErrorf(opDet, err)
	}

	return f.Det(), nil
}

// Solve returns X with A·X = B for square, non-singular A.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch (A.Rows != B.Rows), ErrSingular.
//
// Complexity:
//   - Time O(n^3 + n^2*k), Space O(n*k).
func Solve(a, b Matrix, opts ...Option) (Matrix, error) {
	if err := ValidateSameRows(a, b); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	f, err := LU(a, opts...)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if f.Singular() {
		return nil, matrixErrorf(opSolve, ErrSingular)
	}
	bd, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	n, k := a.Rows(), b.Cols()
	res, err := newDenseNoPolicy(n, k)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	col := make([]float64, n)
	y := make([]float64, n)
	x := make([]float64, n)
	var i, j int
	for j = 0; j < k; j++ {
		for i = 0; i < n; i++ {
			col[i] = bd.data[i*k+j]
		}
		f.solveInto(col, y, x)
		for i = 0; i < n; i++ {
			res.data[i*k+j] = x[i]
		}
	}

	return res, nil
}

// Power returns A^p for a square A and p >= 0 by binary exponentiation.
// A^0 is the identity.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrOutOfRange (p < 0).
//
// Complexity:
//   - O(n^3 log p).
func Power(m Matrix, p int) (Matrix, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opPower, err)
	}
	if p < 0 {
		return nil, matrixErrorf(opPower, ErrOutOfRange)
	}
	result, err := NewIdentity(m.Rows())
	if err != nil {
		return nil, matrixErrorf(opPower, err)
	}
	var acc Matrix = result
	base := m.Clone()
	for p > 0 {
		if p&1 == 1 {
			if acc, err = Mul(acc, base); err != nil {
				return nil, matrixErrorf(opPower, err)
			}
		}
		p >>= 1
		if p > 0 {
			if base, err = Mul(base, base); err != nil {
				return nil, matrixErrorf(opPower, err)
			}
		}
	}

	return acc, nil
}
