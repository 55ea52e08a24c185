// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a small *private* element-wise kernel (ewMap) plus the public
//     scalar broadcasts built on it (AddScalar, SubScalar, DivScalar, Negate).
//   - Provide reductions and shape builders (Trace, NormF, Dot, Diag, DiagOf, Fill).
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - Dense fast-path operates on a single flat buffer (row-major).
//   - No hidden allocations beyond the output Dense; O(r*c) time and space.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock the flat-slice fast path.
//   - Results of scalar broadcasts may legitimately carry ±Inf/NaN (DivScalar by 0).

package matrix

import (
	"math"
)

const (
	opAddScalar = "AddScalar"
	opSubScalar = "SubScalar"
	opDivScalar = "DivScalar"
	opNegate    = "Negate"
	opTrace     = "Trace"
	opNormF     = "NormF"
	opDot       = "Dot"
	opDiag      = "Diag"
	opDiagOf    = "DiagOf"
	opFill      = "Fill"
	opAllClose  = "AllClose"
)

// ewMap computes out[i,j] = f(X[i,j]) into a fresh Dense.
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
func ewMap(X Matrix, f func(v float64) float64, tag string) (Matrix, error) {
	// Validate matrix presence using centralized validator.
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	// Read shape once (O(1)).
	r, c := X.Rows(), X.Cols()
	out, err := newDenseNoPolicy(r, c)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}

	// Dense fast-path: single pass over the flat row-major buffer.
	if d, ok := X.(*Dense); ok {
		n := r * c
		for idx := 0; idx < n; idx++ {
			out.data[idx] = f(d.data[idx])
		}

		return out, nil
	}

	// Generic fallback via At (still deterministic).
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf(tag, e)
			}
			out.data[i*c+j] = f(v)
		}
	}

	return out, nil
}

// AddScalar returns out[i,j] = X[i,j] + s.
func AddScalar(X Matrix, s float64) (Matrix, error) {
	return ewMap(X, func(v float64) float64 { return v + s }, opAddScalar)
}

// SubScalar returns out[i,j] = X[i,j] - s.
func SubScalar(X Matrix, s float64) (Matrix, error) {
	return ewMap(X, func(v float64) float64 { return v - s }, opSubScalar)
}

// DivScalar returns out[i,j] = X[i,j] / s following IEEE-754 (s = 0 yields ±Inf/NaN).
func DivScalar(X Matrix, s float64) (Matrix, error) {
	return ewMap(X, func(v float64) float64 { return v / s }, opDivScalar)
}

// Negate returns out[i,j] = -X[i,j].
func Negate(X Matrix) (Matrix, error) {
	return ewMap(X, func(v float64) float64 { return -v }, opNegate)
}

// Fill returns a rows×cols Dense with every entry equal to v.
// Errors: ErrInvalidDimensions for non-positive shape.
func Fill(rows, cols int, v float64) (*Dense, error) {
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opFill, err)
	}
	if v != 0 {
		for idx := range out.data {
			out.data[idx] = v
		}
	}

	return out, nil
}

// Trace returns Σ m[i,i] for a square matrix.
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(n).
func Trace(m Matrix) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	n := m.Rows()
	sum := ZeroSum
	if d, ok := m.(*Dense); ok {
		for i := 0; i < n; i++ {
			sum += d.data[i*n+i]
		}

		return sum, nil
	}
	for i := 0; i < n; i++ {
		v, err := m.At(i, i)
		if err != nil {
			return 0, matrixErrorf(opTrace, err)
		}
		sum += v
	}

	return sum, nil
}

// NormF returns the Frobenius norm sqrt(Σ m[i,j]^2).
// Accumulation uses a running scale (LAPACK dnrm2 style) so large entries do not overflow.
//
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func NormF(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opNormF, err)
	}
	d, err := toDense(m)
	if err != nil {
		return 0, matrixErrorf(opNormF, err)
	}
	scale, ssq := NormZero, 1.0
	var a, ratio float64
	for _, v := range d.data {
		if v == 0 {
			continue
		}
		if math.IsNaN(v) {
			return math.NaN(), nil
		}
		a = math.Abs(v)
		if scale < a {
			ratio = scale / a
			ssq = 1 + ssq*ratio*ratio
			scale = a
		} else {
			ratio = a / scale
			ssq += ratio * ratio
		}
	}
	if math.IsInf(scale, 0) {
		return math.Inf(1), nil
	}

	return scale * math.Sqrt(ssq), nil
}

// Dot returns Σ a_k*b_k for two vectors of equal length.
// Row and column orientation are interchangeable.
//
// Errors: ErrNilMatrix, ErrNotVector, ErrDimensionMismatch.
// Complexity: O(n).
func Dot(a, b Matrix) (float64, error) {
	if err := ValidateSameLengthVectors(a, b); err != nil {
		return 0, matrixErrorf(opDot, err)
	}
	da, err := toDense(a)
	if err != nil {
		return 0, matrixErrorf(opDot, err)
	}
	db, err := toDense(b)
	if err != nil {
		return 0, matrixErrorf(opDot, err)
	}
	sum := ZeroSum
	for k := range da.data {
		sum += da.data[k] * db.data[k]
	}

	return sum, nil
}

// Diag builds the n×n diagonal matrix whose diagonal is the vector v (1×n or n×1).
//
// Errors: ErrNilMatrix, ErrNotVector.
// Complexity: O(n^2) zeroing + O(n) writes.
func Diag(v Matrix) (Matrix, error) {
	if err := ValidateNotNil(v); err != nil {
		return nil, matrixErrorf(opDiag, err)
	}
	if err := ValidateVector(v); err != nil {
		return nil, matrixErrorf(opDiag, err)
	}
	dv, err := toDense(v)
	if err != nil {
		return nil, matrixErrorf(opDiag, err)
	}
	n := len(dv.data)
	out, err := newDenseNoPolicy(n, n)
	if err != nil {
		return nil, matrixErrorf(opDiag, err)
	}
	for i := 0; i < n; i++ {
		out.data[i*n+i] = dv.data[i]
	}

	return out, nil
}

// DiagOf extracts the main diagonal of m as a column vector of length min(r, c).
//
// Errors: ErrNilMatrix.
// Complexity: O(min(r,c)).
func DiagOf(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opDiagOf, err)
	}
	r, c := m.Rows(), m.Cols()
	n := r
	if c < n {
		n = c
	}
	out, err := newDenseNoPolicy(n, 1)
	if err != nil {
		return nil, matrixErrorf(opDiagOf, err)
	}
	for i := 0; i < n; i++ {
		v, e := m.At(i, i)
		if e != nil {
			return nil, matrixErrorf(opDiagOf, e)
		}
		out.data[i] = v
	}

	return out, nil
}

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(1). Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if isNonFinite(rtol) || isNonFinite(atol) {
		return false, matrixErrorf(opAllClose, ErrNaNInf) // invalid tolerance
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	// Validate presence and shape equality using central validators.
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	r, c := a.Rows(), a.Cols()
	var av, bv float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			// Check |a-b| ≤ atol + rtol*|b|.
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil // early-exit on first violation
			}
		}
	}

	return true, nil
}
