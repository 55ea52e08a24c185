// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication; each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock fast-paths in kernels (flat-slice loops).
//   - Use NewIdentity/NewZeros/NewOnes to build matrices with explicit shape and neutral elements.

package matrix

// ---------- Constructors & Utilities (O(1) alloc + O(rc) zeroing by runtime) ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
//
// Note: Returns (*Dense, error) to surface ErrInvalidDimensions.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewOnes returns a rows×cols *Dense filled with 1.
// Complexity: O(r*c).
func NewOnes(rows, cols int) (*Dense, error) {
	return Fill(rows, cols, 1)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Determinism: fixed i-loop; single write per diagonal cell.
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// NewEye returns the rows×cols matrix with ones on the main diagonal.
// Non-square shapes place min(rows, cols) ones.
func NewEye(rows, cols int) (*Dense, error) {
	I, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	n := rows
	if cols < n {
		n = cols
	}
	for i := 0; i < n; i++ {
		I.data[i*cols+i] = 1.0
	}

	return I, nil
}

// AsDense returns m as a *Dense, copying only when m has another concrete type.
func AsDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}

	return toDense(m)
}

// AllClose reports whether a and b agree element-wise within |a-b| ≤ atol + rtol*|b|.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (non-finite tolerances).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}
