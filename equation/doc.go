// SPDX-License-Identifier: MIT

// Package equation evaluates textual formulas over integer scalars, real
// scalars and dense matrices.
//
// A caller binds names to values, submits a formula, and reads results back:
//
//	eq := equation.New()
//	_ = eq.AliasMatrix(2, 2, []float64{2, 1, 1, 3}, "A")
//	_ = eq.AliasMatrix(2, 1, []float64{3, 5}, "b")
//	if err := eq.Process("x = b / A"); err != nil { ... } // solves A·x = b
//	x, _ := eq.LookupMatrix("x")
//
// Each formula compiles into a Program of Steps. The driver runs the steps in
// order. For each step it looks up the operands, classifies them into a
// TypePair, resolves an Impl from the Table, runs it against the injected
// Backend, and binds the result. Integer results are produced only when every
// scalar operand is an integer.
//
// Failures wrap one of the package sentinels (ErrUnknownName, ErrTypeMismatch,
// ErrShapeMismatch, ErrSingularMatrix, ErrUnsupportedOperation, ...). Bindings
// written before a failing step are kept.
//
// Matrix destinations: when the output name already holds a matrix and the
// step yields a matrix, the result is copied into the existing storage, so a
// *matrix.Dense passed to Alias observes it. Scalars are always rebound.
package equation
