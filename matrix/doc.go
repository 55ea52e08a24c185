// SPDX-License-Identifier: MIT

// Package matrix provides a dense, row-major float64 matrix and the numeric
// kernels the equation engine evaluates against.
//
// The matrix package provides:
//
//   - Dense, a contiguous row-major buffer with error-returning At/Set and
//     in-place reassignment (CopyFrom) for destinations shared by reference.
//   - Arithmetic kernels (Add, Sub, Mul, Scale, scalar broadcasts, Power).
//   - Partially pivoted LU with Det, Inverse and square Solve.
//   - Reductions and builders (Trace, NormF, Dot, Diag, DiagOf, NewOnes, NewEye).
//
// Every kernel validates its operands up front and returns sentinel errors
// wrapped with an operation tag, so callers match with errors.Is:
//
//	_, err := matrix.Inverse(a)
//	if errors.Is(err, matrix.ErrSingular) { ... }
//
// Kernels never mutate their operands and always return freshly allocated results.
package matrix
