// SPDX-License-Identifier: MIT

// Package linalg is the default linear-algebra backend of the equation engine.
//
// Kernels satisfies equation.Backend. Products, transposes, traces, norms,
// determinants and inverses run on the pure-Go kernels of package matrix
// (pivoted LU for the last two). Least-squares solves and Moore–Penrose
// pseudo-inverses go through gonum/mat (LU/QR/LQ and thin SVD).
//
// All results are freshly allocated *matrix.Dense values; operands are never
// mutated. Gonum's singular or ill-conditioned reports surface as
// matrix.ErrSingular so callers match one sentinel regardless of the path.
package linalg
