// SPDX-License-Identifier: MIT

package equation

import "github.com/katalvlaran/lvleq/matrix"

// Backend supplies the dense linear-algebra kernels the operation table calls.
// Implementations must not mutate their operands and must return fresh results.
// linalg.Kernels is the default.
type Backend interface {
	Mul(a, b *matrix.Dense) (*matrix.Dense, error)
	Transpose(a *matrix.Dense) (*matrix.Dense, error)
	// Solve returns x with a·x = b, least-squares when a is not square.
	Solve(a, b *matrix.Dense) (*matrix.Dense, error)
	Inverse(a *matrix.Dense) (*matrix.Dense, error)
	PseudoInverse(a *matrix.Dense) (*matrix.Dense, error)
	Det(a *matrix.Dense) (float64, error)
	Trace(a *matrix.Dense) (float64, error)
	NormF(a *matrix.Dense) (float64, error)
}
