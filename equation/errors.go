// SPDX-License-Identifier: MIT
// Package equation: sentinel error set.
// All engine failures wrap one of these sentinels; callers match with errors.Is.
// Matrix kernel sentinels stay in the chain next to the engine sentinel they
// translate to, so errors.Is(err, matrix.ErrSingular) keeps working too.

package equation

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvleq/matrix"
)

var (
	// ErrUnknownName is returned when a name is not bound in the registry.
	ErrUnknownName = errors.New("equation: unknown name")

	// ErrTypeMismatch is returned when a typed accessor meets another kind,
	// or when an operand has the right class but the wrong numeric kind
	// (e.g. zeros(2.5, 3)).
	ErrTypeMismatch = errors.New("equation: type mismatch")

	// ErrShapeMismatch is returned for incompatible matrix dimensions.
	ErrShapeMismatch = errors.New("equation: shape mismatch")

	// ErrSingularMatrix is returned by inv, solve and / on a singular system.
	ErrSingularMatrix = errors.New("equation: singular matrix")

	// ErrUnsupportedOperation is returned when no implementation exists for
	// an operator or function and the observed operand kinds.
	ErrUnsupportedOperation = errors.New("equation: unsupported operation")

	// ErrSyntax is returned by the parser for malformed formulas.
	ErrSyntax = errors.New("equation: syntax error")

	// ErrInvalidName is returned when aliasing a name that is not an identifier.
	ErrInvalidName = errors.New("equation: invalid name")

	// ErrDivideByZero is returned by integer division by zero.
	ErrDivideByZero = errors.New("equation: integer division by zero")

	// ErrIntegerOverflow is returned when integer arithmetic leaves the int
	// range. Integers never wrap around.
	ErrIntegerOverflow = errors.New("equation: integer overflow")
)

// equationErrorf wraps err with a tag, preserving the cause via %w.
func equationErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// translate maps matrix kernel sentinels onto engine sentinels.
// Both remain matchable: the result wraps the engine sentinel and err.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, matrix.ErrSingular):
		return fmt.Errorf("%w: %w", ErrSingularMatrix, err)
	case errors.Is(err, matrix.ErrDimensionMismatch),
		errors.Is(err, matrix.ErrNonSquare),
		errors.Is(err, matrix.ErrNotVector),
		errors.Is(err, matrix.ErrBadShape),
		errors.Is(err, matrix.ErrInvalidDimensions):
		return fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}

	return err
}
