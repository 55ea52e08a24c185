// SPDX-License-Identifier: MIT

package equation

import "strings"

// Class is the dispatch class of an operand. Integer and real share ClassScalar.
type Class uint8

const (
	ClassNone Class = iota
	ClassScalar
	ClassMatrix
)

func (c Class) String() string {
	switch c {
	case ClassScalar:
		return "scalar"
	case ClassMatrix:
		return "matrix"
	}

	return "none"
}

// TypePair is the dispatch key derived from an operation's operands.
// Unary operations leave Right as ClassNone.
type TypePair struct {
	Left, Right Class
	Arity       int
}

// Frequently used pairs.
var (
	pairNone = TypePair{}
	pairS    = TypePair{Left: ClassScalar, Arity: 1}
	pairM    = TypePair{Left: ClassMatrix, Arity: 1}
	pairSS   = TypePair{Left: ClassScalar, Right: ClassScalar, Arity: 2}
	pairSM   = TypePair{Left: ClassScalar, Right: ClassMatrix, Arity: 2}
	pairMS   = TypePair{Left: ClassMatrix, Right: ClassScalar, Arity: 2}
	pairMM   = TypePair{Left: ClassMatrix, Right: ClassMatrix, Arity: 2}
)

func (p TypePair) String() string {
	switch p.Arity {
	case 0:
		return "()"
	case 1:
		return "(" + p.Left.String() + ")"
	case 2:
		return "(" + p.Left.String() + ", " + p.Right.String() + ")"
	}

	return "(" + strings.Repeat("?, ", p.Arity-1) + "?)"
}

func classOf(v Variable) Class {
	if v.Kind() == KindMatrix {
		return ClassMatrix
	}

	return ClassScalar
}

// Classify returns the unary pair of a.
func Classify(a Variable) TypePair {
	return TypePair{Left: classOf(a), Arity: 1}
}

// ClassifyPair returns the binary pair of (a, b).
func ClassifyPair(a, b Variable) TypePair {
	return TypePair{Left: classOf(a), Right: classOf(b), Arity: 2}
}

// ClassifyArgs classifies an argument list of any length. Lists longer than
// two only carry their arity, which no table entry matches.
func ClassifyArgs(args []Variable) TypePair {
	switch len(args) {
	case 0:
		return pairNone
	case 1:
		return Classify(args[0])
	case 2:
		return ClassifyPair(args[0], args[1])
	}

	return TypePair{Arity: len(args)}
}

// promote returns KindInteger when every scalar among args is an integer,
// KindReal otherwise. Matrices are ignored.
func promote(args ...Variable) Kind {
	for _, a := range args {
		if a.Kind() == KindReal {
			return KindReal
		}
	}

	return KindInteger
}

// kindsOf renders the observed kinds, e.g. "(matrix, real)".
func kindsOf(args []Variable) string {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.Kind().String()
	}

	return "(" + strings.Join(names, ", ") + ")"
}
