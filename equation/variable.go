// SPDX-License-Identifier: MIT

package equation

import (
	"strconv"

	"github.com/katalvlaran/lvleq/matrix"
)

// Kind tags the variant held by a Variable. A variable's kind never changes.
type Kind uint8

const (
	KindInteger Kind = iota
	KindReal
	KindMatrix
)

var kindNames = [...]string{
	KindInteger: "integer",
	KindReal:    "real",
	KindMatrix:  "matrix",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsScalar reports whether k is integer or real.
func (k Kind) IsScalar() bool { return k == KindInteger || k == KindReal }

// Variable is a value bound to a name: *Integer, *Real or *Matrix.
type Variable interface {
	Kind() Kind
	// Copy returns a deep copy sharing no storage with the receiver.
	Copy() Variable
	String() string
}

// Integer is an integer scalar.
type Integer struct{ Value int }

// Real is a real scalar.
type Real struct{ Value float64 }

// Matrix holds a dense matrix. M is shared with whoever aliased it, so
// results assigned into an existing Matrix destination are visible through
// the caller's *matrix.Dense handle.
type Matrix struct{ M *matrix.Dense }

var (
	_ Variable = (*Integer)(nil)
	_ Variable = (*Real)(nil)
	_ Variable = (*Matrix)(nil)
)

// NewInteger returns an integer variable holding v.
func NewInteger(v int) *Integer { return &Integer{Value: v} }

// NewReal returns a real variable holding v.
func NewReal(v float64) *Real { return &Real{Value: v} }

// NewMatrix wraps m without copying it.
func NewMatrix(m *matrix.Dense) *Matrix { return &Matrix{M: m} }

// Kind reports KindInteger.
func (*Integer) Kind() Kind { return KindInteger }

// Kind reports KindReal.
func (*Real) Kind() Kind { return KindReal }

// Kind reports KindMatrix.
func (*Matrix) Kind() Kind { return KindMatrix }

// Copy returns a new Integer with the same value.
func (v *Integer) Copy() Variable { return &Integer{Value: v.Value} }

// Copy returns a new Real with the same value.
func (v *Real) Copy() Variable { return &Real{Value: v.Value} }

// Copy clones the underlying storage.
func (v *Matrix) Copy() Variable {
	return &Matrix{M: v.M.Clone().(*matrix.Dense)}
}

// String formats the value in base 10.
func (v *Integer) String() string { return strconv.Itoa(v.Value) }

// String formats the value in the shortest form that round-trips.
func (v *Real) String() string { return strconv.FormatFloat(v.Value, 'g', -1, 64) }

// String formats the matrix row by row.
func (v *Matrix) String() string { return v.M.String() }

// Assign overwrites the receiver's storage with src, reshaping when needed.
// Every holder of v.M observes the new contents.
func (v *Matrix) Assign(src *matrix.Dense) error {
	return v.M.CopyFrom(src)
}

// scalarOf returns the numeric value of an integer or real variable.
func scalarOf(v Variable) (float64, bool) {
	switch s := v.(type) {
	case *Integer:
		return float64(s.Value), true
	case *Real:
		return s.Value, true
	}

	return 0, false
}
