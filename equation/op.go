// SPDX-License-Identifier: MIT

package equation

import "strconv"

// Op identifies an operator or a built-in function.
type Op uint8

const (
	OpInvalid Op = iota

	// operators
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpNeg

	// functions
	OpZeros
	OpOnes
	OpEye
	OpDiag
	OpDot
	OpSolve
	OpTranspose
	OpInv
	OpPinv
	OpDet
	OpTrace
	OpNormF
	OpCopy

	opCount
)

const firstFunc = OpZeros

var opNames = [opCount]string{
	OpInvalid:   "invalid",
	OpAdd:       "+",
	OpSub:       "-",
	OpMul:       "*",
	OpDiv:       "/",
	OpPow:       "^",
	OpNeg:       "neg",
	OpZeros:     "zeros",
	OpOnes:      "ones",
	OpEye:       "eye",
	OpDiag:      "diag",
	OpDot:       "dot",
	OpSolve:     "solve",
	OpTranspose: "transpose",
	OpInv:       "inv",
	OpPinv:      "pinv",
	OpDet:       "det",
	OpTrace:     "trace",
	OpNormF:     "normF",
	OpCopy:      "copy",
}

var funcsByName = func() map[string]Op {
	m := make(map[string]Op, opCount-firstFunc)
	for op := firstFunc; op < opCount; op++ {
		m[opNames[op]] = op
	}

	return m
}()

// String returns the operator symbol or function name.
func (o Op) String() string {
	if o < opCount {
		return opNames[o]
	}

	return "Op(" + strconv.Itoa(int(o)) + ")"
}

// IsFunc reports whether o is a named function rather than an operator.
func (o Op) IsFunc() bool { return o >= firstFunc && o < opCount }

// LookupFunc maps a function name (case-sensitive) to its Op.
func LookupFunc(name string) (Op, bool) {
	op, ok := funcsByName[name]

	return op, ok
}
