// Package lvleq is an embeddable equation engine: bind integers, reals and
// matrices to names, then evaluate assignment formulas over them.
//
// 🚀 What is lvleq?
//
//	A small, strictly-typed engine that brings together:
//		• Operand classification: integer and real share the scalar class
//		• One dispatch table keyed by (operator, operand classes)
//		• Arithmetic: + - * / ^ and unary minus, scalar and matrix forms
//		• Functions: zeros ones eye diag dot solve transpose inv pinv det trace normF copy
//		• A parser that lowers "x = inv(A) * b" to single-operation steps
//		• Typed errors: unknown name, type/shape mismatch, singular matrix, unsupported operation
//
// Under the hood, everything is organized under three packages:
//
//	equation/  variables, registry, operation table, parser and the execution driver
//	linalg/    the default numeric backend (pivoted LU, gonum-backed solve and pinv)
//	matrix/    dense row-major storage, validators and elementwise/LU kernels
//
// The lveq command (cmd/lveq) evaluates formulas from the shell against a
// YAML workspace:
//
//	lveq eval -w workspace.yaml "x = solve(A, b)"
//
// Quick example:
//
//	eq := equation.New()
//	_ = eq.AliasMatrix(2, 2, []float64{4, 1, 2, 3}, "A")
//	_ = eq.AliasMatrix(2, 1, []float64{1, 2}, "b")
//	_ = eq.Process("x = solve(A, b)")
//	x, _ := eq.LookupMatrix("x") // [0.1] [0.6]
//
//	go get github.com/katalvlaran/lvleq
package lvleq
