// SPDX-License-Identifier: MIT

package equation

import (
	"fmt"
	"strconv"
	"text/scanner"
)

// DefaultParser compiles formulas of the form
//
//	assignment := IDENT '=' expr
//	expr       := term (('+' | '-') term)*
//	term       := unary (('*' | '/') unary)*
//	unary      := '-' unary | power
//	power      := primary ('^' unary)?
//	primary    := NUMBER | IDENT | IDENT '(' args ')' | '(' expr ')'
//
// Intermediate results are written to reserved temporaries ($t0, $t1, ...).
// Integer literals become integer constants, others become reals.
type DefaultParser struct{}

var _ Parser = DefaultParser{}

// Parse implements Parser.
func (DefaultParser) Parse(src string) (*Program, error) { return Parse(src) }

type parser struct {
	lex   *lexer
	steps []Step
	temps int
}

// Parse compiles one assignment.
//
// Errors:
//   - ErrSyntax with the byte offset of the offending token.
//   - ErrUnsupportedOperation for calls to unknown functions.
func Parse(src string) (prog *Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(syntaxError)
			if !ok {
				panic(r)
			}
			prog, err = nil, se.err()
		}
	}()
	p := &parser{lex: newLexer(src)}

	return p.assignment(), nil
}

func (p *parser) fail(kind error, format string, args ...any) {
	panic(syntaxError{kind: kind, offset: p.lex.pos, msg: fmt.Sprintf(format, args...)})
}

func (p *parser) expect(tok rune) {
	if p.lex.tok != tok {
		p.fail(ErrSyntax, "expected %s, found %s", scanner.TokenString(tok), p.lex.describe())
	}
	p.lex.next()
}

// emit appends a step writing to a fresh temporary and returns a reference to it.
func (p *parser) emit(op Op, inputs ...Operand) Operand {
	out := tempName(p.temps)
	p.temps++
	p.steps = append(p.steps, Step{Op: op, Inputs: inputs, Output: out})

	return Ref(out)
}

func (p *parser) assignment() *Program {
	if p.lex.tok != scanner.Ident {
		p.fail(ErrSyntax, "expected assignment target, found %s", p.lex.describe())
	}
	target := p.lex.text
	p.lex.next()
	p.expect('=')
	res := p.expr()
	if p.lex.tok != scanner.EOF {
		p.fail(ErrSyntax, "unexpected %s after expression", p.lex.describe())
	}

	// The last step produced res; redirect it to the target.
	// A bare name or literal compiles to copy.
	if n := len(p.steps); n > 0 && !res.IsLiteral() && res.Name == p.steps[n-1].Output {
		p.steps[n-1].Output = target
	} else {
		p.steps = append(p.steps, Step{Op: OpCopy, Inputs: []Operand{res}, Output: target})
	}

	return &Program{Steps: p.steps, Target: target}
}

func (p *parser) expr() Operand {
	left := p.term()
	for p.lex.tok == '+' || p.lex.tok == '-' {
		op := OpAdd
		if p.lex.tok == '-' {
			op = OpSub
		}
		p.lex.next()
		left = p.emit(op, left, p.term())
	}

	return left
}

func (p *parser) term() Operand {
	left := p.unary()
	for p.lex.tok == '*' || p.lex.tok == '/' {
		op := OpMul
		if p.lex.tok == '/' {
			op = OpDiv
		}
		p.lex.next()
		left = p.emit(op, left, p.unary())
	}

	return left
}

func (p *parser) unary() Operand {
	if p.lex.tok != '-' {
		return p.power()
	}
	p.lex.next()
	x := p.unary()
	// fold negative literals
	switch v := x.Value.(type) {
	case *Integer:
		return Literal(NewInteger(-v.Value))
	case *Real:
		return Literal(NewReal(-v.Value))
	}

	return p.emit(OpNeg, x)
}

func (p *parser) power() Operand {
	base := p.primary()
	if p.lex.tok != '^' {
		return base
	}
	p.lex.next()

	return p.emit(OpPow, base, p.unary())
}

func (p *parser) primary() Operand {
	switch p.lex.tok {
	case scanner.Int:
		v, err := strconv.ParseInt(p.lex.text, 0, strconv.IntSize)
		if err != nil {
			p.fail(ErrSyntax, "integer literal %s out of range", p.lex.text)
		}
		p.lex.next()

		return Literal(NewInteger(int(v)))
	case scanner.Float:
		v, err := strconv.ParseFloat(p.lex.text, 64)
		if err != nil {
			p.fail(ErrSyntax, "malformed number %s", p.lex.text)
		}
		p.lex.next()

		return Literal(NewReal(v))
	case scanner.Ident:
		name := p.lex.text
		p.lex.next()
		if p.lex.tok == '(' {
			return p.call(name)
		}

		return Ref(name)
	case '(':
		p.lex.next()
		x := p.expr()
		p.expect(')')

		return x
	}
	p.fail(ErrSyntax, "unexpected %s", p.lex.describe())

	return Operand{} // unreachable
}

func (p *parser) call(name string) Operand {
	op, ok := LookupFunc(name)
	if !ok {
		p.fail(ErrUnsupportedOperation, "unknown function %q", name)
	}
	p.lex.next() // '('
	var args []Operand
	if p.lex.tok != ')' {
		for {
			args = append(args, p.expr())
			if p.lex.tok != ',' {
				break
			}
			p.lex.next()
		}
	}
	p.expect(')')

	return p.emit(op, args...)
}
