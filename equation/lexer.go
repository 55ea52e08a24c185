// SPDX-License-Identifier: MIT

package equation

import (
	"fmt"
	"strings"
	"text/scanner"
)

// syntaxError carries a parse failure up to Parse via panic.
type syntaxError struct {
	kind   error // ErrSyntax or ErrUnsupportedOperation
	offset int
	msg    string
}

func (e syntaxError) err() error {
	return fmt.Errorf("%w at offset %d: %s", e.kind, e.offset, e.msg)
}

// lexer wraps text/scanner and keeps one token of lookahead.
type lexer struct {
	scanner.Scanner
	tok  rune
	text string
	pos  int
}

func newLexer(src string) *lexer {
	l := &lexer{}
	l.Init(strings.NewReader(src))
	l.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	l.Error = func(s *scanner.Scanner, msg string) {
		panic(syntaxError{kind: ErrSyntax, offset: s.Pos().Offset, msg: msg})
	}
	l.next()

	return l
}

func (l *lexer) next() {
	l.tok = l.Scan()
	l.text = l.TokenText()
	l.pos = l.Position.Offset
}

// describe renders the current token for error messages.
func (l *lexer) describe() string {
	if l.tok == scanner.EOF {
		return "end of input"
	}

	return fmt.Sprintf("%q", l.text)
}
