// SPDX-License-Identifier: MIT

package equation

import (
	"strconv"
	"strings"
)

// Operand is a step input: either a registry name or a literal constant.
type Operand struct {
	Name  string   // registry name; empty for literals
	Value Variable // literal constant; nil for names
}

// Ref returns an operand referring to a registry name.
func Ref(name string) Operand { return Operand{Name: name} }

// Literal returns a constant operand.
func Literal(v Variable) Operand { return Operand{Value: v} }

// IsLiteral reports whether o carries a constant.
func (o Operand) IsLiteral() bool { return o.Value != nil }

func (o Operand) String() string {
	if o.IsLiteral() {
		return o.Value.String()
	}

	return o.Name
}

// Step is one operation: Output = Op(Inputs...).
type Step struct {
	Op     Op
	Inputs []Operand
	Output string
}

func (s Step) String() string {
	var b strings.Builder
	b.WriteString(s.Output)
	b.WriteString(" = ")
	b.WriteString(s.Op.String())
	b.WriteByte('(')
	for i, in := range s.Inputs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(in.String())
	}
	b.WriteByte(')')

	return b.String()
}

// Program is the ordered step sequence compiled from one formula.
// Target is the user name assigned by the final step.
type Program struct {
	Steps  []Step
	Target string
}

func (p *Program) String() string {
	lines := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		lines[i] = s.String()
	}

	return strings.Join(lines, "\n")
}

// Parser compiles formula text into a Program.
type Parser interface {
	Parse(src string) (*Program, error)
}

// tempName returns the i-th reserved temporary name.
func tempName(i int) string { return tempPrefix + strconv.Itoa(i) }
