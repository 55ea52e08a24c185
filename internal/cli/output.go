// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvleq/equation"
	"github.com/katalvlaran/lvleq/matrix"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormats lists the accepted --format values.
var ValidFormats = []string{FormatText, FormatJSON}

// Formatter renders registry variables.
type Formatter struct {
	Format    string
	Precision int // significant digits for reals; -1 is shortest exact
	Writer    io.Writer
}

// WriteVars prints the named variables of eq. Text output puts one scalar per
// line and indents matrix rows under "name =".
func (f *Formatter) WriteVars(eq *equation.Equation, names []string) error {
	if f.Format == FormatJSON {
		return f.writeJSON(eq, names)
	}

	var b strings.Builder
	for _, name := range names {
		v, err := eq.LookupVariable(name)
		if err != nil {
			return err
		}
		switch x := v.(type) {
		case *equation.Matrix:
			fmt.Fprintf(&b, "%s =\n", name)
			for _, row := range rowsOf(x.M) {
				b.WriteString("  [")
				for j, e := range row {
					if j > 0 {
						b.WriteString(", ")
					}
					b.WriteString(f.real(e))
				}
				b.WriteString("]\n")
			}
		case *equation.Real:
			fmt.Fprintf(&b, "%s = %s\n", name, f.real(x.Value))
		default:
			fmt.Fprintf(&b, "%s = %s\n", name, v)
		}
	}
	_, err := io.WriteString(f.Writer, b.String())

	return err
}

func (f *Formatter) writeJSON(eq *equation.Equation, names []string) error {
	out := make(map[string]any, len(names))
	for _, name := range names {
		v, err := eq.LookupVariable(name)
		if err != nil {
			return err
		}
		switch x := v.(type) {
		case *equation.Integer:
			out[name] = x.Value
		case *equation.Real:
			out[name] = f.jsonReal(x.Value)
		case *equation.Matrix:
			rows := rowsOf(x.M)
			enc := make([][]any, len(rows))
			for i, row := range rows {
				enc[i] = make([]any, len(row))
				for j, e := range row {
					enc[i][j] = f.jsonReal(e)
				}
			}
			out[name] = enc
		}
	}

	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func (f *Formatter) real(v float64) string {
	return strconv.FormatFloat(v, 'g', f.Precision, 64)
}

// jsonReal keeps finite values numeric; JSON has no NaN or Inf.
func (f *Formatter) jsonReal(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return f.real(v)
	}
	if f.Precision < 0 {
		return v
	}
	r, _ := strconv.ParseFloat(f.real(v), 64)

	return r
}

func rowsOf(m *matrix.Dense) [][]float64 {
	r, c := m.Shape()
	data := m.Data()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = data[i*c : (i+1)*c]
	}

	return rows
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}

	return false
}
