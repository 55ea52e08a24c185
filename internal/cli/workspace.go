// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvleq/equation"
	"github.com/katalvlaran/lvleq/matrix"
)

// ErrWorkspace reports a malformed workspace document.
var ErrWorkspace = errors.New("invalid workspace")

// Workspace is the YAML document accepted by eval --workspace:
//
//	vars:
//	  n: 3          # integer
//	  x: 0.5        # real
//	  A: [[4, 1], [2, 3]]
//	  v: [1, 2]     # 1×2 row vector
//	formulas:
//	  - y = v * A   # evaluated in order
type Workspace struct {
	Vars     yaml.Node `yaml:"vars"`
	Formulas []string  `yaml:"formulas"`
}

// LoadWorkspace reads and decodes a workspace file.
func LoadWorkspace(path string) (*Workspace, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseWorkspace(raw)
}

// ParseWorkspace decodes a workspace document.
func ParseWorkspace(raw []byte) (*Workspace, error) {
	var ws Workspace
	if err := yaml.Unmarshal(raw, &ws); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWorkspace, err)
	}
	isNull := ws.Vars.Kind == 0 || ws.Vars.ShortTag() == "!!null"
	if !isNull && ws.Vars.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: vars must be a mapping", ErrWorkspace, ws.Vars.Line)
	}

	return &ws, nil
}

// Bind aliases every workspace variable into eq, in document order.
// opts apply to matrices built from the document.
func (ws *Workspace) Bind(eq *equation.Equation, opts ...matrix.Option) error {
	content := ws.Vars.Content
	for i := 0; i+1 < len(content); i += 2 {
		name := content[i].Value
		v, err := decodeValue(content[i+1], opts)
		if err != nil {
			return fmt.Errorf("%w: %q (line %d): %w", ErrWorkspace, name, content[i+1].Line, err)
		}
		if err = eq.Alias(v, name); err != nil {
			return err
		}
	}

	return nil
}

func decodeValue(n *yaml.Node, opts []matrix.Option) (equation.Variable, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.SequenceNode:
		return decodeMatrix(n, opts)
	case yaml.AliasNode:
		return decodeValue(n.Alias, opts)
	}

	return nil, fmt.Errorf("expected a number or a sequence")
}

func decodeScalar(n *yaml.Node) (equation.Variable, error) {
	switch n.ShortTag() {
	case "!!int":
		var i int
		if err := n.Decode(&i); err != nil {
			return nil, err
		}
		return equation.NewInteger(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return equation.NewReal(f), nil
	}

	return nil, fmt.Errorf("expected a number, got %s %q", n.ShortTag(), n.Value)
}

// decodeMatrix accepts a sequence of rows or a flat sequence (one row).
func decodeMatrix(n *yaml.Node, opts []matrix.Option) (equation.Variable, error) {
	if len(n.Content) == 0 {
		return nil, fmt.Errorf("empty matrix")
	}

	var rows [][]float64
	if n.Content[0].Kind == yaml.SequenceNode {
		if err := n.Decode(&rows); err != nil {
			return nil, err
		}
	} else {
		var row []float64
		if err := n.Decode(&row); err != nil {
			return nil, err
		}
		rows = [][]float64{row}
	}

	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(r), cols)
		}
		data = append(data, r...)
	}

	m, err := matrix.NewDenseFrom(len(rows), cols, data, opts...)
	if err != nil {
		return nil, err
	}

	return equation.NewMatrix(m), nil
}
