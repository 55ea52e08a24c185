// SPDX-License-Identifier: MIT

package equation

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvleq/matrix"
)

// Equation is one engine instance: a registry plus the table, backend and
// parser used to evaluate formulas against it. Not safe for concurrent use.
type Equation struct {
	reg     *Registry
	table   *Table
	backend Backend
	parser  Parser
	log     *zap.Logger
	metrics *Metrics
}

// New returns an engine with an empty registry.
func New(opts ...Option) *Equation {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return &Equation{
		reg:     NewRegistry(),
		table:   o.table,
		backend: o.backend,
		parser:  o.parser,
		log:     o.logger,
		metrics: o.metrics,
	}
}

// Registry exposes the engine's bindings.
func (e *Equation) Registry() *Registry { return e.reg }

// Table exposes the operation table.
func (e *Equation) Table() *Table { return e.table }

// Alias binds name to value, replacing any previous binding.
// value may be int, int64, int32, float64, float32, *matrix.Dense or a Variable.
// A *matrix.Dense is bound by reference: results later assigned to name are
// written into it.
//
// Errors: ErrInvalidName, ErrTypeMismatch (unsupported Go type or nil).
func (e *Equation) Alias(value any, name string) error {
	v, err := toVariable(value)
	if err != nil {
		return equationErrorf(fmt.Sprintf("alias %q", name), err)
	}

	return e.reg.Alias(name, v)
}

// AliasMatrix binds name to a new rows×cols matrix built from row-major data.
func (e *Equation) AliasMatrix(rows, cols int, data []float64, name string) error {
	m, err := matrix.NewDenseFrom(rows, cols, data)
	if err != nil {
		return equationErrorf(fmt.Sprintf("alias %q", name), translate(err))
	}

	return e.reg.Alias(name, NewMatrix(m))
}

func toVariable(value any) (Variable, error) {
	switch v := value.(type) {
	case int:
		return NewInteger(v), nil
	case int64:
		return NewInteger(int(v)), nil
	case int32:
		return NewInteger(int(v)), nil
	case float64:
		return NewReal(v), nil
	case float32:
		return NewReal(float64(v)), nil
	case *matrix.Dense:
		if v == nil {
			return nil, fmt.Errorf("%w: nil matrix", ErrTypeMismatch)
		}
		return NewMatrix(v), nil
	case Variable:
		return v, nil
	}

	return nil, fmt.Errorf("%w: unsupported value type %T", ErrTypeMismatch, value)
}

// Process parses formula and executes it.
func (e *Equation) Process(formula string) error {
	prog, err := e.parser.Parse(formula)
	if err == nil {
		err = e.Execute(prog)
	} else {
		e.log.Warn("parse failed", zap.String("formula", formula), zap.Error(err))
	}
	e.metrics.observeFormula(err)

	return err
}

// Execute runs p's steps in order against the registry.
// The first failing step aborts execution; bindings made by earlier steps are
// kept. Temporaries are removed whether or not execution succeeds.
//
// Errors are wrapped as "step N (op): cause".
func (e *Equation) Execute(p *Program) error {
	if p == nil {
		return fmt.Errorf("%w: nil program", ErrSyntax)
	}
	defer e.dropTemps(p)

	for i, st := range p.Steps {
		if err := e.step(st); err != nil {
			e.log.Warn("step failed",
				zap.Int("step", i),
				zap.Stringer("op", st.Op),
				zap.String("output", st.Output),
				zap.Error(err))

			return equationErrorf(fmt.Sprintf("step %d (%s)", i, st.Op), err)
		}
	}

	return nil
}

func (e *Equation) step(st Step) error {
	if !IsIdentifier(st.Output) && !isTemp(st.Output) {
		return fmt.Errorf("%w: output %q", ErrInvalidName, st.Output)
	}
	args := make([]Variable, len(st.Inputs))
	for i, in := range st.Inputs {
		if in.IsLiteral() {
			args[i] = in.Value
			continue
		}
		v, err := e.reg.Lookup(in.Name)
		if err != nil {
			return err
		}
		args[i] = v
	}

	start := time.Now()
	impl, err := e.table.Resolve(st.Op, args)
	var out Variable
	if err == nil {
		out, err = impl(e.backend, args)
	}
	e.metrics.observeStep(st.Op, time.Since(start), err)
	if err != nil {
		return err
	}

	e.log.Debug("step",
		zap.Stringer("op", st.Op),
		zap.String("output", st.Output),
		zap.String("kinds", kindsOf(args)),
		zap.Stringer("result", out.Kind()))

	return e.store(st.Output, out)
}

// store binds name to v. A matrix result aimed at an existing user matrix is
// copied into that matrix's storage instead of rebinding.
func (e *Equation) store(name string, v Variable) error {
	if res, ok := v.(*Matrix); ok && !isTemp(name) {
		if prev, found := e.reg.vars[name]; found {
			if dst, isMat := prev.(*Matrix); isMat {
				return translate(dst.Assign(res.M))
			}
		}
	}
	e.reg.bind(name, v)

	return nil
}

func (e *Equation) dropTemps(p *Program) {
	for _, st := range p.Steps {
		if isTemp(st.Output) {
			e.reg.Delete(st.Output)
		}
	}
}

// LookupVariable returns the variable bound to name.
func (e *Equation) LookupVariable(name string) (Variable, error) { return e.reg.Lookup(name) }

// LookupScalar returns a real scalar; integers fail with ErrTypeMismatch.
func (e *Equation) LookupScalar(name string) (float64, error) { return e.reg.LookupReal(name) }

// LookupInteger returns an integer scalar.
func (e *Equation) LookupInteger(name string) (int, error) { return e.reg.LookupInteger(name) }

// LookupMatrix returns a matrix's storage.
func (e *Equation) LookupMatrix(name string) (*matrix.Dense, error) { return e.reg.LookupMatrix(name) }
