// SPDX-License-Identifier: MIT

package equation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/lvleq/matrix"
)

// tempPrefix marks parser temporaries. '$' cannot start an identifier, so
// temporaries never collide with user names.
const tempPrefix = "$t"

// Registry maps names to variables. Binding a name replaces the previous
// variable wholesale. Not safe for concurrent use.
type Registry struct {
	vars map[string]Variable
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{vars: make(map[string]Variable)}
}

// Alias binds name to v, replacing any previous binding.
//
// Errors:
//   - ErrInvalidName if name is not an identifier ([A-Za-z_][A-Za-z0-9_]*).
//   - ErrTypeMismatch if v is nil.
func (r *Registry) Alias(name string, v Variable) error {
	if !IsIdentifier(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if v == nil {
		return fmt.Errorf("%w: nil variable for %q", ErrTypeMismatch, name)
	}
	r.vars[name] = v

	return nil
}

// bind is Alias without name validation, used for temporaries and outputs.
func (r *Registry) bind(name string, v Variable) { r.vars[name] = v }

// Lookup returns the variable bound to name.
func (r *Registry) Lookup(name string) (Variable, error) {
	v, ok := r.vars[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}

	return v, nil
}

// LookupReal returns the value of a real scalar.
// Errors: ErrUnknownName, ErrTypeMismatch (integer or matrix bound).
func (r *Registry) LookupReal(name string) (float64, error) {
	v, err := r.Lookup(name)
	if err != nil {
		return 0, err
	}
	s, ok := v.(*Real)
	if !ok {
		return 0, mismatch(name, KindReal, v)
	}

	return s.Value, nil
}

// LookupInteger returns the value of an integer scalar.
// Errors: ErrUnknownName, ErrTypeMismatch.
func (r *Registry) LookupInteger(name string) (int, error) {
	v, err := r.Lookup(name)
	if err != nil {
		return 0, err
	}
	s, ok := v.(*Integer)
	if !ok {
		return 0, mismatch(name, KindInteger, v)
	}

	return s.Value, nil
}

// LookupMatrix returns the storage of a matrix variable (not a copy).
// Errors: ErrUnknownName, ErrTypeMismatch.
func (r *Registry) LookupMatrix(name string) (*matrix.Dense, error) {
	v, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	m, ok := v.(*Matrix)
	if !ok {
		return nil, mismatch(name, KindMatrix, v)
	}

	return m.M, nil
}

// Names returns the bound names in ascending order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.vars))
	for name := range r.vars {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Len returns the number of bindings.
func (r *Registry) Len() int { return len(r.vars) }

// Delete removes name and reports whether it was bound.
func (r *Registry) Delete(name string) bool {
	_, ok := r.vars[name]
	delete(r.vars, name)

	return ok
}

func mismatch(name string, want Kind, got Variable) error {
	return fmt.Errorf("%w: %q is %s, not %s", ErrTypeMismatch, name, got.Kind(), want)
}

// IsIdentifier reports whether s matches [A-Za-z_][A-Za-z0-9_]*.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}

	return true
}

// isTemp reports whether name is a parser temporary.
func isTemp(name string) bool { return strings.HasPrefix(name, tempPrefix) }
