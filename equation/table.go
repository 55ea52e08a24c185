// SPDX-License-Identifier: MIT

package equation

import (
	"fmt"
	"sort"
)

// Impl executes one operation on already-resolved arguments.
// It must not mutate args and returns a fresh Variable.
type Impl func(b Backend, args []Variable) (Variable, error)

type key struct {
	op   Op
	pair TypePair
}

// Table maps (Op, TypePair) to an implementation. Built once; lookups are O(1).
// A Table is read-only after construction unless Register is called.
type Table struct {
	impls map[key]Impl
}

// Entry is one row of the table listing.
type Entry struct {
	Op   Op
	Pair TypePair
}

func (e Entry) String() string { return e.Op.String() + " " + e.Pair.String() }

// NewTable returns a table holding every built-in operator and function.
func NewTable() *Table {
	t := &Table{impls: make(map[key]Impl, 64)}
	registerArith(t)
	registerFuncs(t)

	return t
}

// Register adds or replaces the implementation for (op, pair).
func (t *Table) Register(op Op, pair TypePair, fn Impl) {
	t.impls[key{op: op, pair: pair}] = fn
}

// Resolve returns the implementation for op applied to args.
//
// Errors:
//   - ErrUnsupportedOperation naming op and the observed kinds when no entry
//     exists (this covers wrong arity too).
func (t *Table) Resolve(op Op, args []Variable) (Impl, error) {
	fn, ok := t.impls[key{op: op, pair: ClassifyArgs(args)}]
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", ErrUnsupportedOperation, op, kindsOf(args))
	}

	return fn, nil
}

// Entries lists the registered (op, pair) keys ordered by op, then arity, then classes.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.impls))
	for k := range t.impls {
		out = append(out, Entry{Op: k.op, Pair: k.pair})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Op != b.Op {
			return a.Op < b.Op
		}
		if a.Pair.Arity != b.Pair.Arity {
			return a.Pair.Arity < b.Pair.Arity
		}
		if a.Pair.Left != b.Pair.Left {
			return a.Pair.Left < b.Pair.Left
		}

		return a.Pair.Right < b.Pair.Right
	})

	return out
}
