// Package symtab provides ordered, duplicate-rejecting symbol tables for
// the registers and instructions an assembly program declares.
//
// Go maps have no iteration order; PIL emission must be byte-identical
// across runs (§5/I7 of the design), so registration order has to be
// tracked explicitly alongside the map, the way the teacher compiler keeps
// a separate insertion-order slice next to its lookup map.
package symtab

import (
	"fmt"
	"sort"
)

// Table is an insertion-ordered map keyed by name. It rejects duplicate
// keys outright, since a duplicate register or instruction declaration is
// a fatal compile error (§4.2 of the design).
type Table[V any] struct {
	order []string
	byKey map[string]V
}

// New creates an empty table.
func New[V any]() *Table[V] {
	return &Table[V]{byKey: make(map[string]V)}
}

// Declare inserts name with the given value. It returns an error if name
// was already declared.
func (t *Table[V]) Declare(name string, value V) error {
	if _, exists := t.byKey[name]; exists {
		return fmt.Errorf("duplicate declaration of %q", name)
	}
	t.order = append(t.order, name)
	t.byKey[name] = value
	return nil
}

// Get returns the value declared under name, and whether it was found.
func (t *Table[V]) Get(name string) (V, bool) {
	v, ok := t.byKey[name]
	return v, ok
}

// MustGet returns the value declared under name, panicking if absent. It
// exists for call sites where the caller has already established, by
// construction, that the name must be present (e.g. looking up a name
// already checked with Get).
func (t *Table[V]) MustGet(name string) V {
	v, ok := t.byKey[name]
	if !ok {
		panic(fmt.Sprintf("symtab: %q not declared", name))
	}
	return v
}

// Len returns the number of declared entries.
func (t *Table[V]) Len() int { return len(t.order) }

// Names returns the declared names in insertion order.
func (t *Table[V]) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Each calls fn for every entry in insertion order.
func (t *Table[V]) Each(fn func(name string, value V)) {
	for _, name := range t.order {
		fn(name, t.byKey[name])
	}
}

// SortedNames returns the declared names in lexicographic order. The
// lowering engine's final passes over all registers (update-identity
// synthesis, assignment-register read constraints) walk registers in name
// order rather than declaration order - mirroring a BTreeMap traversal in
// the original implementation - so output stays deterministic regardless
// of how registers happened to be declared.
func (t *Table[V]) SortedNames() []string {
	out := t.Names()
	sort.Strings(out)
	return out
}

// EachSorted calls fn for every entry in lexicographic order by name.
func (t *Table[V]) EachSorted(fn func(name string, value V)) {
	for _, name := range t.SortedNames() {
		fn(name, t.byKey[name])
	}
}
