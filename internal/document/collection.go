package document

import (
	"fmt"
	"slices"
)

// collection is an insertion-ordered keyed collection. It backs every
// map-shaped entity in the document so that iteration order is stable
// across edits and snapshots.
type collection[T any] struct {
	keys  []string
	items map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[string]T)}
}

func (c *collection[T]) has(id string) bool {
	_, ok := c.items[id]
	return ok
}

func (c *collection[T]) at(id string) (T, bool) {
	v, ok := c.items[id]
	return v, ok
}

// insert adds a new entry, failing on id collision.
func (c *collection[T]) insert(id string, v T) error {
	if c.has(id) {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, id)
	}
	c.keys = append(c.keys, id)
	c.items[id] = v
	return nil
}

// set replaces the value for id, appending the key when new
// (last-write-wins semantics, used by the label map).
func (c *collection[T]) set(id string, v T) {
	if !c.has(id) {
		c.keys = append(c.keys, id)
	}
	c.items[id] = v
}

// replace overwrites an existing entry, failing when id is absent.
func (c *collection[T]) replace(id string, v T) error {
	if !c.has(id) {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	c.items[id] = v
	return nil
}

// remove deletes an entry. Removing an absent id is the ErrNotFound
// case, not a state requiring recovery; calling it twice is safe.
func (c *collection[T]) remove(id string) error {
	if !c.has(id) {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(c.items, id)
	c.keys = slices.DeleteFunc(c.keys, func(k string) bool { return k == id })
	return nil
}

func (c *collection[T]) size() int {
	return len(c.keys)
}

// ids returns the keys in insertion order. The slice is a copy.
func (c *collection[T]) ids() []string {
	return slices.Clone(c.keys)
}

func (c *collection[T]) clear() {
	c.keys = nil
	c.items = make(map[string]T)
}

// StringList is an ordered list of unique strings with an optional
// per-element validator. It backs the dedicated array configs (services,
// metric scopes, billing budgets, perimeter bridges, service projects).
type StringList struct {
	values []string
	check  func(string) error
}

// NewStringList returns an empty list. check, when non-nil, is applied
// to every added value.
func NewStringList(check func(string) error) *StringList {
	return &StringList{check: check}
}

// Add appends v. Empty values and values failing the element validator
// are rejected with ErrInvalidFormat, duplicates with ErrDuplicateKey.
func (l *StringList) Add(v string) error {
	if v == "" {
		return fmt.Errorf("%w: value must not be empty", ErrInvalidFormat)
	}
	if l.check != nil {
		if err := l.check(v); err != nil {
			return err
		}
	}
	if slices.Contains(l.values, v) {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, v)
	}
	l.values = append(l.values, v)
	return nil
}

// Remove deletes v from the list. The value is the identity; there is
// no positional removal.
func (l *StringList) Remove(v string) error {
	i := slices.Index(l.values, v)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, v)
	}
	l.values = slices.Delete(l.values, i, i+1)
	return nil
}

// Contains reports whether v is in the list.
func (l *StringList) Contains(v string) bool {
	return slices.Contains(l.values, v)
}

// Values returns the list in order. The slice is a copy.
func (l *StringList) Values() []string {
	return slices.Clone(l.values)
}

// Len returns the number of values.
func (l *StringList) Len() int {
	return len(l.values)
}

// Clear drops every value.
func (l *StringList) Clear() {
	l.values = nil
}
