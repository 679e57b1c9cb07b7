package document

import (
	"fmt"
	"slices"

	"github.com/Gerhatlevi/project-factory/internal/validate"
)

// SchemaMap is the recurring id → ordered string-list pattern: role
// grant scopes, tag bindings, contact groups, subnet users, service
// encryption key ids. Id uniqueness and format are enforced at creation;
// value lists are edited freely afterwards unless the map was built with
// unique values.
type SchemaMap struct {
	inner   *collection[[]string]
	keyOK   func(string) bool
	keyHint string
	unique  bool
}

// SchemaMapOption configures a SchemaMap.
type SchemaMapOption func(*SchemaMap)

// WithKeyCheck replaces the id validator (default: slug) and the hint
// used in format error messages.
func WithKeyCheck(ok func(string) bool, hint string) SchemaMapOption {
	return func(m *SchemaMap) {
		m.keyOK = ok
		m.keyHint = hint
	}
}

// WithUniqueValues rejects duplicate values within one entry's list.
func WithUniqueValues() SchemaMapOption {
	return func(m *SchemaMap) { m.unique = true }
}

// NewSchemaMap returns an empty map. Ids default to the slug shape
// (lowercase letters, numbers and hyphens).
func NewSchemaMap(opts ...SchemaMapOption) *SchemaMap {
	m := &SchemaMap{
		inner:   newCollection[[]string](),
		keyOK:   validate.IsSlug,
		keyHint: "lowercase letters, numbers and hyphens only",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add creates an entry under id with values parsed from the raw batch
// (comma/newline delimited, trimmed, empties dropped).
func (m *SchemaMap) Add(id, raw string) error {
	if !m.keyOK(id) {
		return fmt.Errorf("%w: id %q (%s)", ErrInvalidFormat, id, m.keyHint)
	}
	return m.inner.insert(id, validate.SplitBatch(raw))
}

// SetValues replaces the value list for id from a raw batch.
func (m *SchemaMap) SetValues(id, raw string) error {
	if !m.inner.has(id) {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return m.inner.replace(id, validate.SplitBatch(raw))
}

// Append adds a single value to the entry under id.
func (m *SchemaMap) Append(id, value string) error {
	values, ok := m.inner.at(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if value == "" {
		return fmt.Errorf("%w: value must not be empty", ErrInvalidFormat)
	}
	if m.unique && slices.Contains(values, value) {
		return fmt.Errorf("%w: %q in %q", ErrDuplicateKey, value, id)
	}
	return m.inner.replace(id, append(slices.Clone(values), value))
}

// RemoveValue deletes a single value from the entry under id.
func (m *SchemaMap) RemoveValue(id, value string) error {
	values, ok := m.inner.at(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	i := slices.Index(values, value)
	if i < 0 {
		return fmt.Errorf("%w: value %q in %q", ErrNotFound, value, id)
	}
	return m.inner.replace(id, slices.Delete(slices.Clone(values), i, i+1))
}

// Remove deletes the whole entry under id.
func (m *SchemaMap) Remove(id string) error {
	return m.inner.remove(id)
}

// Has reports whether id is present.
func (m *SchemaMap) Has(id string) bool { return m.inner.has(id) }

// IDs returns the entry ids in insertion order.
func (m *SchemaMap) IDs() []string { return m.inner.ids() }

// Values returns the value list for id. The slice is a copy.
func (m *SchemaMap) Values(id string) []string {
	v, _ := m.inner.at(id)
	return slices.Clone(v)
}

// Len returns the number of entries.
func (m *SchemaMap) Len() int { return m.inner.size() }

func (m *SchemaMap) snapshot() map[string][]string {
	out := make(map[string][]string, m.inner.size())
	for _, id := range m.inner.ids() {
		v, _ := m.inner.at(id)
		out[id] = slices.Clone(v)
	}
	return out
}
