package document

import "fmt"

// LabelMap is a flat key/value map with last-write-wins insertion.
type LabelMap struct {
	inner *collection[string]
}

// NewLabelMap returns an empty label map.
func NewLabelMap() *LabelMap {
	return &LabelMap{inner: newCollection[string]()}
}

// Set stores value under key, replacing any prior value. Both key and
// value must be non-empty.
func (m *LabelMap) Set(key, value string) error {
	if key == "" || value == "" {
		return fmt.Errorf("%w: both label key and value are required", ErrInvalidFormat)
	}
	m.inner.set(key, value)
	return nil
}

// Remove deletes the label under key.
func (m *LabelMap) Remove(key string) error {
	if err := m.inner.remove(key); err != nil {
		return fmt.Errorf("label %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (m *LabelMap) Get(key string) (string, bool) { return m.inner.at(key) }

// Keys returns the label keys in insertion order.
func (m *LabelMap) Keys() []string { return m.inner.ids() }

// Len returns the number of labels.
func (m *LabelMap) Len() int { return m.inner.size() }

func (m *LabelMap) snapshot() map[string]string {
	out := make(map[string]string, m.inner.size())
	for _, k := range m.inner.ids() {
		v, _ := m.inner.at(k)
		out[k] = v
	}
	return out
}
