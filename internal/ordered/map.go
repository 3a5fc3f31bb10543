// Package ordered provides an insertion-ordered string keyed map.
package ordered

// Map keeps its keys in first-insertion order. Setting an existing key
// replaces the value in place without moving the key.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// New returns an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{values: map[string]V{}}
}

func (m *Map[V]) init() {
	if m.values == nil {
		m.values = map[string]V{}
	}
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	if m == nil || m.values == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key, appending the key if it is new.
func (m *Map[V]) Set(key string, value V) {
	m.init()
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key. Missing keys are ignored.
func (m *Map[V]) Delete(key string) {
	if m == nil || m.values == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns a copy of the keys in order.
func (m *Map[V]) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Each calls fn for every entry in order, stopping when fn returns false.
func (m *Map[V]) Each(fn func(key string, value V) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Clone returns a shallow copy: the key order and map are new, values are
// copied by assignment.
func (m *Map[V]) Clone() *Map[V] {
	c := New[V]()
	if m == nil {
		return c
	}
	c.keys = make([]string, len(m.keys))
	copy(c.keys, m.keys)
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

// Equal compares two maps entry by entry, in order.
func Equal[V any](a, b *Map[V], eq func(x, y V) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	if a.Len() == 0 {
		return true
	}
	for i, k := range a.keys {
		if b.keys[i] != k {
			return false
		}
		if !eq(a.values[k], b.values[k]) {
			return false
		}
	}
	return true
}
