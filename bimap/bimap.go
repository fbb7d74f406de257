// bimap provides a bijective map that can be read in both directions.
//
// Values are unique: constructing or updating a BiMap with a value that is
// already bound to a different key fails, so the inverse lookup is always
// well defined.
package bimap

import "fmt"

type BiMap[K comparable, V comparable] struct {
	forward map[K]V
	inverse map[V]K
}

// New builds a BiMap from the given entries. It returns an error when two
// keys map to the same value.
func New[K comparable, V comparable](entries map[K]V) (*BiMap[K, V], error) {
	m := &BiMap[K, V]{
		forward: make(map[K]V, len(entries)),
		inverse: make(map[V]K, len(entries)),
	}
	for key, value := range entries {
		if _, found := m.inverse[value]; found {
			return nil, fmt.Errorf("duplicate value found: %v", value)
		}
		m.forward[key] = value
		m.inverse[value] = key
	}
	return m, nil
}

// MustNew is New for static tables built at package initialization.
func MustNew[K comparable, V comparable](entries map[K]V) *BiMap[K, V] {
	m, err := New(entries)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *BiMap[K, V]) Get(key K) (V, bool) {
	value, found := m.forward[key]
	return value, found
}

// GetOr returns the value for key, or fallback when the key is absent.
func (m *BiMap[K, V]) GetOr(key K, fallback V) V {
	if value, found := m.forward[key]; found {
		return value
	}
	return fallback
}

func (m *BiMap[K, V]) GetInverse(value V) (K, bool) {
	key, found := m.inverse[value]
	return key, found
}

// GetInverseOr returns the key for value, or fallback when the value is absent.
func (m *BiMap[K, V]) GetInverseOr(value V, fallback K) K {
	if key, found := m.inverse[value]; found {
		return key
	}
	return fallback
}

// Set binds key to value. Overwriting a key releases its previous value from
// the inverse index. Binding a value already held by a different key is an
// error.
func (m *BiMap[K, V]) Set(key K, value V) error {
	if existing, found := m.inverse[value]; found && existing != key {
		return fmt.Errorf("duplicate value found: %v", value)
	}
	if previous, found := m.forward[key]; found {
		delete(m.inverse, previous)
	}
	m.forward[key] = value
	m.inverse[value] = key
	return nil
}

// Delete removes key and its value from both indexes.
func (m *BiMap[K, V]) Delete(key K) {
	value, found := m.forward[key]
	if !found {
		return
	}
	delete(m.forward, key)
	delete(m.inverse, value)
}

func (m *BiMap[K, V]) Contains(key K) bool {
	_, found := m.forward[key]
	return found
}

func (m *BiMap[K, V]) Len() int {
	return len(m.forward)
}
