package csync

import (
	"encoding/json"
	"sync"
)

// Map is a map guarded by a RWMutex.
type Map[K comparable, V any] struct {
	data map[K]V
	mu   sync.RWMutex
}

// NewMap creates an empty map
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		data: make(map[K]V),
	}
}

// Set stores value under key
func (m *Map[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Get returns the value for key and whether it was present
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	return value, ok
}

// Delete removes key, reporting whether it was present
func (m *Map[K, V]) Delete(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	delete(m.data, key)
	return ok
}

// Len returns the number of entries
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Values returns a snapshot of all values in unspecified order
func (m *Map[K, V]) Values() []V {
	m.mu.RLock()
	defer m.mu.RUnlock()

	values := make([]V, 0, len(m.data))
	for _, value := range m.data {
		values = append(values, value)
	}
	return values
}

// Range calls f for every entry until f returns false.
// f must not call back into the map.
func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for key, value := range m.data {
		if !f(key, value) {
			break
		}
	}
}

// Replace swaps the whole content for a copy of data
func (m *Map[K, V]) Replace(data map[K]V) {
	fresh := make(map[K]V, len(data))
	for key, value := range data {
		fresh[key] = value
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = fresh
}

// MarshalJSON implements json.Marshaler
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return json.Marshal(m.data)
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Map[K, V]) UnmarshalJSON(data []byte) error {
	decoded := make(map[K]V)
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = decoded
	return nil
}
