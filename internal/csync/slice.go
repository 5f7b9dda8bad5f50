package csync

import "sync"

// Slice is an append-only slice guarded by a mutex. Readers either take a
// copy with ToSlice or empty it atomically with Drain.
type Slice[T any] struct {
	data []T
	mu   sync.Mutex
}

// NewSlice creates an empty slice
func NewSlice[T any]() *Slice[T] {
	return &Slice[T]{}
}

// Append adds elements to the end
func (s *Slice[T]) Append(elements ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append(s.data, elements...)
}

// Len returns the number of elements
func (s *Slice[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// ToSlice returns a copy of the elements
func (s *Slice[T]) ToSlice() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]T, len(s.data))
	copy(result, s.data)
	return result
}

// Drain removes and returns every element in insertion order
func (s *Slice[T]) Drain() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	drained := s.data
	s.data = nil
	return drained
}
