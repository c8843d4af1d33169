package spacer

import (
	"iter"
	"sync"
)

// Synced wraps a Map with a mutex so it can be shared between goroutines.
// Each method holds the lock around the Map method of the same name.
//
// Views are snapshotted under the lock: ranging over All yields the entries
// as they were when the range started, with the lock released.
type Synced[V any] struct {
	mu *sync.Mutex
	m  *Map[V]
}

var _ Interface[any] = (*Synced[any])(nil)

// NewSynced takes ownership of m; m must not be used directly afterwards.
func NewSynced[V any](m *Map[V]) *Synced[V] {
	return &Synced[V]{mu: new(sync.Mutex), m: m}
}

func (s *Synced[V]) Has(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Has(key)
}

func (s *Synced[V]) Get(key Key) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Get(key)
}

func (s *Synced[V]) Set(key Key, value V) {
	s.mu.Lock()
	s.m.Set(key, value)
	s.mu.Unlock()
}

func (s *Synced[V]) Append(value V) Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Append(value)
}

func (s *Synced[V]) Delete(key Key) {
	s.mu.Lock()
	s.m.Delete(key)
	s.mu.Unlock()
}

func (s *Synced[V]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Count()
}

func (s *Synced[V]) Spaced() []Entry[V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Spaced()
}

// All iterates over a snapshot of the spaced view taken when ranging starts.
func (s *Synced[V]) All() iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		for _, e := range s.Spaced() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Update runs f with exclusive access to the underlying Map, for
// read-modify-write sequences that must not interleave with other callers.
// f must not retain m.
func (s *Synced[V]) Update(f func(m *Map[V])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.m)
}

func (s *Synced[V]) MarshalJSON() ([]byte, error) {
	return marshalEntries(s.Spaced())
}

func (s *Synced[V]) MarshalYAML() (interface{}, error) {
	return yamlValue(s.Spaced()), nil
}

// Keys returns the raw keys in insertion order.
func (s *Synced[V]) Keys() []Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []Key
	for k := range s.m.Raw() {
		keys = append(keys, k)
	}
	return keys
}
