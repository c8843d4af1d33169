package spacer

import (
	"iter"
	"math"

	"github.com/cevaris/ordered_map"
	"github.com/goose-lang/primitive"
	"github.com/goose-lang/std"
	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned by Get for a key that is not in the map.
var ErrKeyNotFound = errors.New("key not found")

// Interface is the collection surface shared by Map and Synced. Mutations and
// lookups use raw keys exactly as given; Count, All, Spaced and MarshalJSON
// see the spaced view.
type Interface[V any] interface {
	Has(key Key) bool
	Get(key Key) (V, error)
	Set(key Key, value V)
	Append(value V) Key
	Delete(key Key)
	Count() int
	All() iter.Seq2[Key, V]
	Spaced() []Entry[V]
	MarshalJSON() ([]byte, error)
}

// A Map stores entries in insertion order and presents them with integer
// keys spaced by a fixed stride from a starting offset. It is not safe for
// concurrent use; see Synced.
//
// Maps must be created with New or NewDefault, except as the target of
// UnmarshalJSON, which gives a zero Map the default configuration.
type Map[V any] struct {
	storage *ordered_map.OrderedMap
	spacer  int
	startAt int
	// next is the key Append uses: one past the largest non-negative integer
	// key ever stored. Deletes never lower it.
	next uint64
}

var _ Interface[any] = (*Map[any])(nil)

// New returns an empty Map whose i-th integer-keyed entry is presented under
// startAt + i*spacer. Neither argument is validated.
func New[V any](spacer int, startAt int) *Map[V] {
	return &Map[V]{
		storage: ordered_map.NewOrderedMap(),
		spacer:  spacer,
		startAt: startAt,
	}
}

// NewDefault returns an empty Map with spacer 1 and startAt 0.
func NewDefault[V any]() *Map[V] {
	return New[V](1, 0)
}

// Spacer returns the stride between consecutive spaced integer keys.
func (m *Map[V]) Spacer() int {
	return m.spacer
}

// StartAt returns the spaced key of the first integer-keyed entry.
func (m *Map[V]) StartAt() int {
	return m.startAt
}

// Has reports whether key is in raw storage.
func (m *Map[V]) Has(key Key) bool {
	_, ok := m.storage.Get(key)
	return ok
}

// Lookup returns the value stored under the raw key.
func (m *Map[V]) Lookup(key Key) (V, bool) {
	x, ok := m.storage.Get(key)
	return valueOf[V](x), ok
}

// Get returns the value stored under the raw key, or an error wrapping
// ErrKeyNotFound.
func (m *Map[V]) Get(key Key) (V, error) {
	v, ok := m.Lookup(key)
	if !ok {
		return v, errors.WithMessagef(ErrKeyNotFound, "key %q", key.String())
	}
	return v, nil
}

// Set stores value under key. Overwriting keeps the key's position; a new key
// goes to the end.
func (m *Map[V]) Set(key Key, value V) {
	if i, ok := key.Int(); ok && i >= 0 && uint64(i) >= m.next {
		m.next = std.SumAssumeNoOverflow(uint64(i), 1)
	}
	m.storage.Set(key, value)
}

// Append stores value under the next free integer key and returns that key.
func (m *Map[V]) Append(value V) Key {
	if m.next > math.MaxInt {
		panic("spacer: next append index overflows int")
	}
	key := Index(int(m.next))
	primitive.Assert(!m.Has(key))
	m.Set(key, value)
	return key
}

// Delete removes key if present. Remaining raw keys are left alone.
func (m *Map[V]) Delete(key Key) {
	m.storage.Delete(key)
}

// Len returns the number of raw entries.
func (m *Map[V]) Len() int {
	return m.storage.Len()
}

// Count returns the number of entries in the spaced view. It is less than Len
// when spaced integer keys collide: with a spacer of 0, or when
// startAt + i*spacer wraps around.
func (m *Map[V]) Count() int {
	return m.view().Len()
}

// Raw iterates over the stored entries in insertion order.
func (m *Map[V]) Raw() iter.Seq2[Key, V] {
	return seq[V](m.storage)
}

// All iterates over the spaced view. The view is recomputed each time the
// sequence is ranged over.
func (m *Map[V]) All() iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		for k, v := range seq[V](m.view()) {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Spaced returns the spaced view in order.
func (m *Map[V]) Spaced() []Entry[V] {
	return collect[V](m.view())
}

func (m *Map[V]) view() *ordered_map.OrderedMap {
	return spaceInto(m.Raw(), m.spacer, m.startAt)
}
