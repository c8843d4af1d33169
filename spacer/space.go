package spacer

import (
	"iter"

	"github.com/cevaris/ordered_map"
)

// Entry is one key-value pair of a raw or spaced collection.
type Entry[V any] struct {
	Key   Key
	Value V
}

// Space re-indexes entries: the i-th integer-keyed entry (counting only
// integer keys, in order) gets the key startAt + i*spacer, and string keys are
// copied unchanged. If two entries end up with the same key (spacer 0), the
// later value wins and the key keeps its first position.
//
// spacer and startAt are not validated; a zero or negative spacer gives
// colliding or descending keys, and startAt + i*spacer wraps on overflow.
func Space[V any](entries iter.Seq2[Key, V], spacer, startAt int) []Entry[V] {
	return collect[V](spaceInto(entries, spacer, startAt))
}

func spaceInto[V any](entries iter.Seq2[Key, V], spacer, startAt int) *ordered_map.OrderedMap {
	out := ordered_map.NewOrderedMap()
	var i = 0
	for key, value := range entries {
		if key.IsIndex() {
			key = Index(startAt + i*spacer)
			i++
		}
		out.Set(key, value)
	}
	return out
}

// valueOf converts a value stored in an OrderedMap back to V. A nil interface
// becomes the zero V.
func valueOf[V any](x interface{}) V {
	v, _ := x.(V)
	return v
}

func collect[V any](om *ordered_map.OrderedMap) []Entry[V] {
	entries := make([]Entry[V], 0, om.Len())
	next := om.IterFunc()
	for kv, ok := next(); ok; kv, ok = next() {
		entries = append(entries, Entry[V]{Key: kv.Key.(Key), Value: valueOf[V](kv.Value)})
	}
	return entries
}

func seq[V any](om *ordered_map.OrderedMap) iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		next := om.IterFunc()
		for kv, ok := next(); ok; kv, ok = next() {
			if !yield(kv.Key.(Key), valueOf[V](kv.Value)) {
				return
			}
		}
	}
}
