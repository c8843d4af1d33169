package spacer

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// jsonAPI matches encoding/json, except that numbers decoded into interface
// values are json.Number rather than float64.
var jsonAPI = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// isList reports whether entries are keyed exactly 0, 1, ..., n-1 in order,
// which is when they encode as a list rather than a keyed object.
func isList[V any](entries []Entry[V]) bool {
	for i, e := range entries {
		if k, ok := e.Key.Int(); !ok || k != i {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the spaced view: a JSON array if its keys are 0..n-1 in
// order, otherwise a JSON object with fields in view order.
func (m *Map[V]) MarshalJSON() ([]byte, error) {
	return marshalEntries(m.Spaced())
}

func marshalEntries[V any](entries []Entry[V]) ([]byte, error) {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	if isList(entries) {
		stream.WriteArrayStart()
		for i, e := range entries {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteVal(e.Value)
		}
		stream.WriteArrayEnd()
	} else {
		stream.WriteObjectStart()
		for i, e := range entries {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(e.Key.String())
			stream.WriteVal(e.Value)
		}
		stream.WriteObjectEnd()
	}
	if stream.Error != nil {
		return nil, errors.Wrap(stream.Error, "encoding spaced view")
	}
	// the stream's buffer goes back to the pool
	return append([]byte(nil), stream.Buffer()...), nil
}

// UnmarshalJSON adds the entries of a JSON array or object to m, in document
// order. Array elements are appended; object fields are set under Name(field),
// so numeric field names become integer keys. A JSON null adds nothing.
// Numbers decoded into interface values are json.Number. Anything but
// whitespace after the value is an error.
//
// A zero Map is given the default configuration first. On error, entries
// decoded before the failure stay in m.
func (m *Map[V]) UnmarshalJSON(data []byte) error {
	if m.storage == nil {
		*m = *NewDefault[V]()
	}
	it := jsonAPI.BorrowIterator(data)
	defer jsonAPI.ReturnIterator(it)

	switch it.WhatIsNext() {
	case jsoniter.ArrayValue:
		it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			var v V
			if it.ReadVal(&v); it.Error != nil {
				return false
			}
			m.Append(v)
			return true
		})
	case jsoniter.ObjectValue:
		it.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
			var v V
			if it.ReadVal(&v); it.Error != nil {
				return false
			}
			m.Set(Name(field), v)
			return true
		})
	case jsoniter.NilValue:
		it.ReadNil()
	default:
		if it.Error == nil {
			return errors.New("decoding Map: JSON value is not an array, object or null")
		}
	}
	if it.Error != nil {
		return errors.Wrap(it.Error, "decoding Map")
	}
	if it.WhatIsNext(); it.Error != io.EOF {
		return errors.New("decoding Map: bytes left after value")
	}
	return nil
}
