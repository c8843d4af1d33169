package spacer

import (
	"encoding/json"
	"strconv"

	yaml "gopkg.in/yaml.v2"
)

// MarshalYAML presents the spaced view to gopkg.in/yaml.v2: a sequence if its
// keys are 0..n-1 in order, otherwise an ordered mapping with integer keys
// emitted as YAML integers.
func (m *Map[V]) MarshalYAML() (interface{}, error) {
	return yamlValue(m.Spaced()), nil
}

func yamlValue[V any](entries []Entry[V]) interface{} {
	if isList(entries) {
		list := make([]interface{}, 0, len(entries))
		for _, e := range entries {
			list = append(list, yamlNumbers(e.Value))
		}
		return list
	}
	ms := make(yaml.MapSlice, 0, len(entries))
	for _, e := range entries {
		var key interface{} = e.Key.String()
		if i, ok := e.Key.Int(); ok {
			key = i
		}
		ms = append(ms, yaml.MapItem{Key: key, Value: yamlNumbers(e.Value)})
	}
	return ms
}

// yamlNumbers replaces json.Number values, which yaml.v2 would quote as
// strings, with int64, uint64 or float64, descending into decoded JSON arrays
// and objects. Numbers that fit none of these stay strings.
func yamlNumbers(x interface{}) interface{} {
	switch v := x.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(string(v), 10, 64); err == nil {
			return u
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return string(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			out[i] = yamlNumbers(elem)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, elem := range v {
			out[k] = yamlNumbers(elem)
		}
		return out
	}
	return x
}
