package spacer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
	"pgregory.net/rapid"
)

func TestMarshalJSON(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name     string
		build    func() *Map[string]
		expected string
	}{
		{"empty", func() *Map[string] { return NewDefault[string]() }, `[]`},
		{"list", func() *Map[string] {
			m := NewDefault[string]()
			m.Append("a")
			m.Append("b")
			return m
		}, `["a","b"]`},
		{"spaced", func() *Map[string] {
			m := New[string](2, 10)
			m.Append("a")
			m.Append("b")
			m.Append("c")
			return m
		}, `{"10":"a","12":"b","14":"c"}`},
		{"named", func() *Map[string] {
			m := NewDefault[string]()
			m.Set(Name("x"), "foo")
			m.Append("bar")
			m.Set(Name("y"), "baz")
			return m
		}, `{"x":"foo","0":"bar","y":"baz"}`},
		{"renumbered into a list", func() *Map[string] {
			m := New[string](5, 0)
			a := m.Append("a")
			m.Append("b")
			m.Delete(a)
			return m
		}, `["b"]`},
	}

	for _, test := range tests {
		data, err := test.build().MarshalJSON()
		if assert.NoError(err, test.name) {
			assert.Equal(test.expected, string(data), test.name)
		}
	}
}

func TestMarshalJSONNested(t *testing.T) {
	inner := New[int](3, 1)
	inner.Append(1)
	inner.Append(2)

	outer := NewDefault[any]()
	outer.Set(Name("inner"), inner)
	outer.Append(nil)

	data, err := json.Marshal(outer)
	require.NoError(t, err)
	assert.Equal(t, `{"inner":{"1":1,"4":2},"0":null}`, string(data))
}

func TestUnmarshalJSON(t *testing.T) {
	assert := assert.New(t)

	m := New[string](2, 10)
	require.NoError(t, m.UnmarshalJSON([]byte(`{"x":"a","3":"b","y":"c"}`)))
	assert.True(m.Has(Name("x")))
	assert.True(m.Has(Index(3)), "numeric fields become integer keys")
	assert.Equal([]Entry[string]{
		{Name("x"), "a"},
		{Index(10), "b"},
		{Name("y"), "c"},
	}, m.Spaced())

	require.NoError(t, m.UnmarshalJSON([]byte(`["d","e"]`)))
	assert.Equal([]Key{Name("x"), Index(3), Name("y"), Index(4), Index(5)}, keysOf(rawEntries(m)))

	require.NoError(t, m.UnmarshalJSON([]byte(`null`)))
	assert.Equal(5, m.Len())
}

func TestUnmarshalJSONZeroMap(t *testing.T) {
	assert := assert.New(t)

	var m Map[string]
	require.NoError(t, json.Unmarshal([]byte(`{"x":"a","3":"b"}`), &m))
	assert.Equal(1, m.Spacer())
	assert.Equal(0, m.StartAt())
	assert.Equal([]Entry[string]{
		{Name("x"), "a"},
		{Index(0), "b"},
	}, m.Spaced())
}

func TestUnmarshalJSONErrors(t *testing.T) {
	for _, input := range []string{`"str"`, `12`, `["a",`, `{"x":1}`, `[1]`, `["a"] x`, `{} {}`, `null 1`} {
		m := NewDefault[string]()
		assert.Error(t, m.UnmarshalJSON([]byte(input)), "input %s", input)
	}
}

func TestUnmarshalJSONTrailingSpace(t *testing.T) {
	m := NewDefault[string]()
	assert.NoError(t, m.UnmarshalJSON([]byte("[\"a\"] \n\t")))
	assert.Equal(t, 1, m.Len())
}

func TestUnmarshalJSONNumbers(t *testing.T) {
	assert := assert.New(t)

	m := NewDefault[any]()
	require.NoError(t, m.UnmarshalJSON([]byte(`[12345678901234567890, 1.5, {"n": 7}]`)))
	v, err := m.Get(Index(0))
	assert.NoError(err)
	assert.Equal(json.Number("12345678901234567890"), v)

	data, err := m.MarshalJSON()
	assert.NoError(err)
	assert.Equal(`[12345678901234567890,1.5,{"n":7}]`, string(data))

	data, err = yaml.Marshal(m)
	assert.NoError(err)
	assert.Equal("- 12345678901234567890\n- 1.5\n- n: 7\n", string(data))
}

func TestJSONRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		spacer := rapid.IntRange(-10, 10).Draw(t, "spacer")
		startAt := rapid.IntRange(-100, 100).Draw(t, "startAt")
		m := drawMap(t, spacer, startAt)

		data, err := m.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		decoded := New[string](spacer, startAt)
		if err := decoded.UnmarshalJSON(data); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		assert.Equal(t, m.Spaced(), decoded.Spaced())
	})
}

func TestMarshalYAML(t *testing.T) {
	assert := assert.New(t)

	m := New[string](2, 10)
	m.Append("a")
	m.Set(Name("x"), "b")
	m.Append("c")
	data, err := yaml.Marshal(m)
	assert.NoError(err)
	assert.Equal("10: a\nx: b\n12: c\n", string(data))

	list := NewDefault[string]()
	list.Append("a")
	list.Append("b")
	data, err = yaml.Marshal(list)
	assert.NoError(err)
	assert.Equal("- a\n- b\n", string(data))
}
