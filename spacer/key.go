package spacer

import "strconv"

// A Key is either an integer index or a string name. Only index keys are
// renumbered by Space.
type Key struct {
	name  string
	index int
	named bool
}

// Index returns the integer key i.
func Index(i int) Key {
	return Key{index: i}
}

// Name returns a string key. A string that is the canonical decimal form of
// an int (no sign other than a leading '-', no leading zeros) is an integer
// key, so Name("12") == Index(12).
func Name(s string) Key {
	if i, ok := canonicalInt(s); ok {
		return Index(i)
	}
	return Key{name: s, named: true}
}

func canonicalInt(s string) (int, bool) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return i, strconv.Itoa(i) == s
}

// IsIndex reports whether k is an integer key, the kind Space renumbers.
func (k Key) IsIndex() bool {
	return !k.named
}

// Int returns the integer value of an index key. The boolean is false for
// string keys.
func (k Key) Int() (int, bool) {
	if k.named {
		return 0, false
	}
	return k.index, true
}

func (k Key) String() string {
	if k.named {
		return k.name
	}
	return strconv.Itoa(k.index)
}
