package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Map is an insertion-ordered associative container. Key order equals
// first-seen order in the source text and is never re-sorted.
//
// Setting a key that is already present overwrites the value but keeps the
// key's original position (last write wins; documented behavior for
// duplicate mapping keys). Keys of non-comparable types, which YAML permits,
// are appended verbatim and never deduplicated.
type Map struct {
	entries []Entry
	index   map[any]int
}

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   any
	Value any
}

// NewMap creates an empty ordered map.
func NewMap() *Map {
	return &Map{index: make(map[any]int)}
}

func newMapCap(n int) *Map {
	return &Map{
		entries: make([]Entry, 0, n),
		index:   make(map[any]int, n),
	}
}

// Set inserts or overwrites a key.
func (m *Map) Set(key, value any) {
	if isComparable(key) {
		if i, ok := m.index[key]; ok {
			m.entries[i].Value = value
			return
		}
		m.index[key] = len(m.entries)
	}
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Get returns the value stored under key.
func (m *Map) Get(key any) (any, bool) {
	if isComparable(key) {
		if i, ok := m.index[key]; ok {
			return m.entries[i].Value, true
		}
		return nil, false
	}
	for _, e := range m.entries {
		if reflect.DeepEqual(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.entries)
}

// Entries returns the entries in insertion order.
// The returned slice is the map's backing storage; callers must not modify it.
func (m *Map) Entries() []Entry {
	return m.entries
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []any {
	keys := make([]any, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// MarshalJSON renders the map as a JSON object with keys in insertion order.
// Non-string keys are rendered with their default string formatting, since
// JSON objects only admit string keys.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, ok := e.Key.(string)
		if !ok {
			key = fmt.Sprint(e.Key)
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')

		vb, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// isComparable reports whether key can be used as a Go map key.
func isComparable(key any) bool {
	if key == nil {
		return true
	}
	return reflect.TypeOf(key).Comparable()
}
