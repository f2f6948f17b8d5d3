package param

import "sort"

// Entry is a single (key, value) pair in the final ordered output.
type Entry struct {
	Key   Key
	Value Value
}

// Map is a mutable set of parameters keyed by tunable name. Entries()
// renders the canonical ordering; insertion order is not significant.
//
// A Map is also used for the partial override maps produced by the
// profile and IPv6 rule sets.
type Map struct {
	values map[Key]Value
}

// NewMap returns an empty parameter map.
func NewMap() *Map {
	return &Map{values: make(map[Key]Value)}
}

// Set adds or replaces the value for a key. Replacement is whole-value:
// there is no field-level merge within tuple values.
func (m *Map) Set(k Key, v Value) {
	m.values[k] = v
}

// Get returns the value for a key and whether it is present.
func (m *Map) Get(k Key) (Value, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.values) }

// Apply merges the override map into m. Every override key replaces any
// existing value; keys absent from m are added. The override map wins.
func (m *Map) Apply(overrides *Map) {
	if overrides == nil {
		return
	}
	for k, v := range overrides.values {
		m.values[k] = v
	}
}

// Keys returns all keys sorted in lexicographic byte order.
func (m *Map) Keys() []Key {
	keys := make([]Key, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Entries returns all entries sorted by key in lexicographic byte order.
func (m *Map) Entries() []Entry {
	keys := m.Keys()
	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{Key: k, Value: m.values[k]}
	}
	return entries
}
