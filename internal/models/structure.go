package models

import "strings"

// Entry is one row of a StructureMap: a path, the shape seen there and how
// many times it was seen.
type Entry struct {
	Path  string `json:"path" yaml:"path"`
	Shape string `json:"shape" yaml:"shape"`
	Count int    `json:"count" yaml:"count"`
}

// Key returns the composite "<path> (<shape>)" key of the entry.
func (e Entry) Key() string {
	return Key(e.Path, e.Shape)
}

// StructureMap counts (path, shape) occurrences and remembers the order in
// which each key was first seen. The zero value is not usable; call
// NewStructureMap.
type StructureMap struct {
	entries []Entry
	index   map[string]int
}

// NewStructureMap returns an empty StructureMap.
func NewStructureMap() *StructureMap {
	return &StructureMap{index: make(map[string]int)}
}

// Key renders the composite key for a path and shape tag.
func Key(path, shape string) string {
	return path + " (" + shape + ")"
}

// SplitKey is the inverse of Key. The split happens at the last " (" since
// object keys may themselves contain that sequence but shape tags never do.
func SplitKey(key string) (path, shape string, ok bool) {
	i := strings.LastIndex(key, " (")
	if i < 0 || !strings.HasSuffix(key, ")") {
		return "", "", false
	}
	return key[:i], key[i+2 : len(key)-1], true
}

// Inc adds one occurrence of shape at path.
func (m *StructureMap) Inc(path, shape string) {
	key := Key(path, shape)
	if i, ok := m.index[key]; ok {
		m.entries[i].Count++
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Path: path, Shape: shape, Count: 1})
}

// Count returns the count stored under a composite key.
func (m *StructureMap) Count(key string) int {
	if i, ok := m.index[key]; ok {
		return m.entries[i].Count
	}
	return 0
}

// Len returns the number of distinct keys.
func (m *StructureMap) Len() int {
	return len(m.entries)
}

// Keys returns the composite keys in insertion order.
func (m *StructureMap) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key()
	}
	return keys
}

// Entries returns a copy of the entries in insertion order.
func (m *StructureMap) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Total returns the sum of all counts, which equals the number of visited nodes.
func (m *StructureMap) Total() int {
	total := 0
	for _, e := range m.entries {
		total += e.Count
	}
	return total
}

// Equal reports whether both maps hold the same entries in the same order.
func (m *StructureMap) Equal(other *StructureMap) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.entries) != len(other.entries) {
		return false
	}
	for i := range m.entries {
		if m.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}
