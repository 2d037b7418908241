// Package idmap assigns short synthetic identifiers to table names.
//
// Table names may contain characters that are unsafe inside generated graph
// identifiers; edge identifiers in particular are built by joining two
// identifiers with a separator. Identifiers are decimal counters starting at
// 1, allocated on first use and never reassigned.
package idmap

import "strconv"

// Map is a memoizing table name → identifier allocator.
// It is not safe for concurrent use.
type Map struct {
	ids   map[string]string
	names []string
}

// New returns an empty Map.
func New() *Map {
	return &Map{ids: make(map[string]string)}
}

// Encode returns the identifier for name, allocating the next one the first
// time name is seen.
func (m *Map) Encode(name string) string {
	if id, ok := m.ids[name]; ok {
		return id
	}
	m.names = append(m.names, name)
	id := strconv.Itoa(len(m.names))
	m.ids[name] = id
	return id
}

// Decode returns the table name an identifier was allocated for.
func (m *Map) Decode(id string) (string, bool) {
	n, err := strconv.Atoi(id)
	if err != nil || n < 1 || n > len(m.names) || strconv.Itoa(n) != id {
		return "", false
	}
	return m.names[n-1], true
}

// Len returns the number of allocated identifiers.
func (m *Map) Len() int {
	return len(m.names)
}

// Names returns table names in allocation order.
func (m *Map) Names() []string {
	return append([]string(nil), m.names...)
}
