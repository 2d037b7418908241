package config

// Attr is one Graphviz attribute.
type Attr struct {
	Key   string
	Value string
}

// Attrs is an ordered attribute list. Order follows the configuration tree so
// that generated DOT output is stable.
type Attrs []Attr

// Get returns the value of key.
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// With returns a copy of a with key set to value, replacing an existing entry
// in place or appending a new one.
func (a Attrs) With(key, value string) Attrs {
	out := make(Attrs, len(a), len(a)+1)
	copy(out, a)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Attr{Key: key, Value: value})
}

// Map returns the attributes as a map.
func (a Attrs) Map() map[string]string {
	m := make(map[string]string, len(a))
	for _, attr := range a {
		m[attr.Key] = attr.Value
	}
	return m
}
