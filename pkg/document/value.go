package document

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies the shape of a [Value].
type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "null"
	}
}

// YAML core schema tags carried by scalars.
const (
	TagString = "!!str"
	TagBool   = "!!bool"
	TagInt    = "!!int"
	TagFloat  = "!!float"
	TagNull   = "!!null"
)

// Entry is one key/value pair of a mapping.
type Entry struct {
	Key   string
	Value *Value
}

// Value is a decoded document node. Exactly one of Text (scalars), Entries
// (mappings) or Items (sequences) is meaningful, as selected by Kind.
//
// A nil *Value behaves like a null value for all read accessors.
type Value struct {
	Kind    Kind
	Tag     string
	Text    string
	Entries []Entry
	Items   []*Value

	// Plain marks a scalar written unquoted in YAML source.
	Plain bool
}

// Null returns a new null value.
func Null() *Value { return &Value{Kind: KindNull, Tag: TagNull} }

// String returns a new string scalar.
func String(s string) *Value { return &Value{Kind: KindScalar, Tag: TagString, Text: s} }

// Bool returns a new boolean scalar.
func Bool(b bool) *Value {
	if b {
		return &Value{Kind: KindScalar, Tag: TagBool, Text: "true"}
	}
	return &Value{Kind: KindScalar, Tag: TagBool, Text: "false"}
}

// Int returns a new integer scalar.
func Int(n int64) *Value {
	return &Value{Kind: KindScalar, Tag: TagInt, Text: fmt.Sprintf("%d", n)}
}

// Mapping returns a new mapping holding entries in the given order.
func Mapping(entries ...Entry) *Value {
	return &Value{Kind: KindMapping, Entries: entries}
}

// Sequence returns a new sequence holding items in the given order.
func Sequence(items ...*Value) *Value {
	return &Value{Kind: KindSequence, Items: items}
}

func (v *Value) kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.Kind
}

// IsNull reports whether v is absent or an explicit null.
func (v *Value) IsNull() bool { return v.kind() == KindNull }

// IsScalar reports whether v is a scalar.
func (v *Value) IsScalar() bool { return v.kind() == KindScalar }

// IsMapping reports whether v is a key-ordered mapping.
func (v *Value) IsMapping() bool { return v.kind() == KindMapping }

// IsSequence reports whether v is a sequence.
func (v *Value) IsSequence() bool { return v.kind() == KindSequence }

// Len returns the number of entries or items; scalars and nulls have length 0.
func (v *Value) Len() int {
	switch v.kind() {
	case KindMapping:
		return len(v.Entries)
	case KindSequence:
		return len(v.Items)
	}
	return 0
}

// Get looks up key in a mapping. It returns false for non-mappings.
func (v *Value) Get(key string) (*Value, bool) {
	if !v.IsMapping() {
		return nil, false
	}
	for _, e := range v.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Lookup follows a path of mapping keys.
func (v *Value) Lookup(path ...string) (*Value, bool) {
	cur := v
	for _, key := range path {
		next, ok := cur.Get(key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Keys returns the mapping keys in document order.
func (v *Value) Keys() []string {
	if !v.IsMapping() {
		return nil
	}
	keys := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Str returns the scalar text of v, or "" for anything that is not a scalar.
func (v *Value) Str() string {
	if !v.IsScalar() {
		return ""
	}
	return v.Text
}

// StrAt returns the scalar text stored under key, or "".
func (v *Value) StrAt(key string) string {
	child, _ := v.Get(key)
	return child.Str()
}

// IsBlank reports whether v is null, an empty collection, or a whitespace-only scalar.
func (v *Value) IsBlank() bool {
	switch v.kind() {
	case KindScalar:
		return strings.TrimSpace(v.Text) == ""
	case KindMapping, KindSequence:
		return v.Len() == 0
	}
	return true
}

// Truthy reports whether v is a present, non-blank scalar that is not false.
// False is a !!bool false or an unquoted YAML 1.1 "no" or "off"; quoted
// strings are always true.
func (v *Value) Truthy() bool {
	if !v.IsScalar() || v.IsBlank() {
		return false
	}
	text := strings.ToLower(strings.TrimSpace(v.Text))
	if v.Tag == TagBool {
		return text != "false"
	}
	if v.Plain && (text == "no" || text == "off") {
		return false
	}
	return true
}

// Set replaces the value stored under key, appending a new entry when key is
// absent. It panics if v is not a mapping.
func (v *Value) Set(key string, child *Value) {
	if !v.IsMapping() {
		panic("document: Set on " + v.kind().String())
	}
	for i := range v.Entries {
		if v.Entries[i].Key == key {
			v.Entries[i].Value = child
			return
		}
	}
	v.Entries = append(v.Entries, Entry{Key: key, Value: child})
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	out := &Value{Kind: v.Kind, Tag: v.Tag, Text: v.Text, Plain: v.Plain}
	if v.Entries != nil {
		out.Entries = make([]Entry, len(v.Entries))
		for i, e := range v.Entries {
			out.Entries[i] = Entry{Key: e.Key, Value: e.Value.Clone()}
		}
	}
	if v.Items != nil {
		out.Items = make([]*Value, len(v.Items))
		for i, item := range v.Items {
			out.Items[i] = item.Clone()
		}
	}
	return out
}

// Equal reports whether a and b have the same shape, keys, order and scalar text.
func Equal(a, b *Value) bool {
	if a.kind() != b.kind() {
		return false
	}
	switch a.kind() {
	case KindScalar:
		return a.Text == b.Text
	case KindMapping:
		if len(a.Entries) != len(b.Entries) {
			return false
		}
		for i := range a.Entries {
			if a.Entries[i].Key != b.Entries[i].Key || !Equal(a.Entries[i].Value, b.Entries[i].Value) {
				return false
			}
		}
	case KindSequence:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
	}
	return true
}

// =============================================================================
// Decoding
// =============================================================================

// Parse decodes a single YAML document. An empty input yields a null value.
func Parse(data []byte) (*Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return Null(), nil
	}
	return FromNode(&root)
}

// MustParse is like Parse but panics on error. It is meant for compiled-in documents.
func MustParse(src string) *Value {
	v, err := Parse([]byte(src))
	if err != nil {
		panic(fmt.Sprintf("document: parse compiled-in document: %v", err))
	}
	return v
}

// FromNode converts a yaml.v3 node tree. Aliases are resolved and merge keys
// ("<<") are expanded without overriding explicit keys.
//
// A tree may expand to at most maxExpansion times the number of nodes written
// in the source; past that it fails with an excessive aliasing error.
func FromNode(n *yaml.Node) (*Value, error) {
	d := &decoder{budget: maxExpansion*countNodes(n) + minBudget}
	return d.node(n, 0)
}

const (
	// maxAliasDepth bounds alias nesting so that recursive anchors fail instead of looping.
	maxAliasDepth = 64

	// maxExpansion bounds how many values a document may decode to, relative
	// to its source node count.
	maxExpansion = 10
	minBudget    = 1000
)

// errExcessiveAliasing is returned when alias expansion exceeds the budget.
var errExcessiveAliasing = errors.New("excessive aliasing")

// decoder converts one node tree, charging every produced value against budget.
type decoder struct {
	budget int
}

// countNodes counts the nodes written in the source without following aliases.
func countNodes(n *yaml.Node) int {
	if n == nil {
		return 0
	}
	count := 1
	for _, c := range n.Content {
		count += countNodes(c)
	}
	return count
}

func (d *decoder) charge(n *yaml.Node) error {
	d.budget--
	if d.budget < 0 {
		return fmt.Errorf("line %d: %w", n.Line, errExcessiveAliasing)
	}
	return nil
}

func (d *decoder) node(n *yaml.Node, depth int) (*Value, error) {
	if n == nil {
		return Null(), nil
	}
	if depth > maxAliasDepth {
		return nil, fmt.Errorf("line %d: alias nesting too deep", n.Line)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return d.node(n.Content[0], depth)

	case yaml.AliasNode:
		return d.node(n.Alias, depth+1)

	case yaml.ScalarNode:
		if err := d.charge(n); err != nil {
			return nil, err
		}
		tag := n.ShortTag()
		if tag == TagNull {
			return Null(), nil
		}
		plain := n.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) == 0
		return &Value{Kind: KindScalar, Tag: tag, Text: n.Value, Plain: plain}, nil

	case yaml.SequenceNode:
		if err := d.charge(n); err != nil {
			return nil, err
		}
		out := &Value{Kind: KindSequence, Items: make([]*Value, 0, len(n.Content))}
		for _, c := range n.Content {
			item, err := d.node(c, depth)
			if err != nil {
				return nil, err
			}
			out.Items = append(out.Items, item)
		}
		return out, nil

	case yaml.MappingNode:
		if err := d.charge(n); err != nil {
			return nil, err
		}
		return d.mapping(n, depth)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}

func (d *decoder) mapping(n *yaml.Node, depth int) (*Value, error) {
	out := &Value{Kind: KindMapping, Entries: make([]Entry, 0, len(n.Content)/2)}
	var merges []*Value

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		val, err := d.node(v, depth)
		if err != nil {
			return nil, err
		}
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			merges = append(merges, val)
			continue
		}
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		if _, dup := out.Get(k.Value); dup {
			return nil, fmt.Errorf("line %d: duplicate key %q", k.Line, k.Value)
		}
		out.Entries = append(out.Entries, Entry{Key: k.Value, Value: val})
	}

	for _, m := range merges {
		sources := []*Value{m}
		if m.IsSequence() {
			sources = m.Items
		}
		for _, src := range sources {
			for _, e := range src.Entries {
				if _, ok := out.Get(e.Key); !ok {
					out.Entries = append(out.Entries, Entry{Key: e.Key, Value: e.Value.Clone()})
				}
			}
		}
	}
	return out, nil
}

// FromAny converts the generic maps, slices and scalars produced by decoders
// such as encoding/json or BurntSushi/toml. Map keys are sorted because Go maps
// carry no order.
func FromAny(x any) (*Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case *Value:
		return t.Clone(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float64:
		return &Value{Kind: KindScalar, Tag: TagFloat, Text: fmt.Sprintf("%g", t)}, nil
	case fmt.Stringer:
		return String(t.String()), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := Mapping()
		for _, k := range keys {
			child, err := FromAny(t[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out.Entries = append(out.Entries, Entry{Key: k, Value: child})
		}
		return out, nil
	case []map[string]any:
		out := Sequence()
		for _, m := range t {
			child, err := FromAny(m)
			if err != nil {
				return nil, err
			}
			out.Items = append(out.Items, child)
		}
		return out, nil
	case []any:
		out := Sequence()
		for _, item := range t {
			child, err := FromAny(item)
			if err != nil {
				return nil, err
			}
			out.Items = append(out.Items, child)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value of type %T", x)
}

// =============================================================================
// Encoding
// =============================================================================

// Node converts v back into a yaml.v3 node tree.
func (v *Value) Node() *yaml.Node {
	switch v.kind() {
	case KindScalar:
		n := &yaml.Node{Kind: yaml.ScalarNode, Tag: v.Tag, Value: v.Text}
		if n.Tag == "" {
			n.Tag = TagString
		}
		return n
	case KindMapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.Entries {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: TagString, Value: e.Key},
				e.Value.Node())
		}
		return n
	case KindSequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items {
			n.Content = append(n.Content, item.Node())
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: TagNull, Value: "null"}
}

// MarshalYAML implements yaml.Marshaler, preserving mapping order.
func (v *Value) MarshalYAML() (any, error) {
	return v.Node(), nil
}

// Encode renders v as YAML with two-space indentation.
func Encode(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v.Node()); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
