package schema

import (
	"strings"

	"github.com/matzehuels/yaml2erd/pkg/document"
)

// RelationKind names the direction of an association between two tables.
type RelationKind string

const (
	HasOne    RelationKind = "has_one"
	HasMany   RelationKind = "has_many"
	BelongsTo RelationKind = "belongs_to"
)

// Drawn reports whether relations of this kind produce an edge. belongs_to is
// the inverse side of a has_one/has_many declared on the other table.
func (k RelationKind) Drawn() bool {
	return k == HasOne || k == HasMany
}

// Relation is one entry of a table's relations list.
type Relation struct {
	Kind   RelationKind
	Target string
}

// Options holds the per-column flags shown in the diagram.
type Options struct {
	PrimaryKey bool
	ForeignKey bool
	NotNull    bool
	Default    string
}

// Column is the flattened view of one column entry.
type Column struct {
	Name        string
	Type        string
	LogicalName string
	Description string
	Options     Options
}

// Model describes one table of the schema.
type Model struct {
	Name string

	// Columns is the raw columns value. It is kept undecoded so the diagram
	// builder can reject tables whose columns are not a mapping.
	Columns *document.Value

	// ParsedColumns lists the columns in declaration order. It is empty when
	// Columns is not a mapping.
	ParsedColumns []Column

	Relations   []Relation
	Group       string
	Description string
}

// NewModel builds a Model from a table's sub-document.
func NewModel(name string, v *document.Value) *Model {
	m := &Model{
		Name:        name,
		Group:       v.StrAt("group"),
		Description: v.StrAt("description"),
	}
	m.Columns, _ = v.Get("columns")
	m.ParsedColumns = parseColumns(m.Columns)
	if rels, ok := v.Get("relations"); ok {
		m.Relations = parseRelations(rels)
	}
	return m
}

// HasColumnMapping reports whether the table's columns are a key-ordered mapping.
func (m *Model) HasColumnMapping() bool {
	return m.Columns.IsMapping()
}

// Grouped reports whether the table belongs to a group. A blank group name
// means no group; any other name is used exactly as written.
func (m *Model) Grouped() bool {
	return strings.TrimSpace(m.Group) != ""
}

func parseColumns(v *document.Value) []Column {
	if !v.IsMapping() {
		return nil
	}
	cols := make([]Column, 0, v.Len())
	for _, e := range v.Entries {
		detail := e.Value
		opts, _ := detail.Get("options")
		def, _ := opts.Get("default")
		cols = append(cols, Column{
			Name:        e.Key,
			Type:        detail.StrAt("type"),
			LogicalName: detail.StrAt("logical_name"),
			Description: detail.StrAt("description"),
			Options: Options{
				PrimaryKey: flag(opts, "primary_key"),
				ForeignKey: flag(opts, "foreign_key"),
				NotNull:    flag(opts, "not_null"),
				Default:    def.Str(),
			},
		})
	}
	return cols
}

func flag(opts *document.Value, key string) bool {
	v, _ := opts.Get(key)
	return v.Truthy()
}

// parseRelations reads a list of {kind: target} entries. Every pair of an
// entry counts, so {has_one: a, has_many: b} yields two relations.
func parseRelations(v *document.Value) []Relation {
	if !v.IsSequence() {
		return nil
	}
	var rels []Relation
	for _, item := range v.Items {
		if !item.IsMapping() {
			continue
		}
		for _, e := range item.Entries {
			if !e.Value.IsScalar() {
				continue
			}
			rels = append(rels, Relation{
				Kind:   RelationKind(e.Key),
				Target: e.Value.Text,
			})
		}
	}
	return rels
}
