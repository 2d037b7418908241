package erd

import (
	"fmt"

	"github.com/matzehuels/yaml2erd/pkg/config"
	"github.com/matzehuels/yaml2erd/pkg/errors"
	"github.com/matzehuels/yaml2erd/pkg/idmap"
	"github.com/matzehuels/yaml2erd/pkg/schema"
)

// EdgeSeparator joins the two encoded identifiers of an edge identifier.
const EdgeSeparator = "_"

// Node is one entity of the diagram.
type Node struct {
	ID    string
	Table string
	Label string
	Attrs config.Attrs
}

// Edge is one drawn relation.
type Edge struct {
	ID    string
	From  string
	To    string
	Kind  schema.RelationKind
	Attrs config.Attrs
}

// Subgraph is the cluster drawn around the tables of one group.
type Subgraph struct {
	ID    string
	Group string
	Attrs config.Attrs

	// NodeDefaults repeats the entity defaults because nested scopes in
	// Graphviz do not inherit them.
	NodeDefaults config.Attrs

	// Members lists encoded node identifiers in group member order.
	Members []string
}

// GraphSpec is everything the renderer needs to draw the diagram.
type GraphSpec struct {
	Global       config.Attrs
	NodeDefaults config.Attrs
	Nodes        []Node
	Edges        []Edge
	Subgraphs    []Subgraph

	// Undeclared lists relation targets that are not tables of the schema,
	// in first-seen order. Graphviz draws them as bare nodes.
	Undeclared []string
}

// Node returns the node of a table.
func (g *GraphSpec) Node(table string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.Table == table {
			return n, true
		}
	}
	return Node{}, false
}

// Option configures [Build].
type Option func(*options)

type options struct {
	header Header
}

// WithHeader replaces the column header row of every entity label.
func WithHeader(h Header) Option {
	return func(o *options) { o.header = h }
}

// Build turns a parsed schema into a graph specification. Identifiers are
// allocated from ids in traversal order: each table, then its drawn
// relation targets.
//
// A table whose columns are not a mapping aborts the build with an
// INVALID_SCHEMA error naming the table; no partial graph is returned.
func Build(doc *schema.Document, ids *idmap.Map, conf *config.Resolved, opts ...Option) (*GraphSpec, error) {
	o := options{header: DefaultHeader}
	for _, opt := range opts {
		opt(&o)
	}

	spec := &GraphSpec{
		Global:       conf.Global,
		NodeDefaults: conf.Entity,
	}
	undeclared := make(map[string]bool)

	for _, name := range doc.Tables {
		m, ok := doc.Model(name)
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "table %s listed without a model", name)
		}
		if !m.HasColumnMapping() {
			return nil, errors.New(errors.ErrCodeInvalidSchema,
				"table %s: columns must be a mapping of column name to detail, got %s", name, columnsKind(m))
		}

		from := ids.Encode(name)
		spec.Nodes = append(spec.Nodes, Node{
			ID:    from,
			Table: name,
			Label: Label(m, o.header),
			Attrs: conf.Entity,
		})

		for _, rel := range m.Relations {
			if !rel.Kind.Drawn() {
				continue
			}
			to := ids.Encode(rel.Target)
			spec.Edges = append(spec.Edges, Edge{
				ID:    from + EdgeSeparator + to,
				From:  from,
				To:    to,
				Kind:  rel.Kind,
				Attrs: conf.Arrow(rel.Kind),
			})
			if _, declared := doc.Model(rel.Target); !declared && !undeclared[rel.Target] {
				undeclared[rel.Target] = true
				spec.Undeclared = append(spec.Undeclared, rel.Target)
			}
		}
	}

	for i, g := range doc.Groups {
		attrs := conf.Group.With("label", g.Name)
		if color, ok := doc.GroupColor(g.Name); ok && color != "" {
			attrs = attrs.With("bgcolor", color)
		}
		members := make([]string, len(g.Members))
		for j, table := range g.Members {
			members[j] = ids.Encode(table)
		}
		spec.Subgraphs = append(spec.Subgraphs, Subgraph{
			ID:           fmt.Sprintf("cluster_%d", i),
			Group:        g.Name,
			Attrs:        attrs,
			NodeDefaults: conf.Entity,
			Members:      members,
		})
	}
	return spec, nil
}

func columnsKind(m *schema.Model) string {
	if m.Columns == nil {
		return "nothing"
	}
	return m.Columns.Kind.String()
}
