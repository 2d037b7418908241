package schema

import (
	"os"

	"github.com/matzehuels/yaml2erd/pkg/document"
	"github.com/matzehuels/yaml2erd/pkg/errors"
)

// Group is a named cluster of tables, listed in table declaration order.
type Group struct {
	Name    string
	Members []string
}

// Document is a parsed schema file.
type Document struct {
	// Tables lists table names in document order.
	Tables []string

	// Models maps table name to its model.
	Models map[string]*Model

	// Groups lists groups in order of first use by a table.
	Groups []Group

	// GroupColors maps group name to the bgcolor declared in the top-level
	// groups list. Groups used by tables but never declared have no entry.
	GroupColors map[string]string
}

// Model returns the model of table name.
func (d *Document) Model(name string) (*Model, bool) {
	m, ok := d.Models[name]
	return m, ok
}

// GroupColor returns the declared background color of a group.
func (d *Document) GroupColor(name string) (string, bool) {
	c, ok := d.GroupColors[name]
	return c, ok
}

// GroupMembers returns the member tables of a group, or nil for unknown groups.
func (d *Document) GroupMembers(name string) []string {
	for _, g := range d.Groups {
		if g.Name == name {
			return g.Members
		}
	}
	return nil
}

// LoadFile reads and parses a schema file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "schema file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read schema file %s", path)
	}
	return ParseBytes(data)
}

// ParseBytes decodes YAML data and parses it as a schema document.
func ParseBytes(data []byte) (*Document, error) {
	root, err := document.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode schema")
	}
	return Parse(root)
}

// Parse builds a Document from a decoded schema.
//
// Only the document's structure is checked here: models must be a mapping of
// table name to table mapping. Whether each table's columns are well formed is
// left to the diagram builder.
func Parse(root *document.Value) (*Document, error) {
	if !root.IsMapping() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "schema must be a mapping, got %s", kindOf(root))
	}
	models, ok := root.Get("models")
	if !ok || !models.IsMapping() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "schema must define models as a mapping of tables")
	}

	doc := &Document{
		Tables:      make([]string, 0, models.Len()),
		Models:      make(map[string]*Model, models.Len()),
		GroupColors: make(map[string]string),
	}
	for _, e := range models.Entries {
		if err := errors.ValidateTableName(e.Key); err != nil {
			return nil, err
		}
		if !e.Value.IsMapping() {
			return nil, errors.New(errors.ErrCodeInvalidSchema, "table %s must be a mapping with columns, got %s", e.Key, kindOf(e.Value))
		}
		doc.Tables = append(doc.Tables, e.Key)
		doc.Models[e.Key] = NewModel(e.Key, e.Value)
	}

	doc.Groups = collectGroups(doc.Tables, doc.Models)
	if groups, ok := root.Get("groups"); ok {
		readGroupColors(groups, doc.GroupColors)
	}
	return doc, nil
}

func collectGroups(tables []string, models map[string]*Model) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, name := range tables {
		m := models[name]
		if !m.Grouped() {
			continue
		}
		i, ok := index[m.Group]
		if !ok {
			i = len(groups)
			index[m.Group] = i
			groups = append(groups, Group{Name: m.Group})
		}
		groups[i].Members = append(groups[i].Members, name)
	}
	return groups
}

// readGroupColors reads the top-level groups list. Entries without a name are
// skipped; a later declaration of the same name replaces an earlier one.
func readGroupColors(v *document.Value, colors map[string]string) {
	for _, item := range v.Items {
		name := item.StrAt("name")
		if name == "" {
			continue
		}
		colors[name] = item.StrAt("bgcolor")
	}
}

func kindOf(v *document.Value) string {
	if v == nil {
		return document.KindNull.String()
	}
	return v.Kind.String()
}
