package introspect

import (
	"strings"

	"github.com/matzehuels/yaml2erd/pkg/document"
	"github.com/matzehuels/yaml2erd/pkg/schema"
)

type relation struct {
	kind   schema.RelationKind
	target string
}

// Document renders the catalog as a schema document:
//
//	models:
//	  posts:
//	    description: table comment
//	    columns:
//	      user_id:
//	        type: bigint
//	        options: {foreign_key: true, not_null: true}
//	    relations:
//	      - belongs_to: users
func (c *Catalog) Document() *document.Value {
	fkColumns := make(map[string]bool)
	relations := make(map[string][]relation)
	seen := make(map[string]bool)
	add := func(table string, r relation) {
		key := table + "\x00" + string(r.kind) + "\x00" + r.target
		if seen[key] {
			return
		}
		seen[key] = true
		relations[table] = append(relations[table], r)
	}

	for _, fk := range c.ForeignKeys {
		fkColumns[fk.FromTable+"\x00"+fk.FromColumn] = true
		add(fk.FromTable, relation{schema.BelongsTo, fk.ToTable})
		add(fk.ToTable, relation{schema.HasMany, fk.FromTable})
	}

	models := document.Mapping()
	for _, t := range c.Tables {
		models.Set(t.Name, tableValue(t, fkColumns, relations[t.Name]))
	}
	return document.Mapping(document.Entry{Key: "models", Value: models})
}

func tableValue(t Table, fkColumns map[string]bool, rels []relation) *document.Value {
	v := document.Mapping()
	if comment := strings.TrimSpace(t.Comment); comment != "" {
		v.Set("description", document.String(comment))
	}

	cols := document.Mapping()
	for _, col := range t.Columns {
		cols.Set(col.Name, columnValue(col, fkColumns[t.Name+"\x00"+col.Name]))
	}
	v.Set("columns", cols)

	if len(rels) > 0 {
		items := make([]*document.Value, len(rels))
		for i, r := range rels {
			items[i] = document.Mapping(document.Entry{Key: string(r.kind), Value: document.String(r.target)})
		}
		v.Set("relations", document.Sequence(items...))
	}
	return v
}

func columnValue(col Column, foreignKey bool) *document.Value {
	v := document.Mapping(document.Entry{Key: "type", Value: document.String(col.Type)})

	opts := document.Mapping()
	if col.PrimaryKey {
		opts.Set("primary_key", document.Bool(true))
	}
	if foreignKey {
		opts.Set("foreign_key", document.Bool(true))
	}
	if !col.Nullable {
		opts.Set("not_null", document.Bool(true))
	}
	if col.Default.Valid {
		opts.Set("default", document.String(col.Default.String))
	}
	if opts.Len() > 0 {
		v.Set("options", opts)
	}

	if comment := strings.TrimSpace(col.Comment); comment != "" {
		v.Set("description", document.String(comment))
	}
	return v
}
