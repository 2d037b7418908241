package introspect

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/yaml2erd/pkg/document"
	"github.com/matzehuels/yaml2erd/pkg/schema"
)

func TestCatalogDocument(t *testing.T) {
	cat := &Catalog{
		Tables: []Table{
			{
				Name:    "users",
				Comment: "People",
				Columns: []Column{
					{Name: "id", Type: "bigint", PrimaryKey: true},
					{Name: "nick", Type: "text", Nullable: true, Comment: "shown name"},
				},
			},
			{
				Name: "follows",
				Columns: []Column{
					{Name: "follower_id", Type: "bigint"},
					{Name: "followee_id", Type: "bigint"},
					{Name: "since", Type: "date", Nullable: true, Default: sql.NullString{String: "now()", Valid: true}},
				},
			},
		},
		ForeignKeys: []ForeignKey{
			{"follows", "follower_id", "users", "id"},
			{"follows", "followee_id", "users", "id"},
		},
	}

	want := document.MustParse(`
models:
  users:
    description: People
    columns:
      id:
        type: bigint
        options: {primary_key: true, not_null: true}
      nick:
        type: text
        description: shown name
    relations:
      - has_many: follows
  follows:
    columns:
      follower_id:
        type: bigint
        options: {foreign_key: true, not_null: true}
      followee_id:
        type: bigint
        options: {foreign_key: true, not_null: true}
      since:
        type: date
        options: {default: now()}
    relations:
      - belongs_to: users
`)
	got := cat.Document()
	if !document.Equal(got, want) {
		out, _ := document.Encode(got)
		t.Errorf("Document() =\n%s", out)
	}
}

func TestCatalogDocumentSelfReference(t *testing.T) {
	cat := &Catalog{
		Tables:      []Table{{Name: "nodes", Columns: []Column{{Name: "parent_id", Type: "int", Nullable: true}}}},
		ForeignKeys: []ForeignKey{{"nodes", "parent_id", "nodes", "id"}},
	}
	doc, err := schema.Parse(cat.Document())
	require.NoError(t, err)

	m, _ := doc.Model("nodes")
	assert.Equal(t, []schema.Relation{
		{Kind: schema.BelongsTo, Target: "nodes"},
		{Kind: schema.HasMany, Target: "nodes"},
	}, m.Relations)
	assert.True(t, m.ParsedColumns[0].Options.ForeignKey)
}

func TestCatalogDocumentEmpty(t *testing.T) {
	doc, err := schema.Parse((&Catalog{}).Document())
	require.NoError(t, err)
	assert.Empty(t, doc.Tables)
}
