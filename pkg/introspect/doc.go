// Package introspect reads table definitions from a live database and turns
// them into a schema document that yaml2erd can draw.
//
// # Supported Databases
//
//   - mysql: INFORMATION_SCHEMA (github.com/go-sql-driver/mysql)
//   - postgres: information_schema plus pg_description comments (github.com/lib/pq)
//   - sqlite: pragma_table_info and pragma_foreign_key_list (modernc.org/sqlite)
//
// # Relations
//
// Each foreign key A.x → B.y marks A.x as a foreign key column and adds
// belongs_to: B to A and has_many: A to B. Composite keys yield one relation.
//
//	db, err := introspect.Open(ctx, introspect.Postgres, dsn)
//	cat, err := introspect.Introspect(ctx, db, introspect.Postgres, introspect.Options{})
//	out, err := document.Encode(cat.Document())
package introspect
