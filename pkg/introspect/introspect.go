package introspect

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/matzehuels/yaml2erd/pkg/errors"
	"github.com/matzehuels/yaml2erd/pkg/observability"
)

// Dialect names a supported database.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Dialects lists the supported databases.
var Dialects = []Dialect{MySQL, Postgres, SQLite}

// ParseDialect accepts a dialect name or a common alias.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported database driver %q (want mysql, postgres or sqlite)", s)
}

// driverName returns the database/sql driver registered for d.
func (d Dialect) driverName() string {
	return string(d)
}

// Options configures [Introspect].
type Options struct {
	// Schema is the database (MySQL) or schema (PostgreSQL) to read.
	// Empty means the connection's current database for MySQL and "public"
	// for PostgreSQL. SQLite ignores it.
	Schema string
}

// Table is one base table of the catalog.
type Table struct {
	Name    string
	Comment string
	Columns []Column
}

// Column is one column of a table.
type Column struct {
	Name       string
	Type       string
	Nullable   bool
	PrimaryKey bool
	Default    sql.NullString
	Comment    string
}

// ForeignKey links one column to the column it references.
type ForeignKey struct {
	FromTable  string
	FromColumn string
	ToTable    string
	ToColumn   string
}

// Catalog is everything read from the database, in catalog order.
type Catalog struct {
	Dialect     Dialect
	Tables      []Table
	ForeignKeys []ForeignKey
}

// Open connects to a database and checks the connection.
func Open(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "database DSN is required")
	}
	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, err, "open %s", d)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(errors.ErrCodeDatabase, err, "connect to %s", d)
	}
	return db, nil
}

// reader runs the catalog queries of one dialect.
type reader interface {
	tables(ctx context.Context) ([]Table, error)
	columns(ctx context.Context, table string) ([]Column, error)
	foreignKeys(ctx context.Context, tables []Table) ([]ForeignKey, error)
}

func newReader(db *sql.DB, d Dialect, opts Options) (reader, error) {
	switch d {
	case MySQL:
		return &mysqlReader{db: db, schema: opts.Schema}, nil
	case Postgres:
		schema := opts.Schema
		if schema == "" {
			schema = "public"
		}
		return &postgresReader{db: db, schema: schema}, nil
	case SQLite:
		return &sqliteReader{db: db}, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported database driver %q", d)
}

// Introspect reads every base table, its columns and all foreign keys.
func Introspect(ctx context.Context, db *sql.DB, d Dialect, opts Options) (*Catalog, error) {
	r, err := newReader(db, d, opts)
	if err != nil {
		return nil, err
	}

	hooks := observability.Introspect()
	start := time.Now()
	hooks.OnIntrospectStart(ctx, string(d))

	cat, err := read(ctx, r)
	tables := 0
	if cat != nil {
		cat.Dialect = d
		tables = len(cat.Tables)
	}
	hooks.OnIntrospectComplete(ctx, string(d), tables, time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, err, "introspect %s", d)
	}
	return cat, nil
}

func read(ctx context.Context, r reader) (*Catalog, error) {
	tables, err := r.tables(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tables {
		cols, err := r.columns(ctx, tables[i].Name)
		if err != nil {
			return nil, err
		}
		tables[i].Columns = cols
	}
	fks, err := r.foreignKeys(ctx, tables)
	if err != nil {
		return nil, err
	}
	return &Catalog{Tables: tables, ForeignKeys: fks}, nil
}

// scanAll runs query and calls scan for every row.
func scanAll(ctx context.Context, db *sql.DB, query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
