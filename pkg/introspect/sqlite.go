package introspect

import (
	"context"
	"database/sql"
)

type sqliteReader struct {
	db *sql.DB
}

func (r *sqliteReader) tables(ctx context.Context) ([]Table, error) {
	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`
	var tables []Table
	err := scanAll(ctx, r.db, query, nil, func(rows *sql.Rows) error {
		var t Table
		if err := rows.Scan(&t.Name); err != nil {
			return err
		}
		tables = append(tables, t)
		return nil
	})
	return tables, err
}

func (r *sqliteReader) columns(ctx context.Context, table string) ([]Column, error) {
	query := `SELECT name, type, "notnull", pk, dflt_value FROM pragma_table_info(?) ORDER BY cid`
	var cols []Column
	err := scanAll(ctx, r.db, query, []any{table}, func(rows *sql.Rows) error {
		var (
			c       Column
			notNull int
			pk      int
		)
		if err := rows.Scan(&c.Name, &c.Type, &notNull, &pk, &c.Default); err != nil {
			return err
		}
		c.Nullable = notNull == 0
		c.PrimaryKey = pk > 0
		cols = append(cols, c)
		return nil
	})
	return cols, err
}

func (r *sqliteReader) foreignKeys(ctx context.Context, tables []Table) ([]ForeignKey, error) {
	query := `SELECT "from", "table", "to" FROM pragma_foreign_key_list(?) ORDER BY id, seq`
	var fks []ForeignKey
	for _, t := range tables {
		err := scanAll(ctx, r.db, query, []any{t.Name}, func(rows *sql.Rows) error {
			fk := ForeignKey{FromTable: t.Name}
			var to sql.NullString
			if err := rows.Scan(&fk.FromColumn, &fk.ToTable, &to); err != nil {
				return err
			}
			fk.ToColumn = to.String
			fks = append(fks, fk)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return fks, nil
}
