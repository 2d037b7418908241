package introspect

import (
	"context"
	"database/sql"
)

type mysqlReader struct {
	db     *sql.DB
	schema string
}

// mysqlSchema falls back to DATABASE() when no schema was given.
const mysqlSchema = `COALESCE(NULLIF(?, ''), DATABASE())`

func (r *mysqlReader) tables(ctx context.Context) ([]Table, error) {
	query := `
		SELECT TABLE_NAME, COALESCE(TABLE_COMMENT, '')
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = ` + mysqlSchema + ` AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME
	`
	var tables []Table
	err := scanAll(ctx, r.db, query, []any{r.schema}, func(rows *sql.Rows) error {
		var t Table
		if err := rows.Scan(&t.Name, &t.Comment); err != nil {
			return err
		}
		tables = append(tables, t)
		return nil
	})
	return tables, err
}

func (r *mysqlReader) columns(ctx context.Context, table string) ([]Column, error) {
	query := `
		SELECT
			COLUMN_NAME,
			COLUMN_TYPE,
			IS_NULLABLE = 'YES',
			COLUMN_KEY = 'PRI',
			COLUMN_DEFAULT,
			COALESCE(COLUMN_COMMENT, '')
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = ` + mysqlSchema + ` AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`
	var cols []Column
	err := scanAll(ctx, r.db, query, []any{r.schema, table}, func(rows *sql.Rows) error {
		var c Column
		if err := rows.Scan(&c.Name, &c.Type, &c.Nullable, &c.PrimaryKey, &c.Default, &c.Comment); err != nil {
			return err
		}
		cols = append(cols, c)
		return nil
	})
	return cols, err
}

func (r *mysqlReader) foreignKeys(ctx context.Context, _ []Table) ([]ForeignKey, error) {
	query := `
		SELECT TABLE_NAME, COLUMN_NAME, REFERENCED_TABLE_NAME, REFERENCED_COLUMN_NAME
		FROM INFORMATION_SCHEMA.KEY_COLUMN_USAGE
		WHERE TABLE_SCHEMA = ` + mysqlSchema + ` AND REFERENCED_TABLE_NAME IS NOT NULL
		ORDER BY TABLE_NAME, CONSTRAINT_NAME, ORDINAL_POSITION
	`
	var fks []ForeignKey
	err := scanAll(ctx, r.db, query, []any{r.schema}, func(rows *sql.Rows) error {
		var fk ForeignKey
		if err := rows.Scan(&fk.FromTable, &fk.FromColumn, &fk.ToTable, &fk.ToColumn); err != nil {
			return err
		}
		fks = append(fks, fk)
		return nil
	})
	return fks, err
}
