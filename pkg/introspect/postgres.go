package introspect

import (
	"context"
	"database/sql"
)

type postgresReader struct {
	db     *sql.DB
	schema string
}

func (r *postgresReader) tables(ctx context.Context) ([]Table, error) {
	query := `
		SELECT
			t.table_name,
			COALESCE(obj_description(format('%I.%I', t.table_schema, t.table_name)::regclass, 'pg_class'), '')
		FROM information_schema.tables t
		WHERE t.table_schema = $1 AND t.table_type = 'BASE TABLE'
		ORDER BY t.table_name
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

func (r *postgresReader) columns(ctx context.Context, table string) ([]Column, error) {
	query := `
		SELECT
			c.column_name,
			c.data_type,
			c.is_nullable = 'YES',
			EXISTS (
				SELECT 1
				FROM information_schema.table_constraints tc
				JOIN information_schema.key_column_usage kcu
					ON tc.constraint_name = kcu.constraint_name
					AND tc.table_schema = kcu.table_schema
				WHERE tc.constraint_type = 'PRIMARY KEY'
					AND tc.table_schema = c.table_schema
					AND tc.table_name = c.table_name
					AND kcu.column_name = c.column_name
			),
			c.column_default,
			COALESCE(col_description(format('%I.%I', c.table_schema, c.table_name)::regclass, c.ordinal_position), '')
		FROM information_schema.columns c
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position
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

func (r *postgresReader) foreignKeys(ctx context.Context, _ []Table) ([]ForeignKey, error) {
	query := `
		SELECT
			tc.table_name,
			kcu.column_name,
			ccu.table_name AS foreign_table_name,
			ccu.column_name AS foreign_column_name
		FROM information_schema.table_constraints AS tc
		JOIN information_schema.key_column_usage AS kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage AS ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND tc.table_schema = $1
		ORDER BY tc.table_name, tc.constraint_name, kcu.ordinal_position
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
