package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"sentiment-lab/internal/storage"
	"sentiment-lab/internal/table"
)

// pgErrUndefinedTable is undefined_table.
const pgErrUndefinedTable = "42P01"

// TableStore implements storage.TableStore using PostgreSQL.
type TableStore struct {
	pool *Pool
}

// NewTableStore creates a new PostgreSQL table store.
func NewTableStore(pool *Pool) *TableStore {
	return &TableStore{pool: pool}
}

// LoadTable reads every row of name ("table" or "schema.table"), casting each
// column to text. NULL becomes an empty cell. Rows keep physical order.
func (s *TableStore) LoadTable(ctx context.Context, name string) (*table.Table, error) {
	ident, err := parseIdentifier(name)
	if err != nil {
		return nil, err
	}

	columns, err := s.columns(ctx, ident)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return table.New(nil, nil), nil
	}

	selects := make([]string, len(columns))
	for i, c := range columns {
		selects[i] = pgx.Identifier{c}.Sanitize() + "::text"
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(selects, ", "), ident.Sanitize())

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapQueryError(name, err)
	}
	defer rows.Close()

	var data [][]string
	for rows.Next() {
		cells := make([]*string, len(columns))
		dest := make([]any, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", name, err)
		}

		row := make([]string, len(columns))
		for i, c := range cells {
			if c != nil {
				row[i] = *c
			}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryError(name, err)
	}

	return table.New(columns, data), nil
}

// columns returns the column names of ident in declaration order.
func (s *TableStore) columns(ctx context.Context, ident pgx.Identifier) ([]string, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0", ident.Sanitize()))
	if err != nil {
		return nil, wrapQueryError(strings.Join(ident, "."), err)
	}

	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, wrapQueryError(strings.Join(ident, "."), err)
	}
	return names, nil
}

// ListTables returns base tables and views in the current schema, sorted.
func (s *TableStore) ListTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = current_schema()
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// parseIdentifier splits "schema.table" into a pgx identifier.
func parseIdentifier(name string) (pgx.Identifier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty table name", storage.ErrInvalidInput)
	}
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w: table name %q", storage.ErrInvalidInput, name)
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: table name %q", storage.ErrInvalidInput, name)
		}
	}
	return pgx.Identifier(parts), nil
}

func wrapQueryError(name string, err error) error {
	if isUndefinedTableError(err) {
		return fmt.Errorf("table %s: %w", name, storage.ErrNotFound)
	}
	return fmt.Errorf("query %s: %w", name, err)
}

// isUndefinedTableError checks if error reports a missing relation.
func isUndefinedTableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrUndefinedTable
	}
	return false
}

var _ storage.TableStore = (*TableStore)(nil)
