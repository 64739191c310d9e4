package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"

	"sentiment-lab/internal/storage"
	"sentiment-lab/internal/table"
)

// chErrUnknownTable is UNKNOWN_TABLE.
const chErrUnknownTable = 60

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// TableStore implements storage.TableStore using ClickHouse.
type TableStore struct {
	conn *Conn
}

// NewTableStore creates a new ClickHouse table store.
func NewTableStore(conn *Conn) *TableStore {
	return &TableStore{conn: conn}
}

// LoadTable reads every row of name ("table" or "database.table"). Each column
// is rendered with toString; NULL becomes an empty cell.
func (s *TableStore) LoadTable(ctx context.Context, name string) (*table.Table, error) {
	from, err := quoteTableName(name)
	if err != nil {
		return nil, err
	}

	columns, err := s.columns(ctx, name, from)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return table.New(nil, nil), nil
	}

	selects := make([]string, len(columns))
	for i, c := range columns {
		selects[i] = fmt.Sprintf("ifNull(toString(%s), '')", quoteIdent(c))
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(selects, ", "), from)

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, wrapQueryError(name, err)
	}
	defer rows.Close()

	var data [][]string
	for rows.Next() {
		row := make([]string, len(columns))
		dest := make([]any, len(columns))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", name, err)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryError(name, err)
	}

	return table.New(columns, data), nil
}

func (s *TableStore) columns(ctx context.Context, name, from string) ([]string, error) {
	rows, err := s.conn.Query(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0", from))
	if err != nil {
		return nil, wrapQueryError(name, err)
	}
	defer rows.Close()
	return rows.Columns(), nil
}

// ListTables returns tables of the current database, sorted.
func (s *TableStore) ListTables(ctx context.Context) ([]string, error) {
	rows, err := s.conn.Query(ctx, `SELECT name FROM system.tables WHERE database = currentDatabase()`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// quoteTableName validates a plain table name and back-quotes each part.
func quoteTableName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if !tableNamePattern.MatchString(name) {
		return "", fmt.Errorf("%w: table name %q", storage.ErrInvalidInput, name)
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = quoteIdent(p)
	}
	return strings.Join(parts, "."), nil
}

// quoteIdent back-quotes an identifier, escaping backslashes and back-quotes.
// Column names from spreadsheets ("Closed PnL") pass through unchanged.
func quoteIdent(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	return "`" + s + "`"
}

func wrapQueryError(name string, err error) error {
	var exc *clickhouse.Exception
	if errors.As(err, &exc) && exc.Code == chErrUnknownTable {
		return fmt.Errorf("table %s: %w", name, storage.ErrNotFound)
	}
	return fmt.Errorf("query %s: %w", name, err)
}

var _ storage.TableStore = (*TableStore)(nil)
