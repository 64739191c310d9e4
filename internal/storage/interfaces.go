package storage

import (
	"context"

	"sentiment-lab/internal/table"
)

// TableStore provides read access to raw input tables held in a database.
// Cells come back as text so every source feeds the same normalizer.
type TableStore interface {
	// LoadTable reads every row of the named table. Returns ErrNotFound if the
	// table does not exist and ErrInvalidInput for an unusable name.
	LoadTable(ctx context.Context, name string) (*table.Table, error)

	// ListTables returns the table names visible to the store, sorted.
	ListTables(ctx context.Context) ([]string, error)
}
