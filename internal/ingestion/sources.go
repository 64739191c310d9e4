package ingestion

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"sentiment-lab/internal/storage"
	"sentiment-lab/internal/table"
)

// Source provides one raw input table.
type Source interface {
	// Load reads the whole table. Cells are raw text; nothing is parsed.
	Load(ctx context.Context) (*table.Table, error)

	// Kind names the backing system ("file", "postgres", ...) for metrics and logs.
	Kind() string

	// String describes the source for error messages.
	String() string
}

// FileSource reads a CSV, TSV or XLSX file.
type FileSource struct {
	Path  string
	Sheet string // xlsx only; empty selects the first sheet with a header row
}

// NewFileSource creates a file source.
func NewFileSource(path, sheet string) *FileSource {
	return &FileSource{Path: path, Sheet: sheet}
}

// Load reads the file. The context is checked before reading.
func (s *FileSource) Load(ctx context.Context) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Path == "" {
		return nil, fmt.Errorf("file source: %w: empty path", storage.ErrInvalidInput)
	}
	if strings.EqualFold(filepath.Ext(s.Path), ".xlsx") {
		return table.ReadXLSX(s.Path, s.Sheet)
	}
	return table.ReadFile(s.Path)
}

func (s *FileSource) Kind() string { return "file" }

func (s *FileSource) String() string { return s.Path }

// StoreSource reads a named table from a storage.TableStore.
type StoreSource struct {
	Store storage.TableStore
	Table string
	kind  string
}

// NewStoreSource creates a store source. kind labels the store for metrics.
func NewStoreSource(store storage.TableStore, tableName, kind string) *StoreSource {
	return &StoreSource{Store: store, Table: tableName, kind: kind}
}

// Load reads the table from the store.
func (s *StoreSource) Load(ctx context.Context) (*table.Table, error) {
	if s.Store == nil {
		return nil, fmt.Errorf("store source %s: %w: no store", s.Table, storage.ErrInvalidInput)
	}
	return s.Store.LoadTable(ctx, s.Table)
}

func (s *StoreSource) Kind() string {
	if s.kind == "" {
		return "store"
	}
	return s.kind
}

func (s *StoreSource) String() string { return s.Kind() + ":" + s.Table }
