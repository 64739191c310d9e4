package normalization

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchema is the sentinel for structural input problems that make the whole
// dataset unusable. Match with errors.Is; inspect details with errors.As on *SchemaError.
var ErrSchema = errors.New("schema error")

// SchemaError identifies the failed operation, the unmet requirement and the
// columns that were actually present.
type SchemaError struct {
	Op          string
	Requirement string
	Found       []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s not found; columns present: [%s]",
		e.Op, e.Requirement, strings.Join(e.Found, ", "))
}

// Unwrap lets errors.Is(err, ErrSchema) match.
func (e *SchemaError) Unwrap() error {
	return ErrSchema
}
