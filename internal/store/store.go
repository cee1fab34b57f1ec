// Package store defines the table store the intake and admin flows persist to.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Row maps column names to values.
type Row map[string]any

// Order is the sort applied by Select.
type Order struct {
	Column string
	Desc   bool
}

// Store is the external tabular store. Implementations assign id and created_at.
type Store interface {
	Insert(ctx context.Context, table string, row Row) ([]Row, error)
	Select(ctx context.Context, table string, order Order) ([]Row, error)
	// UpdateByID patches the row with the given id. Matching zero rows is not an error.
	UpdateByID(ctx context.Context, table, id string, values Row) error
}

// Decode converts rows into typed records through their JSON form.
func Decode(rows []Row, dest any) error {
	if rows == nil {
		rows = []Row{}
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("decode rows: %w", err)
	}
	return nil
}
