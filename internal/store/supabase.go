package store

import (
	"context"
	"fmt"

	"github.com/supabase-community/postgrest-go"

	"homeservices/internal/supabase"
)

// SupabaseStore is the Store backed by the hosted PostgREST API.
type SupabaseStore struct {
	client *supabase.Client
}

func NewSupabase(client *supabase.Client) *SupabaseStore {
	return &SupabaseStore{client: client}
}

func (s *SupabaseStore) Insert(ctx context.Context, table string, row Row) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, _, err := s.client.From(table).Insert(row, false, "", "representation", "").Execute()
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	return decodeRows(body)
}

func (s *SupabaseStore) Select(ctx context.Context, table string, order Order) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := s.client.From(table).Select("*", "", false)
	if order.Column != "" {
		q = q.Order(order.Column, &postgrest.OrderOpts{Ascending: !order.Desc})
	}
	body, _, err := q.Execute()
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return decodeRows(body)
}

func (s *SupabaseStore) UpdateByID(ctx context.Context, table, id string, values Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := s.client.From(table).Update(values, "minimal", "").Eq("id", id).Execute(); err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

func decodeRows(body []byte) ([]Row, error) {
	out := []Row{}
	if err := supabase.DecodeRows(body, &out); err != nil {
		return nil, err
	}
	return out, nil
}
