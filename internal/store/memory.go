package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"
)

const createdAtLayout = "2006-01-02T15:04:05.000000Z07:00"

// MemoryStore keeps tables in process memory. It backs DATA_BACKEND=memory and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]Row
	nextID int64
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string][]Row),
		now:    time.Now,
	}
}

// WithClock replaces the clock used for created_at.
func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.now = now
	return m
}

func (m *MemoryStore) Insert(_ context.Context, table string, row Row) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	stored := make(Row, len(row)+2)
	for k, v := range row {
		stored[k] = v
	}
	stored["id"] = m.nextID
	stored["created_at"] = m.now().UTC().Format(createdAtLayout)
	m.tables[table] = append(m.tables[table], stored)

	return []Row{copyRow(stored)}, nil
}

func (m *MemoryStore) Select(_ context.Context, table string, order Order) ([]Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.tables[table]
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, copyRow(r))
	}
	if order.Column != "" {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := fmt.Sprint(out[i][order.Column]), fmt.Sprint(out[j][order.Column])
			if order.Desc {
				return a > b
			}
			return a < b
		})
	}
	return out, nil
}

func (m *MemoryStore) UpdateByID(_ context.Context, table, id string, values Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.tables[table] {
		if strconv.FormatInt(r["id"].(int64), 10) != id {
			continue
		}
		for k, v := range values {
			r[k] = v
		}
	}
	return nil
}

// Len returns the number of rows in a table.
func (m *MemoryStore) Len(table string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables[table])
}

func copyRow(r Row) Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
