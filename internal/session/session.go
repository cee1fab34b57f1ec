// Package session tracks live admin sessions so a logout revokes the token server side.
package session

import (
	"context"
	"sync"
	"time"
)

// Store records which session ids are live.
type Store interface {
	Save(ctx context.Context, id string, ttl time.Duration) error
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore is the single-process Store used when no Redis address is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]time.Time
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]time.Time{}, now: time.Now}
}

// WithClock replaces the clock used for expiry.
func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.now = now
	return m
}

func (m *MemoryStore) Save(_ context.Context, id string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, exp := range m.sessions {
		if !now.Before(exp) {
			delete(m.sessions, k)
		}
	}
	m.sessions[id] = now.Add(ttl)
	return nil
}

func (m *MemoryStore) Exists(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	exp, ok := m.sessions[id]
	return ok && m.now().Before(exp), nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
