// Package objectstore uploads worker documents and resolves their public urls.
package objectstore

import (
	"context"
	"net/url"
	"strings"
	"sync"
)

// Store writes objects into one fixed bucket.
type Store interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	PublicURL(path string) string
}

func escapePath(p string) string {
	parts := strings.Split(strings.TrimLeft(p, "/"), "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}

// Object is a stored upload held by Memory.
type Object struct {
	Data        []byte
	ContentType string
}

// Memory keeps objects in process memory. Fail, when set, is consulted before each write.
type Memory struct {
	BaseURL string
	Fail    func(path string) error

	mu      sync.Mutex
	objects map[string]Object
	order   []string
}

func NewMemory(baseURL string) *Memory {
	return &Memory{BaseURL: strings.TrimRight(baseURL, "/"), objects: map[string]Object{}}
}

func (m *Memory) Upload(_ context.Context, path string, data []byte, contentType string) error {
	if m.Fail != nil {
		if err := m.Fail(path); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects = map[string]Object{}
	}
	m.objects[path] = Object{Data: append([]byte(nil), data...), ContentType: contentType}
	m.order = append(m.order, path)
	return nil
}

func (m *Memory) PublicURL(path string) string {
	return m.BaseURL + "/" + escapePath(path)
}

// Paths returns uploaded paths in write order.
func (m *Memory) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

func (m *Memory) Get(path string) (Object, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.objects[path]
	return o, ok
}
