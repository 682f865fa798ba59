// Package testutil provides shared test helpers: in-memory storage,
// temporary fs providers, and a sample catalog.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/ArpanNarula/Shop-Assesment/internal/apperr"
	"github.com/ArpanNarula/Shop-Assesment/internal/models"
	"github.com/ArpanNarula/Shop-Assesment/internal/storage"
)

// Memory is an in-memory storage.Provider for tests.
type Memory struct {
	mu    sync.Mutex
	slots map[string][]byte

	// FailSet, when non-nil, is returned from every Set call.
	FailSet error
}

// NewMemory creates an empty in-memory provider.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

// Seed stores a value without going through Set (ignores FailSet).
func (m *Memory) Seed(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = value
}

// Get implements storage.Provider.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.slots[key]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set implements storage.Provider.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	if m.FailSet != nil {
		return m.FailSet
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.slots[key] = stored
	return nil
}

var _ storage.Provider = (*Memory)(nil)

// TestFS creates a temporary fs provider that is cleaned up with the test.
func TestFS(t *testing.T) *storage.FS {
	t.Helper()
	fs, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return fs
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Products returns a small fixed catalog for tests.
func Products() []models.Product {
	return []models.Product{
		{ID: 1, Title: "iPhone 9", Category: "smartphones", Price: 549, Stock: 3},
		{ID: 2, Title: "Perfume Oil", Category: "fragrances", Price: 13, Stock: 65},
		{ID: 3, Title: "MacBook Pro", Category: "laptops", Price: 1749.5, Stock: 83},
		{ID: 4, Title: "Sold Out Lamp", Category: "home-decoration", Price: 40, Stock: 0},
	}
}
