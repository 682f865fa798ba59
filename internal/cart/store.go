// Package cart implements the shopping cart: line items with stock-bound
// quantity control, derived totals, and a persisted snapshot per mutation.
package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/ArpanNarula/Shop-Assesment/internal/apperr"
	"github.com/ArpanNarula/Shop-Assesment/internal/models"
	"github.com/ArpanNarula/Shop-Assesment/internal/storage"
)

// Store owns the cart line items. All mutations go through Add,
// UpdateQuantity, and Remove; each successful mutation writes a full JSON
// snapshot to the storage provider under the configured key.
type Store struct {
	mu       sync.Mutex
	lines    []models.CartLine
	provider storage.Provider
	key      string
	logger   *slog.Logger
	onChange func()
}

// NewStore creates a cart store and rehydrates it from the storage slot.
// A missing slot yields an empty cart. A slot that fails to decode also
// yields an empty cart (fail open) with a warning log.
func NewStore(ctx context.Context, provider storage.Provider, key string, logger *slog.Logger) *Store {
	s := &Store{
		provider: provider,
		key:      key,
		logger:   logger,
	}
	s.lines = s.load(ctx, nil)
	return s
}

// OnChange registers a callback invoked after every cart mutation.
// Used by the SSE broker to push re-renders to the UI.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// load reads and decodes the slot, returning fallback when the slot is
// missing or (per the fail-open policy) malformed.
func (s *Store) load(ctx context.Context, fallback []models.CartLine) []models.CartLine {
	data, err := s.provider.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			s.logger.Warn("cart slot read failed", slog.String("error", err.Error()))
		}
		return fallback
	}
	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		s.logger.Warn("cart slot decode failed, starting empty", slog.String("error", err.Error()))
		return fallback
	}
	return lines
}

// Add appends a new line with quantity 1, or increments an existing line.
// The increment is a silent no-op once the quantity reaches the stock
// captured at add-time. Products with no stock never produce a line.
func (s *Store) Add(ctx context.Context, p models.Product) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].ID != p.ID {
			continue
		}
		if s.lines[i].Quantity >= s.lines[i].Stock {
			s.mu.Unlock()
			return
		}
		s.lines[i].Quantity++
		s.persistLocked(ctx)
		s.unlockAndNotify()
		return
	}
	if p.Stock < 1 {
		s.mu.Unlock()
		return
	}
	s.lines = append(s.lines, models.CartLine{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Stock:    p.Stock,
		Quantity: 1,
	})
	s.persistLocked(ctx)
	s.unlockAndNotify()
}

// UpdateQuantity sets the quantity of the line with the given id, clamped
// to the captured stock. Quantities below 1 and unknown ids are no-ops.
func (s *Store) UpdateQuantity(ctx context.Context, id, quantity int) {
	if quantity < 1 {
		return
	}
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].ID != id {
			continue
		}
		if quantity > s.lines[i].Stock {
			quantity = s.lines[i].Stock
		}
		if s.lines[i].Quantity == quantity {
			s.mu.Unlock()
			return
		}
		s.lines[i].Quantity = quantity
		s.persistLocked(ctx)
		s.unlockAndNotify()
		return
	}
	s.mu.Unlock()
}

// Remove deletes the line with the given id. Unknown ids are no-ops.
func (s *Store) Remove(ctx context.Context, id int) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].ID != id {
			continue
		}
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		s.persistLocked(ctx)
		s.unlockAndNotify()
		return
	}
	s.mu.Unlock()
}

// Reload re-reads the slot, replacing the in-memory cart when the
// persisted snapshot differs. Returns true if the cart changed.
// A malformed slot leaves the current cart untouched.
func (s *Store) Reload(ctx context.Context) bool {
	s.mu.Lock()
	loaded := s.load(ctx, s.lines)
	current, _ := json.Marshal(s.lines)
	next, _ := json.Marshal(loaded)
	if bytes.Equal(current, next) {
		s.mu.Unlock()
		return false
	}
	s.lines = loaded
	s.unlockAndNotify()
	return true
}

// Lines returns a copy of the cart in first-add order.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItems returns the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice returns the exact sum of price times quantity across all
// lines. Rounding happens only at the presentation boundary.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, l := range s.lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// persistLocked snapshots the full cart to the storage slot. Write
// failures are logged and swallowed: the in-memory cart stays
// authoritative for the rest of the session.
func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.lines)
	if err != nil {
		s.logger.Warn("cart encode failed", slog.String("error", err.Error()))
		return
	}
	if err := s.provider.Set(ctx, s.key, data); err != nil {
		s.logger.Warn("cart persist failed", slog.String("error", err.Error()))
	}
}

// unlockAndNotify releases the lock and fires the change callback.
func (s *Store) unlockAndNotify() {
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
