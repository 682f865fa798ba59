package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ArpanNarula/Shop-Assesment/internal/models"
)

// Store holds the fetched product catalog, a loading flag, and the derived
// category list. The catalog is populated once and never refreshed.
type Store struct {
	mu         sync.RWMutex
	products   []models.Product
	categories []string
	loading    bool
}

// NewStore creates an empty catalog store in the loading state.
func NewStore() *Store {
	return &Store{loading: true}
}

// NewStoreWithProducts creates a store already populated and loaded.
func NewStoreWithProducts(products []models.Product) *Store {
	s := &Store{}
	s.setLoaded(products)
	return s
}

// Populate runs the one-shot catalog fetch. On failure the error is logged
// and the store settles as empty with loading done; the consumer cannot
// distinguish an empty catalog from a failed fetch.
func (s *Store) Populate(ctx context.Context, client *Client, logger *slog.Logger) {
	products, err := client.Fetch(ctx)
	if err != nil {
		logger.Error("catalog fetch failed", slog.String("error", err.Error()))
		s.setLoaded(nil)
		return
	}
	s.setLoaded(products)
	logger.Info("catalog loaded", slog.Int("products", len(products)))
}

func (s *Store) setLoaded(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.categories = Categories(products)
	s.loading = false
}

// Products returns a copy of the full catalog.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Product returns the catalog entry with the given id.
func (s *Store) Product(id int) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// CategoryList returns the distinct category list in first-seen order.
func (s *Store) CategoryList() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// Loading reports whether the initial fetch is still in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
