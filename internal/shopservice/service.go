// Package shopservice coordinates the catalog store, the filter state, and
// the cart store behind the operations the API and MCP surfaces expose.
package shopservice

import (
	"context"
	"fmt"
	"sync"

	"github.com/ArpanNarula/Shop-Assesment/internal/apperr"
	"github.com/ArpanNarula/Shop-Assesment/internal/cart"
	"github.com/ArpanNarula/Shop-Assesment/internal/catalog"
	"github.com/ArpanNarula/Shop-Assesment/internal/models"
)

// View is the derived product view: the filtered/sorted sequence plus the
// category set and the catalog loading flag.
type View struct {
	Products   []models.Product `json:"products"`
	Categories []string         `json:"categories"`
	Loading    bool             `json:"loading"`
}

// CartView is the cart with its derived totals. TotalPrice is exact;
// rounding is left to the presentation boundary.
type CartView struct {
	Items      []models.CartLine `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice float64           `json:"total_price"`
}

// Service owns the transient filter state and delegates catalog and cart
// operations. One instance serves the whole single-user session.
type Service struct {
	catalog *catalog.Store
	cart    *cart.Store

	mu      sync.Mutex
	filters models.FilterState
}

// NewService creates a shop service over the given stores.
func NewService(catalogStore *catalog.Store, cartStore *cart.Store) *Service {
	return &Service{catalog: catalogStore, cart: cartStore}
}

// View derives the displayed product sequence from the catalog and the
// current filter state.
func (s *Service) View(_ context.Context) View {
	s.mu.Lock()
	filters := s.filters
	s.mu.Unlock()

	products := s.catalog.Products()
	return View{
		Products:   catalog.Apply(products, filters),
		Categories: s.catalog.CategoryList(),
		Loading:    s.catalog.Loading(),
	}
}

// Browse derives a product sequence for an ad-hoc filter state without
// touching the session's filter state. Used by the MCP surface so tool
// calls do not disturb the browser view.
func (s *Service) Browse(f models.FilterState) ([]models.Product, error) {
	if !f.Sort.Valid() {
		return nil, fmt.Errorf("unknown sort order %q", f.Sort)
	}
	return catalog.Apply(s.catalog.Products(), f), nil
}

// Filters returns the current filter state.
func (s *Service) Filters() models.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetFilters replaces the filter state. Unknown sort orders are rejected.
func (s *Service) SetFilters(f models.FilterState) error {
	if !f.Sort.Valid() {
		return fmt.Errorf("unknown sort order %q", f.Sort)
	}
	s.mu.Lock()
	s.filters = f
	s.mu.Unlock()
	return nil
}

// ClearFilters resets the filter state to defaults. The cart is untouched.
func (s *Service) ClearFilters() {
	s.mu.Lock()
	s.filters = models.FilterState{}
	s.mu.Unlock()
}

// AddToCart looks the product up in the catalog and adds it to the cart.
// Returns apperr.ErrNotFound when the id is not in the catalog.
func (s *Service) AddToCart(ctx context.Context, id int) error {
	p, ok := s.catalog.Product(id)
	if !ok {
		return apperr.ErrNotFound
	}
	s.cart.Add(ctx, p)
	return nil
}

// SetQuantity sets a cart line's quantity with the store's clamp/no-op
// semantics.
func (s *Service) SetQuantity(ctx context.Context, id, quantity int) {
	s.cart.UpdateQuantity(ctx, id, quantity)
}

// RemoveFromCart removes a cart line; unknown ids are no-ops.
func (s *Service) RemoveFromCart(ctx context.Context, id int) {
	s.cart.Remove(ctx, id)
}

// CartView returns the cart lines and derived totals.
func (s *Service) CartView(_ context.Context) CartView {
	return CartView{
		Items:      s.cart.Lines(),
		TotalItems: s.cart.TotalItems(),
		TotalPrice: s.cart.TotalPrice(),
	}
}
