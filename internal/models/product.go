// Package models defines the domain types for the shop.
package models

// SortOrder selects how the product view is ordered by price.
type SortOrder string

// Supported sort orders. The empty value preserves catalog order.
const (
	SortNone     SortOrder = ""
	SortLowHigh  SortOrder = "low-high"
	SortHighLow  SortOrder = "high-low"
)

// Valid reports whether s is one of the supported sort orders.
func (s SortOrder) Valid() bool {
	switch s {
	case SortNone, SortLowHigh, SortHighLow:
		return true
	}
	return false
}

// Product is a catalog item as returned by the product-listing API.
// Products are read-only: the catalog is fetched once and never mutated.
type Product struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Thumbnail string  `json:"thumbnail"`
}

// CartLine is one product's entry in the cart: a denormalized copy of the
// product fields captured at add-time, plus the chosen quantity.
// Invariant: 1 <= Quantity <= Stock (stock as captured, not live).
type CartLine struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Quantity int     `json:"quantity"`
}

// FilterState holds the transient search/category/sort selections.
// It is session state, never persisted.
type FilterState struct {
	Search   string    `json:"search"`
	Category string    `json:"category"`
	Sort     SortOrder `json:"sort"`
}
