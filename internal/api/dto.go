package api

import (
	"math"

	"github.com/ArpanNarula/Shop-Assesment/internal/models"
	"github.com/ArpanNarula/Shop-Assesment/internal/shopservice"
)

// FiltersRequest is the request body for setting the filter state.
type FiltersRequest struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Sort     string `json:"sort"`
}

// AddItemRequest is the request body for adding a product to the cart.
type AddItemRequest struct {
	ID int `json:"id"`
}

// UpdateItemRequest is the request body for setting a line's quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// ProductView is the derived product view (aliased from the domain layer).
type ProductView = shopservice.View

// CartResponse is the cart payload with totals rounded for display.
type CartResponse struct {
	Items      []models.CartLine `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice float64           `json:"total_price"`
}

// newCartResponse rounds the total price to 2 decimal places. This is the
// only place rounding happens; stores keep exact values.
func newCartResponse(v shopservice.CartView) CartResponse {
	return CartResponse{
		Items:      v.Items,
		TotalItems: v.TotalItems,
		TotalPrice: math.Round(v.TotalPrice*100) / 100,
	}
}
