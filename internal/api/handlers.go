package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ArpanNarula/Shop-Assesment/internal/apperr"
	"github.com/ArpanNarula/Shop-Assesment/internal/models"
	"github.com/ArpanNarula/Shop-Assesment/internal/shopservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *shopservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *shopservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListProducts handles GET /products: the derived product view under the
// current filter state. loading=false with an empty product list is
// ambiguous between an empty catalog and a failed fetch.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.View(r.Context()))
}

// SetFilters handles PUT /filters.
func (h *Handler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var req FiltersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	f := models.FilterState{
		Search:   req.Search,
		Category: req.Category,
		Sort:     models.SortOrder(req.Sort),
	}
	if err := h.svc.SetFilters(f); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, h.svc.View(r.Context()))
}

// ClearFilters handles DELETE /filters: resets the filter state to
// defaults. The cart is untouched.
func (h *Handler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearFilters()
	writeJSON(w, http.StatusOK, h.svc.View(r.Context()))
}

// GetCart handles GET /cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newCartResponse(h.svc.CartView(r.Context())))
}

// AddItem handles POST /cart/items. Adding at the captured stock cap is a
// defined no-op and still returns the cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.AddToCart(r.Context(), req.ID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("product not found"))
			return
		}
		slog.Error("add to cart failed", slog.Int("id", req.ID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(h.svc.CartView(r.Context())))
}

// UpdateItem handles PUT /cart/items/{id}. Quantities below 1 and unknown
// ids are defined no-ops; the response is always the resulting cart.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.svc.SetQuantity(r.Context(), id, req.Quantity)
	writeJSON(w, http.StatusOK, newCartResponse(h.svc.CartView(r.Context())))
}

// RemoveItem handles DELETE /cart/items/{id}. Removing a missing id is a
// defined no-op.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	h.svc.RemoveFromCart(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}
