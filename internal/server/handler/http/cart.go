package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/shopina/internal/models"
)

// CartService defines the cart operations required by the HTTP handlers.
type CartService interface {
	// Add puts quantity units of a product into the session's cart.
	Add(ctx context.Context, sessionID, productID string, quantity int) error
	// Get returns the server-computed cart view for a session.
	Get(ctx context.Context, sessionID string) (*models.Cart, error)
	// Remove deletes one cart line by id.
	Remove(ctx context.Context, itemID string) error
}

// CartHandler handles the anonymous session cart.
type CartHandler struct {
	CartService CartService
}

// AddRequest is the JSON payload for POST /api/cart/add.
type AddRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// Get handles GET /api/cart?session_id=. A missing session id yields an
// empty cart, matching the behavior the client relies on.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeJSON(w, http.StatusOK, models.Cart{Items: []models.CartItem{}})
		return
	}

	cart, err := h.CartService.Get(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// Add handles POST /api/cart/add?session_id=.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeDetail(w, http.StatusBadRequest, "session_id is required")
		return
	}

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid cart item data")
		return
	}

	if err := h.CartService.Add(r.Context(), sessionID, req.ProductID, req.Quantity); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item added to cart"})
}

// Remove handles DELETE /api/cart/{item_id}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.CartService.Remove(r.Context(), chi.URLParam(r, "item_id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item removed from cart"})
}
