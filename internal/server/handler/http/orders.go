package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/shopina/internal/middleware"
	"github.com/atinyakov/shopina/internal/models"
	"github.com/atinyakov/shopina/internal/service"
)

// OrderService defines the order operations required by the HTTP handlers.
type OrderService interface {
	// Create checks out a session's cart into an order with a payment invoice.
	Create(ctx context.Context, sessionID, userID, userEmail, paymentMethod string) (*service.CheckoutResult, error)
	// ApplyInvoiceStatus records a payment provider callback on its order.
	ApplyInvoiceStatus(ctx context.Context, externalID, providerStatus string) error
	// Get loads one order by id.
	Get(ctx context.Context, id string) (*models.Order, error)
	// ListByUser returns a page of the user's orders.
	ListByUser(ctx context.Context, userID string, limit, skip int) ([]models.Order, error)
}

// OrderHandler handles checkout, order lookups and payment callbacks.
type OrderHandler struct {
	OrderService OrderService
	// WebhookToken authenticates payment provider callbacks.
	WebhookToken string
}

// CreateOrderRequest is the JSON payload for POST /api/orders/create.
type CreateOrderRequest struct {
	UserEmail     string `json:"user_email" validate:"required,email"`
	PaymentMethod string `json:"payment_method"`
}

// Create handles POST /api/orders/create?session_id=.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeDetail(w, http.StatusBadRequest, "No cart found")
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid order data")
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "CREDIT_CARD"
	}

	// Anonymous checkout is allowed; the user id is present only when the
	// request carries a valid bearer token.
	userID := middleware.GetUserIDFromContext(r.Context())

	result, err := h.OrderService.Create(r.Context(), sessionID, userID, req.UserEmail, req.PaymentMethod)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// WebhookRequest is the JSON payload of a payment provider callback.
type WebhookRequest struct {
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
}

// Webhook handles POST /api/webhook/xendit. The provider authenticates with
// the x-callback-token header.
func (h *OrderHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("x-callback-token") != h.WebhookToken {
		writeDetail(w, http.StatusUnauthorized, "Invalid webhook signature")
		return
	}

	var req WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.OrderService.ApplyInvoiceStatus(r.Context(), req.ExternalID, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.OrderService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// List handles GET /api/orders for the authenticated user.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		writeDetail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	skip, _ := strconv.Atoi(q.Get("skip"))

	orders, err := h.OrderService.ListByUser(r.Context(), userID, limit, skip)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}
