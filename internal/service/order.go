package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/shopina/internal/models"
	"github.com/atinyakov/shopina/internal/payments"
	"github.com/atinyakov/shopina/internal/repository"
)

// OrderRepository defines the persistence operations required by the order
// service.
type OrderRepository interface {
	InsertOrder(ctx context.Context, o models.Order) error
	SetInvoice(ctx context.Context, orderID, invoiceID string) error
	SetStatus(ctx context.Context, orderID, status string) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	OrdersByUser(ctx context.Context, userID string, limit, skip int) ([]models.Order, error)
}

// CheckoutResult is what a successful checkout hands back to the client.
type CheckoutResult struct {
	OrderID     string  `json:"order_id"`
	PaymentURL  string  `json:"payment_url"`
	TotalAmount float64 `json:"total_amount"`
}

// OrderService turns a session's cart into an order with a hosted payment
// invoice.
type OrderService struct {
	orders   OrderRepository
	cart     CartRepository
	catalog  ProductGetter
	invoicer payments.Invoicer
	log      *zap.Logger
}

// NewOrderService constructs an OrderService.
func NewOrderService(orders OrderRepository, cart CartRepository, catalog ProductGetter, invoicer payments.Invoicer, log *zap.Logger) *OrderService {
	return &OrderService{orders: orders, cart: cart, catalog: catalog, invoicer: invoicer, log: log}
}

// Create snapshots the session's cart into a pending order, creates a payment
// invoice for the total and clears the cart. The cart is only cleared after
// the invoice succeeds; on invoice failure the pending order row remains and
// checkout can be retried against the intact cart.
func (s *OrderService) Create(ctx context.Context, sessionID, userID, userEmail, paymentMethod string) (*CheckoutResult, error) {
	rows, err := s.cart.ItemsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrCartEmpty
	}

	var (
		items []models.OrderItem
		total float64
	)
	for _, row := range rows {
		product, err := s.catalog.GetProduct(ctx, row.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		lineTotal := float64(row.Quantity) * row.Price
		total += lineTotal
		items = append(items, models.OrderItem{
			ProductID:   row.ProductID,
			ProductName: product.Name,
			Quantity:    row.Quantity,
			Price:       row.Price,
			Total:       lineTotal,
		})
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	now := time.Now().UTC()
	order := models.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		UserEmail:     userEmail,
		Items:         items,
		TotalAmount:   total,
		Status:        models.OrderStatusPending,
		PaymentMethod: paymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.orders.InsertOrder(ctx, order); err != nil {
		return nil, err
	}

	invoice, err := s.invoicer.CreateInvoice(ctx,
		"order_"+order.ID,
		userEmail,
		fmt.Sprintf("Order #%.8s", order.ID),
		total,
	)
	if err != nil {
		return nil, fmt.Errorf("payment creation failed: %w", err)
	}

	if err := s.orders.SetInvoice(ctx, order.ID, invoice.ID); err != nil {
		return nil, err
	}

	if err := s.cart.ClearSession(ctx, sessionID); err != nil {
		// The invoice exists; a stale cart is recoverable, a lost order is not.
		s.log.Error("failed to clear cart after checkout",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	return &CheckoutResult{
		OrderID:     order.ID,
		PaymentURL:  invoice.URL,
		TotalAmount: total,
	}, nil
}

// invoiceStatuses maps payment provider invoice statuses to order statuses.
var invoiceStatuses = map[string]string{
	"PAID":    models.OrderStatusCompleted,
	"SETTLED": models.OrderStatusCompleted,
	"EXPIRED": models.OrderStatusCancelled,
}

// ApplyInvoiceStatus records a payment provider callback against the order
// its invoice was issued for. Callbacks whose external id is not one of ours
// are ignored. Unrecognized provider statuses reset the order to pending.
func (s *OrderService) ApplyInvoiceStatus(ctx context.Context, externalID, providerStatus string) error {
	orderID, ok := strings.CutPrefix(externalID, "order_")
	if !ok {
		return nil
	}
	status, ok := invoiceStatuses[providerStatus]
	if !ok {
		status = models.OrderStatusPending
	}
	if err := s.orders.SetStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	s.log.Info("order status updated from payment callback",
		zap.String("order_id", orderID), zap.String("status", status))
	return nil
}

// Get loads one order. Returns ErrOrderNotFound when absent.
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	o, err := s.orders.GetOrder(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

// ListByUser returns a page of the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID string, limit, skip int) ([]models.Order, error) {
	if limit <= 0 {
		limit = defaultProductLimit
	}
	if skip < 0 {
		skip = 0
	}
	return s.orders.OrdersByUser(ctx, userID, limit, skip)
}
