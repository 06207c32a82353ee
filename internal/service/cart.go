package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/atinyakov/shopina/internal/models"
	"github.com/atinyakov/shopina/internal/repository"
)

// CartRepository defines the persistence operations required by the cart
// service.
type CartRepository interface {
	FindItem(ctx context.Context, sessionID, productID string) (*repository.CartItemRow, error)
	InsertItem(ctx context.Context, row repository.CartItemRow) error
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	ItemsBySession(ctx context.Context, sessionID string) ([]repository.CartItemRow, error)
	DeleteItem(ctx context.Context, itemID string) error
	ClearSession(ctx context.Context, sessionID string) error
}

// ProductGetter is the slice of the catalog the cart service needs.
type ProductGetter interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

// CartService owns the authoritative cart state. The client only ever
// displays what Get returns.
type CartService struct {
	cart    CartRepository
	catalog ProductGetter
}

// NewCartService constructs a CartService with the provided repositories.
func NewCartService(cart CartRepository, catalog ProductGetter) *CartService {
	return &CartService{cart: cart, catalog: catalog}
}

// Add puts quantity units of a product into the session's cart, merging into
// an existing line when the product is already there. The unit price is
// captured at add time.
func (s *CartService) Add(ctx context.Context, sessionID, productID string, quantity int) error {
	product, err := s.catalog.GetProduct(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}
	if product.Stock < quantity {
		return ErrInsufficientStock
	}

	existing, err := s.cart.FindItem(ctx, sessionID, productID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if existing != nil {
		return s.cart.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity)
	}

	return s.cart.InsertItem(ctx, repository.CartItemRow{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
		Price:     product.Price,
		CreatedAt: time.Now().UTC(),
	})
}

// Get builds the cart view for a session: each stored line joined with its
// product snapshot plus computed line and cart totals. Lines whose product
// has disappeared from the catalog are skipped. An unknown session yields an
// empty cart, not an error.
func (s *CartService) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	rows, err := s.cart.ItemsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart := &models.Cart{Items: []models.CartItem{}}
	for _, row := range rows {
		product, err := s.catalog.GetProduct(ctx, row.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		lineTotal := float64(row.Quantity) * row.Price
		cart.Items = append(cart.Items, models.CartItem{
			ID:       row.ID,
			Product:  *product,
			Quantity: row.Quantity,
			Price:    row.Price,
			Total:    lineTotal,
		})
		cart.Total += lineTotal
	}
	return cart, nil
}

// Remove deletes one cart line. Returns ErrCartItemNotFound when the line
// does not exist.
func (s *CartService) Remove(ctx context.Context, itemID string) error {
	err := s.cart.DeleteItem(ctx, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCartItemNotFound
	}
	return err
}
