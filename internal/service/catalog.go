package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atinyakov/shopina/internal/models"
	"github.com/atinyakov/shopina/internal/repository"
)

// CatalogRepository defines the persistence operations required by the
// catalog service.
type CatalogRepository interface {
	ListProducts(ctx context.Context, category string, limit, skip int) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	InsertProduct(ctx context.Context, p models.Product) error
	CountProducts(ctx context.Context) (int, error)
	ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error)
	InsertPlan(ctx context.Context, p models.SubscriptionPlan) error
}

// defaultProductLimit caps unpaginated product listings.
const defaultProductLimit = 20

// CatalogService serves the read-only product and subscription-plan catalog.
type CatalogService struct {
	repo CatalogRepository
}

// NewCatalogService constructs a CatalogService with the provided repository.
func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Products returns a page of the catalog, optionally filtered by category.
func (s *CatalogService) Products(ctx context.Context, category string, limit, skip int) ([]models.Product, error) {
	if limit <= 0 {
		limit = defaultProductLimit
	}
	if skip < 0 {
		skip = 0
	}
	return s.repo.ListProducts(ctx, category, limit, skip)
}

// Product returns one product. Returns ErrProductNotFound when absent.
func (s *CatalogService) Product(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// ProductInput carries the fields of a product-creation request.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	Images      []string
}

// CreateProduct stores a new catalog product.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	now := time.Now().UTC()
	p := models.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		Images:      in.Images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if err := s.repo.InsertProduct(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Plans returns all subscription plans.
func (s *CatalogService) Plans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	return s.repo.ListPlans(ctx)
}

// CreatePlan stores a new subscription plan.
func (s *CatalogService) CreatePlan(ctx context.Context, p models.SubscriptionPlan) (*models.SubscriptionPlan, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.BillingCycle == "" {
		p.BillingCycle = "monthly"
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.InsertPlan(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// InitSampleData seeds demo products and plans once. Subsequent calls are
// no-ops so the startup trigger stays idempotent.
func (s *CatalogService) InitSampleData(ctx context.Context) (bool, error) {
	count, err := s.repo.CountProducts(ctx)
	if err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for _, in := range sampleProducts {
		if _, err := s.CreateProduct(ctx, in); err != nil {
			return false, fmt.Errorf("seed product %q: %w", in.Name, err)
		}
	}
	for _, plan := range samplePlans {
		if _, err := s.CreatePlan(ctx, plan); err != nil {
			return false, fmt.Errorf("seed plan %q: %w", plan.Name, err)
		}
	}
	return true, nil
}

var sampleProducts = []ProductInput{
	{
		Name:        "Premium Subscription (Monthly)",
		Description: "Get access to all premium features with monthly billing",
		Price:       99000,
		Stock:       1000,
		Category:    "subscription",
		Images:      []string{"https://images.pexels.com/photos/7563569/pexels-photo-7563569.jpeg"},
	},
	{
		Name:        "Basic Package",
		Description: "Essential features for getting started",
		Price:       49000,
		Stock:       1000,
		Category:    "package",
		Images:      []string{"https://images.pexels.com/photos/6995253/pexels-photo-6995253.jpeg"},
	},
	{
		Name:        "Pro Package",
		Description: "Advanced features for power users",
		Price:       149000,
		Stock:       1000,
		Category:    "package",
		Images:      []string{"https://images.pexels.com/photos/9169180/pexels-photo-9169180.jpeg"},
	},
}

var samplePlans = []models.SubscriptionPlan{
	{
		Name:         "Basic Plan",
		Description:  "Perfect for individuals",
		Price:        79000,
		BillingCycle: "monthly",
		Features:     []string{"Basic Features", "Email Support", "5GB Storage"},
	},
	{
		Name:         "Pro Plan",
		Description:  "Great for small teams",
		Price:        199000,
		BillingCycle: "monthly",
		Features:     []string{"All Basic Features", "Priority Support", "50GB Storage", "Advanced Analytics"},
	},
}
