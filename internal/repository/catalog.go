package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/shopina/internal/models"
	"github.com/lib/pq"
)

// PostgresCatalogRepository implements product and subscription-plan
// persistence on PostgreSQL.
type PostgresCatalogRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCatalogRepository creates a PostgresCatalogRepository using the
// provided *sql.DB.
func NewPostgresCatalogRepository(db *sql.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{DB: db}
}

// ListProducts returns up to limit products, optionally filtered by category,
// skipping the first skip rows.
func (r *PostgresCatalogRepository) ListProducts(ctx context.Context, category string, limit, skip int) ([]models.Product, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, description, price, stock, category, images, created_at, updated_at
		  FROM products
		 WHERE ($1 = '' OR category = $1)
		 ORDER BY created_at
		 LIMIT $2 OFFSET $3
	`, category, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.Category, pq.Array(&p.Images), &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct loads one product by id. Returns ErrNotFound when absent.
func (r *PostgresCatalogRepository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, description, price, stock, category, images, created_at, updated_at
		  FROM products WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.Category, pq.Array(&p.Images), &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// InsertProduct stores a new product row.
func (r *PostgresCatalogRepository) InsertProduct(ctx context.Context, p models.Product) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, stock, category, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.Name, p.Description, p.Price, p.Stock, p.Category, pq.Array(p.Images), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// CountProducts returns the number of products in the catalog.
func (r *PostgresCatalogRepository) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// ListPlans returns all subscription plans.
func (r *PostgresCatalogRepository) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, description, price, billing_cycle, features, created_at
		  FROM subscription_plans
		 ORDER BY price
	`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []models.SubscriptionPlan
	for rows.Next() {
		var p models.SubscriptionPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price,
			&p.BillingCycle, pq.Array(&p.Features), &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// InsertPlan stores a new subscription plan.
func (r *PostgresCatalogRepository) InsertPlan(ctx context.Context, p models.SubscriptionPlan) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO subscription_plans (id, name, description, price, billing_cycle, features, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.Name, p.Description, p.Price, p.BillingCycle, pq.Array(p.Features), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}
