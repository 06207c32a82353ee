package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atinyakov/shopina/internal/models"
)

// PostgresOrderRepository implements order persistence on PostgreSQL.
// Order items are stored as a JSONB snapshot.
type PostgresOrderRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresOrderRepository creates a PostgresOrderRepository using the
// provided *sql.DB.
func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

// InsertOrder stores a new order with its item snapshot.
func (r *PostgresOrderRepository) InsertOrder(ctx context.Context, o models.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, user_email, items, total_amount, status, payment_method, invoice_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, o.ID, o.UserID, o.UserEmail, items, o.TotalAmount, o.Status, o.PaymentMethod, o.InvoiceID, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// SetInvoice records the payment provider's invoice id on an order.
func (r *PostgresOrderRepository) SetInvoice(ctx context.Context, orderID, invoiceID string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET invoice_id = $2, updated_at = NOW() WHERE id = $1`,
		orderID, invoiceID)
	if err != nil {
		return fmt.Errorf("set order invoice: %w", err)
	}
	return nil
}

// SetStatus updates an order's status. Returns ErrNotFound when the order
// does not exist.
func (r *PostgresOrderRepository) SetStatus(ctx context.Context, orderID, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`,
		orderID, status)
	if err != nil {
		return fmt.Errorf("set order status: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

// GetOrder loads one order by id. Returns ErrNotFound when absent.
func (r *PostgresOrderRepository) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var (
		o     models.Order
		items []byte
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, user_email, items, total_amount, status, payment_method, invoice_id, created_at, updated_at
		  FROM orders WHERE id = $1
	`, id).Scan(&o.ID, &o.UserID, &o.UserEmail, &items, &o.TotalAmount, &o.Status, &o.PaymentMethod, &o.InvoiceID, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &o, nil
}

// OrdersByUser returns the orders placed by a user, newest first.
func (r *PostgresOrderRepository) OrdersByUser(ctx context.Context, userID string, limit, skip int) ([]models.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, user_email, items, total_amount, status, payment_method, invoice_id, created_at, updated_at
		  FROM orders WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3
	`, userID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("orders by user: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var (
			o     models.Order
			items []byte
		)
		if err := rows.Scan(&o.ID, &o.UserID, &o.UserEmail, &items, &o.TotalAmount,
			&o.Status, &o.PaymentMethod, &o.InvoiceID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
