package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CartItemRow is a stored cart line before the product snapshot is joined in.
type CartItemRow struct {
	ID        string
	SessionID string
	ProductID string
	Quantity  int
	Price     float64
	CreatedAt time.Time
}

// PostgresCartRepository implements cart persistence on PostgreSQL.
type PostgresCartRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCartRepository creates a PostgresCartRepository using the
// provided *sql.DB.
func NewPostgresCartRepository(db *sql.DB) *PostgresCartRepository {
	return &PostgresCartRepository{DB: db}
}

// FindItem returns the cart line for a product within a session, or
// ErrNotFound when the product is not in the cart yet.
func (r *PostgresCartRepository) FindItem(ctx context.Context, sessionID, productID string) (*CartItemRow, error) {
	var row CartItemRow
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, session_id, product_id, quantity, price, created_at
		  FROM cart_items WHERE session_id = $1 AND product_id = $2
	`, sessionID, productID).Scan(&row.ID, &row.SessionID, &row.ProductID, &row.Quantity, &row.Price, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	return &row, nil
}

// InsertItem stores a new cart line.
func (r *PostgresCartRepository) InsertItem(ctx context.Context, row CartItemRow) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO cart_items (id, session_id, product_id, quantity, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, row.ID, row.SessionID, row.ProductID, row.Quantity, row.Price, row.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

// UpdateQuantity sets the quantity of an existing cart line.
func (r *PostgresCartRepository) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $2 WHERE id = $1`,
		itemID, quantity)
	if err != nil {
		return fmt.Errorf("update cart quantity: %w", err)
	}
	return nil
}

// ItemsBySession returns all cart lines for a session.
func (r *PostgresCartRepository) ItemsBySession(ctx context.Context, sessionID string) ([]CartItemRow, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, session_id, product_id, quantity, price, created_at
		  FROM cart_items WHERE session_id = $1
		 ORDER BY created_at
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("cart items by session: %w", err)
	}
	defer rows.Close()

	var items []CartItemRow
	for rows.Next() {
		var row CartItemRow
		if err := rows.Scan(&row.ID, &row.SessionID, &row.ProductID, &row.Quantity, &row.Price, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, row)
	}
	return items, rows.Err()
}

// DeleteItem removes one cart line by id. Returns ErrNotFound when no row
// was deleted.
func (r *PostgresCartRepository) DeleteItem(ctx context.Context, itemID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearSession removes every cart line of a session.
func (r *PostgresCartRepository) ClearSession(ctx context.Context, sessionID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("clear cart session: %w", err)
	}
	return nil
}
