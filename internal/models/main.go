// Package models defines the core data structures shared by the storefront
// client and the API server.
package models

import "time"

// User represents a registered customer.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Name is the customer's full name.
	Name string `json:"name"`
	// Email is the login email, unique per user.
	Email string `json:"email"`
	// HashedPassword is the bcrypt hash of the password. Never serialized.
	HashedPassword string `json:"-"`
	// Role is the user's role, "customer" by default.
	Role string `json:"role"`
	// Address is an optional delivery address.
	Address string `json:"address,omitempty"`
	// Phone is an optional contact number.
	Phone string `json:"phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product is a catalog entity. Read-only for the client.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SubscriptionPlan is a recurring offer shown alongside products.
type SubscriptionPlan struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	// BillingCycle is "monthly" or "yearly".
	BillingCycle string    `json:"billing_cycle"`
	Features     []string  `json:"features"`
	CreatedAt    time.Time `json:"created_at"`
}

// CartItem is one line of a cart as served to the client: the stored row
// joined with a denormalized product snapshot and a computed line total.
type CartItem struct {
	ID       string  `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	// Price is the unit price captured when the item was added.
	Price float64 `json:"price"`
	// Total is Quantity * Price, computed server-side.
	Total float64 `json:"total"`
}

// Cart is the server-computed view of a session's cart. The client never
// derives items or totals itself; it replaces its copy wholesale.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// OrderItem is a product snapshot frozen into an order at checkout.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order records a checkout: the cart snapshot, the payer and the invoice
// issued by the payment provider.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id,omitempty"`
	UserEmail     string      `json:"user_email"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"total_amount"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"payment_method"`
	// InvoiceID is the payment provider's invoice identifier, set once the
	// invoice is created.
	InvoiceID string    `json:"invoice_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
