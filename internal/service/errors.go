// Package service provides the storefront business logic, delegating
// persistence to repository interfaces.
package service

import "errors"

// Sentinel errors mapped to HTTP responses by the handlers.
var (
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrProductNotFound    = errors.New("Product not found")
	ErrInsufficientStock  = errors.New("Insufficient stock")
	ErrCartItemNotFound   = errors.New("Cart item not found")
	ErrCartEmpty          = errors.New("Cart is empty")
	ErrOrderNotFound      = errors.New("Order not found")
)
