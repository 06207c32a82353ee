// Package api is the storefront client's gateway to the backend HTTP API.
// Every operation is an independent request/response exchange: no batching,
// no retries, no idempotency keys.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/shopina/internal/models"
)

// Error is a server-reported failure. Detail carries the server's message
// for user-facing notices.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// AuthResult is the response of the login and register operations.
type AuthResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

// CheckoutResult is the response of the create-order operation.
type CheckoutResult struct {
	OrderID     string  `json:"order_id"`
	PaymentURL  string  `json:"payment_url"`
	TotalAmount float64 `json:"total_amount"`
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Client issues requests against the storefront API rooted at baseURL/api.
type Client struct {
	base   string
	client *http.Client
	log    *zap.Logger
}

// New creates a Client for the given base URL (without the /api suffix).
func New(baseURL string, log *zap.Logger) *Client {
	return &Client{
		base:   baseURL + "/api",
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

// do sends a JSON request and decodes a JSON response into out (when out is
// non-nil). Non-2xx responses become an *Error with the server's detail.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil {
			apiErr.Detail = detail.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// FetchProducts loads the product catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		c.log.Error("failed to fetch products", zap.Error(err))
		return nil, err
	}
	return products, nil
}

// FetchSubscriptionPlans loads the subscription plans.
func (c *Client) FetchSubscriptionPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	if err := c.do(ctx, http.MethodGet, "/subscription-plans", nil, &plans); err != nil {
		c.log.Error("failed to fetch subscription plans", zap.Error(err))
		return nil, err
	}
	return plans, nil
}

// FetchCart loads the session's authoritative cart.
func (c *Client) FetchCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	path := "/cart?session_id=" + url.QueryEscape(sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &cart); err != nil {
		c.log.Error("failed to fetch cart", zap.Error(err))
		return nil, err
	}
	return &cart, nil
}

// AddToCart puts quantity units of a product into the session's cart. The
// caller re-fetches the cart afterwards; this call returns nothing.
func (c *Client) AddToCart(ctx context.Context, sessionID, productID string, quantity int) error {
	path := "/cart/add?session_id=" + url.QueryEscape(sessionID)
	body := map[string]any{"product_id": productID, "quantity": quantity}
	return c.do(ctx, http.MethodPost, path, body, nil)
}

// RemoveFromCart deletes one cart line. The caller re-fetches afterwards.
func (c *Client) RemoveFromCart(ctx context.Context, itemID string) error {
	if err := c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(itemID), nil, nil); err != nil {
		c.log.Error("failed to remove cart item", zap.String("item_id", itemID), zap.Error(err))
		return err
	}
	return nil
}

// Login exchanges credentials for a token and user.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account and returns its token and user.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateOrder checks out the session's cart and returns the hosted payment
// URL.
func (c *Client) CreateOrder(ctx context.Context, sessionID, email, paymentMethod string) (*CheckoutResult, error) {
	var result CheckoutResult
	path := "/orders/create?session_id=" + url.QueryEscape(sessionID)
	body := map[string]string{"user_email": email, "payment_method": paymentMethod}
	if err := c.do(ctx, http.MethodPost, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// InitSampleData triggers the backend's best-effort demo seed. Failures are
// logged and otherwise ignored.
func (c *Client) InitSampleData(ctx context.Context) {
	if err := c.do(ctx, http.MethodPost, "/admin/init-data", nil, nil); err != nil {
		c.log.Warn("failed to initialize sample data", zap.Error(err))
	}
}
