package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atinyakov/shopina/internal/client/api"
	"github.com/atinyakov/shopina/internal/models"
)

// Gateway is the slice of the API client the view layer depends on.
type Gateway interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
	FetchSubscriptionPlans(ctx context.Context) ([]models.SubscriptionPlan, error)
	FetchCart(ctx context.Context, sessionID string) (*models.Cart, error)
	AddToCart(ctx context.Context, sessionID, productID string, quantity int) error
	RemoveFromCart(ctx context.Context, itemID string) error
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
	Register(ctx context.Context, in api.RegisterInput) (*api.AuthResult, error)
	CreateOrder(ctx context.Context, sessionID, email, paymentMethod string) (*api.CheckoutResult, error)
	InitSampleData(ctx context.Context)
}

type productsMsg struct {
	products []models.Product
	err      error
}

type plansMsg struct {
	plans []models.SubscriptionPlan
	err   error
}

// cartMsg carries the sequence number reserved when the fetch was issued,
// so late responses can be told apart from current ones.
type cartMsg struct {
	seq  uint64
	cart *models.Cart
	err  error
}

// cartMutatedMsg reports the outcome of an add or remove. The cart itself
// arrives via the follow-up fetch. quiet marks removals, whose failures are
// logged by the gateway but never shown to the user.
type cartMutatedMsg struct {
	err   error
	quiet bool
}

type authMsg struct {
	result *api.AuthResult
	err    error
}

type checkoutMsg struct {
	result *api.CheckoutResult
	err    error
}

type sampleDataMsg struct{}

func fetchProductsCmd(gw Gateway) tea.Cmd {
	return func() tea.Msg {
		products, err := gw.FetchProducts(context.Background())
		return productsMsg{products: products, err: err}
	}
}

func fetchPlansCmd(gw Gateway) tea.Cmd {
	return func() tea.Msg {
		plans, err := gw.FetchSubscriptionPlans(context.Background())
		return plansMsg{plans: plans, err: err}
	}
}

func fetchCartCmd(gw Gateway, sessionID string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		cart, err := gw.FetchCart(context.Background(), sessionID)
		return cartMsg{seq: seq, cart: cart, err: err}
	}
}

func addToCartCmd(gw Gateway, sessionID, productID string, quantity int) tea.Cmd {
	return func() tea.Msg {
		return cartMutatedMsg{err: gw.AddToCart(context.Background(), sessionID, productID, quantity)}
	}
}

func removeFromCartCmd(gw Gateway, itemID string) tea.Cmd {
	return func() tea.Msg {
		return cartMutatedMsg{err: gw.RemoveFromCart(context.Background(), itemID), quiet: true}
	}
}

func loginCmd(gw Gateway, email, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := gw.Login(context.Background(), email, password)
		return authMsg{result: result, err: err}
	}
}

func registerCmd(gw Gateway, in api.RegisterInput) tea.Cmd {
	return func() tea.Msg {
		result, err := gw.Register(context.Background(), in)
		return authMsg{result: result, err: err}
	}
}

func checkoutCmd(gw Gateway, sessionID, email string) tea.Cmd {
	return func() tea.Msg {
		result, err := gw.CreateOrder(context.Background(), sessionID, email, "CREDIT_CARD")
		return checkoutMsg{result: result, err: err}
	}
}

// initSampleDataCmd seeds demo data on the backend. Best effort; the
// result is ignored beyond the gateway's own logging.
func initSampleDataCmd(gw Gateway) tea.Cmd {
	return func() tea.Msg {
		gw.InitSampleData(context.Background())
		return sampleDataMsg{}
	}
}
