package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atinyakov/shopina/internal/client/api"
	"github.com/atinyakov/shopina/internal/client/state"
	"github.com/atinyakov/shopina/internal/models"
)

type fakeGateway struct {
	calls []string

	cart  models.Cart
	login *api.AuthResult
	err   error
}

func (f *fakeGateway) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeGateway) FetchProducts(context.Context) ([]models.Product, error) {
	f.record("FetchProducts")
	return nil, f.err
}

func (f *fakeGateway) FetchSubscriptionPlans(context.Context) ([]models.SubscriptionPlan, error) {
	f.record("FetchSubscriptionPlans")
	return nil, f.err
}

func (f *fakeGateway) FetchCart(context.Context, string) (*models.Cart, error) {
	f.record("FetchCart")
	return &f.cart, f.err
}

func (f *fakeGateway) AddToCart(context.Context, string, string, int) error {
	f.record("AddToCart")
	return f.err
}

func (f *fakeGateway) RemoveFromCart(context.Context, string) error {
	f.record("RemoveFromCart")
	return f.err
}

func (f *fakeGateway) Login(context.Context, string, string) (*api.AuthResult, error) {
	f.record("Login")
	return f.login, f.err
}

func (f *fakeGateway) Register(context.Context, api.RegisterInput) (*api.AuthResult, error) {
	f.record("Register")
	return f.login, f.err
}

func (f *fakeGateway) CreateOrder(context.Context, string, string, string) (*api.CheckoutResult, error) {
	f.record("CreateOrder")
	return &api.CheckoutResult{OrderID: "o1", PaymentURL: "https://pay/x"}, f.err
}

func (f *fakeGateway) InitSampleData(context.Context) { f.record("InitSampleData") }

type nopTokenStore struct{}

func (nopTokenStore) SetToken(string) {}
func (nopTokenStore) ClearToken()     {}

func newTestModel(gw Gateway) (Model, *state.App) {
	app := state.New("s1", nopTokenStore{})
	return New(app, gw), app
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCheckout_EmptyCartNeverHitsNetwork(t *testing.T) {
	gw := &fakeGateway{}
	m, _ := newTestModel(gw)

	updated, cmd := m.updateBrowse(keyMsg("c"))
	if cmd != nil {
		t.Fatal("empty-cart checkout must not issue any command")
	}
	if len(gw.calls) != 0 {
		t.Errorf("unexpected gateway calls: %v", gw.calls)
	}
	got := updated.(Model)
	if got.notice != "Your cart is empty" {
		t.Errorf("expected empty-cart notice, got %q", got.notice)
	}
}

func TestCheckout_LoggedInUsesAccountEmail(t *testing.T) {
	gw := &fakeGateway{}
	m, app := newTestModel(gw)
	app.SetCart(app.NextCartSeq(), models.Cart{
		Items: []models.CartItem{{ID: "i1", Quantity: 1, Total: 49000}},
		Total: 49000,
	})
	app.SetUser(models.User{ID: "u1", Email: "a@b.com"}, "tok")

	_, cmd := m.updateBrowse(keyMsg("c"))
	if cmd == nil {
		t.Fatal("expected a checkout command")
	}
	if _, ok := cmd().(checkoutMsg); !ok {
		t.Fatal("expected a checkoutMsg")
	}
	if len(gw.calls) != 1 || gw.calls[0] != "CreateOrder" {
		t.Errorf("expected a single CreateOrder call, got %v", gw.calls)
	}
}

func TestUpdate_StaleCartResponseDiscarded(t *testing.T) {
	gw := &fakeGateway{}
	m, app := newTestModel(gw)

	older := app.NextCartSeq()
	newer := app.NextCartSeq()

	newerCart := models.Cart{
		Items: []models.CartItem{{ID: "i1", Quantity: 2, Total: 98000}},
		Total: 98000,
	}
	olderCart := models.Cart{
		Items: []models.CartItem{{ID: "i1", Quantity: 1, Total: 49000}},
		Total: 49000,
	}

	next, _ := m.Update(cartMsg{seq: newer, cart: &newerCart})
	next, _ = next.(Model).Update(cartMsg{seq: older, cart: &olderCart})

	if got := app.Cart().Total; got != 98000 {
		t.Errorf("stale response must be discarded, cart total is %v", got)
	}
	_ = next
}

func TestUpdate_FailedCartFetchKeepsCartSilently(t *testing.T) {
	gw := &fakeGateway{}
	m, app := newTestModel(gw)
	app.SetCart(app.NextCartSeq(), models.Cart{
		Items: []models.CartItem{{ID: "i1", Quantity: 1, Total: 49000}},
		Total: 49000,
	})

	next, _ := m.Update(cartMsg{
		seq: app.NextCartSeq(),
		err: &api.Error{StatusCode: 500},
	})

	if got := app.Cart().Total; got != 49000 {
		t.Errorf("failed fetch must leave the cart, total is %v", got)
	}
	got := next.(Model)
	if got.notice != "" {
		t.Errorf("a failed read must not surface a notice, got %q", got.notice)
	}
}

func TestUpdate_FailedReadFetchesStaySilent(t *testing.T) {
	gw := &fakeGateway{}
	m, _ := newTestModel(gw)
	m.products = []productView{{ID: "p1", Name: "Espresso Beans"}}
	m.plans = []planView{{ID: "pl1", Name: "Basic Plan"}}

	next, _ := m.Update(productsMsg{err: &api.Error{StatusCode: 500}})
	next, _ = next.(Model).Update(plansMsg{err: &api.Error{StatusCode: 500}})

	got := next.(Model)
	if got.notice != "" {
		t.Errorf("failed catalog reads must not surface a notice, got %q", got.notice)
	}
	if len(got.products) != 1 || len(got.plans) != 1 {
		t.Error("failed reads must leave the previously fetched lists")
	}
}

func TestUpdate_FailedRemovalStaysSilent(t *testing.T) {
	gw := &fakeGateway{}
	m, _ := newTestModel(gw)

	next, cmd := m.Update(cartMutatedMsg{
		err:   &api.Error{StatusCode: 404, Detail: "Cart item not found"},
		quiet: true,
	})
	if cmd != nil {
		t.Error("a failed removal must not refetch")
	}
	got := next.(Model)
	if got.notice != "" {
		t.Errorf("a failed removal must not surface a notice, got %q", got.notice)
	}
}

func TestRemoveFromCartCmd_MarksFailureQuiet(t *testing.T) {
	gw := &fakeGateway{err: &api.Error{StatusCode: 500}}

	msg := removeFromCartCmd(gw, "i1")()
	mutated, ok := msg.(cartMutatedMsg)
	if !ok {
		t.Fatalf("expected a cartMutatedMsg, got %T", msg)
	}
	if !mutated.quiet {
		t.Error("removal outcomes must be quiet")
	}
	if mutated.err == nil {
		t.Error("expected the gateway error to be carried")
	}
}

func TestUpdate_LoginFailureShowsServerDetail(t *testing.T) {
	gw := &fakeGateway{}
	m, app := newTestModel(gw)

	next, _ := m.Update(authMsg{err: &api.Error{
		StatusCode: 401,
		Detail:     "Invalid credentials",
	}})

	got := next.(Model)
	if got.notice != "Invalid credentials" {
		t.Errorf("expected the server's detail verbatim, got %q", got.notice)
	}
	if app.LoggedIn() {
		t.Error("failed login must not install an identity")
	}
}

func TestUpdate_LoginSuccessInstallsUser(t *testing.T) {
	gw := &fakeGateway{}
	m, app := newTestModel(gw)

	next, _ := m.Update(authMsg{result: &api.AuthResult{
		AccessToken: "tok",
		User:        models.User{ID: "u1", Name: "Alice"},
	}})

	if !app.LoggedIn() {
		t.Fatal("expected a logged-in state")
	}
	got := next.(Model)
	if got.notice != "Welcome, Alice!" {
		t.Errorf("unexpected notice %q", got.notice)
	}
}

func TestUpdate_MutationTriggersRefetch(t *testing.T) {
	gw := &fakeGateway{}
	m, _ := newTestModel(gw)

	_, cmd := m.Update(cartMutatedMsg{})
	if cmd == nil {
		t.Fatal("expected a follow-up cart fetch")
	}
	if _, ok := cmd().(cartMsg); !ok {
		t.Fatal("expected a cartMsg from the follow-up fetch")
	}
	if len(gw.calls) != 1 || gw.calls[0] != "FetchCart" {
		t.Errorf("expected a single FetchCart call, got %v", gw.calls)
	}
}

func TestUpdate_MutationFailureShowsNoticeWithoutRefetch(t *testing.T) {
	gw := &fakeGateway{}
	m, _ := newTestModel(gw)

	next, cmd := m.Update(cartMutatedMsg{err: &api.Error{
		StatusCode: 400,
		Detail:     "Insufficient stock",
	}})
	if cmd != nil {
		t.Error("a failed mutation must not refetch")
	}
	got := next.(Model)
	if got.notice != "Insufficient stock" {
		t.Errorf("expected the server's detail, got %q", got.notice)
	}
}

func TestUpdate_AddToCartFromProducts(t *testing.T) {
	gw := &fakeGateway{}
	m, _ := newTestModel(gw)

	next, _ := m.Update(productsMsg{products: []models.Product{
		{ID: "p1", Name: "Espresso Beans", Price: 49000, Stock: 10},
	}})

	_, cmd := next.(Model).updateBrowse(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected an add-to-cart command")
	}
	if _, ok := cmd().(cartMutatedMsg); !ok {
		t.Fatal("expected a cartMutatedMsg")
	}
	if len(gw.calls) != 1 || gw.calls[0] != "AddToCart" {
		t.Errorf("expected a single AddToCart call, got %v", gw.calls)
	}
}

func TestUpdate_LogoutClearsIdentity(t *testing.T) {
	gw := &fakeGateway{}
	m, app := newTestModel(gw)
	app.SetUser(models.User{ID: "u1", Name: "Alice"}, "tok")

	next, _ := m.updateBrowse(keyMsg("l"))
	if app.LoggedIn() {
		t.Error("expected a logged-out state")
	}
	got := next.(Model)
	if got.notice != "Logged out." {
		t.Errorf("unexpected notice %q", got.notice)
	}
}
