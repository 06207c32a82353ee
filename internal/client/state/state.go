// Package state holds the client's in-memory view of server-owned data:
// the cart and the authenticated user. Containers are only ever replaced
// wholesale, never mutated in place, which is what keeps concurrent fetch
// completions safe without further locking discipline.
package state

import (
	"sync"

	"github.com/atinyakov/shopina/internal/models"
)

// TokenStore persists the bearer token across restarts.
type TokenStore interface {
	SetToken(token string)
	ClearToken()
}

// App is the application state shared by the view layer. It is passed
// explicitly to every consumer; there are no package-level singletons.
type App struct {
	mu sync.Mutex

	sessionID string
	store     TokenStore

	cart models.Cart
	// issuedSeq tags each cart fetch; appliedSeq is the tag of the cart
	// currently held. Responses older than appliedSeq are discarded so the
	// last-issued fetch wins regardless of arrival order.
	issuedSeq  uint64
	appliedSeq uint64

	user *models.User
}

// New creates the application state for a session.
func New(sessionID string, store TokenStore) *App {
	return &App{
		sessionID: sessionID,
		store:     store,
		cart:      models.Cart{Items: []models.CartItem{}},
	}
}

// SessionID returns the durable session identifier.
func (a *App) SessionID() string {
	return a.sessionID
}

// NextCartSeq reserves a sequence number for a cart fetch about to be
// issued.
func (a *App) NextCartSeq() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.issuedSeq++
	return a.issuedSeq
}

// SetCart replaces the cart with a fetch result. Returns false when the
// result is stale (an older fetch arriving after a newer one was applied)
// and was discarded.
func (a *App) SetCart(seq uint64, cart models.Cart) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if seq < a.appliedSeq {
		return false
	}
	a.appliedSeq = seq
	a.cart = cart
	return true
}

// Cart returns the last successfully fetched cart. A failed fetch leaves
// this value untouched.
func (a *App) Cart() models.Cart {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart
}

// SetUser installs the authenticated identity and persists its token. The
// token lives in the store only; nothing in memory duplicates it.
func (a *App) SetUser(user models.User, token string) {
	a.mu.Lock()
	a.user = &user
	a.mu.Unlock()
	a.store.SetToken(token)
}

// User returns the authenticated user, or nil when logged out.
func (a *App) User() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

// LoggedIn reports whether an identity is installed.
func (a *App) LoggedIn() bool {
	return a.User() != nil
}

// Logout clears the in-memory identity and the persisted token. The session
// id is untouched; the anonymous cart belongs to the installation, not the
// account.
func (a *App) Logout() {
	a.mu.Lock()
	a.user = nil
	a.mu.Unlock()
	a.store.ClearToken()
}
