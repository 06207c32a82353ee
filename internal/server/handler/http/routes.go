package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/atinyakov/shopina/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the storefront API.
//
// Routes (all under /api):
//
//	POST   /auth/register       → authHandler.Register
//	POST   /auth/login          → authHandler.Login
//	GET    /products            → catalogHandler.ListProducts
//	GET    /products/{id}       → catalogHandler.GetProduct
//	POST   /products            → catalogHandler.CreateProduct
//	GET    /subscription-plans  → catalogHandler.ListPlans
//	POST   /subscription-plans  → catalogHandler.CreatePlan
//	GET    /cart                → cartHandler.Get
//	POST   /cart/add            → cartHandler.Add
//	DELETE /cart/{item_id}      → cartHandler.Remove
//	POST   /orders/create       → orderHandler.Create
//	GET    /orders/{id}         → orderHandler.Get
//	POST   /webhook/xendit      → orderHandler.Webhook
//	GET    /orders              → orderHandler.List (bearer token required)
//	POST   /admin/init-data     → catalogHandler.InitData
func NewRouter(
	authHandler *AuthHandler,
	catalogHandler *CatalogHandler,
	cartHandler *CartHandler,
	orderHandler *OrderHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)
		r.Post("/products", catalogHandler.CreateProduct)

		r.Get("/subscription-plans", catalogHandler.ListPlans)
		r.Post("/subscription-plans", catalogHandler.CreatePlan)

		r.Get("/cart", cartHandler.Get)
		r.Post("/cart/add", cartHandler.Add)
		r.Delete("/cart/{item_id}", cartHandler.Remove)

		r.Post("/orders/create", orderHandler.Create)
		r.Get("/orders/{id}", orderHandler.Get)
		r.Post("/webhook/xendit", orderHandler.Webhook)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(verifier))
			r.Get("/orders", orderHandler.List)
		})

		r.Post("/admin/init-data", catalogHandler.InitData)
	})

	return r
}
