package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/shopina/internal/models"
	"github.com/atinyakov/shopina/internal/service"
)

// CatalogService defines the catalog operations required by the HTTP
// handlers.
type CatalogService interface {
	Products(ctx context.Context, category string, limit, skip int) ([]models.Product, error)
	Product(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, in service.ProductInput) (*models.Product, error)
	Plans(ctx context.Context) ([]models.SubscriptionPlan, error)
	CreatePlan(ctx context.Context, p models.SubscriptionPlan) (*models.SubscriptionPlan, error)
	InitSampleData(ctx context.Context) (bool, error)
}

// CatalogHandler serves products and subscription plans.
type CatalogHandler struct {
	CatalogService CatalogService
}

// ListProducts handles GET /api/products with optional category, limit and
// skip query parameters. Always responds with a JSON array.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	skip, _ := strconv.Atoi(q.Get("skip"))

	products, err := h.CatalogService.Products(r.Context(), q.Get("category"), limit, skip)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.CatalogService.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// ProductRequest is the JSON payload for POST /api/products.
type ProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Category    string   `json:"category" validate:"required"`
	Images      []string `json:"images"`
}

// CreateProduct handles POST /api/products.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid product data")
		return
	}

	product, err := h.CatalogService.CreateProduct(r.Context(), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Images:      req.Images,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// ListPlans handles GET /api/subscription-plans.
func (h *CatalogHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.CatalogService.Plans(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if plans == nil {
		plans = []models.SubscriptionPlan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

// CreatePlan handles POST /api/subscription-plans.
func (h *CatalogHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var plan models.SubscriptionPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if plan.Name == "" {
		writeDetail(w, http.StatusBadRequest, "invalid plan data")
		return
	}

	created, err := h.CatalogService.CreatePlan(r.Context(), plan)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// InitData handles POST /api/admin/init-data: a best-effort, idempotent
// sample-data seed.
func (h *CatalogHandler) InitData(w http.ResponseWriter, r *http.Request) {
	seeded, err := h.CatalogService.InitSampleData(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	msg := "Sample data already exists"
	if seeded {
		msg = "Sample data initialized successfully"
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}
