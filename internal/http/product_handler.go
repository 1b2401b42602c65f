package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/domain"
	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/repository"
)

// Catalog is the slice of the store the product endpoints need.
type Catalog interface {
	ListProducts(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, np repository.NewProduct) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, upd repository.ProductUpdate) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, id int64) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, id int64, quantity int, op repository.StockOp) (*domain.Product, error)
}

type ProductHandler struct {
	catalog Catalog
	timeout time.Duration
}

func NewProductHandler(catalog Catalog, timeout time.Duration) *ProductHandler {
	return &ProductHandler{catalog: catalog, timeout: timeout}
}

type ProductResponse struct {
	ID          int64   `json:"id"`
	ProductCode string  `json:"product_code"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	StockQty    int     `json:"stock_qty"`
	ImageURL    *string `json:"image_url"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count"`
}

func convertProduct(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		ProductCode: p.ProductCode,
		Name:        p.Name,
		Price:       p.Price,
		Category:    string(p.Category),
		StockQty:    p.StockQty,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

func parseIDParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

// GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var filter repository.ProductFilter
	if c := r.URL.Query().Get("category"); c != "" && c != "all" {
		cat := domain.Category(c)
		filter.Category = &cat
	}
	if a := r.URL.Query().Get("is_active"); a != "" && a != "all" {
		active := a == "true"
		filter.IsActive = &active
	}

	products, err := h.catalog.ListProducts(ctx, filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch products")
		return
	}

	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, convertProduct(&products[i]))
	}
	respondJSON(w, http.StatusOK, ProductsResponse{Products: out, Count: len(out)})
}

// GET /api/v1/products/{product_id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseIDParam(r, "product_id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "invalid product ID")
		return
	}

	p, err := h.catalog.GetProduct(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch product")
		return
	}
	respondJSON(w, http.StatusOK, convertProduct(p))
}

type CreateProductRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	StockQty *int    `json:"stock_qty"`
	ImageURL *string `json:"image_url"`
	IsActive *bool   `json:"is_active"`
}

// POST /api/v1/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Name == "" || req.Category == "" || req.StockQty == nil {
		respondError(w, http.StatusBadRequest, "missing_fields",
			"name, price, category, and stock quantity are required")
		return
	}
	if req.Price <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must be greater than 0")
		return
	}
	if *req.StockQty < 0 {
		respondError(w, http.StatusBadRequest, "invalid_stock", "stock quantity cannot be negative")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	p, err := h.catalog.CreateProduct(ctx, repository.NewProduct{
		Name:     req.Name,
		Price:    req.Price,
		Category: domain.Category(req.Category),
		StockQty: *req.StockQty,
		ImageURL: req.ImageURL,
		IsActive: isActive,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create product")
		return
	}
	respondJSON(w, http.StatusCreated, convertProduct(p))
}

type UpdateProductRequest struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Category *string  `json:"category"`
	StockQty *int     `json:"stock_qty"`
	ImageURL *string  `json:"image_url"`
	IsActive *bool    `json:"is_active"`
}

// PUT /api/v1/products/{product_id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseIDParam(r, "product_id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Price != nil && *req.Price <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must be greater than 0")
		return
	}
	if req.StockQty != nil && *req.StockQty < 0 {
		respondError(w, http.StatusBadRequest, "invalid_stock", "stock quantity cannot be negative")
		return
	}

	upd := repository.ProductUpdate{
		Name:     req.Name,
		Price:    req.Price,
		StockQty: req.StockQty,
		ImageURL: req.ImageURL,
		IsActive: req.IsActive,
	}
	if req.Category != nil {
		cat := domain.Category(*req.Category)
		upd.Category = &cat
	}

	p, err := h.catalog.UpdateProduct(ctx, id, upd)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update product")
		return
	}
	respondJSON(w, http.StatusOK, convertProduct(p))
}

// DELETE /api/v1/products/{product_id}
//
// Soft-deletes by default; ?hard=true removes the row permanently.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseIDParam(r, "product_id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "invalid product ID")
		return
	}

	if r.URL.Query().Get("hard") == "true" {
		err := h.catalog.DeleteProduct(ctx, id)
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete product")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "product permanently deleted"})
		return
	}

	p, err := h.catalog.DeactivateProduct(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete product")
		return
	}
	respondJSON(w, http.StatusOK, convertProduct(p))
}

type StockUpdateRequest struct {
	Quantity  *int   `json:"quantity"`
	Operation string `json:"operation"`
}

// PATCH /api/v1/products/{product_id}/stock
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseIDParam(r, "product_id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "invalid product ID")
		return
	}

	var req StockUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity == nil || *req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "valid quantity is required")
		return
	}

	op := repository.StockOp(req.Operation)
	if req.Operation == "" {
		op = repository.StockSet
	}
	if !repository.ValidStockOp(op) {
		respondError(w, http.StatusBadRequest, "invalid_operation",
			"operation must be set, add, or subtract")
		return
	}

	p, err := h.catalog.AdjustStock(ctx, id, *req.Quantity, op)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update stock")
		return
	}
	respondJSON(w, http.StatusOK, convertProduct(p))
}
