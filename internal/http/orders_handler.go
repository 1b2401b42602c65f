package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/checkout"
	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/domain"
	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/repository"
)

// OrderStore is the slice of the store the order endpoints need beyond
// checkout itself.
type OrderStore interface {
	QueryOrders(ctx context.Context, f repository.OrderFilter, page, limit int) ([]domain.Order, int, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
}

type OrdersHandler struct {
	checkout checkout.Service
	store    OrderStore
	timeout  time.Duration
}

func NewOrdersHandler(checkoutSvc checkout.Service, store OrderStore, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{checkout: checkoutSvc, store: store, timeout: timeout}
}

type OrderItemDTO struct {
	ID              int64   `json:"id"`
	ProductID       int64   `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Category        string  `json:"category"`
	ImageURL        *string `json:"image_url"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
}

type OrderResponseDTO struct {
	ID          int64          `json:"id"`
	TotalAmount float64        `json:"total_amount"`
	Status      string         `json:"status"`
	Items       []OrderItemDTO `json:"items"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

func convertOrder(o *domain.Order) OrderResponseDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemDTO{
			ID:              it.ID,
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Category:        string(it.ProductCategory),
			ImageURL:        it.ProductImageURL,
			Quantity:        it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase,
		})
	}
	return OrderResponseDTO{
		ID:          o.ID,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		Items:       items,
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   o.UpdatedAt.Format(time.RFC3339),
	}
}

type CheckoutItemDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CheckoutRequestDTO struct {
	Items []CheckoutItemDTO `json:"items"`
}

// POST /api/v1/orders
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	lines := make([]checkout.CartLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, checkout.CartLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := h.checkout.Checkout(ctx, lines)
	if err != nil {
		handleCheckoutError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, convertOrder(order))
}

func handleCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, checkout.ErrEmptyCart) {
		respondError(w, http.StatusBadRequest, "empty_cart", "order items are required")
		return
	}

	var ce *checkout.Error
	if !errors.As(err, &ce) {
		log.Printf("[%s] checkout failed: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to process order")
		return
	}

	switch ce.Kind {
	case checkout.KindProductNotFound:
		respondError(w, http.StatusNotFound, string(ce.Kind), ce.Error())
	case checkout.KindProductInactive, checkout.KindInvalidQuantity, checkout.KindInsufficientStock:
		respondError(w, http.StatusBadRequest, string(ce.Kind), ce.Error())
	default:
		log.Printf("[%s] checkout failed: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, string(checkout.KindPersistenceFailure),
			"failed to process order")
	}
}

type PaginationDTO struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalCount  int  `json:"total_count"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}

type OrderListResponse struct {
	Orders     []OrderResponseDTO `json:"orders"`
	Pagination PaginationDTO      `json:"pagination"`
}

// GET /api/v1/orders
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()

	page := 1
	if p, err := parsePositiveInt(q.Get("page")); err == nil {
		page = p
	}
	limit := 20
	if l, err := parsePositiveInt(q.Get("limit")); err == nil {
		limit = l
	}

	var filter repository.OrderFilter
	if s := q.Get("status"); s != "" && s != "all" {
		status := domain.OrderStatus(s)
		if !domain.ValidOrderStatus(status) {
			respondError(w, http.StatusBadRequest, "invalid_status",
				"status must be PENDING, COMPLETED, or CANCELLED")
			return
		}
		filter.Status = status
	}
	if s := q.Get("start_date"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_date", "start_date must be RFC 3339")
			return
		}
		filter.Start = t
	}
	if s := q.Get("end_date"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_date", "end_date must be RFC 3339")
			return
		}
		filter.End = t
	}

	orders, total, err := h.store.QueryOrders(ctx, filter, page, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch orders")
		return
	}

	dtos := make([]OrderResponseDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, convertOrder(&orders[i]))
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	respondJSON(w, http.StatusOK, OrderListResponse{
		Orders: dtos,
		Pagination: PaginationDTO{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  total,
			HasNext:     page < totalPages,
			HasPrev:     page > 1,
		},
	})
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseIDParam(r, "order_id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "invalid order ID")
		return
	}

	order, err := h.store.GetOrder(ctx, id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch order")
		return
	}
	respondJSON(w, http.StatusOK, convertOrder(order))
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// PATCH /api/v1/orders/{order_id}/status
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseIDParam(r, "order_id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "invalid order ID")
		return
	}

	var req StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	status := domain.OrderStatus(req.Status)
	if !domain.ValidOrderStatus(status) {
		respondError(w, http.StatusBadRequest, "invalid_status",
			"status must be PENDING, COMPLETED, or CANCELLED")
		return
	}

	order, err := h.store.UpdateOrderStatus(ctx, id, status)
	if errors.Is(err, repository.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update order status")
		return
	}
	respondJSON(w, http.StatusOK, convertOrder(order))
}
