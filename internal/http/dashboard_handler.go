package http

import (
	"context"
	"net/http"
	"time"

	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/reporting"
)

type DashboardHandler struct {
	reports reporting.Reporter
	timeout time.Duration
}

func NewDashboardHandler(reports reporting.Reporter, timeout time.Duration) *DashboardHandler {
	return &DashboardHandler{reports: reports, timeout: timeout}
}

type TopProductDTO struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

type CategorySalesDTO struct {
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Color    string  `json:"color"`
}

type HourlyBucketDTO struct {
	Hour   int     `json:"hour"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

type DashboardResponse struct {
	Period            string             `json:"period"`
	TotalOrders       int                `json:"total_orders"`
	TotalRevenue      float64            `json:"total_revenue"`
	AverageOrderValue float64            `json:"average_order_value"`
	TotalItemsSold    int                `json:"total_items_sold"`
	TopProducts       []TopProductDTO    `json:"top_products"`
	CategoryBreakdown []CategorySalesDTO `json:"category_breakdown"`
	HourlySales       []HourlyBucketDTO  `json:"hourly_sales"`
	PeakHour          *HourlyBucketDTO   `json:"peak_hour"`
}

func convertSummary(s reporting.Summary) DashboardResponse {
	resp := DashboardResponse{
		Period:            string(s.Period),
		TotalOrders:       s.TotalOrders,
		TotalRevenue:      s.TotalRevenue,
		AverageOrderValue: s.AverageOrderValue,
		TotalItemsSold:    s.TotalItemsSold,
		TopProducts:       make([]TopProductDTO, 0, len(s.TopProducts)),
		CategoryBreakdown: make([]CategorySalesDTO, 0, len(s.CategoryBreakdown)),
		HourlySales:       make([]HourlyBucketDTO, 0, len(s.HourlySales)),
	}
	for _, p := range s.TopProducts {
		resp.TopProducts = append(resp.TopProducts, TopProductDTO{
			ProductID: p.ProductID,
			Name:      p.Name,
			Category:  string(p.Category),
			Quantity:  p.Quantity,
			Revenue:   p.Revenue,
		})
	}
	for _, c := range s.CategoryBreakdown {
		resp.CategoryBreakdown = append(resp.CategoryBreakdown, CategorySalesDTO{
			Category: string(c.Category),
			Quantity: c.Quantity,
			Revenue:  c.Revenue,
			Color:    c.Color,
		})
	}
	for _, b := range s.HourlySales {
		resp.HourlySales = append(resp.HourlySales, HourlyBucketDTO{
			Hour:   b.Hour,
			Sales:  b.Sales,
			Orders: b.Orders,
		})
	}
	if s.PeakHour != nil {
		resp.PeakHour = &HourlyBucketDTO{
			Hour:   s.PeakHour.Hour,
			Sales:  s.PeakHour.Sales,
			Orders: s.PeakHour.Orders,
		}
	}
	return resp
}

// GET /api/v1/dashboard?period=today|week|month
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	period, err := reporting.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_period", "period must be today, week, or month")
		return
	}

	summary, err := h.reports.Dashboard(ctx, period)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch analytics")
		return
	}
	respondJSON(w, http.StatusOK, convertSummary(summary))
}
