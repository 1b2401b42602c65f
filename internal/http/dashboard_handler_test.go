package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/domain"
	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/reporting"
)

type mockReporter struct {
	summary reporting.Summary
	err     error

	gotPeriod reporting.Period
}

func (m *mockReporter) Dashboard(_ context.Context, p reporting.Period) (reporting.Summary, error) {
	m.gotPeriod = p
	return m.summary, m.err
}

func TestDashboardGet(t *testing.T) {
	peak := reporting.HourlyBucket{Hour: 9, Sales: 35.00, Orders: 2}
	hours := make([]reporting.HourlyBucket, 24)
	for i := range hours {
		hours[i].Hour = i
	}
	hours[9] = peak

	reporter := &mockReporter{
		summary: reporting.Summary{
			Period:            reporting.PeriodToday,
			TotalOrders:       2,
			TotalRevenue:      35.00,
			AverageOrderValue: 17.50,
			TotalItemsSold:    6,
			TopProducts: []reporting.ProductSales{
				{ProductID: 1, Name: "Croissant", Category: domain.CategoryPastries, Quantity: 6, Revenue: 35.00},
			},
			CategoryBreakdown: []reporting.CategorySales{
				{Category: domain.CategoryPastries, Quantity: 6, Revenue: 35.00, Color: "#7F55B1"},
			},
			HourlySales: hours,
			PeakHour:    &peak,
		},
	}
	handler := NewDashboardHandler(reporter, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?period=today", nil)
	w := httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if reporter.gotPeriod != reporting.PeriodToday {
		t.Errorf("expected period today, got %q", reporter.gotPeriod)
	}

	var resp DashboardResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalRevenue != 35.00 {
		t.Errorf("expected total revenue 35.00, got %v", resp.TotalRevenue)
	}
	if resp.AverageOrderValue != 17.50 {
		t.Errorf("expected average order value 17.50, got %v", resp.AverageOrderValue)
	}
	if len(resp.HourlySales) != 24 {
		t.Fatalf("expected 24 hourly buckets, got %d", len(resp.HourlySales))
	}
	if resp.PeakHour == nil || resp.PeakHour.Hour != 9 {
		t.Errorf("expected peak hour 9, got %+v", resp.PeakHour)
	}
	if len(resp.TopProducts) != 1 || resp.TopProducts[0].Name != "Croissant" {
		t.Errorf("unexpected top products: %+v", resp.TopProducts)
	}
	if len(resp.CategoryBreakdown) != 1 || resp.CategoryBreakdown[0].Color != "#7F55B1" {
		t.Errorf("unexpected category breakdown: %+v", resp.CategoryBreakdown)
	}
}

func TestDashboardGetDefaultsToToday(t *testing.T) {
	reporter := &mockReporter{}
	handler := NewDashboardHandler(reporter, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	w := httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if reporter.gotPeriod != reporting.PeriodToday {
		t.Errorf("expected period today, got %q", reporter.gotPeriod)
	}
}

func TestDashboardGetInvalidPeriod(t *testing.T) {
	handler := NewDashboardHandler(&mockReporter{}, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?period=year", nil)
	w := httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Code != "invalid_period" {
		t.Errorf("expected code invalid_period, got %q", resp.Code)
	}
}

func TestDashboardGetReporterError(t *testing.T) {
	handler := NewDashboardHandler(&mockReporter{err: errors.New("db down")}, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?period=week", nil)
	w := httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
}
