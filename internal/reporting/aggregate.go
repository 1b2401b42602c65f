// Package reporting aggregates historical orders into the dashboard summary:
// period totals, top products, category breakdown and the hourly histogram.
package reporting

import (
	"math"
	"sort"

	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/domain"
)

// topProductLimit caps the product ranking shown on the dashboard.
const topProductLimit = 5

// palette provides the category chart colors, cycled in first-seen order.
var palette = []string{"#7F55B1", "#F49BAB", "#FFE1E0", "#B8A9FF", "#FFB3C6", "#FFF0EF"}

// ProductSales accumulates units and revenue for one product across orders.
// Revenue uses the historical price snapshots; name and category are the
// catalog values joined at query time.
type ProductSales struct {
	ProductID int64
	Name      string
	Category  domain.Category
	Quantity  int
	Revenue   float64
}

type CategorySales struct {
	Category domain.Category
	Quantity int
	Revenue  float64
	Color    string
}

type HourlyBucket struct {
	Hour   int
	Sales  float64
	Orders int
}

type Summary struct {
	Period            Period
	TotalOrders       int
	TotalRevenue      float64
	AverageOrderValue float64
	TotalItemsSold    int
	TopProducts       []ProductSales
	CategoryBreakdown []CategorySales
	// HourlySales has exactly 24 zero-filled buckets for single-day periods
	// and is empty otherwise.
	HourlySales []HourlyBucket
	// PeakHour is nil when the histogram is absent or entirely zero.
	PeakHour *HourlyBucket
}

// Summarize computes the dashboard summary for a list of orders already
// filtered to the period's date range. It is a pure function of its inputs.
func Summarize(orders []domain.Order, period Period) Summary {
	s := Summary{
		Period:      period,
		TotalOrders: len(orders),
		TopProducts: []ProductSales{},
	}

	for _, o := range orders {
		s.TotalRevenue += o.TotalAmount
		for _, it := range o.Items {
			s.TotalItemsSold += it.Quantity
		}
	}
	s.TotalRevenue = round2(s.TotalRevenue)
	if s.TotalOrders > 0 {
		s.AverageOrderValue = round2(s.TotalRevenue / float64(s.TotalOrders))
	}

	s.TopProducts = topProducts(orders)
	s.CategoryBreakdown = categoryBreakdown(s.TopProducts)

	if period.singleDay() {
		s.HourlySales = hourlyHistogram(orders)
		s.PeakHour = peakHour(s.HourlySales)
	} else {
		s.HourlySales = []HourlyBucket{}
	}

	return s
}

// topProducts groups all order items by product and ranks by units sold,
// descending. Ties break on ascending product ID so the ranking is
// deterministic.
func topProducts(orders []domain.Order) []ProductSales {
	groups := make(map[int64]*ProductSales)
	var keys []int64

	for _, o := range orders {
		for _, it := range o.Items {
			g, ok := groups[it.ProductID]
			if !ok {
				g = &ProductSales{
					ProductID: it.ProductID,
					Name:      it.ProductName,
					Category:  it.ProductCategory,
				}
				groups[it.ProductID] = g
				keys = append(keys, it.ProductID)
			}
			g.Quantity += it.Quantity
			g.Revenue += it.LineTotal()
		}
	}

	ranked := make([]ProductSales, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		g.Revenue = round2(g.Revenue)
		ranked = append(ranked, *g)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})

	if len(ranked) > topProductLimit {
		ranked = ranked[:topProductLimit]
	}
	return ranked
}

// categoryBreakdown derives category totals from the top-product list, not
// from all sold products. The dashboard's category chart is a view over its
// product ranking; computing true full-category totals would silently change
// the rendered numbers. Colors cycle through the palette by the index of the
// product that first introduced the category.
func categoryBreakdown(top []ProductSales) []CategorySales {
	groups := make(map[domain.Category]*CategorySales)
	var order []domain.Category

	for i, p := range top {
		g, ok := groups[p.Category]
		if !ok {
			g = &CategorySales{
				Category: p.Category,
				Color:    palette[i%len(palette)],
			}
			groups[p.Category] = g
			order = append(order, p.Category)
		}
		g.Quantity += p.Quantity
		g.Revenue += p.Revenue
	}

	out := make([]CategorySales, 0, len(order))
	for _, c := range order {
		g := groups[c]
		g.Revenue = round2(g.Revenue)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// hourlyHistogram buckets orders by local hour of day. All 24 buckets are
// always present, zero-filled.
func hourlyHistogram(orders []domain.Order) []HourlyBucket {
	buckets := make([]HourlyBucket, 24)
	for i := range buckets {
		buckets[i].Hour = i
	}
	for _, o := range orders {
		h := o.CreatedAt.Hour()
		buckets[h].Sales += o.TotalAmount
		buckets[h].Orders++
	}
	for i := range buckets {
		buckets[i].Sales = round2(buckets[i].Sales)
	}
	return buckets
}

// peakHour returns the bucket with the highest sales, or nil when every
// bucket is zero. On equal sales the earlier hour wins.
func peakHour(buckets []HourlyBucket) *HourlyBucket {
	var peak *HourlyBucket
	for i := range buckets {
		if peak == nil || buckets[i].Sales > peak.Sales {
			peak = &buckets[i]
		}
	}
	if peak == nil || peak.Sales == 0 {
		return nil
	}
	p := *peak
	return &p
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
