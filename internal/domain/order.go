package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a single line of an order. PriceAtPurchase is the catalog
// price captured when the order was created; it never changes afterwards.
// ProductName, ProductCategory and ProductImageURL are joined from the
// catalog at read time for display and are not part of the historical record.
type OrderItem struct {
	ID              int64
	OrderID         int64
	ProductID       int64
	Quantity        int
	PriceAtPurchase float64
	ProductName     string
	ProductCategory Category
	ProductImageURL *string
}

// LineTotal returns PriceAtPurchase multiplied by Quantity.
func (i OrderItem) LineTotal() float64 {
	return i.PriceAtPurchase * float64(i.Quantity)
}

// Order is a completed checkout. TotalAmount equals the sum of its items'
// line totals, computed once at creation. Items are immutable; only Status
// may change afterwards.
type Order struct {
	ID          int64
	TotalAmount float64
	Status      OrderStatus
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemsTotal re-sums the line totals. It always equals TotalAmount for a
// persisted order.
func (o Order) ItemsTotal() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.LineTotal()
	}
	return sum
}
