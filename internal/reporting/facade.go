package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/domain"
)

// OrderSource is the slice of the order store the facade reads from.
type OrderSource interface {
	OrdersInRange(ctx context.Context, start, end time.Time, status domain.OrderStatus) ([]domain.Order, error)
}

type Reporter interface {
	Dashboard(ctx context.Context, p Period) (Summary, error)
}

// Facade resolves a period to a date range, queries completed orders and
// feeds them to Summarize.
type Facade struct {
	orders OrderSource
	now    func() time.Time
}

var _ Reporter = (*Facade)(nil)

func NewFacade(orders OrderSource) *Facade {
	return &Facade{orders: orders, now: time.Now}
}

func (f *Facade) Dashboard(ctx context.Context, p Period) (Summary, error) {
	start, end := PeriodRange(p, f.now())

	// Only completed orders count toward the dashboard; pending and
	// cancelled orders would inflate revenue.
	orders, err := f.orders.OrdersInRange(ctx, start, end, domain.OrderStatusCompleted)
	if err != nil {
		return Summary{}, fmt.Errorf("query orders for dashboard: %w", err)
	}

	return Summarize(orders, p), nil
}
