// Package checkout converts a cart of product/quantity pairs into a
// persisted order with decremented stock, atomically.
package checkout

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/domain"
	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/repository"
)

// CartLine is one requested line of a cart.
type CartLine struct {
	ProductID int64
	Quantity  int
}

type Service interface {
	Checkout(ctx context.Context, lines []CartLine) (*domain.Order, error)
}

// TxRunner is the slice of the store the engine needs: a transaction
// boundary within which catalog reads, order inserts and stock decrements
// are isolated from concurrent checkouts.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx repository.CheckoutTx) error) error
}

type Engine struct {
	store TxRunner
}

var _ Service = (*Engine)(nil)

func NewEngine(store TxRunner) *Engine {
	return &Engine{store: store}
}

// Checkout validates the cart against the live catalog and, in one atomic
// unit, creates the order with price snapshots and decrements stock. On any
// failure nothing is persisted: no order, no items, no stock changes.
func (e *Engine) Checkout(ctx context.Context, lines []CartLine) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	for _, ln := range lines {
		if ln.Quantity <= 0 {
			return nil, &Error{Kind: KindInvalidQuantity, ProductID: ln.ProductID, Requested: ln.Quantity}
		}
	}

	var order *domain.Order
	err := e.store.RunInTx(ctx, func(tx repository.CheckoutTx) error {
		var total float64
		items := make([]domain.OrderItem, 0, len(lines))

		// A product may appear on several lines; the stock check must cover
		// the running total across lines, not each line alone.
		requested := make(map[int64]int)

		for _, ln := range lines {
			p, err := tx.ProductForUpdate(ctx, ln.ProductID)
			if errors.Is(err, repository.ErrProductNotFound) {
				return &Error{Kind: KindProductNotFound, ProductID: ln.ProductID}
			}
			if err != nil {
				return err
			}
			if !p.IsActive {
				return &Error{Kind: KindProductInactive, ProductID: p.ID, ProductName: p.Name}
			}
			if p.StockQty < requested[p.ID]+ln.Quantity {
				return &Error{
					Kind:        KindInsufficientStock,
					ProductID:   p.ID,
					ProductName: p.Name,
					Available:   p.StockQty - requested[p.ID],
					Requested:   ln.Quantity,
				}
			}
			requested[p.ID] += ln.Quantity

			total += p.Price * float64(ln.Quantity)
			items = append(items, domain.OrderItem{
				ProductID:       p.ID,
				Quantity:        ln.Quantity,
				PriceAtPurchase: p.Price,
				ProductName:     p.Name,
				ProductCategory: p.Category,
				ProductImageURL: p.ImageURL,
			})
		}

		now := time.Now()
		o := &domain.Order{
			TotalAmount: round2(total),
			Status:      domain.OrderStatusCompleted,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		id, err := tx.InsertOrder(ctx, o)
		if err != nil {
			return err
		}
		o.ID = id

		if err := tx.InsertOrderItems(ctx, id, items); err != nil {
			return err
		}

		// The guarded decrement is the backstop for interleavings the
		// validation above cannot see; under the row lock it only trips if
		// stock changed underneath us, which rolls the whole order back.
		for _, ln := range lines {
			if err := tx.DecrementStock(ctx, ln.ProductID, ln.Quantity); err != nil {
				return err
			}
		}

		for i := range items {
			items[i].OrderID = id
		}
		o.Items = items
		order = o
		return nil
	})
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			return nil, ce
		}
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, &Error{Kind: KindInsufficientStock, Cause: err}
		}
		return nil, &Error{Kind: KindPersistenceFailure, Cause: err}
	}
	return order, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
