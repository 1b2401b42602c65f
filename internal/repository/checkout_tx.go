package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/domain"
)

// checkoutTx implements CheckoutTx on top of one *sql.Tx. All reads and
// writes of a checkout go through the same transaction, so a failure at any
// step rolls back the order, its items and every stock change together.
type checkoutTx struct {
	tx        *sql.Tx
	forUpdate string
}

var _ CheckoutTx = (*checkoutTx)(nil)

// RunInTx runs fn inside one database transaction and commits only if fn
// returns nil. Any error from fn rolls everything back and is returned
// unwrapped, so typed checkout errors survive the boundary.
func (r *Repository) RunInTx(ctx context.Context, fn func(tx CheckoutTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&checkoutTx{tx: tx, forUpdate: r.forUpdate()}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *checkoutTx) ProductForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	row := t.tx.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1"+t.forUpdate, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return p, nil
}

func (t *checkoutTx) InsertOrder(ctx context.Context, order *domain.Order) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx,
		`INSERT INTO orders (total_amount, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		order.TotalAmount, string(order.Status), order.CreatedAt, order.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return id, nil
}

func (t *checkoutTx) InsertOrderItems(ctx context.Context, orderID int64, items []domain.OrderItem) error {
	for _, it := range items {
		_, err := t.tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
			 VALUES ($1, $2, $3, $4)`,
			orderID, it.ProductID, it.Quantity, it.PriceAtPurchase)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// DecrementStock is guarded: the UPDATE only matches while enough stock
// remains, so stock can never go negative regardless of interleaving.
func (t *checkoutTx) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE products SET stock_qty = stock_qty - $1, updated_at = $2
		 WHERE id = $3 AND stock_qty >= $1`,
		quantity, time.Now(), productID)
	if err != nil {
		return fmt.Errorf("failed to update product stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update product stock: %w", err)
	}
	if n == 0 {
		return ErrInsufficientStock
	}
	return nil
}
