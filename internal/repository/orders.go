package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/domain"
)

const orderColumns = "id, total_amount, status, created_at, updated_at"

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// loadOrderItems fetches an order's items joined with the current catalog
// row for display fields. Price comes from the historical snapshot on the
// item, never from the product.
func loadOrderItems(ctx context.Context, q queryer, orderID int64) ([]domain.OrderItem, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT i.id, i.order_id, i.product_id, i.quantity, i.price_at_purchase,
		        p.name, p.category, p.image_url
		 FROM order_items i
		 LEFT JOIN products p ON p.id = i.product_id
		 WHERE i.order_id = $1
		 ORDER BY i.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		var name, category, imageURL sql.NullString
		if err := rows.Scan(
			&it.ID,
			&it.OrderID,
			&it.ProductID,
			&it.Quantity,
			&it.PriceAtPurchase,
			&name,
			&category,
			&imageURL,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		it.ProductName = name.String
		it.ProductCategory = domain.Category(category.String)
		if imageURL.Valid {
			it.ProductImageURL = &imageURL.String
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return items, nil
}

func (f OrderFilter) whereClause(args *[]any) string {
	var conds []string
	if !f.Start.IsZero() {
		*args = append(*args, f.Start)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(*args)))
	}
	if !f.End.IsZero() {
		*args = append(*args, f.End)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(*args)))
	}
	if f.Status != "" {
		*args = append(*args, string(f.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(*args)))
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// QueryOrders returns a page of orders, newest first, plus the total count
// matching the filter.
func (r *Repository) QueryOrders(ctx context.Context, f OrderFilter, page, limit int) ([]domain.Order, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var args []any
	where := f.whereClause(&args)

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(
		"SELECT %s FROM orders%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		orderColumns, where, len(args)-1, len(args))

	orders, err := r.queryOrders(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// OrdersInRange returns all orders with createdAt in [start, end), optionally
// restricted to a status, newest first. Used by the reporting facade.
func (r *Repository) OrdersInRange(ctx context.Context, start, end time.Time, status domain.OrderStatus) ([]domain.Order, error) {
	var args []any
	where := OrderFilter{Start: start, End: end, Status: status}.whereClause(&args)
	query := fmt.Sprintf("SELECT %s FROM orders%s ORDER BY created_at DESC, id DESC",
		orderColumns, where)
	return r.queryOrders(ctx, query, args...)
}

func (r *Repository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for i := range orders {
		items, err := loadOrderItems(ctx, r.db, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *Repository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}

	items, err := loadOrderItems(ctx, r.db, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// UpdateOrderStatus is an independent status transition; it is the only
// mutation an order supports after creation.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3",
		string(status), time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrOrderNotFound
	}
	return r.GetOrder(ctx, id)
}
