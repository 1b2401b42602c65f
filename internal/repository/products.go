package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/domain"
)

const productColumns = "id, product_code, name, price, category, stock_qty, image_url, is_active, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var imageURL sql.NullString
	err := row.Scan(
		&p.ID,
		&p.ProductCode,
		&p.Name,
		&p.Price,
		&p.Category,
		&p.StockQty,
		&imageURL,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	return &p, nil
}

func nullableString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func (r *Repository) ListProducts(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	var conds []string
	var args []any

	if f.Category != nil {
		args = append(args, string(*f.Category))
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY category, name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return p, nil
}

// nextProductCode finds the highest existing code for the category's prefix
// and returns the next one in sequence (B01, B02, ...).
func nextProductCode(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, category domain.Category) (string, error) {
	prefix := category.CodePrefix()

	var last string
	err := q.QueryRowContext(ctx,
		"SELECT product_code FROM products WHERE product_code LIKE $1 ORDER BY product_code DESC LIMIT 1",
		prefix+"%").Scan(&last)

	next := 1
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return "", fmt.Errorf("failed to query last product code: %w", err)
	default:
		if n, convErr := strconv.Atoi(last[len(prefix):]); convErr == nil {
			next = n + 1
		}
	}

	return fmt.Sprintf("%s%02d", prefix, next), nil
}

func (r *Repository) CreateProduct(ctx context.Context, np NewProduct) (*domain.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	code, err := nextProductCode(ctx, tx, np.Category)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &domain.Product{
		ProductCode: code,
		Name:        strings.TrimSpace(np.Name),
		Price:       np.Price,
		Category:    np.Category,
		StockQty:    np.StockQty,
		ImageURL:    np.ImageURL,
		IsActive:    np.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO products (product_code, name, price, category, stock_qty, image_url, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		p.ProductCode, p.Name, p.Price, string(p.Category), p.StockQty,
		nullableString(p.ImageURL), p.IsActive, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrDuplicateProductCode
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return p, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, id int64, upd ProductUpdate) (*domain.Product, error) {
	var sets []string
	var args []any

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		set("name", strings.TrimSpace(*upd.Name))
	}
	if upd.Price != nil {
		set("price", *upd.Price)
	}
	if upd.Category != nil {
		set("category", string(*upd.Category))
	}
	if upd.StockQty != nil {
		set("stock_qty", *upd.StockQty)
	}
	if upd.ImageURL != nil {
		set("image_url", nullableString(upd.ImageURL))
	}
	if upd.IsActive != nil {
		set("is_active", *upd.IsActive)
	}

	if len(sets) == 0 {
		return r.GetProduct(ctx, id)
	}
	set("updated_at", time.Now())

	args = append(args, id)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrProductNotFound
	}
	return r.GetProduct(ctx, id)
}

func (r *Repository) DeactivateProduct(ctx context.Context, id int64) (*domain.Product, error) {
	inactive := false
	return r.UpdateProduct(ctx, id, ProductUpdate{IsActive: &inactive})
}

func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// AdjustStock applies a manual stock correction. Subtracting below zero
// floors the stock at zero rather than failing; checkout is the only path
// with a hard no-oversell guarantee.
func (r *Repository) AdjustStock(ctx context.Context, id int64, quantity int, op StockOp) (*domain.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1"+r.forUpdate(), id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	switch op {
	case StockAdd:
		p.StockQty += quantity
	case StockSubtract:
		p.StockQty -= quantity
		if p.StockQty < 0 {
			p.StockQty = 0
		}
	case StockSet:
		p.StockQty = quantity
	default:
		return nil, fmt.Errorf("unknown stock operation %q", op)
	}
	p.UpdatedAt = time.Now()

	_, err = tx.ExecContext(ctx,
		"UPDATE products SET stock_qty = $1, updated_at = $2 WHERE id = $3",
		p.StockQty, p.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return p, nil
}
