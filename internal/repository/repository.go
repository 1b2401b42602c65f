package repository

import (
	"context"
	"errors"
	"time"

	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/domain"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrDuplicateProductCode = errors.New("product code already exists")
)

// Config selects the database driver and carries connection settings.
// Driver "sqlite" uses Path; driver "postgres" uses the Host/Port/User/
// Password/DBName credentials.
type Config struct {
	Driver string

	// sqlite
	Path string

	// postgres
	Host     string
	Port     int
	User     string
	Password string
	DBName   string

	// MigrationsDir is the directory containing one subdirectory of
	// golang-migrate files per driver name.
	MigrationsDir string
}

// StockOp names a stock-adjustment operation.
type StockOp string

const (
	StockSet      StockOp = "set"
	StockAdd      StockOp = "add"
	StockSubtract StockOp = "subtract"
)

// ValidStockOp reports whether op is a known stock operation.
func ValidStockOp(op StockOp) bool {
	switch op {
	case StockSet, StockAdd, StockSubtract:
		return true
	}
	return false
}

// ProductFilter narrows ListProducts. Nil fields mean "no filter".
type ProductFilter struct {
	Category *domain.Category
	IsActive *bool
}

// NewProduct carries the caller-supplied fields for product creation; the
// store assigns ID, ProductCode and timestamps.
type NewProduct struct {
	Name     string
	Price    float64
	Category domain.Category
	StockQty int
	ImageURL *string
	IsActive bool
}

// ProductUpdate is a partial update; nil fields are left untouched. An
// ImageURL pointing at an empty string clears the stored URL.
type ProductUpdate struct {
	Name     *string
	Price    *float64
	Category *domain.Category
	StockQty *int
	ImageURL *string
	IsActive *bool
}

// OrderFilter narrows order queries. Zero-value times and an empty status
// mean "no filter". End is exclusive.
type OrderFilter struct {
	Start  time.Time
	End    time.Time
	Status domain.OrderStatus
}

// CheckoutTx is the set of operations available inside one checkout
// transaction. Implementations guarantee that a ProductForUpdate read and the
// subsequent DecrementStock of the same product are isolated from concurrent
// checkouts.
type CheckoutTx interface {
	// ProductForUpdate reads a product with write intent. Returns
	// ErrProductNotFound if no such row exists.
	ProductForUpdate(ctx context.Context, id int64) (*domain.Product, error)

	// InsertOrder persists the order header and returns its assigned ID.
	InsertOrder(ctx context.Context, order *domain.Order) (int64, error)

	// InsertOrderItems persists all line items for the given order.
	InsertOrderItems(ctx context.Context, orderID int64, items []domain.OrderItem) error

	// DecrementStock subtracts quantity from a product's stock. Returns
	// ErrInsufficientStock when the remaining stock does not cover the
	// quantity; stock never goes negative.
	DecrementStock(ctx context.Context, productID int64, quantity int) error
}

// Store is the persistence surface the rest of the application depends on.
type Store interface {
	// Catalog
	ListProducts(ctx context.Context, f ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, np NewProduct) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, upd ProductUpdate) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, id int64) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, id int64, quantity int, op StockOp) (*domain.Product, error)

	// Orders
	QueryOrders(ctx context.Context, f OrderFilter, page, limit int) ([]domain.Order, int, error)
	OrdersInRange(ctx context.Context, start, end time.Time, status domain.OrderStatus) ([]domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)

	// Checkout boundary
	RunInTx(ctx context.Context, fn func(tx CheckoutTx) error) error

	RunMigrations() error
	Close() error
}
