package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/domain"
	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/repository"
)

func product(id int64, name string, price float64, stock int) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Category: domain.CategoryBreads,
		StockQty: stock,
		IsActive: true,
	}
}

func TestCheckoutSuccess(t *testing.T) {
	store := newFakeStore(product(1, "Artisan Sourdough Bread", 6.50, 12))
	engine := NewEngine(store)

	order, err := engine.Checkout(context.Background(), []CartLine{{ProductID: 1, Quantity: 2}})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, 13.00, order.TotalAmount)
	assert.Equal(t, domain.OrderStatusCompleted, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(1), order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 6.50, order.Items[0].PriceAtPurchase)
	assert.Equal(t, order.ID, order.Items[0].OrderID)

	assert.Equal(t, 10, store.products[1].StockQty)
	require.Len(t, store.orders, 1)
}

func TestCheckoutMultipleProducts(t *testing.T) {
	store := newFakeStore(
		product(1, "Sourdough", 6.50, 12),
		product(2, "Croissant", 3.25, 30),
	)
	engine := NewEngine(store)

	order, err := engine.Checkout(context.Background(), []CartLine{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, 16.25, order.TotalAmount)
	assert.Equal(t, order.TotalAmount, order.ItemsTotal())
	assert.Equal(t, 11, store.products[1].StockQty)
	assert.Equal(t, 27, store.products[2].StockQty)
}

func TestCheckoutEmptyCart(t *testing.T) {
	engine := NewEngine(newFakeStore())

	_, err := engine.Checkout(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = engine.Checkout(context.Background(), []CartLine{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutInvalidQuantity(t *testing.T) {
	store := newFakeStore(product(1, "Sourdough", 6.50, 12))
	engine := NewEngine(store)

	for _, qty := range []int{0, -1} {
		_, err := engine.Checkout(context.Background(), []CartLine{{ProductID: 1, Quantity: qty}})

		var ce *Error
		require.ErrorAs(t, err, &ce, "quantity %d", qty)
		assert.Equal(t, KindInvalidQuantity, ce.Kind)
	}
	assert.Equal(t, 12, store.products[1].StockQty)
}

func TestCheckoutProductNotFound(t *testing.T) {
	engine := NewEngine(newFakeStore(product(1, "Sourdough", 6.50, 12)))

	_, err := engine.Checkout(context.Background(), []CartLine{{ProductID: 99, Quantity: 1}})

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindProductNotFound, ce.Kind)
	assert.Equal(t, int64(99), ce.ProductID)
}

func TestCheckoutInactiveProduct(t *testing.T) {
	p := product(1, "Pumpkin Spice Muffin", 3.75, 10)
	p.IsActive = false
	engine := NewEngine(newFakeStore(p))

	_, err := engine.Checkout(context.Background(), []CartLine{{ProductID: 1, Quantity: 1}})

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindProductInactive, ce.Kind)
	assert.Contains(t, ce.Error(), "Pumpkin Spice Muffin")
}

func TestCheckoutInsufficientStock(t *testing.T) {
	store := newFakeStore(product(1, "Sourdough", 6.50, 3))
	engine := NewEngine(store)

	_, err := engine.Checkout(context.Background(), []CartLine{{ProductID: 1, Quantity: 5}})

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindInsufficientStock, ce.Kind)
	assert.Equal(t, 3, ce.Available)
	assert.Equal(t, 5, ce.Requested)
	assert.Equal(t, `insufficient stock for "Sourdough". Available: 3, Requested: 5`, ce.Error())

	assert.Equal(t, 3, store.products[1].StockQty)
	assert.Empty(t, store.orders)
}

func TestCheckoutDuplicateLinesShareStock(t *testing.T) {
	store := newFakeStore(product(1, "Sourdough", 6.50, 5))
	engine := NewEngine(store)

	// 3 + 3 exceeds the 5 in stock even though each line alone fits.
	_, err := engine.Checkout(context.Background(), []CartLine{
		{ProductID: 1, Quantity: 3},
		{ProductID: 1, Quantity: 3},
	})

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindInsufficientStock, ce.Kind)
	assert.Equal(t, 2, ce.Available)
	assert.Equal(t, 3, ce.Requested)
	assert.Equal(t, 5, store.products[1].StockQty)
}

func TestCheckoutDuplicateLinesWithinStock(t *testing.T) {
	store := newFakeStore(product(1, "Sourdough", 6.50, 5))
	engine := NewEngine(store)

	order, err := engine.Checkout(context.Background(), []CartLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 1, Quantity: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, 32.50, order.TotalAmount)
	assert.Equal(t, 0, store.products[1].StockQty)
}

func TestCheckoutRollsBackOnFailure(t *testing.T) {
	store := newFakeStore(
		product(1, "Sourdough", 6.50, 12),
		product(2, "Croissant", 3.25, 1),
	)
	engine := NewEngine(store)

	// The second line fails after the first has already been validated;
	// nothing may be persisted.
	_, err := engine.Checkout(context.Background(), []CartLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 5},
	})
	require.Error(t, err)

	assert.Equal(t, 12, store.products[1].StockQty)
	assert.Equal(t, 1, store.products[2].StockQty)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.orderItems)
}

func TestCheckoutPersistenceFailure(t *testing.T) {
	store := newFakeStore(product(1, "Sourdough", 6.50, 12))
	store.insertOrderErr = errBoom
	engine := NewEngine(store)

	_, err := engine.Checkout(context.Background(), []CartLine{{ProductID: 1, Quantity: 1}})

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindPersistenceFailure, ce.Kind)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 12, store.products[1].StockQty)
}

func TestCheckoutItemInsertFailureRollsBack(t *testing.T) {
	store := newFakeStore(product(1, "Sourdough", 6.50, 12))
	store.insertOrderItemsErr = errBoom
	engine := NewEngine(store)

	_, err := engine.Checkout(context.Background(), []CartLine{{ProductID: 1, Quantity: 1}})

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindPersistenceFailure, ce.Kind)
	assert.Empty(t, store.orders)
	assert.Equal(t, 12, store.products[1].StockQty)
}

func TestCheckoutGuardedDecrementMapsToInsufficientStock(t *testing.T) {
	store := newFakeStore(product(1, "Sourdough", 6.50, 12))
	store.decrementErr = repository.ErrInsufficientStock
	engine := NewEngine(store)

	_, err := engine.Checkout(context.Background(), []CartLine{{ProductID: 1, Quantity: 1}})

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindInsufficientStock, ce.Kind)
	assert.Equal(t, 12, store.products[1].StockQty)
}

func TestCheckoutRoundsTotalToCents(t *testing.T) {
	store := newFakeStore(product(1, "Mini Tart", 1.10, 100))
	engine := NewEngine(store)

	order, err := engine.Checkout(context.Background(), []CartLine{{ProductID: 1, Quantity: 3}})
	require.NoError(t, err)
	assert.Equal(t, 3.30, order.TotalAmount)
}
