package checkout

import (
	"context"
	"errors"

	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/domain"
	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/repository"
)

// fakeStore is an in-memory TxRunner. RunInTx hands the callback a snapshot
// of the catalog and only publishes the snapshot back when the callback
// succeeds, so tests observe the same all-or-nothing behavior as a real
// database transaction.
type fakeStore struct {
	products map[int64]domain.Product

	orders     []domain.Order
	orderItems map[int64][]domain.OrderItem
	nextID     int64

	insertOrderErr      error
	insertOrderItemsErr error
	decrementErr        error
}

func newFakeStore(products ...domain.Product) *fakeStore {
	s := &fakeStore{
		products:   make(map[int64]domain.Product),
		orderItems: make(map[int64][]domain.OrderItem),
		nextID:     1,
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeStore) RunInTx(_ context.Context, fn func(tx repository.CheckoutTx) error) error {
	tx := &fakeTx{
		store:    s,
		products: make(map[int64]domain.Product, len(s.products)),
	}
	for id, p := range s.products {
		tx.products[id] = p
	}

	if err := fn(tx); err != nil {
		return err
	}

	// Commit.
	s.products = tx.products
	s.orders = append(s.orders, tx.orders...)
	for id, items := range tx.orderItems {
		s.orderItems[id] = items
	}
	return nil
}

type fakeTx struct {
	store *fakeStore

	products   map[int64]domain.Product
	orders     []domain.Order
	orderItems map[int64][]domain.OrderItem
}

func (t *fakeTx) ProductForUpdate(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := t.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (t *fakeTx) InsertOrder(_ context.Context, order *domain.Order) (int64, error) {
	if t.store.insertOrderErr != nil {
		return 0, t.store.insertOrderErr
	}
	id := t.store.nextID
	t.store.nextID++
	o := *order
	o.ID = id
	t.orders = append(t.orders, o)
	return id, nil
}

func (t *fakeTx) InsertOrderItems(_ context.Context, orderID int64, items []domain.OrderItem) error {
	if t.store.insertOrderItemsErr != nil {
		return t.store.insertOrderItemsErr
	}
	if t.orderItems == nil {
		t.orderItems = make(map[int64][]domain.OrderItem)
	}
	t.orderItems[orderID] = items
	return nil
}

func (t *fakeTx) DecrementStock(_ context.Context, productID int64, quantity int) error {
	if t.store.decrementErr != nil {
		return t.store.decrementErr
	}
	p, ok := t.products[productID]
	if !ok || p.StockQty < quantity {
		return repository.ErrInsufficientStock
	}
	p.StockQty -= quantity
	t.products[productID] = p
	return nil
}

var errBoom = errors.New("boom")
