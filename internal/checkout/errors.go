package checkout

import (
	"errors"
	"fmt"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// Kind classifies a checkout failure so callers can map it to an actionable
// response without parsing message text.
type Kind string

const (
	KindProductNotFound    Kind = "product_not_found"
	KindProductInactive    Kind = "product_inactive"
	KindInvalidQuantity    Kind = "invalid_quantity"
	KindInsufficientStock  Kind = "insufficient_stock"
	KindPersistenceFailure Kind = "persistence_failure"
)

// Error is a structured checkout failure. Available and Requested are only
// meaningful for KindInsufficientStock; Cause is only set for
// KindPersistenceFailure.
type Error struct {
	Kind        Kind
	ProductID   int64
	ProductName string
	Available   int
	Requested   int
	Cause       error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindProductNotFound:
		return fmt.Sprintf("product with ID %d not found", e.ProductID)
	case KindProductInactive:
		return fmt.Sprintf("product %q is not available", e.ProductName)
	case KindInvalidQuantity:
		return fmt.Sprintf("invalid quantity %d for product %d", e.Requested, e.ProductID)
	case KindInsufficientStock:
		return fmt.Sprintf("insufficient stock for %q. Available: %d, Requested: %d",
			e.ProductName, e.Available, e.Requested)
	case KindPersistenceFailure:
		return fmt.Sprintf("failed to process order: %v", e.Cause)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
