package orders

import "errors"

var (
	// ErrInvalidQuantity is raised before any database work happens.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrLockTimeout means the product row lock could not be acquired in
	// time. The caller may retry; the service never retries internally.
	ErrLockTimeout = errors.New("timed out waiting for product lock")
)
