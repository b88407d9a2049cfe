package orderengine

import "errors"

// Sentinel errors for callers to map onto the HTTP error taxonomy.
var (
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrItemNotFound      = errors.New("menu item not found")
	ErrItemUnavailable   = errors.New("menu item is not available")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderItemNotFound = errors.New("order item not found")
	ErrOrderLocked       = errors.New("order is no longer pending")
	ErrOrderCancelled    = errors.New("order has been cancelled")
	ErrForbidden         = errors.New("not allowed to modify this order")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConcurrentUpdate  = errors.New("order was modified concurrently, retry")
)
