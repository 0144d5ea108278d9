package inventory

import "errors"

// Expected failure modes. Handlers map these to 4xx responses; anything
// else is a storage failure surfaced as a generic 500.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidDelta      = errors.New("adjustment delta cannot be zero")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidSettings   = errors.New("invalid inventory settings")
)
