package order

import "errors"

var (
	// -- Validation & Input --
	ErrQuantityRequired    = errors.New("quantity must be greater than zero")
	ErrBuyerNameRequired   = errors.New("buyer name is required")
	ErrProductNameRequired = errors.New("product name is required for a custom order")
	ErrPriceRequired       = errors.New("price is required for a custom order")

	// -- Resource State --
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("not enough quantity available")
)
