package product

import "errors"

var (
	// -- Validation & Input --
	ErrNameRequired     = errors.New("product name is required")
	ErrNegativePrice    = errors.New("product price must not be negative")
	ErrNegativeQuantity = errors.New("available quantity must not be negative")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")
)
