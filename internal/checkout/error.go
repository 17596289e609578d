package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart         = errors.New("your cart is empty")
	ErrBuyerNameRequired = errors.New("please enter your name to checkout")
)

// UnavailableError means a cart line references a product that is gone
// from the catalog snapshot.
type UnavailableError struct {
	ProductName string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("product %q is no longer available", e.ProductName)
}

// StockError names the first cart line whose quantity exceeds the cached
// available stock. It aborts the whole checkout before any submission.
type StockError struct {
	ProductName string
	Available   int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("only %d units of %q are available", e.Available, e.ProductName)
}
