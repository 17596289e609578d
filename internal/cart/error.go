package cart

import (
	"errors"
	"fmt"
)

var ErrLineNotFound = errors.New("product is not in the cart")

// StockLimitError is the user-facing rejection when an add or quantity
// change would exceed the last-known available stock.
type StockLimitError struct {
	ProductName string
	Max         int
}

func (e *StockLimitError) Error() string {
	return fmt.Sprintf("maximum available quantity for %s is %d", e.ProductName, e.Max)
}
