package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID              string           `json:"id"`
	ProductID       *string          `json:"productId"`
	ProductName     string           `json:"productName"`
	Quantity        int              `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"price"`
	TotalPrice      decimal.Decimal  `json:"totalPrice"`
	BuyerName       string           `json:"buyerName"`
	ShippingAddress string           `json:"shippingAddress,omitempty"`
	OrderDate       time.Time        `json:"orderDate"`
}

// CreateOrderInput is the order-creation payload. ProductID nil means a
// custom, off-catalog order: ProductName and Price must then be supplied
// by the caller instead of being resolved from the catalog.
type CreateOrderInput struct {
	ProductID       *string          `json:"productId"`
	ProductName     string           `json:"productName"`
	Quantity        int              `json:"quantity"`
	Price           *decimal.Decimal `json:"price"`
	BuyerName       string           `json:"buyerName"`
	ShippingAddress string           `json:"shippingAddress"`
	OrderDate       *time.Time       `json:"orderDate"`
}
