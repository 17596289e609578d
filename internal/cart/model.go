package cart

import "github.com/shopspring/decimal"

// Line is one cart entry. Name and UnitPrice are denormalized copies
// captured at add time; they can go stale relative to the catalog and are
// reconciled only at checkout.
type Line struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
