// Package cart holds the client-side cart state: an ordered list of
// product/quantity lines, mirrored to local storage on every mutation.
// Stock checks here are best-effort against the cached catalog; the
// server re-validates at order creation.
package cart

import (
	"encoding/json"

	"simplemarket/internal/localstore"
	"simplemarket/internal/logger"
	"simplemarket/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Cart struct {
	store localstore.Store
	lines []Line
}

func New(store localstore.Store) *Cart {
	return &Cart{store: store, lines: []Line{}}
}

// Load restores the persisted cart, simulating a page refresh. A corrupt
// blob is discarded and logged, leaving the cart empty.
func (c *Cart) Load() {
	raw, ok := c.store.Get(localstore.KeyCart)
	if !ok {
		return
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		logger.L().Warn("discarding corrupt cart blob", zap.Error(err))
		c.lines = []Line{}
		return
	}
	c.lines = lines
}

// Add puts one unit of the product in the cart: a new line starts at
// quantity 1, an existing line is incremented. Either way the quantity is
// capped at the product's cached available stock.
func (c *Cart) Add(p product.Product) error {
	for i := range c.lines {
		if c.lines[i].ProductID != p.ID {
			continue
		}
		if c.lines[i].Quantity >= p.AvailableQuantity {
			return &StockLimitError{ProductName: p.Name, Max: p.AvailableQuantity}
		}
		c.lines[i].Quantity++
		return c.persist()
	}

	if p.AvailableQuantity < 1 {
		return &StockLimitError{ProductName: p.Name, Max: p.AvailableQuantity}
	}

	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Quantity:  1,
		Name:      p.Name,
		UnitPrice: p.Price,
	})
	return c.persist()
}

// SetQuantity sets a line's quantity in place. Zero or negative removes
// the line; anything above the cached stock is rejected. The product must
// already be in the cart, whatever the quantity.
func (c *Cart) SetQuantity(p product.Product, quantity int) error {
	for i := range c.lines {
		if c.lines[i].ProductID != p.ID {
			continue
		}
		if quantity <= 0 {
			return c.Remove(p.ID)
		}
		if quantity > p.AvailableQuantity {
			return &StockLimitError{ProductName: p.Name, Max: p.AvailableQuantity}
		}
		c.lines[i].Quantity = quantity
		return c.persist()
	}
	return ErrLineNotFound
}

// Remove drops the line entirely. A later re-add starts over at
// quantity 1; the old quantity is never merged back.
func (c *Cart) Remove(productID string) error {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	c.lines = kept
	return c.persist()
}

func (c *Cart) Clear() error {
	c.lines = []Line{}
	return c.persist()
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) persist() error {
	raw, err := json.Marshal(c.lines)
	if err != nil {
		return err
	}
	return c.store.Set(localstore.KeyCart, string(raw))
}
