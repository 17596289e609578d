// Package checkout turns the cart into orders: one order per cart line,
// submitted concurrently, with per-line outcomes kept apart so a partial
// failure is visible and retryable instead of collapsing into a single
// generic error.
package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"simplemarket/internal/cart"
	"simplemarket/internal/logger"
	"simplemarket/internal/order"
	"simplemarket/internal/product"

	"go.uber.org/zap"
)

// API is the slice of the REST client checkout needs.
type API interface {
	CreateOrder(ctx context.Context, input order.CreateOrderInput) (*order.Order, error)
}

type LineResult struct {
	Line  cart.Line
	Order *order.Order
	Err   error
}

type Result struct {
	Lines     []LineResult
	Succeeded int
	Failed    int
}

func (r *Result) AllSucceeded() bool {
	return r.Failed == 0
}

// FailedLines returns the lines whose submission failed, for retry.
func (r *Result) FailedLines() []cart.Line {
	var failed []cart.Line
	for _, lr := range r.Lines {
		if lr.Err != nil {
			failed = append(failed, lr.Line)
		}
	}
	return failed
}

type Orchestrator struct {
	api  API
	cart *cart.Cart
}

func New(api API, c *cart.Cart) *Orchestrator {
	return &Orchestrator{api: api, cart: c}
}

// Checkout validates the whole cart against the catalog snapshot, then
// submits one order per line. Validation failures abort before any
// network call; submission failures are recorded per line. On success the
// submitted lines leave the cart and the snapshot's stock is decremented
// optimistically, pending the caller's re-fetch.
func (o *Orchestrator) Checkout(ctx context.Context, products []product.Product, buyerName, shippingAddress string) (*Result, error) {
	lines := o.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	buyerName = strings.TrimSpace(buyerName)
	if buyerName == "" {
		return nil, ErrBuyerNameRequired
	}

	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	// Re-check every line before the first submission so a stale cart
	// cannot commit a partial order set.
	for _, l := range lines {
		i, ok := byID[l.ProductID]
		if !ok {
			return nil, &UnavailableError{ProductName: l.Name}
		}
		if l.Quantity > products[i].AvailableQuantity {
			return nil, &StockError{
				ProductName: l.Name,
				Available:   products[i].AvailableQuantity,
			}
		}
	}

	result := o.submit(ctx, lines, buyerName, shippingAddress)
	o.reconcile(result, products, byID)
	return result, nil
}

// RetryFailed resubmits only the failed lines of a previous result. No
// stock pre-check: the server already arbitrates these quantities.
func (o *Orchestrator) RetryFailed(ctx context.Context, prev *Result, products []product.Product, buyerName, shippingAddress string) (*Result, error) {
	failed := prev.FailedLines()
	if len(failed) == 0 {
		return nil, ErrEmptyCart
	}

	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	result := o.submit(ctx, failed, buyerName, shippingAddress)
	o.reconcile(result, products, byID)
	return result, nil
}

// submit issues the per-line order calls concurrently. There is no
// ordering guarantee between lines and no cancellation of in-flight
// calls; every line runs to completion and reports its own outcome.
func (o *Orchestrator) submit(ctx context.Context, lines []cart.Line, buyerName, shippingAddress string) *Result {
	log := logger.FromCtx(ctx).With(
		zap.String("component", "checkout"),
		zap.Int("lines", len(lines)),
	)
	log.Info("submitting orders")

	results := make([]LineResult, len(lines))
	var wg sync.WaitGroup

	for i, l := range lines {
		wg.Add(1)
		go func(i int, l cart.Line) {
			defer wg.Done()

			productID := l.ProductID
			now := time.Now().UTC()
			created, err := o.api.CreateOrder(ctx, order.CreateOrderInput{
				ProductID:       &productID,
				Quantity:        l.Quantity,
				BuyerName:       buyerName,
				ShippingAddress: shippingAddress,
				OrderDate:       &now,
			})

			results[i] = LineResult{Line: l, Order: created, Err: err}
		}(i, l)
	}
	wg.Wait()

	result := &Result{Lines: results}
	for _, lr := range results {
		if lr.Err != nil {
			result.Failed++
			log.Warn("order submission failed",
				zap.String("product_id", lr.Line.ProductID),
				zap.Error(lr.Err),
			)
		} else {
			result.Succeeded++
		}
	}

	log.Info("checkout finished",
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
	)
	return result
}

// reconcile removes submitted lines from the cart and applies the
// optimistic stock decrement for each success. Failed lines stay in the
// cart for retry.
func (o *Orchestrator) reconcile(result *Result, products []product.Product, byID map[string]int) {
	for _, lr := range result.Lines {
		if lr.Err != nil {
			continue
		}
		_ = o.cart.Remove(lr.Line.ProductID)
		if i, ok := byID[lr.Line.ProductID]; ok {
			products[i].AvailableQuantity -= lr.Line.Quantity
		}
	}
	if result.AllSucceeded() {
		_ = o.cart.Clear()
	}
}
