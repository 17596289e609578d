// Package storefront wires the customer experience together: session
// gate, local state restore, catalog/order fetches, cart mutations and
// checkout, re-rendering the affected views after every change.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"io"

	"simplemarket/internal/apiclient"
	"simplemarket/internal/cart"
	"simplemarket/internal/checkout"
	"simplemarket/internal/localstore"
	"simplemarket/internal/logger"
	"simplemarket/internal/metrics"
	"simplemarket/internal/order"
	"simplemarket/internal/product"
	"simplemarket/internal/session"
	"simplemarket/internal/view"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrNotAuthenticated = errors.New("not authenticated as customer")

// Backend is the slice of the REST client the storefront consumes.
type Backend interface {
	ListProducts(ctx context.Context) ([]product.Product, error)
	ListOrders(ctx context.Context, buyerName string) ([]order.Order, error)
	CreateOrder(ctx context.Context, input order.CreateOrderInput) (*order.Order, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
}

var _ Backend = (*apiclient.Client)(nil)

// App owns all client state. Mutations go through named operations; every
// one of them persists and re-renders before returning.
type App struct {
	gate     *session.Gate
	api      Backend
	cart     *cart.Cart
	checkout *checkout.Orchestrator
	store    localstore.Store
	out      io.Writer

	products []product.Product
	orders   []order.Order
	buyer    BuyerInfo
	theme    string

	fetches       metrics.Counter
	fetchFailures metrics.Counter
}

func NewApp(gate *session.Gate, api Backend, c *cart.Cart, store localstore.Store, out io.Writer) *App {
	return &App{
		gate:     gate,
		api:      api,
		cart:     c,
		checkout: checkout.New(api, c),
		store:    store,
		out:      out,
		theme:    ThemeLight,
	}
}

// Init is the page-load sequence: gate check, local state restore, server
// fetches, first render. A failed fetch leaves the affected list empty
// and interactive, never fatal.
func (a *App) Init(ctx context.Context) error {
	if !a.gate.RequireRole(session.RoleCustomer) {
		return ErrNotAuthenticated
	}

	a.cart.Load()
	a.buyer = loadBuyerInfo(a.store)
	a.theme = loadTheme(a.store)

	if err := a.RefreshProducts(ctx); err != nil {
		logger.FromCtx(ctx).Warn("initial product fetch failed", zap.Error(err))
	}
	if err := a.RefreshOrders(ctx); err != nil {
		logger.FromCtx(ctx).Warn("initial order fetch failed", zap.Error(err))
	}

	a.render()
	return nil
}

func (a *App) RefreshProducts(ctx context.Context) error {
	a.fetches.Inc()
	timer := metrics.StartTimer()
	products, err := a.api.ListProducts(ctx)
	if err != nil {
		a.fetchFailures.Inc()
		return err
	}
	a.products = products
	logger.FromCtx(ctx).Debug("catalog fetched",
		zap.Int("products", len(products)),
		zap.Duration("took", timer.Duration()),
	)
	return nil
}

// RefreshOrders re-fetches the order list for the current buyer. An empty
// buyer name yields an empty list without a network call.
func (a *App) RefreshOrders(ctx context.Context) error {
	a.fetches.Inc()
	timer := metrics.StartTimer()
	orders, err := a.api.ListOrders(ctx, a.buyer.Name)
	if err != nil {
		a.fetchFailures.Inc()
		return err
	}
	a.orders = orders
	logger.FromCtx(ctx).Debug("orders fetched",
		zap.Int("orders", len(orders)),
		zap.Duration("took", timer.Duration()),
	)
	return nil
}

func (a *App) Products() []product.Product {
	return a.products
}

func (a *App) Orders() []order.Order {
	return a.orders
}

func (a *App) findProduct(id string) (product.Product, bool) {
	for _, p := range a.products {
		if p.ID == id {
			return p, true
		}
	}
	return product.Product{}, false
}

// AddToCart adds one unit of the product by catalog id.
func (a *App) AddToCart(productID string) error {
	p, ok := a.findProduct(productID)
	if !ok {
		return cart.ErrLineNotFound
	}
	if err := a.cart.Add(p); err != nil {
		return err
	}
	a.render()
	return nil
}

func (a *App) RemoveFromCart(productID string) error {
	if err := a.cart.Remove(productID); err != nil {
		return err
	}
	a.render()
	return nil
}

func (a *App) SetCartQuantity(productID string, quantity int) error {
	p, ok := a.findProduct(productID)
	if !ok {
		return cart.ErrLineNotFound
	}
	if err := a.cart.SetQuantity(p, quantity); err != nil {
		return err
	}
	a.render()
	return nil
}

func (a *App) ClearCart() error {
	if err := a.cart.Clear(); err != nil {
		return err
	}
	a.render()
	return nil
}

// Checkout runs the orchestrator and, on full success, reconciles stock
// by re-fetching both lists from the server.
func (a *App) Checkout(ctx context.Context) (*checkout.Result, error) {
	result, err := a.checkout.Checkout(ctx, a.products, a.buyer.Name, a.buyer.Address)
	if err != nil {
		return nil, err
	}

	if result.AllSucceeded() {
		if err := a.RefreshProducts(ctx); err != nil {
			logger.FromCtx(ctx).Warn("post-checkout product refresh failed", zap.Error(err))
		}
		if err := a.RefreshOrders(ctx); err != nil {
			logger.FromCtx(ctx).Warn("post-checkout order refresh failed", zap.Error(err))
		}
	}

	a.render()
	return result, nil
}

// RetryFailedLines resubmits the failed lines of a previous checkout.
func (a *App) RetryFailedLines(ctx context.Context, prev *checkout.Result) (*checkout.Result, error) {
	result, err := a.checkout.RetryFailed(ctx, prev, a.products, a.buyer.Name, a.buyer.Address)
	if err != nil {
		return nil, err
	}
	a.render()
	return result, nil
}

func (a *App) SetBuyerInfo(name, address string) error {
	a.buyer = BuyerInfo{Name: name, Address: address}
	return saveBuyerInfo(a.store, a.buyer)
}

func (a *App) Buyer() BuyerInfo {
	return a.buyer
}

func (a *App) ToggleTheme() error {
	if a.theme == ThemeDark {
		a.theme = ThemeLight
	} else {
		a.theme = ThemeDark
	}
	return saveTheme(a.store, a.theme)
}

func (a *App) Theme() string {
	return a.theme
}

// FetchStats reports how many server fetches ran and how many failed.
func (a *App) FetchStats() (fetches, failures uint64) {
	return a.fetches.Load(), a.fetchFailures.Load()
}

// render replaces all three view regions from current state.
func (a *App) render() {
	if a.out == nil {
		return
	}
	fmt.Fprintln(a.out, view.ProductList(a.products))
	fmt.Fprintln(a.out, view.CartPanel(a.cart.Lines(), a.cart.Total()))
	fmt.Fprintln(a.out, view.OrderList(a.orders))
}
