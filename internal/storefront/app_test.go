package storefront

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"simplemarket/internal/cart"
	"simplemarket/internal/localstore"
	"simplemarket/internal/order"
	"simplemarket/internal/product"
	"simplemarket/internal/session"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend serves a fixed catalog and records created orders.
type fakeBackend struct {
	products    []product.Product
	orders      []order.Order
	revenue     decimal.Decimal
	listErr     error
	createCalls int
	createErr   error
}

func (f *fakeBackend) ListProducts(ctx context.Context) ([]product.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.products, nil
}

func (f *fakeBackend) ListOrders(ctx context.Context, buyerName string) ([]order.Order, error) {
	if buyerName == "" {
		return []order.Order{}, nil
	}
	filtered := make([]order.Order, 0)
	for _, o := range f.orders {
		if o.BuyerName == buyerName {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

func (f *fakeBackend) CreateOrder(ctx context.Context, input order.CreateOrderInput) (*order.Order, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	o := order.Order{
		ID:        "o1",
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		BuyerName: input.BuyerName,
	}
	f.orders = append(f.orders, o)
	return &o, nil
}

func (f *fakeBackend) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return f.revenue, nil
}

func defaultBackend() *fakeBackend {
	return &fakeBackend{
		products: []product.Product{
			{ID: "p1", Name: "Widget", Price: decimal.NewFromFloat(10.00), AvailableQuantity: 5},
			{ID: "p2", Name: "Gadget", Price: decimal.NewFromFloat(4.00), AvailableQuantity: 2},
		},
		revenue: decimal.NewFromFloat(100.00),
	}
}

func customerGate(t *testing.T) *session.Gate {
	t.Helper()
	auth := session.NewMockAuthenticator()
	g := session.NewGate(auth, localstore.NewMemStore(), localstore.NewMemStore(), "test-secret")
	_, err := g.Login(context.Background(), "customer", "cust123", false)
	require.NoError(t, err)
	return g
}

func newTestApp(t *testing.T, api Backend) (*App, localstore.Store, *bytes.Buffer) {
	t.Helper()
	store := localstore.NewMemStore()
	out := &bytes.Buffer{}
	app := NewApp(customerGate(t), api, cart.New(store), store, out)
	return app, store, out
}

func TestApp_Init(t *testing.T) {
	ctx := context.Background()

	t.Run("RequiresCustomerRole", func(t *testing.T) {
		store := localstore.NewMemStore()
		auth := session.NewMockAuthenticator()
		g := session.NewGate(auth, localstore.NewMemStore(), localstore.NewMemStore(), "test-secret")

		app := NewApp(g, defaultBackend(), cart.New(store), store, nil)
		assert.ErrorIs(t, app.Init(ctx), ErrNotAuthenticated)
	})

	t.Run("AdminIsNotACustomer", func(t *testing.T) {
		store := localstore.NewMemStore()
		auth := session.NewMockAuthenticator()
		g := session.NewGate(auth, localstore.NewMemStore(), localstore.NewMemStore(), "test-secret")
		_, err := g.Login(ctx, "admin", "admin123", false)
		require.NoError(t, err)

		app := NewApp(g, defaultBackend(), cart.New(store), store, nil)
		assert.ErrorIs(t, app.Init(ctx), ErrNotAuthenticated)
	})

	t.Run("RestoresStateAndRenders", func(t *testing.T) {
		api := defaultBackend()
		app, store, out := newTestApp(t, api)

		// Pre-seed persisted state from an earlier visit.
		require.NoError(t, saveBuyerInfo(store, BuyerInfo{Name: "Alice", Address: "1 Main St"}))
		require.NoError(t, saveTheme(store, ThemeDark))
		seed := cart.New(store)
		require.NoError(t, seed.Add(api.products[0]))

		require.NoError(t, app.Init(ctx))

		assert.Equal(t, "Alice", app.Buyer().Name)
		assert.Equal(t, ThemeDark, app.Theme())
		assert.Len(t, app.Products(), 2)
		assert.Contains(t, out.String(), "Widget")
	})

	t.Run("FetchFailureIsNonFatal", func(t *testing.T) {
		api := defaultBackend()
		api.listErr = errors.New("connection refused")
		app, _, out := newTestApp(t, api)

		require.NoError(t, app.Init(ctx))
		assert.Empty(t, app.Products())
		assert.Contains(t, out.String(), "No products available.")

		fetches, failures := app.FetchStats()
		assert.Equal(t, uint64(2), fetches)
		assert.Equal(t, uint64(1), failures)
	})
}

func TestApp_CartOperations(t *testing.T) {
	ctx := context.Background()
	api := defaultBackend()
	app, _, out := newTestApp(t, api)
	require.NoError(t, app.Init(ctx))

	t.Run("AddRendersCart", func(t *testing.T) {
		out.Reset()
		require.NoError(t, app.AddToCart("p1"))
		assert.Contains(t, out.String(), "Widget x 1")
	})

	t.Run("AddUnknownProduct", func(t *testing.T) {
		assert.ErrorIs(t, app.AddToCart("missing"), cart.ErrLineNotFound)
	})

	t.Run("StockCapSurfaces", func(t *testing.T) {
		require.NoError(t, app.AddToCart("p2"))
		require.NoError(t, app.AddToCart("p2"))

		err := app.AddToCart("p2")
		var stockErr *cart.StockLimitError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 2, stockErr.Max)
	})

	t.Run("SetQuantityAndRemove", func(t *testing.T) {
		require.NoError(t, app.SetCartQuantity("p1", 3))
		require.NoError(t, app.RemoveFromCart("p2"))

		out.Reset()
		require.NoError(t, app.ClearCart())
		assert.Contains(t, out.String(), "Your cart is empty.")
	})
}

func TestApp_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("FullSuccessRefreshesLists", func(t *testing.T) {
		api := defaultBackend()
		app, _, _ := newTestApp(t, api)
		require.NoError(t, app.Init(ctx))
		require.NoError(t, app.SetBuyerInfo("Alice", "1 Main St"))
		require.NoError(t, app.AddToCart("p1"))

		result, err := app.Checkout(ctx)
		require.NoError(t, err)
		assert.True(t, result.AllSucceeded())
		assert.Equal(t, 1, api.createCalls)

		// The order list now reflects the server's copy.
		require.Len(t, app.Orders(), 1)
		assert.Equal(t, "Alice", app.Orders()[0].BuyerName)
	})

	t.Run("MissingBuyerName", func(t *testing.T) {
		api := defaultBackend()
		app, _, _ := newTestApp(t, api)
		require.NoError(t, app.Init(ctx))
		require.NoError(t, app.AddToCart("p1"))

		_, err := app.Checkout(ctx)
		assert.Error(t, err)
		assert.Equal(t, 0, api.createCalls)
	})

	t.Run("RetryAfterFailure", func(t *testing.T) {
		api := defaultBackend()
		api.createErr = errors.New("temporarily unavailable")
		app, _, _ := newTestApp(t, api)
		require.NoError(t, app.Init(ctx))
		require.NoError(t, app.SetBuyerInfo("Alice", ""))
		require.NoError(t, app.AddToCart("p1"))

		first, err := app.Checkout(ctx)
		require.NoError(t, err)
		require.False(t, first.AllSucceeded())

		api.createErr = nil
		second, err := app.RetryFailedLines(ctx, first)
		require.NoError(t, err)
		assert.True(t, second.AllSucceeded())
	})
}

func TestApp_ThemeToggle(t *testing.T) {
	ctx := context.Background()
	app, store, _ := newTestApp(t, defaultBackend())
	require.NoError(t, app.Init(ctx))

	assert.Equal(t, ThemeLight, app.Theme())
	require.NoError(t, app.ToggleTheme())
	assert.Equal(t, ThemeDark, app.Theme())

	// Persisted for the next visit.
	saved, _ := store.Get(localstore.KeyTheme)
	assert.Equal(t, ThemeDark, saved)

	require.NoError(t, app.ToggleTheme())
	assert.Equal(t, ThemeLight, app.Theme())
}

func TestBuyerInfo_RoundTrip(t *testing.T) {
	store := localstore.NewMemStore()

	assert.Equal(t, BuyerInfo{}, loadBuyerInfo(store))

	require.NoError(t, saveBuyerInfo(store, BuyerInfo{Name: "Alice", Address: "1 Main St"}))
	assert.Equal(t, BuyerInfo{Name: "Alice", Address: "1 Main St"}, loadBuyerInfo(store))

	// Corrupt state reads as empty.
	require.NoError(t, store.Set(localstore.KeyBuyerInfo, "{broken"))
	assert.Equal(t, BuyerInfo{}, loadBuyerInfo(store))
}

func TestTheme_Load(t *testing.T) {
	store := localstore.NewMemStore()
	assert.Equal(t, ThemeLight, loadTheme(store))

	require.NoError(t, store.Set(localstore.KeyTheme, "neon"))
	assert.Equal(t, ThemeLight, loadTheme(store))

	require.NoError(t, saveTheme(store, ThemeDark))
	assert.Equal(t, ThemeDark, loadTheme(store))
}
