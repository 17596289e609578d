package cart

import (
	"testing"

	"simplemarket/internal/localstore"
	"simplemarket/internal/product"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id string, stock int) product.Product {
	return product.Product{
		ID:                id,
		Name:              "Product " + id,
		Price:             decimal.NewFromFloat(10.00),
		AvailableQuantity: stock,
	}
}

func TestCart_Add(t *testing.T) {
	t.Run("FirstAddStartsAtOne", func(t *testing.T) {
		c := New(localstore.NewMemStore())
		require.NoError(t, c.Add(testProduct("p1", 3)))

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].Quantity)
		assert.Equal(t, "Product p1", lines[0].Name)
	})

	t.Run("RepeatAddIncrements", func(t *testing.T) {
		c := New(localstore.NewMemStore())
		p := testProduct("p1", 3)
		require.NoError(t, c.Add(p))
		require.NoError(t, c.Add(p))

		assert.Equal(t, 2, c.Lines()[0].Quantity)
	})

	t.Run("QuantityNeverExceedsStock", func(t *testing.T) {
		c := New(localstore.NewMemStore())
		p := testProduct("p1", 2)
		require.NoError(t, c.Add(p))
		require.NoError(t, c.Add(p))

		err := c.Add(p)
		var stockErr *StockLimitError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Product p1", stockErr.ProductName)
		assert.Equal(t, 2, stockErr.Max)
		assert.Equal(t, 2, c.Lines()[0].Quantity)
	})

	t.Run("OutOfStockProductIsRejected", func(t *testing.T) {
		c := New(localstore.NewMemStore())
		err := c.Add(testProduct("p1", 0))

		var stockErr *StockLimitError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("PreservesInsertionOrder", func(t *testing.T) {
		c := New(localstore.NewMemStore())
		require.NoError(t, c.Add(testProduct("p1", 5)))
		require.NoError(t, c.Add(testProduct("p2", 5)))
		require.NoError(t, c.Add(testProduct("p1", 5)))

		lines := c.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "p1", lines[0].ProductID)
		assert.Equal(t, "p2", lines[1].ProductID)
	})
}

func TestCart_RemoveThenReAdd(t *testing.T) {
	c := New(localstore.NewMemStore())
	p := testProduct("p1", 5)
	require.NoError(t, c.Add(p))
	require.NoError(t, c.Add(p))
	require.NoError(t, c.Add(p))

	require.NoError(t, c.Remove("p1"))
	assert.Equal(t, 0, c.Len())

	// Re-adding starts over at 1, never inheriting the old quantity.
	require.NoError(t, c.Add(p))
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestCart_SetQuantity(t *testing.T) {
	t.Run("SetsInPlace", func(t *testing.T) {
		c := New(localstore.NewMemStore())
		p := testProduct("p1", 5)
		require.NoError(t, c.Add(p))

		require.NoError(t, c.SetQuantity(p, 4))
		assert.Equal(t, 4, c.Lines()[0].Quantity)

		// Decrementing in place works too.
		require.NoError(t, c.SetQuantity(p, 2))
		assert.Equal(t, 2, c.Lines()[0].Quantity)
	})

	t.Run("ZeroRemovesLine", func(t *testing.T) {
		c := New(localstore.NewMemStore())
		p := testProduct("p1", 5)
		require.NoError(t, c.Add(p))

		require.NoError(t, c.SetQuantity(p, 0))
		assert.Equal(t, 0, c.Len())
	})

	t.Run("CappedAtStock", func(t *testing.T) {
		c := New(localstore.NewMemStore())
		p := testProduct("p1", 3)
		require.NoError(t, c.Add(p))

		err := c.SetQuantity(p, 4)
		var stockErr *StockLimitError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 1, c.Lines()[0].Quantity)
	})

	t.Run("MissingLine", func(t *testing.T) {
		c := New(localstore.NewMemStore())
		err := c.SetQuantity(testProduct("p1", 3), 2)
		assert.ErrorIs(t, err, ErrLineNotFound)

		// Zero on a missing line is still an error, not a silent no-op.
		err = c.SetQuantity(testProduct("p1", 3), 0)
		assert.ErrorIs(t, err, ErrLineNotFound)

		// Even an over-stock quantity reports the missing line first.
		err = c.SetQuantity(testProduct("p1", 3), 99)
		assert.ErrorIs(t, err, ErrLineNotFound)
	})
}

func TestCart_Clear(t *testing.T) {
	store := localstore.NewMemStore()
	c := New(store)
	require.NoError(t, c.Add(testProduct("p1", 5)))
	require.NoError(t, c.Add(testProduct("p2", 5)))

	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Len())

	// The empty state is persisted, not just in memory.
	raw, ok := store.Get(localstore.KeyCart)
	require.True(t, ok)
	assert.JSONEq(t, "[]", raw)
}

func TestCart_PersistReloadRoundTrip(t *testing.T) {
	store := localstore.NewMemStore()

	c := New(store)
	p1 := testProduct("p1", 5)
	p2 := testProduct("p2", 5)
	require.NoError(t, c.Add(p1))
	require.NoError(t, c.Add(p1))
	require.NoError(t, c.Add(p2))

	// A fresh cart over the same store simulates a page refresh.
	reloaded := New(store)
	reloaded.Load()

	assert.Equal(t, c.Lines(), reloaded.Lines())
	assert.True(t, c.Total().Equal(reloaded.Total()))
}

func TestCart_LoadCorruptBlob(t *testing.T) {
	store := localstore.NewMemStore()
	require.NoError(t, store.Set(localstore.KeyCart, "{broken"))

	c := New(store)
	c.Load()

	assert.Equal(t, 0, c.Len())
}

func TestCart_Total(t *testing.T) {
	c := New(localstore.NewMemStore())

	assert.True(t, c.Total().IsZero())

	p := product.Product{ID: "p1", Name: "Widget", Price: decimal.NewFromFloat(2.50), AvailableQuantity: 10}
	require.NoError(t, c.Add(p))
	require.NoError(t, c.Add(p))
	require.NoError(t, c.Add(product.Product{ID: "p2", Name: "Gadget", Price: decimal.NewFromFloat(1.25), AvailableQuantity: 10}))

	assert.True(t, c.Total().Equal(decimal.NewFromFloat(6.25)), c.Total().String())
}
