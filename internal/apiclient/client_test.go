package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"simplemarket/internal/order"
	"simplemarket/internal/product"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"id":"p1","name":"Widget","price":"10.5","availableQuantity":3},
				{"id":"p2","name":"Gadget","price":"4","availableQuantity":0}
			]`))
		}))
		defer srv.Close()

		products, err := New(srv.URL).ListProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Widget", products[0].Name)
		assert.True(t, products[0].Price.Equal(decimal.NewFromFloat(10.5)))
		assert.Equal(t, 3, products[0].AvailableQuantity)
	})

	t.Run("ServerError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := New(srv.URL).ListProducts(context.Background())
		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Equal(t, http.StatusInternalServerError, netErr.Status)
	})

	t.Run("ConnectionRefused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		_, err := New(srv.URL).ListProducts(context.Background())
		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Error(t, netErr.Err)
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("ValidatesBeforeNetwork", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer srv.Close()

		c := New(srv.URL)
		_, err := c.CreateProduct(context.Background(), product.NewProductInput{
			Price:             decimal.NewFromInt(5),
			AvailableQuantity: 1,
		})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)

		_, err = c.CreateProduct(context.Background(), product.NewProductInput{
			Name:  "Widget",
			Price: decimal.NewFromInt(-1),
		})
		require.ErrorAs(t, err, &vErr)

		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})

	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)

			var input product.NewProductInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
			assert.Equal(t, "Widget", input.Name)

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(product.Product{ID: "p1", Name: input.Name, Price: input.Price})
		}))
		defer srv.Close()

		p, err := New(srv.URL).CreateProduct(context.Background(), product.NewProductInput{
			Name:              "Widget",
			Price:             decimal.NewFromInt(5),
			AvailableQuantity: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, "p1", p.ID)
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/api/products/p1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		assert.NoError(t, New(srv.URL).DeleteProduct(context.Background(), "p1"))
	})

	t.Run("AlreadyGoneCountsAsSuccess", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "product not found"})
		}))
		defer srv.Close()

		assert.NoError(t, New(srv.URL).DeleteProduct(context.Background(), "p1"))
	})

	t.Run("OtherErrorsPropagate", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		assert.Error(t, New(srv.URL).DeleteProduct(context.Background(), "p1"))
	})
}

func TestListOrders(t *testing.T) {
	t.Run("EmptyBuyerShortCircuits", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer srv.Close()

		orders, err := New(srv.URL).ListOrders(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, orders)
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})

	t.Run("FiltersByBuyer", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Alice Smith", r.URL.Query().Get("buyer"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":"o1","productName":"Widget","quantity":2,"buyerName":"Alice Smith","totalPrice":"21"}]`))
		}))
		defer srv.Close()

		orders, err := New(srv.URL).ListOrders(context.Background(), "Alice Smith")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, 2, orders[0].Quantity)
	})
}

func TestCreateOrder(t *testing.T) {
	t.Run("ValidationMessageSurfacedVerbatim", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"not enough quantity available"}`))
		}))
		defer srv.Close()

		productID := "p1"
		_, err := New(srv.URL).CreateOrder(context.Background(), order.CreateOrderInput{
			ProductID: &productID,
			Quantity:  3,
			BuyerName: "Alice",
		})

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "not enough quantity available", vErr.Message)
	})

	t.Run("PlainTextBodyAlsoSurfaced", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("Not enough quantity available"))
		}))
		defer srv.Close()

		productID := "p1"
		_, err := New(srv.URL).CreateOrder(context.Background(), order.CreateOrderInput{
			ProductID: &productID,
			Quantity:  3,
			BuyerName: "Alice",
		})

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "Not enough quantity available", vErr.Message)
	})

	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var input order.CreateOrderInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
			assert.Equal(t, 2, input.Quantity)

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(order.Order{ID: "o1", Quantity: input.Quantity, BuyerName: input.BuyerName})
		}))
		defer srv.Close()

		productID := "p1"
		o, err := New(srv.URL).CreateOrder(context.Background(), order.CreateOrderInput{
			ProductID: &productID,
			Quantity:  2,
			BuyerName: "Alice",
		})
		require.NoError(t, err)
		assert.Equal(t, "o1", o.ID)
	})
}

func TestTotalRevenue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/total-revenue", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalRevenue":"123.45"}`))
	}))
	defer srv.Close()

	revenue, err := New(srv.URL).TotalRevenue(context.Background())
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.NewFromFloat(123.45)))
}

func TestTokenSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, apiclientTestToken("token-123"))
	assert.NoError(t, c.DeleteProduct(context.Background(), "p1"))
}

func apiclientTestToken(token string) Option {
	return WithTokenSource(func() (string, bool) { return token, true })
}
