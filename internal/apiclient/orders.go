package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"simplemarket/internal/order"

	"github.com/shopspring/decimal"
)

// ListOrders fetches orders for one buyer. An empty buyer name
// short-circuits to an empty list without touching the network.
func (c *Client) ListOrders(ctx context.Context, buyerName string) ([]order.Order, error) {
	if buyerName == "" {
		return []order.Order{}, nil
	}

	var orders []order.Order
	path := "/api/orders?buyer=" + url.QueryEscape(buyerName)
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) CreateOrder(ctx context.Context, input order.CreateOrderInput) (*order.Order, error) {
	var o order.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", input, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var payload struct {
		TotalRevenue decimal.Decimal `json:"totalRevenue"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders/total-revenue", nil, &payload); err != nil {
		return decimal.Zero, err
	}
	return payload.TotalRevenue, nil
}

func (c *Client) TotalCustomers(ctx context.Context) (int64, error) {
	var payload struct {
		TotalCust int64 `json:"totalcust"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders/total-cust", nil, &payload); err != nil {
		return 0, err
	}
	return payload.TotalCust, nil
}
