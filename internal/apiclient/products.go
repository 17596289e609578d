package apiclient

import (
	"context"
	"errors"
	"net/http"

	"simplemarket/internal/product"
)

// ListProducts fetches the full catalog in server order.
func (c *Client) ListProducts(ctx context.Context) ([]product.Product, error) {
	var products []product.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct validates the required fields before any network traffic,
// mirroring the original admin form.
func (c *Client) CreateProduct(ctx context.Context, input product.NewProductInput) (*product.Product, error) {
	if input.Name == "" {
		return nil, &ValidationError{Message: product.ErrNameRequired.Error()}
	}
	if input.Price.IsNegative() {
		return nil, &ValidationError{Message: product.ErrNegativePrice.Error()}
	}
	if input.AvailableQuantity < 0 {
		return nil, &ValidationError{Message: product.ErrNegativeQuantity.Error()}
	}

	var p product.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, input product.UpdateProductInput) (*product.Product, error) {
	var p product.Product
	if err := c.do(ctx, http.MethodPut, "/api/products/"+id, input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct is idempotent from the caller's perspective: deleting an
// id that is already gone counts as success, since the UI only re-fetches
// afterwards.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodDelete, "/api/products/"+id, nil, nil)
	if err == nil {
		return nil
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) && vErr.Message == product.ErrProductNotFound.Error() {
		return nil
	}
	var nErr *NetworkError
	if errors.As(err, &nErr) && nErr.Status == http.StatusNotFound {
		return nil
	}
	return err
}
