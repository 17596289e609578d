package product

import (
	"context"

	"github.com/shopspring/decimal"
)

// Service defines the business logic for products.
type Service interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	AddProduct(ctx context.Context, input NewProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validate(name string, price decimal.Decimal, quantity int) error {
	if name == "" {
		return ErrNameRequired
	}
	if price.IsNegative() {
		return ErrNegativePrice
	}
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

func (s *service) ListProducts(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) AddProduct(ctx context.Context, input NewProductInput) (*Product, error) {
	if err := validate(input.Name, input.Price, input.AvailableQuantity); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, input)
}

func (s *service) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*Product, error) {
	if err := validate(input.Name, input.Price, input.AvailableQuantity); err != nil {
		return nil, err
	}

	// Preserve the original replace-by-id behavior: the product must exist.
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
