package order

import (
	"context"
	"errors"
	"time"

	"simplemarket/internal/product"

	"github.com/shopspring/decimal"
)

// Service defines the business logic for orders.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	GetOrders(ctx context.Context, buyerName string) ([]Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	CountOrders(ctx context.Context) (int64, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	if input.Quantity <= 0 {
		return nil, ErrQuantityRequired
	}
	if input.BuyerName == "" {
		return nil, ErrBuyerNameRequired
	}

	o := &Order{
		ProductID:       input.ProductID,
		ProductName:     input.ProductName,
		Quantity:        input.Quantity,
		BuyerName:       input.BuyerName,
		ShippingAddress: input.ShippingAddress,
		OrderDate:       time.Now().UTC(),
	}
	if input.OrderDate != nil {
		o.OrderDate = *input.OrderDate
	}

	if input.ProductID != nil {
		// Catalog order: name and unit price come from the product, not
		// from whatever the client captured at add-to-cart time.
		p, err := s.productRepo.GetByID(ctx, *input.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrProductNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
		o.ProductName = p.Name
		o.UnitPrice = p.Price
	} else {
		// Custom, off-catalog order.
		if input.ProductName == "" {
			return nil, ErrProductNameRequired
		}
		if input.Price == nil {
			return nil, ErrPriceRequired
		}
		o.UnitPrice = *input.Price
	}

	o.TotalPrice = o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))

	return s.repo.Create(ctx, o)
}

func (s *service) GetOrders(ctx context.Context, buyerName string) ([]Order, error) {
	return s.repo.ListByBuyer(ctx, buyerName)
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.TotalRevenue(ctx)
}

func (s *service) CountOrders(ctx context.Context) (int64, error) {
	return s.repo.CountOrders(ctx)
}
