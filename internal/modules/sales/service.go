package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines the sales business logic.
type Service interface {
	Checkout(ctx context.Context, storeID uuid.UUID, input SaleInput) (*SaleWithItems, error)
	Get(ctx context.Context, storeID, saleID uuid.UUID) (*SaleWithItems, error)
	List(ctx context.Context, storeID uuid.UUID, filter ListFilter) (*PaginatedSales, error)
}

type service struct {
	repo Repository
}

// NewService creates a new sales service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Checkout(ctx context.Context, storeID uuid.UUID, input SaleInput) (*SaleWithItems, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}
	for i, item := range input.Items {
		if !item.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: item %d quantity must be positive", ErrInvalidInput, i+1)
		}
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("%w: item %d price must not be negative", ErrInvalidInput, i+1)
		}
		if item.ProductID == uuid.Nil || item.UnitID == uuid.Nil {
			return nil, fmt.Errorf("%w: item %d product_id and unit_id are required", ErrInvalidInput, i+1)
		}
	}
	return s.repo.Checkout(ctx, storeID, input)
}

func (s *service) Get(ctx context.Context, storeID, saleID uuid.UUID) (*SaleWithItems, error) {
	return s.repo.FindByID(ctx, storeID, saleID)
}

func (s *service) List(ctx context.Context, storeID uuid.UUID, filter ListFilter) (*PaginatedSales, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	return s.repo.FindAll(ctx, storeID, filter)
}
