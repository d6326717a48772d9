package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service validates purchase-order requests before handing them to the
// lifecycle engine. The engine itself trusts its inputs.
type Service interface {
	Create(ctx context.Context, storeID uuid.UUID, input OrderInput) (*OrderWithItems, error)
	Get(ctx context.Context, storeID, orderID uuid.UUID) (*OrderWithItems, error)
	List(ctx context.Context, storeID uuid.UUID, filter ListFilter) (*PaginatedOrders, error)
	Update(ctx context.Context, storeID, orderID uuid.UUID, input OrderInput) (*OrderWithItems, error)
	Delete(ctx context.Context, storeID, orderID uuid.UUID) error
	CanDelete(ctx context.Context, storeID, orderID uuid.UUID) (bool, error)
	Items(ctx context.Context, orderID uuid.UUID) ([]ItemWithNames, error)
	Lots(ctx context.Context, orderID uuid.UUID) ([]PurchaseLot, error)
	BySupplier(ctx context.Context, storeID, supplierID uuid.UUID) ([]OrderWithSupplier, error)
	TotalAmount(ctx context.Context, storeID uuid.UUID, dateFrom, dateTo *time.Time) (decimal.Decimal, error)
}

type service struct {
	repo Repository
}

// NewService creates a new purchase service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateInput(input OrderInput) error {
	if len(input.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}
	if input.ImportDate.IsZero() {
		return fmt.Errorf("%w: import_date is required", ErrInvalidInput)
	}
	for i, item := range input.Items {
		if !item.Quantity.IsPositive() {
			return fmt.Errorf("%w: item %d quantity must be positive", ErrInvalidInput, i+1)
		}
		if item.Cost.IsNegative() {
			return fmt.Errorf("%w: item %d cost must not be negative", ErrInvalidInput, i+1)
		}
		if item.ProductID == uuid.Nil || item.UnitID == uuid.Nil {
			return fmt.Errorf("%w: item %d product_id and unit_id are required", ErrInvalidInput, i+1)
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, storeID uuid.UUID, input OrderInput) (*OrderWithItems, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.repo.CreateWithItems(ctx, storeID, input)
}

func (s *service) Get(ctx context.Context, storeID, orderID uuid.UUID) (*OrderWithItems, error) {
	return s.repo.FindByIDWithDetails(ctx, storeID, orderID)
}

func (s *service) List(ctx context.Context, storeID uuid.UUID, filter ListFilter) (*PaginatedOrders, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	return s.repo.FindAllWithSupplier(ctx, storeID, filter)
}

func (s *service) Update(ctx context.Context, storeID, orderID uuid.UUID, input OrderInput) (*OrderWithItems, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.repo.UpdateWithItems(ctx, storeID, orderID, input)
}

func (s *service) Delete(ctx context.Context, storeID, orderID uuid.UUID) error {
	return s.repo.DeleteWithItems(ctx, storeID, orderID)
}

func (s *service) CanDelete(ctx context.Context, storeID, orderID uuid.UUID) (bool, error) {
	return s.repo.CanDelete(ctx, storeID, orderID)
}

func (s *service) Items(ctx context.Context, orderID uuid.UUID) ([]ItemWithNames, error) {
	return s.repo.GetItems(ctx, orderID)
}

func (s *service) Lots(ctx context.Context, orderID uuid.UUID) ([]PurchaseLot, error) {
	return s.repo.GetPurchaseLots(ctx, orderID)
}

func (s *service) BySupplier(ctx context.Context, storeID, supplierID uuid.UUID) ([]OrderWithSupplier, error) {
	return s.repo.FindBySupplier(ctx, storeID, supplierID)
}

func (s *service) TotalAmount(ctx context.Context, storeID uuid.UUID, dateFrom, dateTo *time.Time) (decimal.Decimal, error) {
	return s.repo.GetTotalAmount(ctx, storeID, dateFrom, dateTo)
}
