package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines catalog business logic for products and units.
type Service interface {
	CreateProduct(ctx context.Context, storeID uuid.UUID, input ProductInput) (*Product, error)
	GetProduct(ctx context.Context, storeID, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, storeID uuid.UUID, search string, activeOnly bool) ([]Product, error)
	UpdateProduct(ctx context.Context, storeID, id uuid.UUID, input ProductInput) (*Product, error)
	DeactivateProduct(ctx context.Context, storeID, id uuid.UUID) error

	CreateUnit(ctx context.Context, storeID uuid.UUID, input UnitInput) (*Unit, error)
	ListUnits(ctx context.Context, storeID uuid.UUID) ([]Unit, error)
	UpdateUnit(ctx context.Context, storeID, id uuid.UUID, input UnitInput) (*Unit, error)
}

type service struct {
	products ProductRepository
	units    UnitRepository
}

// NewService creates a new catalog service.
func NewService(products ProductRepository, units UnitRepository) Service {
	return &service{products: products, units: units}
}

func (s *service) CreateProduct(ctx context.Context, storeID uuid.UUID, input ProductInput) (*Product, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	p := &Product{
		ID:         uuid.New(),
		StoreID:    storeID,
		Name:       input.Name,
		SKU:        input.SKU,
		BaseUnitID: input.BaseUnitID,
		SalePrice:  input.SalePrice,
		IsActive:   true,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, storeID, p.ID)
}

func (s *service) GetProduct(ctx context.Context, storeID, id uuid.UUID) (*Product, error) {
	return s.products.GetByID(ctx, storeID, id)
}

func (s *service) ListProducts(ctx context.Context, storeID uuid.UUID, search string, activeOnly bool) ([]Product, error) {
	return s.products.ListByStore(ctx, storeID, search, activeOnly)
}

func (s *service) UpdateProduct(ctx context.Context, storeID, id uuid.UUID, input ProductInput) (*Product, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	p := &Product{
		ID:         id,
		StoreID:    storeID,
		Name:       input.Name,
		SKU:        input.SKU,
		BaseUnitID: input.BaseUnitID,
		SalePrice:  input.SalePrice,
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, storeID, id)
}

func (s *service) DeactivateProduct(ctx context.Context, storeID, id uuid.UUID) error {
	return s.products.Deactivate(ctx, storeID, id)
}

func (s *service) CreateUnit(ctx context.Context, storeID uuid.UUID, input UnitInput) (*Unit, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("unit name is required")
	}
	u := &Unit{ID: uuid.New(), StoreID: storeID, Name: input.Name}
	if err := s.units.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.units.GetByID(ctx, storeID, u.ID)
}

func (s *service) ListUnits(ctx context.Context, storeID uuid.UUID) ([]Unit, error) {
	return s.units.ListByStore(ctx, storeID)
}

func (s *service) UpdateUnit(ctx context.Context, storeID, id uuid.UUID, input UnitInput) (*Unit, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("unit name is required")
	}
	u := &Unit{ID: id, StoreID: storeID, Name: input.Name}
	if err := s.units.Update(ctx, u); err != nil {
		return nil, err
	}
	return s.units.GetByID(ctx, storeID, id)
}
