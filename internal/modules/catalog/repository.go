package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines data access for products.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*Product, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, search string, activeOnly bool) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Deactivate(ctx context.Context, storeID, id uuid.UUID) error
}

// UnitRepository defines data access for units.
type UnitRepository interface {
	Create(ctx context.Context, u *Unit) error
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*Unit, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]Unit, error)
	Update(ctx context.Context, u *Unit) error
}
