package supplier

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for suppliers. Every method is scoped by
// store id in its predicate.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*Supplier, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, search string) ([]Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}
