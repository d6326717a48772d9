package store

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for stores.
type Repository interface {
	Create(ctx context.Context, s *Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*Store, error)
	List(ctx context.Context, activeOnly bool) ([]Store, error)
	Update(ctx context.Context, s *Store) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}
