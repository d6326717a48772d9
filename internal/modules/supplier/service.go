package supplier

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines supplier business logic.
type Service interface {
	Create(ctx context.Context, storeID uuid.UUID, input SupplierInput) (*Supplier, error)
	Get(ctx context.Context, storeID, id uuid.UUID) (*Supplier, error)
	List(ctx context.Context, storeID uuid.UUID, search string) ([]Supplier, error)
	Update(ctx context.Context, storeID, id uuid.UUID, input SupplierInput) (*Supplier, error)
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

type service struct{ repo Repository }

// NewService creates a new supplier service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, storeID uuid.UUID, input SupplierInput) (*Supplier, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("supplier name is required")
	}
	sp := &Supplier{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
		Notes:   input.Notes,
	}
	if err := s.repo.Create(ctx, sp); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, storeID, sp.ID)
}

func (s *service) Get(ctx context.Context, storeID, id uuid.UUID) (*Supplier, error) {
	return s.repo.GetByID(ctx, storeID, id)
}

func (s *service) List(ctx context.Context, storeID uuid.UUID, search string) ([]Supplier, error) {
	return s.repo.ListByStore(ctx, storeID, search)
}

func (s *service) Update(ctx context.Context, storeID, id uuid.UUID, input SupplierInput) (*Supplier, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("supplier name is required")
	}
	sp := &Supplier{
		ID:      id,
		StoreID: storeID,
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
		Notes:   input.Notes,
	}
	if err := s.repo.Update(ctx, sp); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, storeID, id)
}

func (s *service) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	return s.repo.Delete(ctx, storeID, id)
}
