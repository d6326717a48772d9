package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines store business logic.
type Service interface {
	Create(ctx context.Context, input StoreInput) (*Store, error)
	Get(ctx context.Context, id uuid.UUID) (*Store, error)
	List(ctx context.Context, activeOnly bool) ([]Store, error)
	Update(ctx context.Context, id uuid.UUID, input StoreInput) (*Store, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type service struct{ repo Repository }

// NewService creates a new store service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, input StoreInput) (*Store, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("store name is required")
	}
	st := &Store{
		ID:       uuid.New(),
		Name:     input.Name,
		Address:  input.Address,
		Phone:    input.Phone,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, st.ID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]Store, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input StoreInput) (*Store, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("store name is required")
	}
	st := &Store{ID: id, Name: input.Name, Address: input.Address, Phone: input.Phone}
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}
