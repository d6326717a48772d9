package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL store repository.
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, s *Store) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stores (id, name, address, phone, is_active)
		VALUES ($1,$2,$3,$4,$5)`,
		s.ID, s.Name, s.Address, s.Phone, s.IsActive)
	if err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Store, error) {
	var s Store
	err := r.db.GetContext(ctx, &s, `
		SELECT id, name, address, phone, is_active, created_at, updated_at
		FROM stores WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch store: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) List(ctx context.Context, activeOnly bool) ([]Store, error) {
	query := `SELECT id, name, address, phone, is_active, created_at, updated_at FROM stores`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	stores := []Store{}
	if err := r.db.SelectContext(ctx, &stores, query); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

func (r *postgresRepository) Update(ctx context.Context, s *Store) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE stores SET name = $1, address = $2, phone = $3, updated_at = $4
		WHERE id = $5`,
		s.Name, s.Address, s.Phone, time.Now(), s.ID)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE stores SET is_active = false, updated_at = $1 WHERE id = $2",
		time.Now(), id)
	if err != nil {
		return fmt.Errorf("deactivate store: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
