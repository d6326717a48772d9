package supplier

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

// NewPostgresRepository creates a new PostgreSQL supplier repository.
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, s *Supplier) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO suppliers (id, store_id, name, phone, email, address, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		s.ID, s.StoreID, s.Name, s.Phone, s.Email, s.Address, s.Notes)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, storeID, id uuid.UUID) (*Supplier, error) {
	var s Supplier
	err := r.db.GetContext(ctx, &s, `
		SELECT id, store_id, name, phone, email, address, notes, created_at, updated_at
		FROM suppliers WHERE id = $1 AND store_id = $2`,
		id, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch supplier: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) ListByStore(ctx context.Context, storeID uuid.UUID, search string) ([]Supplier, error) {
	query := `SELECT id, store_id, name, phone, email, address, notes, created_at, updated_at
		FROM suppliers WHERE store_id = $1`
	args := []interface{}{storeID}
	if search != "" {
		query += ` AND (name ILIKE $2 OR phone ILIKE $2 OR email ILIKE $2)`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name`

	suppliers := []Supplier{}
	if err := r.db.SelectContext(ctx, &suppliers, query, args...); err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *postgresRepository) Update(ctx context.Context, s *Supplier) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE suppliers
		SET name = $1, phone = $2, email = $3, address = $4, notes = $5, updated_at = $6
		WHERE id = $7 AND store_id = $8`,
		s.Name, s.Phone, s.Email, s.Address, s.Notes, time.Now(), s.ID, s.StoreID)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM suppliers WHERE id = $1 AND store_id = $2", id, storeID)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
