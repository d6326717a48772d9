package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const productColumns = `id, store_id, name, sku, base_unit_id, sale_price, is_active, created_at, updated_at`

type productPostgresRepository struct {
	db *sqlx.DB
}

// NewProductPostgresRepository creates a new PostgreSQL product repository.
func NewProductPostgresRepository(db *sqlx.DB) ProductRepository {
	return &productPostgresRepository{db: db}
}

func (r *productPostgresRepository) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, store_id, name, sku, base_unit_id, sale_price, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.StoreID, p.Name, p.SKU, p.BaseUnitID, p.SalePrice, p.IsActive)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productPostgresRepository) GetByID(ctx context.Context, storeID, id uuid.UUID) (*Product, error) {
	var p Product
	err := r.db.GetContext(ctx, &p,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND store_id = $2`,
		id, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("fetch product: %w", err)
	}
	return &p, nil
}

func (r *productPostgresRepository) ListByStore(ctx context.Context, storeID uuid.UUID, search string, activeOnly bool) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1`
	args := []interface{}{storeID}
	if search != "" {
		query += ` AND (name ILIKE $2 OR sku ILIKE $2)`
		args = append(args, "%"+search+"%")
	}
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY name`

	products := []Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *productPostgresRepository) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, sku = $2, base_unit_id = $3, sale_price = $4, updated_at = $5
		WHERE id = $6 AND store_id = $7`,
		p.Name, p.SKU, p.BaseUnitID, p.SalePrice, time.Now(), p.ID, p.StoreID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productPostgresRepository) Deactivate(ctx context.Context, storeID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE products SET is_active = false, updated_at = $1 WHERE id = $2 AND store_id = $3",
		time.Now(), id, storeID)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

type unitPostgresRepository struct {
	db *sqlx.DB
}

// NewUnitPostgresRepository creates a new PostgreSQL unit repository.
func NewUnitPostgresRepository(db *sqlx.DB) UnitRepository {
	return &unitPostgresRepository{db: db}
}

func (r *unitPostgresRepository) Create(ctx context.Context, u *Unit) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO units (id, store_id, name) VALUES ($1,$2,$3)",
		u.ID, u.StoreID, u.Name)
	if err != nil {
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *unitPostgresRepository) GetByID(ctx context.Context, storeID, id uuid.UUID) (*Unit, error) {
	var u Unit
	err := r.db.GetContext(ctx, &u, `
		SELECT id, store_id, name, created_at, updated_at
		FROM units WHERE id = $1 AND store_id = $2`,
		id, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("fetch unit: %w", err)
	}
	return &u, nil
}

func (r *unitPostgresRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]Unit, error) {
	units := []Unit{}
	err := r.db.SelectContext(ctx, &units, `
		SELECT id, store_id, name, created_at, updated_at
		FROM units WHERE store_id = $1 ORDER BY name`,
		storeID)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return units, nil
}

func (r *unitPostgresRepository) Update(ctx context.Context, u *Unit) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE units SET name = $1, updated_at = $2 WHERE id = $3 AND store_id = $4",
		u.Name, time.Now(), u.ID, u.StoreID)
	if err != nil {
		return fmt.Errorf("update unit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUnitNotFound
	}
	return nil
}
