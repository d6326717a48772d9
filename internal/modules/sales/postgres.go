package sales

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/minhlq-dev/retailbase-backend/internal/database"
)

const maxNumberRetries = 3

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates the Postgres-backed sales repository.
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Checkout(ctx context.Context, storeID uuid.UUID, input SaleInput) (*SaleWithItems, error) {
	var saleID uuid.UUID
	var err error
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		saleID, err = r.checkoutOnce(ctx, storeID, input)
		if err == nil || !database.IsUniqueViolation(err) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("checkout sale: %w", err)
	}
	return r.FindByID(ctx, storeID, saleID)
}

func (r *postgresRepository) checkoutOnce(ctx context.Context, storeID uuid.UUID, input SaleInput) (uuid.UUID, error) {
	saleID := uuid.New()
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		number, err := database.NextCode(ctx, tx, "sales", "sale_number",
			storeID, database.MonthPrefix("SN", time.Now()))
		if err != nil {
			return err
		}

		// Consume stock before writing the sale so a shortfall aborts with
		// nothing persisted.
		total := decimal.Zero
		cogs := decimal.Zero
		lineCosts := make([]decimal.Decimal, len(input.Items))
		for i, item := range input.Items {
			lineCost, err := consumeLots(ctx, tx, storeID, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			lineCosts[i] = lineCost
			total = total.Add(item.Price.Mul(item.Quantity))
			cogs = cogs.Add(lineCost)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO sales (id, store_id, sale_number, total_amount, cogs_amount, notes, created_by)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			saleID, storeID, number, total, cogs, input.Notes, input.CreatedBy); err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}

		for i, item := range input.Items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO sale_items (id, sale_id, product_id, line_no, quantity, price, cost, unit_id)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
				uuid.New(), saleID, item.ProductID, i+1, item.Quantity,
				item.Price, lineCosts[i], item.UnitID); err != nil {
				return fmt.Errorf("insert sale item %d: %w", i+1, err)
			}
		}
		return nil
	})
	return saleID, err
}

type lotSlice struct {
	ID                uuid.UUID       `db:"id"`
	RemainingQuantity decimal.Decimal `db:"remaining_quantity"`
	Cost              decimal.Decimal `db:"cost"`
}

// consumeLots draws qty of a product from the store's purchase lots,
// oldest import first, and returns the total lot cost of the drawn stock.
// Rows are locked so a concurrent order delete or another checkout cannot
// touch the same lots mid-flight.
func consumeLots(ctx context.Context, tx *sqlx.Tx, storeID, productID uuid.UUID, qty decimal.Decimal) (decimal.Decimal, error) {
	lots := []lotSlice{}
	err := tx.SelectContext(ctx, &lots, `
		SELECT id, remaining_quantity, cost
		FROM purchase_lots
		WHERE store_id = $1 AND product_id = $2 AND remaining_quantity > 0
		ORDER BY import_date, created_at
		FOR UPDATE`,
		storeID, productID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("lock purchase lots: %w", err)
	}

	needed := qty
	cost := decimal.Zero
	for _, lot := range lots {
		if !needed.IsPositive() {
			break
		}
		take := decimal.Min(needed, lot.RemainingQuantity)
		if _, err := tx.ExecContext(ctx,
			"UPDATE purchase_lots SET remaining_quantity = remaining_quantity - $1 WHERE id = $2",
			take, lot.ID); err != nil {
			return decimal.Zero, fmt.Errorf("consume purchase lot: %w", err)
		}
		cost = cost.Add(take.Mul(lot.Cost))
		needed = needed.Sub(take)
	}
	if needed.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: product %s short by %s",
			ErrInsufficientStock, productID, needed.String())
	}
	return cost, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, storeID, saleID uuid.UUID) (*SaleWithItems, error) {
	var sale Sale
	err := r.db.GetContext(ctx, &sale, `
		SELECT id, store_id, sale_number, total_amount, cogs_amount, notes, created_by, created_at
		FROM sales WHERE id = $1 AND store_id = $2`,
		saleID, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch sale: %w", err)
	}

	items := []SaleItem{}
	err = r.db.SelectContext(ctx, &items, `
		SELECT id, sale_id, product_id, line_no, quantity, price, cost, unit_id, created_at
		FROM sale_items WHERE sale_id = $1 ORDER BY line_no`,
		saleID)
	if err != nil {
		return nil, fmt.Errorf("fetch sale items: %w", err)
	}
	return &SaleWithItems{Sale: sale, Items: items}, nil
}

func (r *postgresRepository) FindAll(ctx context.Context, storeID uuid.UUID, filter ListFilter) (*PaginatedSales, error) {
	where := []string{"store_id = $1"}
	args := []interface{}{storeID}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	predicate := strings.Join(where, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM sales WHERE "+predicate, args...); err != nil {
		return nil, fmt.Errorf("count sales: %w", err)
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query := fmt.Sprintf(`
		SELECT id, store_id, sale_number, total_amount, cogs_amount, notes, created_by, created_at
		FROM sales WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		predicate, len(args)-1, len(args))

	data := []Sale{}
	if err := r.db.SelectContext(ctx, &data, query, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	totalPages := (total + filter.PageSize - 1) / filter.PageSize
	return &PaginatedSales{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}
