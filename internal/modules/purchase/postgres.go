package purchase

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

// How many times a create retries with a freshly generated order number
// after losing a race on the (store_id, order_number) unique index.
const maxNumberRetries = 3

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates the Postgres-backed lifecycle engine.
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const orderColumns = `po.id, po.store_id, po.order_number, po.supplier_id, po.import_date,
       po.total_amount, po.notes, po.created_by, po.created_at, s.name AS supplier_name`

const itemColumns = `i.id, i.purchase_order_id, i.product_id, i.line_no, i.quantity, i.cost,
       i.unit_id, i.base_quantity, i.base_cost, i.base_unit_id, i.created_at,
       COALESCE(p.name, '') AS product_name, COALESCE(u.name, '') AS unit_name`

func (r *postgresRepository) CreateWithItems(ctx context.Context, storeID uuid.UUID, input OrderInput) (*OrderWithItems, error) {
	var orderID uuid.UUID
	var err error
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		orderID, err = r.createOnce(ctx, storeID, input)
		if err == nil || !database.IsUniqueViolation(err) {
			break
		}
		// Lost the order-number race: the whole transaction rolled back, so
		// retry from scratch with a regenerated number.
	}
	if err != nil {
		return nil, fmt.Errorf("create purchase order: %w", err)
	}
	return r.FindByIDWithDetails(ctx, storeID, orderID)
}

func (r *postgresRepository) createOnce(ctx context.Context, storeID uuid.UUID, input OrderInput) (uuid.UUID, error) {
	orderID := uuid.New()
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		number, err := database.NextCode(ctx, tx, "purchase_orders", "order_number",
			storeID, database.MonthPrefix("PN", time.Now()))
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO purchase_orders
			  (id, store_id, order_number, supplier_id, import_date, total_amount, notes, created_by)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			orderID, storeID, number, input.SupplierID, input.ImportDate,
			input.TotalAmount, input.Notes, input.CreatedBy); err != nil {
			return fmt.Errorf("insert purchase order: %w", err)
		}

		return insertItemsAndLots(ctx, tx, orderID, storeID, input)
	})
	return orderID, err
}

// insertItemsAndLots writes one item row and one lot row per input line, in
// input order. Lots start fully unconsumed (remaining_quantity = quantity)
// and inherit the order's import date.
func insertItemsAndLots(ctx context.Context, tx *sqlx.Tx, orderID, storeID uuid.UUID, input OrderInput) error {
	for i, item := range input.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO purchase_order_items
			  (id, purchase_order_id, product_id, line_no, quantity, cost, unit_id,
			   base_quantity, base_cost, base_unit_id)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			uuid.New(), orderID, item.ProductID, i+1, item.Quantity, item.Cost,
			item.UnitID, item.BaseQuantity, item.BaseCost, item.BaseUnitID); err != nil {
			return fmt.Errorf("insert purchase order item %d: %w", i+1, err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO purchase_lots
			  (id, store_id, product_id, purchase_order_id, import_date,
			   quantity, remaining_quantity, cost, unit_id)
			VALUES ($1,$2,$3,$4,$5,$6,$6,$7,$8)`,
			uuid.New(), storeID, item.ProductID, orderID, input.ImportDate,
			item.Quantity, item.Cost, item.UnitID); err != nil {
			return fmt.Errorf("insert purchase lot %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *postgresRepository) FindByIDWithDetails(ctx context.Context, storeID, orderID uuid.UUID) (*OrderWithItems, error) {
	var order OrderWithSupplier
	err := r.db.GetContext(ctx, &order, `
		SELECT `+orderColumns+`
		FROM purchase_orders po
		LEFT JOIN suppliers s ON s.id = po.supplier_id
		WHERE po.id = $1 AND po.store_id = $2`,
		orderID, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch purchase order: %w", err)
	}

	items, err := r.GetItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderWithItems{OrderWithSupplier: order, Items: items}, nil
}

// Whitelisted sort columns; anything else falls back to created_at so the
// order-by clause can never carry caller-supplied SQL.
var sortColumns = map[string]string{
	"order_number":  "po.order_number",
	"import_date":   "po.import_date",
	"total_amount":  "po.total_amount",
	"created_at":    "po.created_at",
	"supplier_name": "supplier_name",
}

func (r *postgresRepository) FindAllWithSupplier(ctx context.Context, storeID uuid.UUID, filter ListFilter) (*PaginatedOrders, error) {
	where := []string{"po.store_id = $1"}
	args := []interface{}{storeID}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(po.order_number ILIKE $%d OR po.notes ILIKE $%d OR s.name ILIKE $%d)", n, n, n))
	}
	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		where = append(where, fmt.Sprintf("po.supplier_id = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where = append(where, fmt.Sprintf("po.import_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where = append(where, fmt.Sprintf("po.import_date <= $%d", len(args)))
	}

	from := `FROM purchase_orders po LEFT JOIN suppliers s ON s.id = po.supplier_id
		WHERE ` + strings.Join(where, " AND ")

	// Count against the same predicate so pagination metadata always agrees
	// with the filtered set.
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+from, args...); err != nil {
		return nil, fmt.Errorf("count purchase orders: %w", err)
	}

	orderBy, ok := sortColumns[filter.OrderBy]
	if !ok {
		orderBy = "po.created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.OrderDirection, "asc") {
		direction = "ASC"
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		orderColumns, from, orderBy, direction, len(args)-1, len(args))

	orders := []OrderWithSupplier{}
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}

	totalPages := (total + filter.PageSize - 1) / filter.PageSize
	return &PaginatedOrders{
		Data:       orders,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (r *postgresRepository) UpdateWithItems(ctx context.Context, storeID, orderID uuid.UUID, input OrderInput) (*OrderWithItems, error) {
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			"SELECT EXISTS(SELECT 1 FROM purchase_orders WHERE id = $1 AND store_id = $2)",
			orderID, storeID); err != nil {
			return fmt.Errorf("fetch purchase order: %w", err)
		}
		if !exists {
			return ErrNotFound
		}

		// Replacement destroys the current lots, so it is subject to the
		// same consumption guard as delete: partially consumed lots must
		// survive for downstream costing.
		used, err := usedLotCount(ctx, tx, storeID, orderID)
		if err != nil {
			return err
		}
		if used > 0 {
			return ErrInventoryInUse
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM purchase_lots WHERE purchase_order_id = $1 AND store_id = $2",
			orderID, storeID); err != nil {
			return fmt.Errorf("delete purchase lots: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM purchase_order_items WHERE purchase_order_id = $1",
			orderID); err != nil {
			return fmt.Errorf("delete purchase order items: %w", err)
		}

		// order_number, created_by and created_at are immutable.
		if _, err := tx.ExecContext(ctx, `
			UPDATE purchase_orders
			SET supplier_id = $1, import_date = $2, total_amount = $3, notes = $4
			WHERE id = $5 AND store_id = $6`,
			input.SupplierID, input.ImportDate, input.TotalAmount, input.Notes,
			orderID, storeID); err != nil {
			return fmt.Errorf("update purchase order: %w", err)
		}

		return insertItemsAndLots(ctx, tx, orderID, storeID, input)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByIDWithDetails(ctx, storeID, orderID)
}

func (r *postgresRepository) DeleteWithItems(ctx context.Context, storeID, orderID uuid.UUID) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			"SELECT EXISTS(SELECT 1 FROM purchase_orders WHERE id = $1 AND store_id = $2)",
			orderID, storeID); err != nil {
			return fmt.Errorf("fetch purchase order: %w", err)
		}
		if !exists {
			return ErrNotFound
		}

		// Re-checked inside the deleting transaction: an advisory CanDelete
		// from before this call proves nothing once a concurrent sale has
		// drawn from a lot.
		used, err := usedLotCount(ctx, tx, storeID, orderID)
		if err != nil {
			return err
		}
		if used > 0 {
			return ErrInventoryInUse
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM purchase_lots WHERE purchase_order_id = $1 AND store_id = $2",
			orderID, storeID); err != nil {
			return fmt.Errorf("delete purchase lots: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM purchase_order_items WHERE purchase_order_id = $1",
			orderID); err != nil {
			return fmt.Errorf("delete purchase order items: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM purchase_orders WHERE id = $1 AND store_id = $2",
			orderID, storeID); err != nil {
			return fmt.Errorf("delete purchase order: %w", err)
		}
		return nil
	})
}

func (r *postgresRepository) CanDelete(ctx context.Context, storeID, orderID uuid.UUID) (bool, error) {
	used, err := usedLotCount(ctx, r.db, storeID, orderID)
	if err != nil {
		return false, err
	}
	return used == 0, nil
}

// usedLotCount is the consumption guard: a lot is used iff its remaining
// quantity has dropped below its original quantity.
func usedLotCount(ctx context.Context, q database.Queryer, storeID, orderID uuid.UUID) (int, error) {
	var used int
	err := q.GetContext(ctx, &used, `
		SELECT COUNT(*) FROM purchase_lots
		WHERE purchase_order_id = $1 AND store_id = $2 AND remaining_quantity < quantity`,
		orderID, storeID)
	if err != nil {
		return 0, fmt.Errorf("count used purchase lots: %w", err)
	}
	return used, nil
}

func (r *postgresRepository) GetItems(ctx context.Context, orderID uuid.UUID) ([]ItemWithNames, error) {
	items := []ItemWithNames{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT `+itemColumns+`
		FROM purchase_order_items i
		LEFT JOIN products p ON p.id = i.product_id
		LEFT JOIN units u ON u.id = i.unit_id
		WHERE i.purchase_order_id = $1
		ORDER BY i.line_no`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("fetch purchase order items: %w", err)
	}
	return items, nil
}

func (r *postgresRepository) GetPurchaseLots(ctx context.Context, orderID uuid.UUID) ([]PurchaseLot, error) {
	lots := []PurchaseLot{}
	err := r.db.SelectContext(ctx, &lots, `
		SELECT id, store_id, product_id, purchase_order_id, import_date,
		       quantity, remaining_quantity, cost, unit_id, created_at
		FROM purchase_lots
		WHERE purchase_order_id = $1
		ORDER BY created_at, id`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("fetch purchase lots: %w", err)
	}
	return lots, nil
}

func (r *postgresRepository) FindBySupplier(ctx context.Context, storeID, supplierID uuid.UUID) ([]OrderWithSupplier, error) {
	orders := []OrderWithSupplier{}
	err := r.db.SelectContext(ctx, &orders, `
		SELECT `+orderColumns+`
		FROM purchase_orders po
		LEFT JOIN suppliers s ON s.id = po.supplier_id
		WHERE po.store_id = $1 AND po.supplier_id = $2
		ORDER BY po.import_date DESC, po.order_number DESC`,
		storeID, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders by supplier: %w", err)
	}
	return orders, nil
}

func (r *postgresRepository) GetTotalAmount(ctx context.Context, storeID uuid.UUID, dateFrom, dateTo *time.Time) (decimal.Decimal, error) {
	where := []string{"store_id = $1"}
	args := []interface{}{storeID}
	if dateFrom != nil {
		args = append(args, *dateFrom)
		where = append(where, fmt.Sprintf("import_date >= $%d", len(args)))
	}
	if dateTo != nil {
		args = append(args, *dateTo)
		where = append(where, fmt.Sprintf("import_date <= $%d", len(args)))
	}

	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total,
		"SELECT COALESCE(SUM(total_amount), 0) FROM purchase_orders WHERE "+strings.Join(where, " AND "),
		args...)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum purchase order totals: %w", err)
	}
	return total, nil
}
