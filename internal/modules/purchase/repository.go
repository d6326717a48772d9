package purchase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository is the purchase-order lifecycle engine. Every destructive
// operation runs inside a single transaction; every operation is scoped by
// the store id in its SQL predicate, never by a separate existence check.
type Repository interface {
	// CreateWithItems atomically creates the order, its items and one lot per
	// item. Either everything exists afterwards or nothing does.
	CreateWithItems(ctx context.Context, storeID uuid.UUID, input OrderInput) (*OrderWithItems, error)

	// FindByIDWithDetails returns the order with supplier name and item
	// product/unit names joined in, or ErrNotFound.
	FindByIDWithDetails(ctx context.Context, storeID, orderID uuid.UUID) (*OrderWithItems, error)

	// FindAllWithSupplier lists orders with free-text search, supplier and
	// date-range filters, ordering and offset pagination.
	FindAllWithSupplier(ctx context.Context, storeID uuid.UUID, filter ListFilter) (*PaginatedOrders, error)

	// UpdateWithItems replaces the order's items and lots wholesale and
	// updates the mutable header fields. Fails with ErrInventoryInUse when
	// any existing lot has been consumed.
	UpdateWithItems(ctx context.Context, storeID, orderID uuid.UUID, input OrderInput) (*OrderWithItems, error)

	// DeleteWithItems removes the order, its items and its lots. Fails with
	// ErrInventoryInUse when any lot has been consumed; the guard is
	// re-checked inside the deleting transaction.
	DeleteWithItems(ctx context.Context, storeID, orderID uuid.UUID) error

	// CanDelete is the advisory, read-only form of the consumption guard,
	// for UI preflight. A true result is not a guarantee: state can change
	// before the delete transaction runs.
	CanDelete(ctx context.Context, storeID, orderID uuid.UUID) (bool, error)

	GetItems(ctx context.Context, orderID uuid.UUID) ([]ItemWithNames, error)
	GetPurchaseLots(ctx context.Context, orderID uuid.UUID) ([]PurchaseLot, error)
	FindBySupplier(ctx context.Context, storeID, supplierID uuid.UUID) ([]OrderWithSupplier, error)

	// GetTotalAmount sums the caller-supplied totals of orders whose import
	// date falls within the optional bounds.
	GetTotalAmount(ctx context.Context, storeID uuid.UUID, dateFrom, dateTo *time.Time) (decimal.Decimal, error)
}
