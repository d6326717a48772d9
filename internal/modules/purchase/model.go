package purchase

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound means the order does not exist for the given store. A
	// missing id and another store's id are deliberately indistinguishable
	// so one tenant can never probe for another tenant's orders.
	ErrNotFound = errors.New("purchase order not found or access denied")

	// ErrInventoryInUse means at least one lot created by the order has been
	// partially consumed downstream, so the order can no longer be deleted
	// or have its items replaced.
	ErrInventoryInUse = errors.New("cannot delete purchase order with used inventory")

	// ErrInvalidInput marks caller mistakes the route layer should turn into
	// a 400.
	ErrInvalidInput = errors.New("invalid purchase order input")
)

// PurchaseOrder is one purchasing event. OrderNumber is assigned once at
// creation and never changes.
type PurchaseOrder struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	StoreID     uuid.UUID       `db:"store_id" json:"store_id"`
	OrderNumber string          `db:"order_number" json:"order_number"`
	SupplierID  *uuid.UUID      `db:"supplier_id" json:"supplier_id,omitempty"` // nil for self-produced stock
	ImportDate  time.Time       `db:"import_date" json:"import_date"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	Notes       string          `db:"notes" json:"notes,omitempty"`
	CreatedBy   *string         `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// OrderWithSupplier is the listing read model.
type OrderWithSupplier struct {
	PurchaseOrder
	SupplierName *string `db:"supplier_name" json:"supplier_name,omitempty"`
}

// PurchaseOrderItem is one product line, exclusively owned by its order.
// The base_* fields carry the conversion when the purchasing unit differs
// from the product's stock-keeping unit; when nil the item's own quantity
// and cost stand in as the base values.
type PurchaseOrderItem struct {
	ID              uuid.UUID            `db:"id" json:"id"`
	PurchaseOrderID uuid.UUID            `db:"purchase_order_id" json:"purchase_order_id"`
	ProductID       uuid.UUID            `db:"product_id" json:"product_id"`
	LineNo          int                  `db:"line_no" json:"line_no"`
	Quantity        decimal.Decimal      `db:"quantity" json:"quantity"`
	Cost            decimal.Decimal      `db:"cost" json:"cost"`
	UnitID          uuid.UUID            `db:"unit_id" json:"unit_id"`
	BaseQuantity    decimal.NullDecimal  `db:"base_quantity" json:"base_quantity,omitempty"`
	BaseCost        decimal.NullDecimal  `db:"base_cost" json:"base_cost,omitempty"`
	BaseUnitID      *uuid.UUID           `db:"base_unit_id" json:"base_unit_id,omitempty"`
	CreatedAt       time.Time            `db:"created_at" json:"created_at"`
}

// ItemWithNames joins in product and unit names for display.
type ItemWithNames struct {
	PurchaseOrderItem
	ProductName string `db:"product_name" json:"product_name"`
	UnitName    string `db:"unit_name" json:"unit_name"`
}

// PurchaseLot is the tranche of stock created by one order item. It is the
// unit of FIFO costing: downstream sales decrement remaining_quantity, and a
// lot counts as used as soon as remaining_quantity < quantity.
type PurchaseLot struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	StoreID           uuid.UUID       `db:"store_id" json:"store_id"`
	ProductID         uuid.UUID       `db:"product_id" json:"product_id"`
	PurchaseOrderID   *uuid.UUID      `db:"purchase_order_id" json:"purchase_order_id,omitempty"`
	ImportDate        time.Time       `db:"import_date" json:"import_date"`
	Quantity          decimal.Decimal `db:"quantity" json:"quantity"`
	RemainingQuantity decimal.Decimal `db:"remaining_quantity" json:"remaining_quantity"`
	Cost              decimal.Decimal `db:"cost" json:"cost"`
	UnitID            uuid.UUID       `db:"unit_id" json:"unit_id"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
}

// OrderWithItems is the full read model returned by create/update/get.
type OrderWithItems struct {
	OrderWithSupplier
	Items []ItemWithNames `json:"items"`
}

// ItemInput is one requested line on create/update.
type ItemInput struct {
	ProductID    uuid.UUID           `json:"product_id"`
	Quantity     decimal.Decimal     `json:"quantity"`
	Cost         decimal.Decimal     `json:"cost"`
	UnitID       uuid.UUID           `json:"unit_id"`
	BaseQuantity decimal.NullDecimal `json:"base_quantity,omitempty"`
	BaseCost     decimal.NullDecimal `json:"base_cost,omitempty"`
	BaseUnitID   *uuid.UUID          `json:"base_unit_id,omitempty"`
}

// OrderInput is the create/update payload. TotalAmount is stored as supplied
// and never recomputed from the lines.
type OrderInput struct {
	SupplierID  *uuid.UUID      `json:"supplier_id,omitempty"`
	ImportDate  time.Time       `json:"import_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Notes       string          `json:"notes,omitempty"`
	CreatedBy   *string         `json:"created_by,omitempty"`
	Items       []ItemInput     `json:"items"`
}

// ListFilter narrows and orders the paginated listing.
type ListFilter struct {
	Page           int
	PageSize       int
	OrderBy        string
	OrderDirection string
	Search         string
	SupplierID     *uuid.UUID
	DateFrom       *time.Time
	DateTo         *time.Time
}

// PaginatedOrders carries a page of results plus metadata computed from a
// count query over the same predicate, so the totals always agree with the
// filtered set.
type PaginatedOrders struct {
	Data       []OrderWithSupplier `json:"data"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}
