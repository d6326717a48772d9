package sales

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound means the sale does not exist for the given store.
	ErrNotFound = errors.New("sale not found or access denied")

	// ErrInsufficientStock means the store's purchase lots cannot cover a
	// requested quantity; the whole checkout rolls back.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidInput marks caller mistakes the route layer should turn into
	// a 400.
	ErrInvalidInput = errors.New("invalid sale input")
)

// Sale is one completed POS checkout. TotalAmount is the sum of line
// price*quantity; CogsAmount is the FIFO lot cost consumed by the sale.
type Sale struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	StoreID     uuid.UUID       `db:"store_id" json:"store_id"`
	SaleNumber  string          `db:"sale_number" json:"sale_number"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	CogsAmount  decimal.Decimal `db:"cogs_amount" json:"cogs_amount"`
	Notes       string          `db:"notes" json:"notes,omitempty"`
	CreatedBy   *string         `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// SaleItem is one sold line. Cost is the total lot cost drawn for the line,
// not a unit cost.
type SaleItem struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	SaleID    uuid.UUID       `db:"sale_id" json:"sale_id"`
	ProductID uuid.UUID       `db:"product_id" json:"product_id"`
	LineNo    int             `db:"line_no" json:"line_no"`
	Quantity  decimal.Decimal `db:"quantity" json:"quantity"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Cost      decimal.Decimal `db:"cost" json:"cost"`
	UnitID    uuid.UUID       `db:"unit_id" json:"unit_id"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// SaleWithItems is the composed read model.
type SaleWithItems struct {
	Sale
	Items []SaleItem `json:"items"`
}

// ItemInput is one requested sale line.
type ItemInput struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	UnitID    uuid.UUID       `json:"unit_id"`
}

// SaleInput is the checkout payload.
type SaleInput struct {
	Notes     string      `json:"notes,omitempty"`
	CreatedBy *string     `json:"created_by,omitempty"`
	Items     []ItemInput `json:"items"`
}

// ListFilter narrows the sales listing.
type ListFilter struct {
	Page     int
	PageSize int
	DateFrom *time.Time
	DateTo   *time.Time
}

// PaginatedSales is a page of sales with count-query-backed metadata.
type PaginatedSales struct {
	Data       []Sale `json:"data"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
}
