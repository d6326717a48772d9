package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrProductNotFound means the product does not exist for the given store.
	ErrProductNotFound = errors.New("product not found or access denied")

	// ErrUnitNotFound means the unit does not exist for the given store.
	ErrUnitNotFound = errors.New("unit not found or access denied")
)

// Unit is a measuring unit (piece, box, kg, ...), scoped to one store.
type Unit struct {
	ID        uuid.UUID `db:"id" json:"id"`
	StoreID   uuid.UUID `db:"store_id" json:"store_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Product is a sellable/stockable item. BaseUnitID is the canonical
// stock-keeping unit; purchases may be recorded in another unit with the
// conversion handled upstream.
type Product struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	StoreID    uuid.UUID       `db:"store_id" json:"store_id"`
	Name       string          `db:"name" json:"name"`
	SKU        string          `db:"sku" json:"sku,omitempty"`
	BaseUnitID *uuid.UUID      `db:"base_unit_id" json:"base_unit_id,omitempty"`
	SalePrice  decimal.Decimal `db:"sale_price" json:"sale_price"`
	IsActive   bool            `db:"is_active" json:"is_active"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// ProductInput is the product create/update payload.
type ProductInput struct {
	Name       string          `json:"name"`
	SKU        string          `json:"sku,omitempty"`
	BaseUnitID *uuid.UUID      `json:"base_unit_id,omitempty"`
	SalePrice  decimal.Decimal `json:"sale_price"`
}

// UnitInput is the unit create/update payload.
type UnitInput struct {
	Name string `json:"name"`
}
