package supplier

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound means the supplier does not exist for the given store.
var ErrNotFound = errors.New("supplier not found or access denied")

// Supplier is a goods source, scoped to one store.
type Supplier struct {
	ID        uuid.UUID `db:"id" json:"id"`
	StoreID   uuid.UUID `db:"store_id" json:"store_id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Email     string    `db:"email" json:"email,omitempty"`
	Address   string    `db:"address" json:"address,omitempty"`
	Notes     string    `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SupplierInput is the create/update payload.
type SupplierInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}
