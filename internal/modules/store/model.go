package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound means the store does not exist.
var ErrNotFound = errors.New("store not found")

// Store is a tenant: a business location everything else is partitioned by.
type Store struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address,omitempty"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StoreInput is the create/update payload.
type StoreInput struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}
