package sales

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists sales and performs the FIFO lot consumption that
// backs them.
type Repository interface {
	// Checkout atomically creates the sale and its items, drawing the sold
	// quantities from the store's purchase lots oldest-first. Any shortfall
	// fails the whole transaction with ErrInsufficientStock.
	Checkout(ctx context.Context, storeID uuid.UUID, input SaleInput) (*SaleWithItems, error)

	// FindByID returns the sale with its items, or ErrNotFound.
	FindByID(ctx context.Context, storeID, saleID uuid.UUID) (*SaleWithItems, error)

	// FindAll lists sales for a store with optional date bounds.
	FindAll(ctx context.Context, storeID uuid.UUID, filter ListFilter) (*PaginatedSales, error)
}
