package sales_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/minhlq-dev/retailbase-backend/internal/database"
	"github.com/minhlq-dev/retailbase-backend/internal/modules/purchase"
	"github.com/minhlq-dev/retailbase-backend/internal/modules/sales"
	"github.com/minhlq-dev/retailbase-backend/migrations"
)

type fixtures struct {
	Store   uuid.UUID
	Unit    uuid.UUID
	Product uuid.UUID
}

func setupTestDB(t *testing.T) (*sqlx.DB, fixtures, context.Context) {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test")
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}
	if err := migrations.Up(db.DB); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	_, err = db.Exec(`TRUNCATE sale_items, sales, purchase_lots, purchase_order_items,
		purchase_orders, products, units, suppliers, stores CASCADE`)
	if err != nil {
		t.Fatalf("truncate test database: %v", err)
	}

	f := fixtures{Store: uuid.New(), Unit: uuid.New(), Product: uuid.New()}
	if _, err := db.Exec(`INSERT INTO stores (id, name) VALUES ($1, 'Store A')`, f.Store); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO units (id, store_id, name) VALUES ($1, $2, 'piece')`, f.Unit, f.Store); err != nil {
		t.Fatalf("seed unit: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO products (id, store_id, name, base_unit_id)
		VALUES ($1, $2, 'Arabica Beans 1kg', $3)`,
		f.Product, f.Store, f.Unit); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	return db, f, context.Background()
}

// seedLot creates a purchase order with a single line so the sale has real
// lots to draw from, then returns the order id.
func seedLot(t *testing.T, ctx context.Context, db *sqlx.DB, f fixtures, importDate time.Time, qty, cost int64) uuid.UUID {
	t.Helper()
	repo := purchase.NewPostgresRepository(db)
	order, err := repo.CreateWithItems(ctx, f.Store, purchase.OrderInput{
		ImportDate:  importDate,
		TotalAmount: decimal.NewFromInt(qty * cost),
		Items: []purchase.ItemInput{
			{ProductID: f.Product, Quantity: decimal.NewFromInt(qty), Cost: decimal.NewFromInt(cost), UnitID: f.Unit},
		},
	})
	if err != nil {
		t.Fatalf("seed purchase order: %v", err)
	}
	return order.ID
}

func lotRemaining(t *testing.T, db *sqlx.DB, orderID uuid.UUID) decimal.Decimal {
	t.Helper()
	var remaining decimal.Decimal
	err := db.Get(&remaining,
		"SELECT remaining_quantity FROM purchase_lots WHERE purchase_order_id = $1", orderID)
	if err != nil {
		t.Fatalf("read lot remaining: %v", err)
	}
	return remaining
}

func TestCheckout_FIFOCosting(t *testing.T) {
	db, f, ctx := setupTestDB(t)
	defer db.Close()

	// Two lots: 10 units at cost 100 imported in February, 10 units at cost
	// 150 imported in March. FIFO must drain February first.
	oldOrder := seedLot(t, ctx, db, f, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 10, 100)
	newOrder := seedLot(t, ctx, db, f, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 10, 150)

	repo := sales.NewPostgresRepository(db)
	sale, err := repo.Checkout(ctx, f.Store, sales.SaleInput{
		Items: []sales.ItemInput{
			{ProductID: f.Product, Quantity: decimal.NewFromInt(12), Price: decimal.NewFromInt(250), UnitID: f.Unit},
		},
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	wantNumber := database.MonthPrefix("SN", time.Now()) + "0001"
	if sale.SaleNumber != wantNumber {
		t.Errorf("sale number = %q, want %q", sale.SaleNumber, wantNumber)
	}
	if !sale.TotalAmount.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("total = %s, want 3000", sale.TotalAmount)
	}
	// 10 from the old lot at 100 plus 2 from the new lot at 150.
	if !sale.CogsAmount.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("cogs = %s, want 1300", sale.CogsAmount)
	}
	if len(sale.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(sale.Items))
	}
	if !sale.Items[0].Cost.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("line cost = %s, want 1300", sale.Items[0].Cost)
	}

	if got := lotRemaining(t, db, oldOrder); !got.Equal(decimal.Zero) {
		t.Errorf("old lot remaining = %s, want 0", got)
	}
	if got := lotRemaining(t, db, newOrder); !got.Equal(decimal.NewFromInt(8)) {
		t.Errorf("new lot remaining = %s, want 8", got)
	}
}

func TestCheckout_InsufficientStockRollsBack(t *testing.T) {
	db, f, ctx := setupTestDB(t)
	defer db.Close()

	orderID := seedLot(t, ctx, db, f, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 5, 100)

	repo := sales.NewPostgresRepository(db)
	_, err := repo.Checkout(ctx, f.Store, sales.SaleInput{
		Items: []sales.ItemInput{
			{ProductID: f.Product, Quantity: decimal.NewFromInt(8), Price: decimal.NewFromInt(250), UnitID: f.Unit},
		},
	})
	if !errors.Is(err, sales.ErrInsufficientStock) {
		t.Fatalf("Checkout error = %v, want ErrInsufficientStock", err)
	}

	// The partial draw from the lot was rolled back with the sale.
	if got := lotRemaining(t, db, orderID); !got.Equal(decimal.NewFromInt(5)) {
		t.Errorf("lot remaining = %s after rollback, want 5", got)
	}
	var n int
	if err := db.Get(&n, "SELECT COUNT(*) FROM sales"); err != nil {
		t.Fatalf("count sales: %v", err)
	}
	if n != 0 {
		t.Errorf("sales = %d rows after rollback, want 0", n)
	}
}

func TestCheckout_MakesOrderUndeletable(t *testing.T) {
	db, f, ctx := setupTestDB(t)
	defer db.Close()

	orderID := seedLot(t, ctx, db, f, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 10, 100)

	salesRepo := sales.NewPostgresRepository(db)
	if _, err := salesRepo.Checkout(ctx, f.Store, sales.SaleInput{
		Items: []sales.ItemInput{
			{ProductID: f.Product, Quantity: decimal.NewFromInt(3), Price: decimal.NewFromInt(200), UnitID: f.Unit},
		},
	}); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	purchaseRepo := purchase.NewPostgresRepository(db)
	can, err := purchaseRepo.CanDelete(ctx, f.Store, orderID)
	if err != nil {
		t.Fatalf("CanDelete: %v", err)
	}
	if can {
		t.Error("order backing a sale must not be deletable")
	}
	if err := purchaseRepo.DeleteWithItems(ctx, f.Store, orderID); !errors.Is(err, purchase.ErrInventoryInUse) {
		t.Errorf("DeleteWithItems = %v, want ErrInventoryInUse", err)
	}
}

func TestFindAll(t *testing.T) {
	db, f, ctx := setupTestDB(t)
	defer db.Close()

	seedLot(t, ctx, db, f, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 100, 100)

	repo := sales.NewPostgresRepository(db)
	for i := 0; i < 3; i++ {
		if _, err := repo.Checkout(ctx, f.Store, sales.SaleInput{
			Items: []sales.ItemInput{
				{ProductID: f.Product, Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(200), UnitID: f.Unit},
			},
		}); err != nil {
			t.Fatalf("Checkout %d: %v", i, err)
		}
	}

	page, err := repo.FindAll(ctx, f.Store, sales.ListFilter{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if page.Total != 3 || page.TotalPages != 2 || len(page.Data) != 2 {
		t.Errorf("page = total %d, pages %d, len %d; want 3/2/2",
			page.Total, page.TotalPages, len(page.Data))
	}

	other, err := repo.FindAll(ctx, uuid.New(), sales.ListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if other.Total != 0 {
		t.Errorf("foreign store sees %d sales, want 0", other.Total)
	}
}
