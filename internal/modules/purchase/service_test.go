package purchase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func validItem() ItemInput {
	return ItemInput{
		ProductID: uuid.New(),
		Quantity:  decimal.NewFromInt(10),
		Cost:      decimal.NewFromInt(100),
		UnitID:    uuid.New(),
	}
}

func TestValidateInput(t *testing.T) {
	base := OrderInput{
		ImportDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Items:      []ItemInput{validItem()},
	}

	tests := []struct {
		name    string
		mutate  func(*OrderInput)
		wantErr bool
	}{
		{"valid", func(*OrderInput) {}, false},
		{"zero cost is allowed", func(in *OrderInput) {
			in.Items[0].Cost = decimal.Zero
		}, false},
		{"no items", func(in *OrderInput) {
			in.Items = nil
		}, true},
		{"missing import date", func(in *OrderInput) {
			in.ImportDate = time.Time{}
		}, true},
		{"zero quantity", func(in *OrderInput) {
			in.Items[0].Quantity = decimal.Zero
		}, true},
		{"negative quantity", func(in *OrderInput) {
			in.Items[0].Quantity = decimal.NewFromInt(-1)
		}, true},
		{"negative cost", func(in *OrderInput) {
			in.Items[0].Cost = decimal.NewFromInt(-1)
		}, true},
		{"nil product id", func(in *OrderInput) {
			in.Items[0].ProductID = uuid.Nil
		}, true},
		{"nil unit id", func(in *OrderInput) {
			in.Items[0].UnitID = uuid.Nil
		}, true},
		{"second item invalid", func(in *OrderInput) {
			bad := validItem()
			bad.Quantity = decimal.Zero
			in.Items = append(in.Items, bad)
		}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := base
			input.Items = append([]ItemInput(nil), base.Items...)
			tc.mutate(&input)

			err := validateInput(input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("validateInput = %v, want ErrInvalidInput", err)
				}
			} else if err != nil {
				t.Errorf("validateInput = %v, want nil", err)
			}
		})
	}
}

type stubRepo struct {
	Repository
	gotFilter ListFilter
}

func (s *stubRepo) FindAllWithSupplier(_ context.Context, _ uuid.UUID, filter ListFilter) (*PaginatedOrders, error) {
	s.gotFilter = filter
	return &PaginatedOrders{}, nil
}

func TestListNormalizesPagination(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative page", -3, 10, 1, 10},
		{"oversized page size", 1, 500, 1, 100},
		{"passthrough", 2, 50, 2, 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubRepo{}
			svc := NewService(repo)

			_, err := svc.List(context.Background(), uuid.New(), ListFilter{
				Page: tc.page, PageSize: tc.size,
			})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if repo.gotFilter.Page != tc.wantPage || repo.gotFilter.PageSize != tc.wantPageSize {
				t.Errorf("filter = page %d size %d, want page %d size %d",
					repo.gotFilter.Page, repo.gotFilter.PageSize, tc.wantPage, tc.wantPageSize)
			}
		})
	}
}

func TestCreateRejectsInvalidInputBeforeRepository(t *testing.T) {
	svc := NewService(nil) // must not be touched

	_, err := svc.Create(context.Background(), uuid.New(), OrderInput{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Create = %v, want ErrInvalidInput", err)
	}
}
