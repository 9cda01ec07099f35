package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"brewline/internal/domain"
	apperrors "brewline/internal/errors"
)

type mockTransactionManager struct {
	BeginTxFunc func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

func (m *mockTransactionManager) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return m.BeginTxFunc(ctx, opts)
}

func newTestPlacementService(txMgr TransactionManager) *PlacementService {
	return NewPlacementService(txMgr, nil, nil, nil, nil, zap.NewNop(), 5*time.Second)
}

func TestPlaceOrderValidation(t *testing.T) {
	svc := newTestPlacementService(nil)

	tests := []struct {
		name  string
		cmd   PlaceOrderCommand
		field string
	}{
		{
			name:  "missing customer name",
			cmd:   PlaceOrderCommand{Items: []CartItem{{MenuItemID: 1, Quantity: 1}}},
			field: "customerName",
		},
		{
			name:  "empty items",
			cmd:   PlaceOrderCommand{CustomerName: "Ana"},
			field: "items",
		},
		{
			name: "zero menu item id",
			cmd: PlaceOrderCommand{
				CustomerName: "Ana",
				Items:        []CartItem{{MenuItemID: 0, Quantity: 1}},
			},
			field: "items[0].menuItemId",
		},
		{
			name: "zero quantity",
			cmd: PlaceOrderCommand{
				CustomerName: "Ana",
				Items:        []CartItem{{MenuItemID: 1, Quantity: 0}},
			},
			field: "items[0].quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(context.Background(), tt.cmd)
			require.Error(t, err)

			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok, "expected validation error, got %T", err)

			fields := make([]string, 0, len(ve.Details))
			for _, d := range ve.Details {
				fields = append(fields, d.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestPlaceOrderValidationAccumulatesDetails(t *testing.T) {
	svc := newTestPlacementService(nil)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
		CustomerName: "  ",
		Items:        []CartItem{{MenuItemID: 0, Quantity: 0}},
	})
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Customer name and items are required", ve.Message)
	assert.Len(t, ve.Details, 3)
}

func TestPlaceOrderBeginTxFailure(t *testing.T) {
	txMgr := &mockTransactionManager{
		BeginTxFunc: func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := newTestPlacementService(txMgr)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
		CustomerName: "Ana",
		Items:        []CartItem{{MenuItemID: 1, Quantity: 2}},
	})
	require.Error(t, err)

	_, ok := apperrors.IsInternalError(err)
	assert.True(t, ok, "expected internal error, got %T", err)
}

func menuItem(id uint, name, price string) domain.MenuItem {
	return domain.MenuItem{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
}

func TestPriceCartTotals(t *testing.T) {
	found := []domain.MenuItem{
		menuItem(1, "Espresso", "50.00"),
		menuItem(2, "Croissant", "35.50"),
	}

	lines, total, missing := priceCart([]CartItem{
		{MenuItemID: 1, Quantity: 2},
		{MenuItemID: 2, Quantity: 1},
	}, found)

	require.Empty(t, missing)
	require.Len(t, lines, 2)
	assert.True(t, total.Equal(decimal.RequireFromString("135.50")), "total = %s", total)
	assert.True(t, lines[0].Subtotal.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, lines[1].Subtotal.Equal(decimal.RequireFromString("35.50")))
}

func TestPriceCartSnapshotsCatalogData(t *testing.T) {
	found := []domain.MenuItem{menuItem(7, "Latte", "60.00")}

	lines, _, missing := priceCart([]CartItem{
		{MenuItemID: 7, Quantity: 3, SpecialInstructions: "oat milk"},
	}, found)

	require.Empty(t, missing)
	require.Len(t, lines, 1)
	assert.Equal(t, "Latte", lines[0].ItemName)
	assert.True(t, lines[0].ItemPrice.Equal(decimal.RequireFromString("60.00")))
	assert.Equal(t, 3, lines[0].Quantity)
	require.NotNil(t, lines[0].MenuItemID)
	assert.Equal(t, uint(7), *lines[0].MenuItemID)
	require.NotNil(t, lines[0].SpecialInstructions)
	assert.Equal(t, "oat milk", *lines[0].SpecialInstructions)
}

func TestPriceCartReportsMissingItems(t *testing.T) {
	found := []domain.MenuItem{menuItem(1, "Espresso", "50.00")}

	lines, total, missing := priceCart([]CartItem{
		{MenuItemID: 1, Quantity: 1},
		{MenuItemID: 99, Quantity: 2},
		{MenuItemID: 99, Quantity: 1},
	}, found)

	assert.Equal(t, []uint{99}, missing)
	assert.Len(t, lines, 1)
	assert.True(t, total.Equal(decimal.RequireFromString("50.00")))
}

func TestDistinctMenuItemIDs(t *testing.T) {
	ids := distinctMenuItemIDs([]CartItem{
		{MenuItemID: 3}, {MenuItemID: 1}, {MenuItemID: 3}, {MenuItemID: 2},
	})
	assert.Equal(t, []uint{3, 1, 2}, ids)
}

func TestDefaultIfBlank(t *testing.T) {
	assert.Equal(t, "Not provided", defaultIfBlank("   ", "Not provided"))
	assert.Equal(t, "555-0101", defaultIfBlank(" 555-0101 ", "Not provided"))
}
