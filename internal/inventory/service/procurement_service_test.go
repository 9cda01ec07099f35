package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "brewline/internal/errors"
)

type mockTransactionManager struct {
	BeginTxFunc func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

func (m *mockTransactionManager) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return m.BeginTxFunc(ctx, opts)
}

func TestPlaceProcurementOrderValidation(t *testing.T) {
	svc := NewProcurementService(nil, nil, zap.NewNop())

	tests := []struct {
		name  string
		cmd   PlaceProcurementCommand
		field string
	}{
		{
			name:  "missing ordered_by",
			cmd:   PlaceProcurementCommand{Items: []ProcurementLine{{InventoryItemID: 1, Quantity: 1}}},
			field: "ordered_by",
		},
		{
			name:  "empty items",
			cmd:   PlaceProcurementCommand{OrderedBy: "manager"},
			field: "items",
		},
		{
			name: "zero item id",
			cmd: PlaceProcurementCommand{
				OrderedBy: "manager",
				Items:     []ProcurementLine{{InventoryItemID: 0, Quantity: 1}},
			},
			field: "items[0].inventory_item_id",
		},
		{
			name: "zero quantity",
			cmd: PlaceProcurementCommand{
				OrderedBy: "manager",
				Items:     []ProcurementLine{{InventoryItemID: 1, Quantity: 0}},
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

func TestPlaceProcurementOrderBeginTxFailure(t *testing.T) {
	txMgr := &mockTransactionManager{
		BeginTxFunc: func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewProcurementService(txMgr, nil, zap.NewNop())

	_, err := svc.PlaceOrder(context.Background(), PlaceProcurementCommand{
		OrderedBy: "manager",
		Items:     []ProcurementLine{{InventoryItemID: 1, Quantity: 2}},
	})
	require.Error(t, err)

	_, ok := apperrors.IsInternalError(err)
	assert.True(t, ok, "expected internal error, got %T", err)
}

func TestMarkPurchasedBeginTxFailure(t *testing.T) {
	txMgr := &mockTransactionManager{
		BeginTxFunc: func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewProcurementService(txMgr, nil, zap.NewNop())

	err := svc.MarkPurchased(context.Background(), 1, "admin")
	require.Error(t, err)

	_, ok := apperrors.IsInternalError(err)
	assert.True(t, ok)
}
