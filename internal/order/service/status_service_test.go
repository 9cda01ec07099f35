package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"brewline/internal/domain"
	apperrors "brewline/internal/errors"
)

type mockOrderStore struct {
	FindByIDFunc           func(ctx context.Context, id uint) (*domain.Order, error)
	UpdateStatusFunc       func(ctx context.Context, tx *sql.Tx, id uint, status string) error
	UpdateCancellationFunc func(ctx context.Context, tx *sql.Tx, id uint, reason, cancelledBy string, at time.Time) error
	UpdatePaymentFunc      func(ctx context.Context, id uint, paymentStatus string, paymentMethod *string) error
}

func (m *mockOrderStore) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderStore) UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string) error {
	return m.UpdateStatusFunc(ctx, tx, id, status)
}

func (m *mockOrderStore) UpdateCancellation(ctx context.Context, tx *sql.Tx, id uint, reason, cancelledBy string, at time.Time) error {
	return m.UpdateCancellationFunc(ctx, tx, id, reason, cancelledBy, at)
}

func (m *mockOrderStore) UpdatePayment(ctx context.Context, id uint, paymentStatus string, paymentMethod *string) error {
	return m.UpdatePaymentFunc(ctx, id, paymentStatus, paymentMethod)
}

func orderWithStatus(status string) *domain.Order {
	return &domain.Order{ID: 1, OrderStatus: status, PaymentStatus: domain.PaymentStatusPending}
}

func newTestStatusService(store OrderStore) *StatusService {
	return NewStatusService(nil, store, nil, zap.NewNop())
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	svc := newTestStatusService(nil)

	_, err := svc.Transition(context.Background(), 1, "shipped", "admin", "")
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid order status", ve.Message)
}

func TestTransitionOrderNotFound(t *testing.T) {
	store := &mockOrderStore{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("Order not found")
		},
	}
	svc := newTestStatusService(store)

	_, err := svc.Transition(context.Background(), 42, domain.OrderStatusConfirmed, "admin", "")
	require.Error(t, err)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestTransitionTerminalStates(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		message string
	}{
		{"cancelled is terminal", domain.OrderStatusCancelled, "Cannot change status of cancelled order"},
		{"delivered is terminal", domain.OrderStatusDelivered, "Cannot change status of delivered order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockOrderStore{
				FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
					return orderWithStatus(tt.status), nil
				},
			}
			svc := newTestStatusService(store)

			_, err := svc.Transition(context.Background(), 1, domain.OrderStatusPreparing, "admin", "")
			require.Error(t, err)

			ite, ok := apperrors.IsInvalidTransitionError(err)
			require.True(t, ok, "expected invalid transition error, got %T", err)
			assert.Equal(t, tt.message, ite.Message)
		})
	}
}

func TestCancelDeliveredOrder(t *testing.T) {
	store := &mockOrderStore{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return orderWithStatus(domain.OrderStatusDelivered), nil
		},
	}
	svc := newTestStatusService(store)

	_, err := svc.Cancel(context.Background(), 1, "changed my mind", "customer")
	require.Error(t, err)

	ite, ok := apperrors.IsInvalidTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, "Cannot cancel delivered order", ite.Message)
}

func TestCancelAlreadyCancelledOrder(t *testing.T) {
	store := &mockOrderStore{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return orderWithStatus(domain.OrderStatusCancelled), nil
		},
	}
	svc := newTestStatusService(store)

	_, err := svc.Cancel(context.Background(), 1, "", "")
	require.Error(t, err)

	ite, ok := apperrors.IsInvalidTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, "Order is already cancelled", ite.Message)
}

func TestUpdatePaymentRejectsUnknownStatus(t *testing.T) {
	svc := newTestStatusService(nil)

	_, err := svc.UpdatePayment(context.Background(), 1, "settled", "")
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid payment status", ve.Message)
}

func TestUpdatePaymentRejectsUnknownMethod(t *testing.T) {
	svc := newTestStatusService(nil)

	_, err := svc.UpdatePayment(context.Background(), 1, domain.PaymentStatusPaid, "barter")
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid payment method", ve.Message)
}

func TestUpdatePaymentKeepsOrderStatus(t *testing.T) {
	var gotMethod *string
	store := &mockOrderStore{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return orderWithStatus(domain.OrderStatusPreparing), nil
		},
		UpdatePaymentFunc: func(ctx context.Context, id uint, paymentStatus string, paymentMethod *string) error {
			gotMethod = paymentMethod
			return nil
		},
	}
	svc := newTestStatusService(store)

	order, err := svc.UpdatePayment(context.Background(), 1, domain.PaymentStatusPaid, domain.PaymentMethodCard)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPreparing, order.OrderStatus)
	assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
	require.NotNil(t, gotMethod)
	assert.Equal(t, domain.PaymentMethodCard, *gotMethod)
}
