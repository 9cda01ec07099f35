package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"brewline/internal/domain"
	"brewline/internal/errors"
)

type OrderStore interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string) error
	UpdateCancellation(ctx context.Context, tx *sql.Tx, id uint, reason, cancelledBy string, at time.Time) error
	UpdatePayment(ctx context.Context, id uint, paymentStatus string, paymentMethod *string) error
}

// StatusService drives the order status machine. delivered and cancelled are
// terminal; any other recognized status is accepted as a successor. Every
// successful transition appends exactly one history row in the same
// transaction as the status write.
type StatusService struct {
	db          TransactionManager
	orderRepo   OrderStore
	historyRepo StatusHistoryRepository
	logger      *zap.Logger
}

func NewStatusService(
	db TransactionManager,
	orderRepo OrderStore,
	historyRepo StatusHistoryRepository,
	logger *zap.Logger,
) *StatusService {
	return &StatusService{
		db:          db,
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

func (s *StatusService) Transition(ctx context.Context, orderID uint, newStatus, changedBy, notes string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(newStatus) {
		return nil, errors.NewValidationError("Invalid order status", errors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("%q is not a recognized order status", newStatus),
		})
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.OrderStatus == domain.OrderStatusCancelled {
		return nil, errors.NewInvalidTransitionError("Cannot change status of cancelled order")
	}
	if order.OrderStatus == domain.OrderStatusDelivered {
		return nil, errors.NewInvalidTransitionError("Cannot change status of delivered order")
	}

	if changedBy == "" {
		changedBy = "admin"
	}

	oldStatus := order.OrderStatus
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, errors.NewInternalError("updating order status", err)
	}
	defer tx.Rollback()

	if err := s.orderRepo.UpdateStatus(ctx, tx, orderID, newStatus); err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to update order status", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, errors.NewInternalError("updating order status", err)
	}

	err = s.historyRepo.Insert(ctx, tx, domain.OrderStatusHistory{
		OrderID:   orderID,
		OldStatus: &oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
		Notes:     nilIfBlank(notes),
		ChangedAt: now,
	})
	if err != nil {
		s.logger.Error("failed to insert status history", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, errors.NewInternalError("updating order status", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, errors.NewInternalError("updating order status", err)
	}

	s.logger.Info("order status updated",
		zap.Uint("orderId", orderID),
		zap.String("oldStatus", oldStatus),
		zap.String("newStatus", newStatus),
		zap.String("changedBy", changedBy),
	)

	order.OrderStatus = newStatus
	order.UpdatedAt = now
	return order, nil
}

func (s *StatusService) Cancel(ctx context.Context, orderID uint, reason, cancelledBy string) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.OrderStatus == domain.OrderStatusDelivered {
		return nil, errors.NewInvalidTransitionError("Cannot cancel delivered order")
	}
	if order.OrderStatus == domain.OrderStatusCancelled {
		return nil, errors.NewInvalidTransitionError("Order is already cancelled")
	}

	if strings.TrimSpace(reason) == "" {
		reason = "Cancelled by customer"
	}
	if strings.TrimSpace(cancelledBy) == "" {
		cancelledBy = "customer"
	}

	oldStatus := order.OrderStatus
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, errors.NewInternalError("cancelling order", err)
	}
	defer tx.Rollback()

	if err := s.orderRepo.UpdateCancellation(ctx, tx, orderID, reason, cancelledBy, now); err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to cancel order", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, errors.NewInternalError("cancelling order", err)
	}

	notes := "Order cancelled: " + reason
	err = s.historyRepo.Insert(ctx, tx, domain.OrderStatusHistory{
		OrderID:   orderID,
		OldStatus: &oldStatus,
		NewStatus: domain.OrderStatusCancelled,
		ChangedBy: cancelledBy,
		Notes:     &notes,
		ChangedAt: now,
	})
	if err != nil {
		s.logger.Error("failed to insert status history", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, errors.NewInternalError("cancelling order", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, errors.NewInternalError("cancelling order", err)
	}

	s.logger.Info("order cancelled",
		zap.Uint("orderId", orderID),
		zap.String("oldStatus", oldStatus),
		zap.String("cancelledBy", cancelledBy),
	)

	order.OrderStatus = domain.OrderStatusCancelled
	order.CancelledAt = &now
	order.CancellationReason = &reason
	order.CancelledBy = &cancelledBy
	order.UpdatedAt = now
	return order, nil
}

// UpdatePayment is an independent axis: it never touches order_status and
// never appends history.
func (s *StatusService) UpdatePayment(ctx context.Context, orderID uint, paymentStatus, paymentMethod string) (*domain.Order, error) {
	if !domain.ValidPaymentStatus(paymentStatus) {
		return nil, errors.NewValidationError("Invalid payment status", errors.ValidationDetail{
			Field:   "paymentStatus",
			Message: fmt.Sprintf("%q is not a recognized payment status", paymentStatus),
		})
	}

	var method *string
	if paymentMethod != "" {
		if !domain.ValidPaymentMethod(paymentMethod) {
			return nil, errors.NewValidationError("Invalid payment method", errors.ValidationDetail{
				Field:   "paymentMethod",
				Message: fmt.Sprintf("%q is not a recognized payment method", paymentMethod),
			})
		}
		method = &paymentMethod
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdatePayment(ctx, orderID, paymentStatus, method); err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to update payment status", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, errors.NewInternalError("updating payment status", err)
	}

	s.logger.Info("payment status updated",
		zap.Uint("orderId", orderID),
		zap.String("paymentStatus", paymentStatus),
	)

	order.PaymentStatus = paymentStatus
	if method != nil {
		order.PaymentMethod = method
	}
	return order, nil
}
