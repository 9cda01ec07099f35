package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"brewline/internal/domain"
	apperrors "brewline/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	InsertOrder(ctx context.Context, tx *sql.Tx, orderedBy string, notes *string, at time.Time) (uint, error)
	InsertLineFromItem(ctx context.Context, tx *sql.Tx, orderID, itemID uint, quantity int) (int64, error)
	UpdateTotalFromLines(ctx context.Context, tx *sql.Tx, orderID uint) error
	MarkPurchased(ctx context.Context, tx *sql.Tx, orderID uint, purchasedBy string, at time.Time) (bool, error)
	InsertHistory(ctx context.Context, tx *sql.Tx, orderID uint, oldStatus, newStatus, changedBy, note string) error
	List(ctx context.Context, status, user string) ([]domain.InventoryOrder, error)
	FindLinesByOrderIDs(ctx context.Context, orderIDs []uint) ([]domain.InventoryOrderLine, error)
}

type ProcurementLine struct {
	InventoryItemID uint
	Quantity        int
}

type PlaceProcurementCommand struct {
	OrderedBy string
	Notes     string
	Items     []ProcurementLine
}

// ProcurementService drives inventory purchase orders through their
// two-state machine: pending → purchased, one-way.
type ProcurementService struct {
	db        TransactionManager
	orderRepo OrderRepository
	logger    *zap.Logger
}

func NewProcurementService(db TransactionManager, orderRepo OrderRepository, logger *zap.Logger) *ProcurementService {
	return &ProcurementService{
		db:        db,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (s *ProcurementService) PlaceOrder(ctx context.Context, cmd PlaceProcurementCommand) (uint, error) {
	var details []apperrors.ValidationDetail
	if strings.TrimSpace(cmd.OrderedBy) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "ordered_by", Message: "ordered_by is required"})
	}
	if len(cmd.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{Field: "items", Message: "items must not be empty"})
	}
	for i, line := range cmd.Items {
		if line.InventoryItemID == 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].inventory_item_id", i),
				Message: "inventory_item_id must be a positive integer",
			})
		}
		if line.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be at least 1",
			})
		}
	}
	if len(details) > 0 {
		return 0, apperrors.NewValidationError("No items provided", details...)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return 0, apperrors.NewInternalError("placing inventory order", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	var notes *string
	if trimmed := strings.TrimSpace(cmd.Notes); trimmed != "" {
		notes = &trimmed
	}

	orderID, err := s.orderRepo.InsertOrder(ctx, tx, cmd.OrderedBy, notes, now)
	if err != nil {
		s.logger.Error("failed to insert inventory order", zap.Error(err))
		return 0, apperrors.NewInternalError("placing inventory order", err)
	}

	for _, line := range cmd.Items {
		inserted, err := s.orderRepo.InsertLineFromItem(ctx, tx, orderID, line.InventoryItemID, line.Quantity)
		if err != nil {
			s.logger.Error("failed to insert inventory order line",
				zap.Uint("orderId", orderID), zap.Uint("itemId", line.InventoryItemID), zap.Error(err))
			return 0, apperrors.NewInternalError("placing inventory order", err)
		}
		if inserted == 0 {
			return 0, apperrors.NewNotFoundError(
				fmt.Sprintf("inventory item with id %d not found", line.InventoryItemID))
		}
	}

	if err := s.orderRepo.UpdateTotalFromLines(ctx, tx, orderID); err != nil {
		s.logger.Error("failed to update inventory order total", zap.Uint("orderId", orderID), zap.Error(err))
		return 0, apperrors.NewInternalError("placing inventory order", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return 0, apperrors.NewInternalError("placing inventory order", err)
	}

	s.logger.Info("inventory order placed",
		zap.Uint("orderId", orderID), zap.Int("lineCount", len(cmd.Items)))

	return orderID, nil
}

// MarkPurchased performs the conditional state flip and the history append
// in one transaction. A zero-row match means the order is missing or was
// already purchased, which the caller cannot distinguish and does not need
// to.
func (s *ProcurementService) MarkPurchased(ctx context.Context, orderID uint, purchasedBy string) error {
	if strings.TrimSpace(purchasedBy) == "" {
		purchasedBy = "admin"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return apperrors.NewInternalError("marking inventory order purchased", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	matched, err := s.orderRepo.MarkPurchased(ctx, tx, orderID, purchasedBy, now)
	if err != nil {
		s.logger.Error("failed to mark inventory order purchased", zap.Uint("orderId", orderID), zap.Error(err))
		return apperrors.NewInternalError("marking inventory order purchased", err)
	}
	if !matched {
		return apperrors.NewNotFoundError("Order not found or already purchased")
	}

	err = s.orderRepo.InsertHistory(ctx, tx,
		orderID, domain.InventoryOrderPending, domain.InventoryOrderPurchased, purchasedBy, "Marked purchased")
	if err != nil {
		s.logger.Error("failed to insert inventory order history", zap.Uint("orderId", orderID), zap.Error(err))
		return apperrors.NewInternalError("marking inventory order purchased", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return apperrors.NewInternalError("marking inventory order purchased", err)
	}

	s.logger.Info("inventory order purchased",
		zap.Uint("orderId", orderID), zap.String("purchasedBy", purchasedBy))

	return nil
}

func (s *ProcurementService) ListOrders(ctx context.Context, status, user string) ([]domain.InventoryOrder, error) {
	orders, err := s.orderRepo.List(ctx, status, user)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]uint, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	lines, err := s.orderRepo.FindLinesByOrderIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	linesByOrder := make(map[uint][]domain.InventoryOrderLine, len(orders))
	for _, l := range lines {
		linesByOrder[l.OrderID] = append(linesByOrder[l.OrderID], l)
	}

	for i := range orders {
		orders[i].Lines = linesByOrder[orders[i].ID]
	}

	return orders, nil
}
