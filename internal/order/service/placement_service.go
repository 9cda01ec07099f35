package service

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"brewline/internal/domain"
	"brewline/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type MenuItemRepository interface {
	FindAvailableByIDs(ctx context.Context, tx *sql.Tx, ids []uint) ([]domain.MenuItem, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
}

type OrderItemRepository interface {
	BulkInsert(ctx context.Context, tx *sql.Tx, items []domain.OrderItem) error
}

type StatusHistoryRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, entry domain.OrderStatusHistory) error
}

type CartItem struct {
	MenuItemID          uint
	Quantity            int
	SpecialInstructions string
}

type PlaceOrderCommand struct {
	CustomerName        string
	CustomerPhone       string
	CustomerEmail       string
	SpecialInstructions string
	Items               []CartItem
}

// PlacementService validates a cart against the menu, prices it from catalog
// data only, and persists the order, its snapshot line items and the initial
// status history row in a single transaction.
type PlacementService struct {
	db          TransactionManager
	menuRepo    MenuItemRepository
	orderRepo   OrderRepository
	itemRepo    OrderItemRepository
	historyRepo StatusHistoryRepository
	logger      *zap.Logger
	txTimeout   time.Duration
}

func NewPlacementService(
	db TransactionManager,
	menuRepo MenuItemRepository,
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	historyRepo StatusHistoryRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *PlacementService {
	return &PlacementService{
		db:          db,
		menuRepo:    menuRepo,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		historyRepo: historyRepo,
		logger:      logger,
		txTimeout:   txTimeout,
	}
}

func (s *PlacementService) PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error) {
	if err := validatePlaceOrder(cmd); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, errors.NewInternalError("placing order", err)
	}
	// MySQL ignores rollback after commit.
	defer tx.Rollback()

	ids := distinctMenuItemIDs(cmd.Items)

	// Availability is re-checked inside the transaction: a concurrent admin
	// disabling an item loses the race only up to this read.
	found, err := s.menuRepo.FindAvailableByIDs(txCtx, tx, ids)
	if err != nil {
		s.logger.Error("failed to fetch menu items", zap.Error(err))
		return nil, errors.NewInternalError("placing order", err)
	}

	lines, total, missing := priceCart(cmd.Items, found)
	if len(missing) > 0 {
		s.logger.Warn("order rejected, menu items unavailable",
			zap.Uints("requested", ids), zap.Uints("missing", missing))
		available := make([]uint, 0, len(found))
		for _, mi := range found {
			available = append(available, mi.ID)
		}
		return nil, errors.NewItemUnavailableError("Some menu items are not available", ids, available)
	}

	now := time.Now().UTC()
	method := domain.PaymentMethodCash

	order := domain.Order{
		CustomerName:        strings.TrimSpace(cmd.CustomerName),
		CustomerPhone:       defaultIfBlank(cmd.CustomerPhone, "Not provided"),
		CustomerEmail:       defaultIfBlank(cmd.CustomerEmail, "Not provided"),
		TotalAmount:         total,
		OrderStatus:         domain.OrderStatusPending,
		PaymentStatus:       domain.PaymentStatusPending,
		PaymentMethod:       &method,
		SpecialInstructions: nilIfBlank(cmd.SpecialInstructions),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	orderID, err := s.orderRepo.Insert(txCtx, tx, order)
	if err != nil {
		s.logger.Error("failed to insert order", zap.Error(err))
		return nil, errors.NewInternalError("placing order", err)
	}

	for i := range lines {
		lines[i].OrderID = orderID
	}

	if err := s.itemRepo.BulkInsert(txCtx, tx, lines); err != nil {
		s.logger.Error("failed to insert order items", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, errors.NewInternalError("placing order", err)
	}

	notes := "Order placed"
	err = s.historyRepo.Insert(txCtx, tx, domain.OrderStatusHistory{
		OrderID:   orderID,
		OldStatus: nil,
		NewStatus: domain.OrderStatusPending,
		ChangedBy: "system",
		Notes:     &notes,
		ChangedAt: now,
	})
	if err != nil {
		s.logger.Error("failed to insert status history", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, errors.NewInternalError("placing order", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, errors.NewInternalError("placing order", err)
	}

	order.ID = orderID
	order.Items = lines

	s.logger.Info("order placed",
		zap.Uint("orderId", orderID),
		zap.Int("itemCount", len(lines)),
		zap.String("totalAmount", total.StringFixed(2)),
	)

	return &order, nil
}

func validatePlaceOrder(cmd PlaceOrderCommand) error {
	var details []errors.ValidationDetail

	if strings.TrimSpace(cmd.CustomerName) == "" {
		details = append(details, errors.ValidationDetail{
			Field:   "customerName",
			Message: "customerName is required",
		})
	}
	if len(strings.TrimSpace(cmd.CustomerName)) > 255 {
		details = append(details, errors.ValidationDetail{
			Field:   "customerName",
			Message: "customerName must be at most 255 characters",
		})
	}

	if len(cmd.Items) == 0 {
		details = append(details, errors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	for i, item := range cmd.Items {
		if item.MenuItemID == 0 {
			details = append(details, errors.ValidationDetail{
				Field:   fieldAt("items", i, "menuItemId"),
				Message: "menuItemId must be a positive integer",
			})
		}
		if item.Quantity < 1 {
			details = append(details, errors.ValidationDetail{
				Field:   fieldAt("items", i, "quantity"),
				Message: "quantity must be at least 1",
			})
		}
	}

	if len(details) > 0 {
		return errors.NewValidationError("Customer name and items are required", details...)
	}

	return nil
}

// priceCart resolves every cart line against the fetched menu items, taking
// name and price from the catalog row (never from client input) and
// computing subtotal = price × quantity in exact decimal arithmetic. Cart
// lines whose menu item was not fetched are reported in missing.
func priceCart(items []CartItem, found []domain.MenuItem) ([]domain.OrderItem, decimal.Decimal, []uint) {
	byID := make(map[uint]domain.MenuItem, len(found))
	for _, mi := range found {
		byID[mi.ID] = mi
	}

	var lines []domain.OrderItem
	total := decimal.Zero
	var missing []uint
	seenMissing := make(map[uint]struct{})

	for _, item := range items {
		mi, ok := byID[item.MenuItemID]
		if !ok {
			if _, dup := seenMissing[item.MenuItemID]; !dup {
				seenMissing[item.MenuItemID] = struct{}{}
				missing = append(missing, item.MenuItemID)
			}
			continue
		}

		subtotal := mi.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)

		menuItemID := mi.ID
		lines = append(lines, domain.OrderItem{
			MenuItemID:          &menuItemID,
			ItemName:            mi.Name,
			ItemPrice:           mi.Price,
			Quantity:            item.Quantity,
			SpecialInstructions: nilIfBlank(item.SpecialInstructions),
			Subtotal:            subtotal,
		})
	}

	return lines, total, missing
}

func distinctMenuItemIDs(items []CartItem) []uint {
	seen := make(map[uint]struct{}, len(items))
	var ids []uint
	for _, item := range items {
		if _, ok := seen[item.MenuItemID]; ok {
			continue
		}
		seen[item.MenuItemID] = struct{}{}
		ids = append(ids, item.MenuItemID)
	}
	return ids
}

func defaultIfBlank(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}

func nilIfBlank(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func fieldAt(field string, idx int, sub string) string {
	return field + "[" + strconv.Itoa(idx) + "]." + sub
}
