package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"brewline/internal/domain"
	apperrors "brewline/internal/errors"
	"brewline/internal/inventory/repository"
)

type ItemRepository interface {
	List(ctx context.Context, status string) ([]domain.InventoryItem, error)
	FindByID(ctx context.Context, id uint) (*domain.InventoryItem, error)
	Insert(ctx context.Context, item domain.InventoryItem) (uint, error)
	Update(ctx context.Context, id uint, patch repository.ItemPatch) error
	Delete(ctx context.Context, id uint) error
	Deactivate(ctx context.Context, id uint) error
}

type ItemService struct {
	repo   ItemRepository
	logger *zap.Logger
}

func NewItemService(repo ItemRepository, logger *zap.Logger) *ItemService {
	return &ItemService{
		repo:   repo,
		logger: logger,
	}
}

type CreateItemCommand struct {
	Name      string
	UnitLabel string
	Rate      decimal.Decimal
	Category  string
	Status    string
	CreatedBy string
}

func (s *ItemService) List(ctx context.Context, status string) ([]domain.InventoryItem, error) {
	if status == "" {
		status = domain.InventoryItemActive
	}
	return s.repo.List(ctx, status)
}

func (s *ItemService) Create(ctx context.Context, cmd CreateItemCommand) (*domain.InventoryItem, error) {
	var details []apperrors.ValidationDetail
	if strings.TrimSpace(cmd.Name) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(cmd.UnitLabel) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "unit_label", Message: "unit_label is required"})
	}
	if cmd.Rate.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "rate", Message: "rate must be non-negative"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	status := cmd.Status
	if status == "" {
		status = domain.InventoryItemActive
	}
	if status != domain.InventoryItemActive && status != domain.InventoryItemInactive {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be active or inactive",
		})
	}

	item := domain.InventoryItem{
		Name:      strings.TrimSpace(cmd.Name),
		UnitLabel: strings.TrimSpace(cmd.UnitLabel),
		Rate:      cmd.Rate,
		Category:  strings.TrimSpace(cmd.Category),
		Status:    status,
	}
	if cmd.CreatedBy != "" {
		createdBy := cmd.CreatedBy
		item.CreatedBy = &createdBy
	}

	id, err := s.repo.Insert(ctx, item)
	if err != nil {
		s.logger.Error("failed to create inventory item", zap.Error(err))
		return nil, apperrors.NewInternalError("creating inventory item", err)
	}

	return s.repo.FindByID(ctx, id)
}

func (s *ItemService) Update(ctx context.Context, id uint, patch repository.ItemPatch) (*domain.InventoryItem, error) {
	if patch.Status != nil &&
		*patch.Status != domain.InventoryItemActive && *patch.Status != domain.InventoryItemInactive {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be active or inactive",
		})
	}
	if patch.Rate != nil && patch.Rate.IsNegative() {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "rate",
			Message: "rate must be non-negative",
		})
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to update inventory item", zap.Uint("itemId", id), zap.Error(err))
		return nil, apperrors.NewInternalError("updating inventory item", err)
	}

	return s.repo.FindByID(ctx, id)
}

// Delete hard-deletes the item; when the row is referenced by historical
// order lines it falls back to marking the item inactive and reports the
// fallback through softDeleted.
func (s *ItemService) Delete(ctx context.Context, id uint) (softDeleted bool, err error) {
	err = s.repo.Delete(ctx, id)
	if err == nil {
		return false, nil
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		return false, err
	}

	if !isForeignKeyError(err) {
		s.logger.Error("failed to delete inventory item", zap.Uint("itemId", id), zap.Error(err))
		return false, apperrors.NewInternalError("deleting inventory item", err)
	}

	s.logger.Info("inventory item referenced by orders, marking inactive", zap.Uint("itemId", id))
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return false, err
		}
		s.logger.Error("failed to deactivate inventory item", zap.Uint("itemId", id), zap.Error(err))
		return false, apperrors.NewInternalError("deactivating inventory item", err)
	}

	return true, nil
}

// MySQL 1451: cannot delete a parent row referenced by a foreign key.
func isForeignKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1451
	}
	return false
}
