package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"brewline/internal/domain"
	"brewline/internal/dto"
	apperrors "brewline/internal/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MenuService interface {
	ListAll(ctx context.Context) ([]domain.MenuItem, error)
	ListAvailable(ctx context.Context) ([]domain.MenuItem, error)
	ListByCategory(ctx context.Context, categoryID int) ([]domain.MenuItem, error)
}

type Controller struct {
	service MenuService
	logger  *zap.Logger
}

func NewController(service MenuService, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) HandleListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := c.service.ListAll(r.Context())
	if err != nil {
		c.logger.Error("listing menu items failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, dto.Fail("Error fetching menu items"))
		return
	}

	c.writeMenuList(w, items)
}

func (c *Controller) HandleListAvailable(w http.ResponseWriter, r *http.Request) {
	items, err := c.service.ListAvailable(r.Context())
	if err != nil {
		c.logger.Error("listing available menu items failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, dto.Fail("Error fetching menu items"))
		return
	}

	c.writeMenuList(w, items)
}

func (c *Controller) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryIDStr := chi.URLParam(r, "categoryID")
	categoryID, err := strconv.Atoi(categoryIDStr)
	if err != nil || categoryID <= 0 {
		c.writeValidationError(w, "invalid category id", apperrors.ValidationDetail{
			Field:   "categoryID",
			Message: "categoryID must be a positive integer",
		})
		return
	}

	items, err := c.service.ListByCategory(r.Context(), categoryID)
	if err != nil {
		c.logger.Error("listing menu items by category failed",
			zap.Int("categoryId", categoryID), zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, dto.Fail("Error fetching menu items"))
		return
	}

	c.writeMenuList(w, items)
}

func (c *Controller) writeMenuList(w http.ResponseWriter, items []domain.MenuItem) {
	data := make([]dto.MenuItemDTO, 0, len(items))
	for _, item := range items {
		data = append(data, dto.NewMenuItemDTO(item))
	}

	c.writeJSON(w, http.StatusOK, dto.MenuListResponse{
		Success: true,
		Count:   len(data),
		Data:    data,
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
