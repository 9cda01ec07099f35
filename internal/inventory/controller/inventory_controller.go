package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"brewline/internal/domain"
	"brewline/internal/dto"
	apperrors "brewline/internal/errors"
	"brewline/internal/inventory/repository"
	"brewline/internal/inventory/service"
)

type ItemUseCase interface {
	List(ctx context.Context, status string) ([]domain.InventoryItem, error)
	Create(ctx context.Context, cmd service.CreateItemCommand) (*domain.InventoryItem, error)
	Update(ctx context.Context, id uint, patch repository.ItemPatch) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type ProcurementUseCase interface {
	PlaceOrder(ctx context.Context, cmd service.PlaceProcurementCommand) (uint, error)
	MarkPurchased(ctx context.Context, orderID uint, purchasedBy string) error
	ListOrders(ctx context.Context, status, user string) ([]domain.InventoryOrder, error)
}

type Controller struct {
	items       ItemUseCase
	procurement ProcurementUseCase
	logger      *zap.Logger
}

func NewController(items ItemUseCase, procurement ProcurementUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		items:       items,
		procurement: procurement,
		logger:      logger,
	}
}

func (c *Controller) HandleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := c.items.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		c.handleError(w, err)
		return
	}

	data := make([]dto.InventoryItemDTO, 0, len(items))
	for _, item := range items {
		data = append(data, dto.NewInventoryItemDTO(item))
	}

	c.writeJSON(w, http.StatusOK, dto.OK(data))
}

func (c *Controller) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	item, err := c.items.Create(r.Context(), service.CreateItemCommand{
		Name:      req.Name,
		UnitLabel: req.UnitLabel,
		Rate:      decimal.NewFromFloat(req.Rate),
		Category:  req.Category,
		Status:    req.Status,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.OK(dto.NewInventoryItemDTO(*item)))
}

func (c *Controller) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := c.idParam(w, r)
	if !ok {
		return
	}

	var req dto.UpdateInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	patch := repository.ItemPatch{
		Name:      req.Name,
		UnitLabel: req.UnitLabel,
		Category:  req.Category,
		Status:    req.Status,
	}
	if req.Rate != nil {
		rate := decimal.NewFromFloat(*req.Rate)
		patch.Rate = &rate
	}

	item, err := c.items.Update(r.Context(), id, patch)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.OK(dto.NewInventoryItemDTO(*item)))
}

func (c *Controller) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := c.idParam(w, r)
	if !ok {
		return
	}

	softDeleted, err := c.items.Delete(r.Context(), id)
	if err != nil {
		c.handleError(w, err)
		return
	}

	if softDeleted {
		c.writeJSON(w, http.StatusOK, dto.OKMessage(
			"Item is used in orders; marked inactive instead.",
			dto.DeleteInventoryItemResult{SoftDeleted: true},
		))
		return
	}

	c.writeJSON(w, http.StatusOK, dto.Envelope{Success: true})
}

func (c *Controller) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceInventoryOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	items := make([]service.ProcurementLine, len(req.Items))
	for i, line := range req.Items {
		items[i] = service.ProcurementLine{
			InventoryItemID: line.InventoryItemID,
			Quantity:        line.Quantity,
		}
	}

	orderID, err := c.procurement.PlaceOrder(r.Context(), service.PlaceProcurementCommand{
		OrderedBy: req.OrderedBy,
		Notes:     req.Notes,
		Items:     items,
	})
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.OK(dto.PlacedInventoryOrderDTO{OrderID: orderID}))
}

func (c *Controller) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := c.procurement.ListOrders(r.Context(),
		r.URL.Query().Get("status"), r.URL.Query().Get("user"))
	if err != nil {
		c.handleError(w, err)
		return
	}

	data := make([]dto.InventoryOrderDTO, 0, len(orders))
	for _, o := range orders {
		data = append(data, dto.NewInventoryOrderDTO(o))
	}

	c.writeJSON(w, http.StatusOK, dto.OK(data))
}

func (c *Controller) HandleMarkPurchased(w http.ResponseWriter, r *http.Request) {
	id, ok := c.idParam(w, r)
	if !ok {
		return
	}

	var req dto.MarkPurchasedRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := c.procurement.MarkPurchased(r.Context(), id, req.PurchasedBy); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.Envelope{Success: true})
}

func (c *Controller) idParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func (c *Controller) handleError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, dto.Fail(nfe.Message))
		return
	}

	c.logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, dto.Envelope{
		Success: false,
		Message: "Internal server error",
		Error:   "INTERNAL_ERROR",
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
