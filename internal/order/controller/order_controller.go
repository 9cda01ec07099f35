package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"brewline/internal/domain"
	"brewline/internal/dto"
	apperrors "brewline/internal/errors"
	"brewline/internal/order/service"
)

type PlacementUseCase interface {
	PlaceOrder(ctx context.Context, cmd service.PlaceOrderCommand) (*domain.Order, error)
}

type StatusUseCase interface {
	Transition(ctx context.Context, orderID uint, newStatus, changedBy, notes string) (*domain.Order, error)
	Cancel(ctx context.Context, orderID uint, reason, cancelledBy string) (*domain.Order, error)
	UpdatePayment(ctx context.Context, orderID uint, paymentStatus, paymentMethod string) (*domain.Order, error)
}

type QueryUseCase interface {
	GetOrder(ctx context.Context, id uint) (*domain.Order, error)
	ListOrders(ctx context.Context, q service.ListOrdersQuery) (*service.OrderPage, error)
	ListOrdersByPhone(ctx context.Context, phone string) ([]domain.Order, error)
}

type Controller struct {
	placement PlacementUseCase
	status    StatusUseCase
	query     QueryUseCase
	logger    *zap.Logger
}

func NewController(placement PlacementUseCase, status StatusUseCase, query QueryUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		placement: placement,
		status:    status,
		query:     query,
		logger:    logger,
	}
}

func (c *Controller) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	items := make([]service.CartItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CartItem{
			MenuItemID:          item.MenuItemID,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		}
	}

	order, err := c.placement.PlaceOrder(r.Context(), service.PlaceOrderCommand{
		CustomerName:        req.CustomerName,
		CustomerPhone:       req.CustomerPhone,
		CustomerEmail:       req.CustomerEmail,
		SpecialInstructions: req.SpecialInstructions,
		Items:               items,
	})
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.OKMessage("Order placed successfully", dto.NewPlacedOrderDTO(*order)))
}

func (c *Controller) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	q := service.ListOrdersQuery{
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 50),
		Status: r.URL.Query().Get("status"),
		Phone:  r.URL.Query().Get("phone"),
	}

	if v := r.URL.Query().Get("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.writeValidationError(w, "invalid startDate", apperrors.ValidationDetail{
				Field:   "startDate",
				Message: "startDate must be an RFC 3339 timestamp or YYYY-MM-DD date",
			})
			return
		}
		q.StartDate = &t
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.writeValidationError(w, "invalid endDate", apperrors.ValidationDetail{
				Field:   "endDate",
				Message: "endDate must be an RFC 3339 timestamp or YYYY-MM-DD date",
			})
			return
		}
		q.EndDate = &t
	}

	page, err := c.query.ListOrders(r.Context(), q)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	data := make([]dto.OrderDTO, 0, len(page.Orders))
	for _, o := range page.Orders {
		data = append(data, dto.NewOrderDTO(o))
	}

	c.writeJSON(w, http.StatusOK, dto.ListOrdersResponse{
		Success:     true,
		Data:        data,
		TotalCount:  page.TotalCount,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
	})
}

func (c *Controller) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := c.orderIDParam(w, r)
	if !ok {
		return
	}

	order, err := c.query.GetOrder(r.Context(), orderID)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.OK(dto.NewOrderDTO(*order)))
}

func (c *Controller) HandleListOrdersByPhone(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")
	if phone == "" {
		c.writeValidationError(w, "phone number is required", apperrors.ValidationDetail{
			Field:   "phone",
			Message: "phone must not be empty",
		})
		return
	}

	orders, err := c.query.ListOrdersByPhone(r.Context(), phone)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	data := make([]dto.OrderDTO, 0, len(orders))
	for _, o := range orders {
		data = append(data, dto.NewOrderDTO(o))
	}

	c.writeJSON(w, http.StatusOK, dto.OK(data))
}

func (c *Controller) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := c.orderIDParam(w, r)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.status.Transition(r.Context(), orderID, req.Status, req.ChangedBy, req.Notes)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.OKMessage("Order status updated successfully", dto.NewOrderDTO(*order)))
}

func (c *Controller) HandleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	orderID, ok := c.orderIDParam(w, r)
	if !ok {
		return
	}

	var req dto.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.status.UpdatePayment(r.Context(), orderID, req.PaymentStatus, req.PaymentMethod)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.OKMessage("Payment status updated successfully", dto.NewOrderDTO(*order)))
}

func (c *Controller) HandleCancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := c.orderIDParam(w, r)
	if !ok {
		return
	}

	// DELETE body is optional.
	var req dto.CancelOrderRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	order, err := c.status.Cancel(r.Context(), orderID, req.Reason, req.CancelledBy)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.OKMessage("Order cancelled successfully", dto.NewOrderDTO(*order)))
}

func (c *Controller) orderIDParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid order id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

type unavailableItemsResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	AvailableItems []uint `json:"availableItems"`
	RequestedItems []uint `json:"requestedItems"`
}

func (c *Controller) handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if ie, ok := apperrors.IsItemUnavailableError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, unavailableItemsResponse{
			Success:        false,
			Message:        ie.Message,
			AvailableItems: ie.AvailableIDs,
			RequestedItems: ie.RequestedIDs,
		})
		return
	}

	if ite, ok := apperrors.IsInvalidTransitionError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, dto.Fail(ite.Message))
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, dto.Fail(nfe.Message))
		return
	}

	logger.Error("unexpected error", zap.Error(err))
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

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
