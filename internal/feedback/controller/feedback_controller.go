package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"brewline/internal/domain"
	"brewline/internal/dto"
	apperrors "brewline/internal/errors"
	"brewline/internal/feedback/service"
)

type FeedbackUseCase interface {
	Submit(ctx context.Context, cmd service.SubmitFeedbackCommand) (*domain.Feedback, error)
	List(ctx context.Context, page, limit int) (*service.FeedbackPage, error)
}

type Controller struct {
	feedback FeedbackUseCase
	logger   *zap.Logger
}

func NewController(feedback FeedbackUseCase, logger *zap.Logger) *Controller {
	return &Controller{feedback: feedback, logger: logger}
}

func (c *Controller) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	f, err := c.feedback.Submit(r.Context(), service.SubmitFeedbackCommand{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Rating:       req.Rating,
		Feedback:     req.Feedback,
	})
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.OKMessage("Feedback submitted successfully", dto.NewFeedbackDTO(*f)))
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 50)

	result, err := c.feedback.List(r.Context(), page, limit)
	if err != nil {
		c.handleError(w, err)
		return
	}

	data := make([]dto.FeedbackDTO, 0, len(result.Entries))
	for _, f := range result.Entries {
		data = append(data, dto.NewFeedbackDTO(f))
	}

	c.writeJSON(w, http.StatusOK, dto.ListFeedbackResponse{
		Success:     true,
		Data:        data,
		TotalCount:  result.TotalCount,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func (c *Controller) handleError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
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
