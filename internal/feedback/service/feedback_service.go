package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"brewline/internal/domain"
	apperrors "brewline/internal/errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Repository interface {
	Insert(ctx context.Context, f *domain.Feedback) (uint, error)
	List(ctx context.Context, limit, offset int) ([]domain.Feedback, int, error)
}

type FeedbackService struct {
	repo   Repository
	logger *zap.Logger
}

func NewFeedbackService(repo Repository, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{repo: repo, logger: logger}
}

type SubmitFeedbackCommand struct {
	CustomerName string
	Email        string
	Rating       int
	Feedback     string
}

type FeedbackPage struct {
	Entries     []domain.Feedback
	TotalCount  int
	TotalPages  int
	CurrentPage int
}

func (s *FeedbackService) Submit(ctx context.Context, cmd SubmitFeedbackCommand) (*domain.Feedback, error) {
	var details []apperrors.ValidationDetail
	if cmd.Rating < 1 || cmd.Rating > 5 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "rating",
			Message: "rating must be between 1 and 5",
		})
	}
	email := strings.TrimSpace(cmd.Email)
	if email != "" && !emailPattern.MatchString(email) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("Rating is required and must be between 1 and 5", details...)
	}

	now := time.Now().UTC()
	f := &domain.Feedback{
		CustomerName: cmd.CustomerName,
		Rating:       cmd.Rating,
		SubmittedAt:  now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if strings.TrimSpace(f.CustomerName) == "" {
		f.CustomerName = "Anonymous"
	}
	if email != "" {
		f.Email = &email
	}
	if text := strings.TrimSpace(cmd.Feedback); text != "" {
		f.Feedback = &text
	}

	id, err := s.repo.Insert(ctx, f)
	if err != nil {
		s.logger.Error("failed to insert feedback", zap.Error(err))
		return nil, apperrors.NewInternalError("submitting feedback", err)
	}
	f.ID = id

	s.logger.Info("feedback submitted",
		zap.Uint("feedback_id", id),
		zap.Int("rating", f.Rating),
	)
	return f, nil
}

func (s *FeedbackService) List(ctx context.Context, page, limit int) (*FeedbackPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	entries, total, err := s.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		s.logger.Error("failed to list feedback", zap.Error(err))
		return nil, apperrors.NewInternalError("listing feedback", err)
	}

	totalPages := (total + limit - 1) / limit
	return &FeedbackPage{
		Entries:     entries,
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}
