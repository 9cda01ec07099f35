package dto

import (
	"time"

	"brewline/internal/domain"
)

type SubmitFeedbackRequest struct {
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Rating       int    `json:"rating"`
	Feedback     string `json:"feedback"`
}

type FeedbackDTO struct {
	ID           uint      `json:"id"`
	CustomerName string    `json:"customer_name"`
	Email        *string   `json:"email"`
	Rating       int       `json:"rating"`
	Feedback     *string   `json:"feedback"`
	SubmittedAt  time.Time `json:"submitted_at"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListFeedbackResponse struct {
	Success     bool          `json:"success"`
	Data        []FeedbackDTO `json:"data"`
	TotalCount  int           `json:"totalCount"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

func NewFeedbackDTO(f domain.Feedback) FeedbackDTO {
	return FeedbackDTO{
		ID:           f.ID,
		CustomerName: f.CustomerName,
		Email:        f.Email,
		Rating:       f.Rating,
		Feedback:     f.Feedback,
		SubmittedAt:  f.SubmittedAt,
		CreatedAt:    f.CreatedAt,
	}
}
