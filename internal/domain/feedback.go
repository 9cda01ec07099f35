package domain

import "time"

type Feedback struct {
	ID           uint
	CustomerName string
	Email        *string
	Rating       int
	Feedback     *string
	SubmittedAt  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
