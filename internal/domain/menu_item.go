package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID                     uint
	Name                   string
	Price                  decimal.Decimal
	CategoryID             int
	Description            *string
	ImageURL               *string
	IsAvailable            bool
	PreparationTimeMinutes *int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
