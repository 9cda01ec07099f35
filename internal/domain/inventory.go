package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	InventoryItemActive   = "active"
	InventoryItemInactive = "inactive"
)

const (
	InventoryOrderPending   = "pending"
	InventoryOrderPurchased = "purchased"
)

type InventoryItem struct {
	ID        uint
	Name      string
	UnitLabel string
	Rate      decimal.Decimal
	Category  string
	Status    string
	CreatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type InventoryOrder struct {
	ID          uint
	Status      string
	TotalAmount decimal.Decimal
	OrderedBy   string
	Notes       *string
	OrderedAt   time.Time
	PurchasedAt *time.Time
	PurchasedBy *string
	UpdatedAt   time.Time

	Lines []InventoryOrderLine
}

// InventoryOrderLine snapshots name, unit and rate from the live inventory
// item at placement time. LineAmount = UnitRate × Quantity.
type InventoryOrderLine struct {
	ID              uint
	OrderID         uint
	InventoryItemID *uint
	ItemName        string
	UnitLabel       string
	UnitRate        decimal.Decimal
	Quantity        int
	LineAmount      decimal.Decimal
}
