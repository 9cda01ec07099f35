package dto

import (
	"time"

	"brewline/internal/domain"
)

type InventoryItemDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	UnitLabel string    `json:"unit_label"`
	Rate      float64   `json:"rate"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	CreatedBy *string   `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateInventoryItemRequest struct {
	Name      string  `json:"name"`
	UnitLabel string  `json:"unit_label"`
	Rate      float64 `json:"rate"`
	Category  string  `json:"category"`
	Status    string  `json:"status"`
	CreatedBy string  `json:"created_by"`
}

type UpdateInventoryItemRequest struct {
	Name      *string  `json:"name"`
	UnitLabel *string  `json:"unit_label"`
	Rate      *float64 `json:"rate"`
	Category  *string  `json:"category"`
	Status    *string  `json:"status"`
}

type DeleteInventoryItemResult struct {
	SoftDeleted bool `json:"softDeleted"`
}

type PlaceInventoryOrderRequest struct {
	OrderedBy string               `json:"ordered_by"`
	Notes     string               `json:"notes"`
	Items     []InventoryCartItem  `json:"items"`
}

type InventoryCartItem struct {
	InventoryItemID uint `json:"inventory_item_id"`
	Quantity        int  `json:"quantity"`
}

type PlacedInventoryOrderDTO struct {
	OrderID uint `json:"order_id"`
}

type InventoryOrderLineDTO struct {
	ItemName   string  `json:"itemName"`
	Unit       string  `json:"unit"`
	Rate       float64 `json:"rate"`
	Quantity   int     `json:"quantity"`
	LineAmount float64 `json:"lineAmount"`
}

type InventoryOrderDTO struct {
	ID          uint                    `json:"id"`
	Status      string                  `json:"status"`
	TotalAmount float64                 `json:"total_amount"`
	OrderedBy   string                  `json:"ordered_by"`
	OrderedAt   time.Time               `json:"ordered_at"`
	PurchasedAt *time.Time              `json:"purchased_at"`
	PurchasedBy *string                 `json:"purchased_by"`
	Notes       *string                 `json:"notes"`
	Items       []InventoryOrderLineDTO `json:"items"`
}

type MarkPurchasedRequest struct {
	PurchasedBy string `json:"purchased_by"`
}

func NewInventoryItemDTO(item domain.InventoryItem) InventoryItemDTO {
	return InventoryItemDTO{
		ID:        item.ID,
		Name:      item.Name,
		UnitLabel: item.UnitLabel,
		Rate:      item.Rate.InexactFloat64(),
		Category:  item.Category,
		Status:    item.Status,
		CreatedBy: item.CreatedBy,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func NewInventoryOrderDTO(order domain.InventoryOrder) InventoryOrderDTO {
	lines := make([]InventoryOrderLineDTO, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, InventoryOrderLineDTO{
			ItemName:   l.ItemName,
			Unit:       l.UnitLabel,
			Rate:       l.UnitRate.InexactFloat64(),
			Quantity:   l.Quantity,
			LineAmount: l.LineAmount.InexactFloat64(),
		})
	}

	return InventoryOrderDTO{
		ID:          order.ID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount.InexactFloat64(),
		OrderedBy:   order.OrderedBy,
		OrderedAt:   order.OrderedAt,
		PurchasedAt: order.PurchasedAt,
		PurchasedBy: order.PurchasedBy,
		Notes:       order.Notes,
		Items:       lines,
	}
}
