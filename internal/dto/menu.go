package dto

import (
	"time"

	"brewline/internal/domain"
)

type MenuItemDTO struct {
	ID                     uint      `json:"id"`
	Name                   string    `json:"name"`
	Price                  float64   `json:"price"`
	CategoryID             int       `json:"category_id"`
	Description            *string   `json:"description"`
	ImageURL               *string   `json:"image_url"`
	IsAvailable            bool      `json:"is_available"`
	PreparationTimeMinutes *int      `json:"preparation_time_minutes"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

type MenuListResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Data    []MenuItemDTO `json:"data"`
}

func NewMenuItemDTO(item domain.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:                     item.ID,
		Name:                   item.Name,
		Price:                  item.Price.InexactFloat64(),
		CategoryID:             item.CategoryID,
		Description:            item.Description,
		ImageURL:               item.ImageURL,
		IsAvailable:            item.IsAvailable,
		PreparationTimeMinutes: item.PreparationTimeMinutes,
		CreatedAt:              item.CreatedAt,
		UpdatedAt:              item.UpdatedAt,
	}
}
