package dto

import (
	"time"

	"brewline/internal/domain"
)

type PlaceOrderRequest struct {
	CustomerName        string           `json:"customerName"`
	CustomerPhone       string           `json:"customerPhone"`
	CustomerEmail       string           `json:"customerEmail"`
	Items               []PlaceOrderItem `json:"items"`
	SpecialInstructions string           `json:"specialInstructions"`
}

type PlaceOrderItem struct {
	MenuItemID          uint   `json:"menuItemId"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions"`
}

// PlacedOrderDTO is the 201 payload for POST /orders.
type PlacedOrderDTO struct {
	ID            uint           `json:"id"`
	CustomerName  string         `json:"customerName"`
	CustomerPhone string         `json:"customerPhone"`
	CustomerEmail string         `json:"customerEmail"`
	TotalAmount   float64        `json:"totalAmount"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"paymentStatus"`
	Items         []OrderItemDTO `json:"items"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type OrderItemDTO struct {
	ID                  uint    `json:"id,omitempty"`
	MenuItemID          *uint   `json:"menu_item_id"`
	ItemName            string  `json:"item_name"`
	ItemPrice           float64 `json:"item_price"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions *string `json:"special_instructions"`
	Subtotal            float64 `json:"subtotal"`
}

type StatusHistoryDTO struct {
	ID        uint      `json:"id"`
	OldStatus *string   `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	Notes     *string   `json:"notes"`
	ChangedAt time.Time `json:"changed_at"`
}

// OrderDTO is the admin-facing representation used by the list and detail
// endpoints, snake_case to match the dashboard.
type OrderDTO struct {
	ID                  uint               `json:"id"`
	CustomerName        string             `json:"customer_name"`
	CustomerPhone       string             `json:"customer_phone"`
	CustomerEmail       string             `json:"customer_email"`
	TotalAmount         float64            `json:"total_amount"`
	OrderStatus         string             `json:"order_status"`
	PaymentStatus       string             `json:"payment_status"`
	PaymentMethod       *string            `json:"payment_method"`
	SpecialInstructions *string            `json:"special_instructions"`
	CancelledAt         *time.Time         `json:"cancelled_at"`
	CancellationReason  *string            `json:"cancellation_reason"`
	CancelledBy         *string            `json:"cancelled_by"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
	Items               []OrderItemDTO     `json:"items"`
	StatusHistory       []StatusHistoryDTO `json:"status_history,omitempty"`
}

type ListOrdersResponse struct {
	Success     bool       `json:"success"`
	Data        []OrderDTO `json:"data"`
	TotalCount  int        `json:"totalCount"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
}

type UpdateStatusRequest struct {
	Status    string `json:"status"`
	ChangedBy string `json:"changedBy"`
	Notes     string `json:"notes"`
}

type UpdatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus"`
	PaymentMethod string `json:"paymentMethod"`
}

type CancelOrderRequest struct {
	Reason      string `json:"reason"`
	CancelledBy string `json:"cancelledBy"`
}

func NewOrderItemDTO(item domain.OrderItem) OrderItemDTO {
	return OrderItemDTO{
		ID:                  item.ID,
		MenuItemID:          item.MenuItemID,
		ItemName:            item.ItemName,
		ItemPrice:           item.ItemPrice.InexactFloat64(),
		Quantity:            item.Quantity,
		SpecialInstructions: item.SpecialInstructions,
		Subtotal:            item.Subtotal.InexactFloat64(),
	}
}

func NewOrderDTO(order domain.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, NewOrderItemDTO(it))
	}

	history := make([]StatusHistoryDTO, 0, len(order.StatusHistory))
	for _, h := range order.StatusHistory {
		history = append(history, StatusHistoryDTO{
			ID:        h.ID,
			OldStatus: h.OldStatus,
			NewStatus: h.NewStatus,
			ChangedBy: h.ChangedBy,
			Notes:     h.Notes,
			ChangedAt: h.ChangedAt,
		})
	}

	return OrderDTO{
		ID:                  order.ID,
		CustomerName:        order.CustomerName,
		CustomerPhone:       order.CustomerPhone,
		CustomerEmail:       order.CustomerEmail,
		TotalAmount:         order.TotalAmount.InexactFloat64(),
		OrderStatus:         order.OrderStatus,
		PaymentStatus:       order.PaymentStatus,
		PaymentMethod:       order.PaymentMethod,
		SpecialInstructions: order.SpecialInstructions,
		CancelledAt:         order.CancelledAt,
		CancellationReason:  order.CancellationReason,
		CancelledBy:         order.CancelledBy,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
		Items:               items,
		StatusHistory:       history,
	}
}

func NewPlacedOrderDTO(order domain.Order) PlacedOrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, NewOrderItemDTO(it))
	}

	return PlacedOrderDTO{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		CustomerEmail: order.CustomerEmail,
		TotalAmount:   order.TotalAmount.InexactFloat64(),
		Status:        order.OrderStatus,
		PaymentStatus: order.PaymentStatus,
		Items:         items,
		CreatedAt:     order.CreatedAt,
	}
}
