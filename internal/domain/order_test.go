package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrder_StatusConstants(t *testing.T) {
	assert.Equal(t, "pending", OrderStatusPending)
	assert.Equal(t, "confirmed", OrderStatusConfirmed)
	assert.Equal(t, "preparing", OrderStatusPreparing)
	assert.Equal(t, "ready", OrderStatusReady)
	assert.Equal(t, "delivered", OrderStatusDelivered)
	assert.Equal(t, "cancelled", OrderStatusCancelled)
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "preparing", "ready", "delivered", "cancelled"} {
		assert.True(t, ValidOrderStatus(s), s)
	}

	assert.False(t, ValidOrderStatus("shipped"))
	assert.False(t, ValidOrderStatus("PENDING"))
	assert.False(t, ValidOrderStatus(""))
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []string{"pending", "paid", "failed", "refunded"} {
		assert.True(t, ValidPaymentStatus(s), s)
	}

	assert.False(t, ValidPaymentStatus("confirmed"))
	assert.False(t, ValidPaymentStatus(""))
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{"cash", "card", "upi", "online"} {
		assert.True(t, ValidPaymentMethod(m), m)
	}

	assert.False(t, ValidPaymentMethod("cheque"))
}

func TestTerminalOrderStatus(t *testing.T) {
	assert.True(t, TerminalOrderStatus(OrderStatusDelivered))
	assert.True(t, TerminalOrderStatus(OrderStatusCancelled))

	for _, s := range []string{OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady} {
		assert.False(t, TerminalOrderStatus(s), s)
	}
}

func TestOrder_Cancellable(t *testing.T) {
	order := Order{OrderStatus: OrderStatusPreparing}
	assert.True(t, order.Cancellable())
	assert.False(t, order.Terminal())

	order.OrderStatus = OrderStatusDelivered
	assert.False(t, order.Cancellable())
	assert.True(t, order.Terminal())

	order.OrderStatus = OrderStatusCancelled
	assert.False(t, order.Cancellable())
	assert.True(t, order.Terminal())
}

func TestOrder_Creation(t *testing.T) {
	now := time.Now()
	method := PaymentMethodCash

	order := Order{
		ID:            1,
		CustomerName:  "Asha Rao",
		CustomerPhone: "9876543210",
		CustomerEmail: "Not provided",
		TotalAmount:   decimal.RequireFromString("100.00"),
		OrderStatus:   OrderStatusPending,
		PaymentStatus: PaymentStatusPending,
		PaymentMethod: &method,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	assert.Equal(t, uint(1), order.ID)
	assert.True(t, order.TotalAmount.Equal(decimal.New(100, 0)))
	assert.Equal(t, OrderStatusPending, order.OrderStatus)
	assert.Nil(t, order.CancelledAt)
	assert.Nil(t, order.SpecialInstructions)
}
