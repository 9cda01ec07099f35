package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodUPI    = "upi"
	PaymentMethodOnline = "online"
)

var orderStatuses = map[string]struct{}{
	OrderStatusPending:   {},
	OrderStatusConfirmed: {},
	OrderStatusPreparing: {},
	OrderStatusReady:     {},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

var paymentStatuses = map[string]struct{}{
	PaymentStatusPending:  {},
	PaymentStatusPaid:     {},
	PaymentStatusFailed:   {},
	PaymentStatusRefunded: {},
}

var paymentMethods = map[string]struct{}{
	PaymentMethodCash:   {},
	PaymentMethodCard:   {},
	PaymentMethodUPI:    {},
	PaymentMethodOnline: {},
}

func ValidOrderStatus(s string) bool {
	_, ok := orderStatuses[s]
	return ok
}

func ValidPaymentStatus(s string) bool {
	_, ok := paymentStatuses[s]
	return ok
}

func ValidPaymentMethod(s string) bool {
	_, ok := paymentMethods[s]
	return ok
}

// TerminalOrderStatus reports whether s admits no further transitions.
// Any recognized status is otherwise a legal successor; only terminality
// is enforced.
func TerminalOrderStatus(s string) bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type Order struct {
	ID                  uint
	CustomerName        string
	CustomerPhone       string
	CustomerEmail       string
	TotalAmount         decimal.Decimal
	OrderStatus         string
	PaymentStatus       string
	PaymentMethod       *string
	SpecialInstructions *string
	CancelledAt         *time.Time
	CancellationReason  *string
	CancelledBy         *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Items         []OrderItem
	StatusHistory []OrderStatusHistory
}

func (o Order) Terminal() bool {
	return TerminalOrderStatus(o.OrderStatus)
}

func (o Order) Cancellable() bool {
	return o.OrderStatus != OrderStatusDelivered && o.OrderStatus != OrderStatusCancelled
}

// OrderItem carries a snapshot of the menu item at order time. The snapshot
// fields stay authoritative even if the menu item is edited or deleted later,
// which is why MenuItemID may dangle.
type OrderItem struct {
	ID                  uint
	OrderID             uint
	MenuItemID          *uint
	ItemName            string
	ItemPrice           decimal.Decimal
	Quantity            int
	SpecialInstructions *string
	Subtotal            decimal.Decimal
	CreatedAt           time.Time
}

// OrderStatusHistory is append-only. OldStatus is nil only for the row
// seeded at order placement.
type OrderStatusHistory struct {
	ID        uint
	OrderID   uint
	OldStatus *string
	NewStatus string
	ChangedBy string
	Notes     *string
	ChangedAt time.Time
}
