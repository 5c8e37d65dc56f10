package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced          = "order.placed"
	EventLineCancelled        = "order.line_cancelled"
	EventLineReturned         = "order.line_returned"
	EventOrderStatusChanged   = "order.status_changed"
	EventPaymentStatusChanged = "order.payment_status_changed"
)

// Event is published after an order mutation commits.
type Event struct {
	Type          string          `json:"type"`
	OrderID       uuid.UUID       `json:"orderId"`
	UserID        uuid.UUID       `json:"userId"`
	OrderStatus   string          `json:"orderStatus"`
	PaymentStatus string          `json:"paymentStatus"`
	ProductID     *uuid.UUID      `json:"productId,omitempty"`
	Refund        decimal.Decimal `json:"refund"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

func NewEvent(eventType string, o *Order) Event {
	return Event{
		Type:          eventType,
		OrderID:       o.ID,
		UserID:        o.UserID,
		OrderStatus:   o.OrderStatus,
		PaymentStatus: o.PaymentStatus,
		OccurredAt:    time.Now().UTC(),
	}
}
