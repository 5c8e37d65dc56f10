package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentMethodWallet   = "Wallet"
	PaymentMethodRazorPay = "Razor Pay"
	PaymentMethodCOD      = "Cash On Delivery"
)

const (
	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"
	PaymentStatusFailed    = "Failed"
)

const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
	OrderStatusReturned   = "Returned"
)

const (
	LineStatusPending   = "Pending"
	LineStatusCancelled = "Cancelled"
	LineStatusShipped   = "Shipped"
	LineStatusDelivered = "Delivered"
	LineStatusReturned  = "Returned"
)

// =====================================================
// ORDER ENTITY
// =====================================================
type Order struct {
	ID               uuid.UUID           `json:"id"`
	UserID           uuid.UUID           `json:"userId"`
	Address          Address             `json:"address"`
	Lines            []Line              `json:"products"`
	PaymentMethod    string              `json:"paymentMethod"`
	PaymentStatus    string              `json:"paymentStatus"`
	OrderStatus      string              `json:"orderStatus"`
	TotalAmount      decimal.Decimal     `json:"totalAmount"`
	DiscountedAmount decimal.NullDecimal `json:"discountedAmount"`
	CouponCode       *string             `json:"couponCode,omitempty"`
	PaymentRef       *string             `json:"paymentRef,omitempty"`
	OrderDate        time.Time           `json:"orderDate"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// Line is one purchased product/size pair with its price frozen at placement.
type Line struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"productId"`
	ProductName  string          `json:"productName"`
	ThumbnailURL string          `json:"thumbnailUrl,omitempty"`
	Size         string          `json:"size"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Price        decimal.Decimal `json:"price"`
	Status       string          `json:"status"`
	ReturnReason *string         `json:"returnReason,omitempty"`
}

// Address is a snapshot copied into the order; later edits to the user's
// saved addresses do not touch placed orders.
type Address struct {
	Name     string `json:"name"`
	HouseNo  string `json:"houseno"`
	Street   string `json:"street"`
	Landmark string `json:"landmark,omitempty"`
	Town     string `json:"town"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Phone    string `json:"phone"`
}

// LineIndex finds the line for productID. When size is empty the first line
// that is not cancelled wins, falling back to the first match so callers
// still see the already-cancelled state.
func (o *Order) LineIndex(productID uuid.UUID, size string) int {
	first := -1
	for i, l := range o.Lines {
		if l.ProductID != productID {
			continue
		}
		if size != "" {
			if strings.EqualFold(l.Size, size) {
				return i
			}
			continue
		}
		if first == -1 {
			first = i
		}
		if l.Status != LineStatusCancelled {
			return i
		}
	}
	return first
}

func (o *Order) allLinesIn(status string) bool {
	if len(o.Lines) == 0 {
		return false
	}
	for _, l := range o.Lines {
		if l.Status != status {
			return false
		}
	}
	return true
}

// CancelLine marks line i cancelled and returns the status it had before.
func (o *Order) CancelLine(i int) (string, error) {
	prev := o.Lines[i].Status
	if prev == LineStatusCancelled {
		return prev, ErrLineAlreadyCancelled
	}
	o.Lines[i].Status = LineStatusCancelled
	if o.allLinesIn(LineStatusCancelled) {
		o.OrderStatus = OrderStatusCancelled
	}
	return prev, nil
}

func (o *Order) ReturnLine(i int, reason string) error {
	switch o.Lines[i].Status {
	case LineStatusCancelled, LineStatusReturned:
		return ErrLineNotReturnable
	}
	o.Lines[i].Status = LineStatusReturned
	o.Lines[i].ReturnReason = &reason
	if o.allLinesIn(LineStatusReturned) {
		o.OrderStatus = OrderStatusReturned
	} else {
		o.OrderStatus = OrderStatusProcessing
	}
	return nil
}

// SetOrderStatus applies an admin status change. Lines are left as they are.
func (o *Order) SetOrderStatus(status string) error {
	switch status {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusCancelled:
	case OrderStatusDelivered:
		o.PaymentStatus = PaymentStatusCompleted
	default:
		return ErrInvalidStatus
	}
	o.OrderStatus = status
	return nil
}

func (o *Order) SetPaymentStatus(status string) error {
	switch status {
	case PaymentStatusPending, PaymentStatusFailed:
	case PaymentStatusCompleted:
		o.OrderStatus = OrderStatusProcessing
	default:
		return ErrInvalidStatus
	}
	o.PaymentStatus = status
	return nil
}

// RefundDue reports whether cancelling a line that had prevStatus owes the
// customer money back.
func (o *Order) RefundDue(prevStatus string) bool {
	switch o.PaymentMethod {
	case PaymentMethodRazorPay:
		return true
	case PaymentMethodCOD:
		return prevStatus == LineStatusDelivered
	}
	return false
}

// RefundAmount is the line price plus the order level discount amount.
func (o *Order) RefundAmount(i int) decimal.Decimal {
	amount := o.Lines[i].Price
	if o.DiscountedAmount.Valid {
		amount = amount.Add(o.DiscountedAmount.Decimal)
	}
	return amount
}

// InitialPaymentStatus is Completed for prepaid methods.
func InitialPaymentStatus(method string) string {
	if method == PaymentMethodWallet || method == PaymentMethodRazorPay {
		return PaymentStatusCompleted
	}
	return PaymentStatusPending
}
