package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// MaxLinesPerOrder bounds a single placement request.
	MaxLinesPerOrder = 50
	// MaxLineQuantity matches the cart's per-line ceiling.
	MaxLineQuantity = 5
)

// =====================================================
// PLACE ORDER REQUEST
// =====================================================
type LineInput struct {
	ProductID uuid.UUID `json:"productId"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
}

func (l LineInput) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.ProductID, validation.Required),
		validation.Field(&l.Size, validation.Required, validation.Length(1, 10)),
		validation.Field(&l.Quantity, validation.Required, validation.Min(1), validation.Max(MaxLineQuantity)),
	)
}

// PlaceOrderRequest carries either an inline address or the id of an entry
// in the user's address book; addressId wins when both are sent.
type PlaceOrderRequest struct {
	UserID         string          `json:"userId"`
	AddressID      *uuid.UUID      `json:"addressId,omitempty"`
	Address        Address         `json:"address"`
	Products       []LineInput     `json:"products"`
	PaymentMethod  string          `json:"paymentMethod"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PromoCode      string          `json:"promoCode,omitempty"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`

	RazorpayOrderID   string `json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string `json:"razorpayPaymentId,omitempty"`
	RazorpaySignature string `json:"razorpaySignature,omitempty"`
}

func (r PlaceOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Address, validation.Skip.When(r.AddressID != nil)),
		validation.Field(&r.Products, validation.Required, validation.Length(1, MaxLinesPerOrder)),
		validation.Field(&r.PaymentMethod, validation.Required, validation.In(
			PaymentMethodWallet,
			PaymentMethodRazorPay,
			PaymentMethodCOD,
		)),
		validation.Field(&r.TotalAmount, validation.By(positiveAmount)),
	)
}

// CheckoutRequest is PlaceOrderRequest where products may be omitted and
// are then taken from the cart.
type CheckoutRequest struct {
	PlaceOrderRequest
}

func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r.PlaceOrderRequest,
		validation.Field(&r.Address, validation.Skip.When(r.AddressID != nil)),
		validation.Field(&r.Products, validation.Length(0, MaxLinesPerOrder)),
		validation.Field(&r.PaymentMethod, validation.Required, validation.In(
			PaymentMethodWallet,
			PaymentMethodRazorPay,
			PaymentMethodCOD,
		)),
		validation.Field(&r.TotalAmount, validation.By(positiveAmount)),
	)
}

func (a Address) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&a.HouseNo, validation.Required),
		validation.Field(&a.Street, validation.Required),
		validation.Field(&a.Town, validation.Required),
		validation.Field(&a.City, validation.Required),
		validation.Field(&a.State, validation.Required),
		validation.Field(&a.Pincode, validation.Required, is.Digit, validation.Length(4, 10)),
		validation.Field(&a.Phone, validation.Required, is.Digit, validation.Length(7, 15)),
	)
}

func positiveAmount(v interface{}) error {
	if !v.(decimal.Decimal).IsPositive() {
		return validation.NewError("validation_positive", "must be greater than zero")
	}
	return nil
}

// =====================================================
// LINE ACTIONS
// =====================================================
type CancelLineRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Size      string    `json:"size,omitempty"`
}

func (r CancelLineRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required),
	)
}

type ReturnLineRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Size      string    `json:"size,omitempty"`
	Reason    string    `json:"reason"`
}

func (r ReturnLineRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required),
		validation.Field(&r.Reason, validation.Required, validation.Length(3, 500)),
	)
}

// =====================================================
// STATUS UPDATES
// =====================================================
type UpdatePaymentStatusRequest struct {
	OrderID       uuid.UUID `json:"orderId"`
	PaymentStatus string    `json:"paymentStatus"`
}

func (r UpdatePaymentStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OrderID, validation.Required),
		validation.Field(&r.PaymentStatus, validation.Required, validation.In(
			PaymentStatusPending,
			PaymentStatusCompleted,
			PaymentStatusFailed,
		)),
	)
}

type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus"`
}

func (r UpdateOrderStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OrderStatus, validation.Required, validation.In(
			OrderStatusProcessing,
			OrderStatusShipped,
			OrderStatusDelivered,
			OrderStatusCancelled,
		)),
	)
}

// =====================================================
// LIST ORDERS
// =====================================================
type ListOrdersFilter struct {
	UserID *uuid.UUID
	Status string
	Page   int
	Limit  int
}

var listableStatuses = []interface{}{
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturned,
}

func (f ListOrdersFilter) Validate() error {
	return validation.Validate(f.Status, validation.In(listableStatuses...))
}
