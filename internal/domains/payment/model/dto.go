package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type CreateRazorpayOrderRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (r CreateRazorpayOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Amount, validation.By(func(v interface{}) error {
			if !v.(decimal.Decimal).IsPositive() {
				return validation.NewError("validation_positive", "must be greater than zero")
			}
			return nil
		})),
		validation.Field(&r.Currency, validation.Length(3, 3)),
	)
}

// VerifyPaymentRequest carries the fields the provider returns to the client.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

func (r VerifyPaymentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RazorpayOrderID, validation.Required),
		validation.Field(&r.RazorpayPaymentID, validation.Required),
		validation.Field(&r.RazorpaySignature, validation.Required),
	)
}
