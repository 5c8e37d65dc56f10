package model

import "errors"

const (
	ErrCodeCouponNotFound    = "CPN001"
	ErrCodeCouponExists      = "CPN002"
	ErrCodeCouponInactive    = "CPN003"
	ErrCodeCouponNotStarted  = "CPN004"
	ErrCodeCouponExpired     = "CPN005"
	ErrCodeMinPurchaseNotMet = "CPN006"
)

var (
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponExists      = errors.New("coupon code already exists")
	ErrCouponInactive    = errors.New("coupon is not available")
	ErrCouponNotStarted  = errors.New("coupon is not valid yet")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrMinPurchaseNotMet = errors.New("order amount is below the coupon minimum")
)

type CouponError struct {
	Code    string
	Message string
	Err     error
}

func (e *CouponError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CouponError) Unwrap() error {
	return e.Err
}

func NewCouponError(code, message string, err error) *CouponError {
	return &CouponError{Code: code, Message: message, Err: err}
}
