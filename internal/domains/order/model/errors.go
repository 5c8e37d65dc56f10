package model

import "errors"

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodeOrderNotFound        = "ORD001"
	ErrCodeLineNotFound         = "ORD002"
	ErrCodeLineAlreadyCancelled = "ORD003"
	ErrCodeInsufficientStock    = "ORD004"
	ErrCodeSizeNotFound         = "ORD005"
	ErrCodeCODLimitExceeded     = "ORD006"
	ErrCodeInsufficientFunds    = "ORD007"
	ErrCodePriceChanged         = "ORD008"
	ErrCodeInvalidCoupon        = "ORD009"
	ErrCodePaymentVerification  = "ORD010"
	ErrCodeInvalidStatus        = "ORD011"
	ErrCodeCartNotFound         = "ORD012"
	ErrCodeCartEmpty            = "ORD013"
	ErrCodeProductNotFound      = "ORD014"
	ErrCodeProductUnavailable   = "ORD015"
	ErrCodeUserNotFound         = "ORD016"
	ErrCodeLineNotReturnable    = "ORD017"
	ErrCodeAddressNotFound      = "ORD018"
)

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrLineNotFound         = errors.New("product not found in order")
	ErrLineAlreadyCancelled = errors.New("product already cancelled")
	ErrLineNotReturnable    = errors.New("product cannot be returned")
	ErrCODLimitExceeded     = errors.New("cash on delivery not allowed above limit")
	ErrPriceChanged         = errors.New("order total does not match current prices")
	ErrPaymentVerification  = errors.New("payment signature verification failed")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrCartEmpty            = errors.New("cart is empty")
)

// =====================================================
// CUSTOM ERROR TYPE
// =====================================================
type OrderError struct {
	Code    string
	Message string
	Err     error
}

func (e *OrderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *OrderError) Unwrap() error {
	return e.Err
}

func NewOrderError(code, message string, err error) *OrderError {
	return &OrderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
