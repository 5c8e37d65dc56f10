package model

import "errors"

const (
	ErrCodeCartNotFound       = "CRT001"
	ErrCodeItemNotFound       = "CRT002"
	ErrCodeQuantityLimit      = "CRT003"
	ErrCodeInsufficientStock  = "CRT004"
	ErrCodeProductUnavailable = "CRT005"
	ErrCodeSizeNotFound       = "CRT006"
	ErrCodeProductNotFound    = "CRT007"
	ErrCodeUserNotFound       = "CRT008"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("item not found in cart")
)

type CartError struct {
	Code    string
	Message string
	Err     error
}

func (e *CartError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CartError) Unwrap() error {
	return e.Err
}

func NewCartError(code, message string, err error) *CartError {
	return &CartError{Code: code, Message: message, Err: err}
}
