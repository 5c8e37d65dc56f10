package model

import "errors"

const (
	ErrCodeAddressNotFound = "ADR001"
	ErrCodeNoDefault       = "ADR002"
	ErrCodeAddressLimit    = "ADR003"
)

// MaxAddressesPerUser caps the address book.
const MaxAddressesPerUser = 10

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrNoDefault       = errors.New("default address not found")
	ErrAddressLimit    = errors.New("address book is full")
)

type AddressError struct {
	Code    string
	Message string
	Err     error
}

func (e *AddressError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AddressError) Unwrap() error {
	return e.Err
}

func NewAddressError(code, message string, err error) *AddressError {
	return &AddressError{Code: code, Message: message, Err: err}
}
