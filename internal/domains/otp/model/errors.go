package model

import "errors"

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodeOTPExpired      = "OTP001"
	ErrCodeOTPInvalid      = "OTP002"
	ErrCodeTooManyAttempts = "OTP003"
)

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrOTPExpired      = errors.New("otp expired or not requested")
	ErrOTPInvalid      = errors.New("otp does not match")
	ErrTooManyAttempts = errors.New("too many failed attempts")
)

// =====================================================
// CUSTOM ERROR TYPE
// =====================================================
type OTPError struct {
	Code    string
	Message string
	Err     error
}

func (e *OTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *OTPError) Unwrap() error {
	return e.Err
}

func NewOTPError(code, message string, err error) *OTPError {
	return &OTPError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
