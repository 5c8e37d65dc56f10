package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	CodeLength  = 6
	TTL         = 15 * time.Minute
	MaxAttempts = 5
	// LockTTL is how long an email stays locked after MaxAttempts failures.
	LockTTL     = 15 * time.Minute
)

// Record is what gets cached per email. Only the bcrypt hash of the code is
// kept.
type Record struct {
	Hash      string    `json:"hash"`
	ExpiresAt time.Time `json:"expires_at"`
}

func CodeKey(email string) string {
	return "otp:code:" + NormalizeEmail(email)
}

func AttemptsKey(email string) string {
	return "otp:attempts:" + NormalizeEmail(email)
}

func LockKey(email string) string {
	return "otp:lock:" + NormalizeEmail(email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// =====================================================
// REQUESTS
// =====================================================

type SendRequest struct {
	Email string `json:"email"`
}

func (r SendRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

type VerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (r VerifyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.OTP, validation.Required, is.Digit, validation.Length(CodeLength, CodeLength)),
	)
}
