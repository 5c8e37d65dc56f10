package shared

// Asynq task types.
const (
	TypeSendOTPEmail             = "email:otp"
	TypeSendOrderConfirmation    = "email:order_confirmation"
	TypeDeactivateExpiredCoupons = "coupon:deactivate_expired"
)

// Asynq queues, highest priority first.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// OTPEmailPayload is enqueued by the OTP service and consumed by the worker.
type OTPEmailPayload struct {
	Email     string `json:"email"`
	Code      string `json:"code"`
	ExpiresIn string `json:"expiresIn"`
}

// OrderConfirmationPayload is enqueued after an order commits.
type OrderConfirmationPayload struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"userId"`
}

// DeactivateExpiredCouponsPayload carries no data; the handler uses the current time.
type DeactivateExpiredCouponsPayload struct{}
