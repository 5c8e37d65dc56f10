package email

import "github.com/shopspring/decimal"

type OTPEmailData struct {
	Email     string
	Code      string
	ExpiresIn string
}

type OrderConfirmationData struct {
	Email         string
	Name          string
	OrderID       string
	PaymentMethod string
	Total         decimal.Decimal
	Lines         []LineSummary
}

type LineSummary struct {
	Name     string
	Size     string
	Quantity int
	Price    decimal.Decimal
}
