package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// Gateway is the payment provider boundary used by checkout.
type Gateway interface {
	// CreateOrder registers a payment intent with the provider.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*ProviderOrder, error)

	// VerifySignature checks the signature returned to the client after
	// payment. It performs no I/O.
	VerifySignature(orderRef, paymentRef, signature string) bool
}

type CreateOrderRequest struct {
	Amount   decimal.Decimal // major units
	Currency string
	Receipt  string
}

// ProviderOrder mirrors the provider's order object. Amounts are in minor units.
type ProviderOrder struct {
	ID         string `json:"id"`
	Entity     string `json:"entity"`
	Amount     int64  `json:"amount"`
	AmountPaid int64  `json:"amount_paid"`
	AmountDue  int64  `json:"amount_due"`
	Currency   string `json:"currency"`
	Receipt    string `json:"receipt"`
	Status     string `json:"status"`
	CreatedAt  int64  `json:"created_at"`
}
