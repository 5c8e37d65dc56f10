package razorpay

import (
	"context"
	"encoding/json"
	"fmt"

	rzp "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/config"
	"storefront-backend/internal/domains/payment/gateway"
)

var minorUnits = decimal.NewFromInt(100)

// orderCreator is the slice of the SDK's order resource the client uses.
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type Client struct {
	config config.RazorpayConfig
	orders orderCreator
}

func NewClient(cfg config.RazorpayConfig) *Client {
	sdk := rzp.NewClient(cfg.KeyID, cfg.KeySecret)
	return &Client{config: cfg, orders: sdk.Order}
}

type createResult struct {
	body map[string]interface{}
	err  error
}

// CreateOrder creates a provider order for the amount in minor units.
// The SDK call is not context-aware; ctx and the configured timeout bound
// how long the caller waits for it.
func (c *Client) CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (*gateway.ProviderOrder, error) {
	currency := req.Currency
	if currency == "" {
		currency = c.config.Currency
	}

	data := map[string]interface{}{
		"amount":   req.Amount.Mul(minorUnits).Round(0).IntPart(),
		"currency": currency,
		"receipt":  req.Receipt,
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	done := make(chan createResult, 1)
	go func() {
		body, err := c.orders.Create(data, nil)
		done <- createResult{body: body, err: err}
	}()

	var res createResult
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("call razorpay: %w", ctx.Err())
	case res = <-done:
	}
	if res.err != nil {
		return nil, fmt.Errorf("call razorpay: %w", res.err)
	}

	return decodeOrder(res.body)
}

func decodeOrder(body map[string]interface{}) (*gateway.ProviderOrder, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode razorpay order: %w", err)
	}

	var order gateway.ProviderOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("decode razorpay order: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("razorpay order response has no id")
	}
	return &order, nil
}

func (c *Client) VerifySignature(orderRef, paymentRef, signature string) bool {
	return VerifySignature(orderRef, paymentRef, signature, c.config.KeySecret)
}
