package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/payment/gateway"
	"storefront-backend/internal/domains/payment/model"
	"storefront-backend/pkg/logger"
)

type Service interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency string) (*gateway.ProviderOrder, error)
	Verify(req model.VerifyPaymentRequest) error
}

type paymentService struct {
	gateway gateway.Gateway
	now     func() time.Time
}

func NewPaymentService(gw gateway.Gateway) Service {
	return &paymentService{gateway: gw, now: time.Now}
}

func (s *paymentService) CreateOrder(ctx context.Context, amount decimal.Decimal, currency string) (*gateway.ProviderOrder, error) {
	order, err := s.gateway.CreateOrder(ctx, gateway.CreateOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  fmt.Sprintf("receipt_%d", s.now().UnixMilli()),
	})
	if err != nil {
		logger.Error("Failed to create payment order", err)
		return nil, model.NewPaymentError(model.ErrCodeGatewayUnavailable, "Failed to create Razorpay order", err)
	}
	return order, nil
}

func (s *paymentService) Verify(req model.VerifyPaymentRequest) error {
	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		logger.Warn("Payment signature rejected", map[string]interface{}{
			"razorpay_order_id": req.RazorpayOrderID,
		})
		return model.NewPaymentError(model.ErrCodeInvalidSignature, "Payment verification failed", model.ErrInvalidSignature)
	}
	return nil
}
