package main

import (
	"github.com/hibiken/asynq"

	couponJob "storefront-backend/internal/domains/coupon/job"
	"storefront-backend/internal/infrastructure/email"
	emailJob "storefront-backend/internal/infrastructure/email/job"
	"storefront-backend/internal/shared"
	"storefront-backend/pkg/container"
)

// HandlerRegistry holds every task handler the worker serves.
type HandlerRegistry struct {
	OTPEmail          *emailJob.OTPEmailHandler
	OrderConfirmation *emailJob.OrderConfirmationHandler
	HideExpired       *couponJob.HideExpiredHandler
}

func initializeHandlers(c *container.Container) (*HandlerRegistry, error) {
	mailer, err := email.NewSMTPEmailService(c.Config.SMTP)
	if err != nil {
		return nil, err
	}

	return &HandlerRegistry{
		OTPEmail:          emailJob.NewOTPEmailHandler(mailer),
		OrderConfirmation: emailJob.NewOrderConfirmationHandler(mailer, c.OrderRepo, c.UserRepo),
		HideExpired:       couponJob.NewHideExpiredHandler(c.CouponService),
	}, nil
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(shared.TypeSendOTPEmail, h.OTPEmail)
	mux.Handle(shared.TypeSendOrderConfirmation, h.OrderConfirmation)
	mux.Handle(shared.TypeDeactivateExpiredCoupons, h.HideExpired)
}
