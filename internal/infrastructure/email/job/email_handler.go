package job

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	orderModel "storefront-backend/internal/domains/order/model"
	userModel "storefront-backend/internal/domains/user/model"
	"storefront-backend/internal/infrastructure/email"
	"storefront-backend/internal/shared"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

// ============================================
// OTP Email Handler
// ============================================

type OTPEmailHandler struct {
	emailService email.EmailService
}

func NewOTPEmailHandler(emailService email.EmailService) *OTPEmailHandler {
	return &OTPEmailHandler{emailService: emailService}
}

func (h *OTPEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.OTPEmailPayload
	if err := utils.UnmarshalTask(task, &payload); err != nil {
		logger.Error("Failed to unmarshal OTP email payload", err)
		return err
	}

	if err := h.emailService.SendOTPEmail(ctx, email.OTPEmailData{
		Email:     payload.Email,
		Code:      payload.Code,
		ExpiresIn: payload.ExpiresIn,
	}); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}

	logger.Info("OTP email sent", map[string]interface{}{"email": payload.Email})
	return nil
}

// ============================================
// Order Confirmation Handler
// ============================================

type OrderReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*orderModel.Order, error)
}

type UserReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*userModel.User, error)
}

type OrderConfirmationHandler struct {
	emailService email.EmailService
	orders       OrderReader
	users        UserReader
}

func NewOrderConfirmationHandler(emailService email.EmailService, orders OrderReader, users UserReader) *OrderConfirmationHandler {
	return &OrderConfirmationHandler{
		emailService: emailService,
		orders:       orders,
		users:        users,
	}
}

func (h *OrderConfirmationHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.OrderConfirmationPayload
	if err := utils.UnmarshalTask(task, &payload); err != nil {
		logger.Error("Failed to unmarshal order confirmation payload", err)
		return err
	}

	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		return fmt.Errorf("invalid order id %q: %w", payload.OrderID, asynq.SkipRetry)
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", payload.UserID, asynq.SkipRetry)
	}

	order, err := h.orders.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load order: %w", err)
	}
	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	data := email.OrderConfirmationData{
		Email:         user.Email,
		Name:          user.FullName,
		OrderID:       order.ID.String(),
		PaymentMethod: order.PaymentMethod,
		Total:         order.TotalAmount,
		Lines:         make([]email.LineSummary, 0, len(order.Lines)),
	}
	for _, l := range order.Lines {
		data.Lines = append(data.Lines, email.LineSummary{
			Name:     l.ProductName,
			Size:     l.Size,
			Quantity: l.Quantity,
			Price:    l.Price,
		})
	}

	if err := h.emailService.SendOrderConfirmation(ctx, data); err != nil {
		return fmt.Errorf("send order confirmation: %w", err)
	}

	logger.Info("Order confirmation sent", map[string]interface{}{
		"order_id": payload.OrderID,
		"email":    user.Email,
	})
	return nil
}
