package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/payment/model"
	"storefront-backend/internal/domains/payment/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

type PaymentHandler struct {
	service service.Service
}

func NewPaymentHandler(s service.Service) *PaymentHandler {
	return &PaymentHandler{service: s}
}

// CreateRazorpayOrder POST /user/create-razorpay-order
func (h *PaymentHandler) CreateRazorpayOrder(c *gin.Context) {
	var req model.CreateRazorpayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), req.Amount, req.Currency)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Razorpay order created", gin.H{"order": order})
}

// VerifyRazorpayPayment POST /user/verify-razorpay-payment
func (h *PaymentHandler) VerifyRazorpayPayment(c *gin.Context) {
	var req model.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	if err := h.service.Verify(req); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Payment verified successfully!", nil)
}

func handleServiceError(c *gin.Context, err error) {
	var payErr *model.PaymentError
	if errors.As(err, &payErr) {
		status := http.StatusBadRequest
		if payErr.Code == model.ErrCodeGatewayUnavailable {
			status = http.StatusBadGateway
		}
		response.Error(c, status, payErr.Code, payErr.Message, nil)
		return
	}

	logger.Error("payment request failed", err)
	response.InternalServerError(c)
}
