package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/otp/model"
	"storefront-backend/internal/domains/otp/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

type OTPHandler struct {
	service service.Service
}

func NewOTPHandler(s service.Service) *OTPHandler {
	return &OTPHandler{service: s}
}

// Send POST /otp/send
func (h *OTPHandler) Send(c *gin.Context) {
	var req model.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	if err := h.service.Send(c.Request.Context(), req.Email); err != nil {
		handleError(c, "send otp failed", err)
		return
	}
	response.Success(c, http.StatusOK, "OTP sent", nil)
}

// Verify POST /otp/verify
func (h *OTPHandler) Verify(c *gin.Context) {
	var req model.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	if err := h.service.Verify(c.Request.Context(), req.Email, req.OTP); err != nil {
		handleError(c, "verify otp failed", err)
		return
	}
	response.Success(c, http.StatusOK, "OTP verified", nil)
}

func handleError(c *gin.Context, msg string, err error) {
	var otpErr *model.OTPError
	switch {
	case errors.As(err, &otpErr) && otpErr.Code == model.ErrCodeTooManyAttempts:
		response.Error(c, http.StatusTooManyRequests, otpErr.Code, otpErr.Message, nil)
	case errors.As(err, &otpErr):
		response.Error(c, http.StatusBadRequest, otpErr.Code, otpErr.Message, nil)
	default:
		logger.Error(msg, err)
		response.InternalServerError(c)
	}
}
