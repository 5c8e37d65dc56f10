package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/wallet/model"
	"storefront-backend/internal/domains/wallet/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

type WalletHandler struct {
	service service.Service
}

func NewWalletHandler(s service.Service) *WalletHandler {
	return &WalletHandler{service: s}
}

// GetWallet GET /user/wallet/:userId
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, ok := middleware.ResolveUserID(c, c.Param("userId"))
	if !ok {
		return
	}

	details, err := h.service.GetDetails(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", details)
}

// Pay POST /user/wallet-payment
func (h *WalletHandler) Pay(c *gin.Context) {
	var req model.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	userID, ok := middleware.ResolveUserID(c, req.UserID)
	if !ok {
		return
	}

	wallet, err := h.service.Pay(c.Request.Context(), userID, req.TotalAmount)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Payment successful", model.PayResponse{Balance: wallet.Balance})
}

func (h *WalletHandler) handleServiceError(c *gin.Context, err error) {
	var walletErr *model.WalletError
	if errors.As(err, &walletErr) {
		status := http.StatusBadRequest
		if walletErr.Code == model.ErrCodeWalletNotFound {
			status = http.StatusNotFound
		}
		response.Error(c, status, walletErr.Code, walletErr.Message, nil)
		return
	}

	logger.Error("wallet request failed", err)
	response.InternalServerError(c)
}
