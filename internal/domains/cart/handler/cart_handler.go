package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/cart/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

var cartStatus = map[string]int{
	model.ErrCodeCartNotFound:       http.StatusNotFound,
	model.ErrCodeItemNotFound:       http.StatusNotFound,
	model.ErrCodeProductNotFound:    http.StatusNotFound,
	model.ErrCodeUserNotFound:       http.StatusNotFound,
	model.ErrCodeQuantityLimit:      http.StatusBadRequest,
	model.ErrCodeInsufficientStock:  http.StatusBadRequest,
	model.ErrCodeProductUnavailable: http.StatusBadRequest,
	model.ErrCodeSizeNotFound:       http.StatusBadRequest,
}

type CartHandler struct {
	service service.Service
}

func NewCartHandler(s service.Service) *CartHandler {
	return &CartHandler{service: s}
}

// AddItem POST /user/cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req model.AddItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, ok := middleware.ResolveUserID(c, req.UserID)
	if !ok {
		return
	}

	view, err := h.service.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Item added to cart", view)
}

// GetCart GET /user/cart/:userId
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := middleware.ResolveUserID(c, c.Param("userId"))
	if !ok {
		return
	}

	view, err := h.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", view)
}

// EditQuantity PUT /user/cart
func (h *CartHandler) EditQuantity(c *gin.Context) {
	var req model.EditQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, ok := middleware.ResolveUserID(c, req.UserID)
	if !ok {
		return
	}

	view, err := h.service.UpdateQuantity(c.Request.Context(), userID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Quantity updated", view)
}

// RemoveItem DELETE /user/cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req model.RemoveItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, ok := middleware.ResolveUserID(c, req.UserID)
	if !ok {
		return
	}

	view, err := h.service.RemoveItem(c.Request.Context(), userID, req.ProductID, req.Size)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Item removed", view)
}

type validatable interface {
	Validate() error
}

// bindAndValidate binds the JSON body into req and runs its ozzo rules.
func bindAndValidate(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return false
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return false
	}
	return true
}

func (h *CartHandler) handleServiceError(c *gin.Context, err error) {
	var cartErr *model.CartError
	if errors.As(err, &cartErr) {
		status, ok := cartStatus[cartErr.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		response.Error(c, status, cartErr.Code, cartErr.Message, nil)
		return
	}

	logger.Error("cart request failed", err)
	response.InternalServerError(c)
}
