package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// =====================================================
// USER ENDPOINTS
// =====================================================

// PlaceOrder POST /user/place-order
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req model.PlaceOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, ok := middleware.ResolveUserID(c, req.UserID)
	if !ok {
		return
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Order placed", gin.H{"order": order})
}

// PlaceOrderFromCart POST /user/place-order-cart
func (h *OrderHandler) PlaceOrderFromCart(c *gin.Context) {
	var req model.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, ok := middleware.ResolveUserID(c, req.UserID)
	if !ok {
		return
	}

	order, err := h.service.CheckoutCart(c.Request.Context(), userID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Order placed", gin.H{"order": order})
}

// CancelOrder PUT /user/cancel-order/:userId/:orderId
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, ok := middleware.ResolveUserID(c, c.Param("userId"))
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	var req model.CancelLineRequest
	if !bindAndValidate(c, &req) {
		return
	}

	order, err := h.service.CancelLine(c.Request.Context(), userID, orderID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Order cancelled", gin.H{"order": order})
}

// ReturnOrder PUT /user/return-order/:userId/:orderId
func (h *OrderHandler) ReturnOrder(c *gin.Context) {
	userID, ok := middleware.ResolveUserID(c, c.Param("userId"))
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	var req model.ReturnLineRequest
	if !bindAndValidate(c, &req) {
		return
	}

	order, err := h.service.ReturnLine(c.Request.Context(), userID, orderID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Return requested", gin.H{"order": order})
}

// UpdatePaymentStatus POST /user/update-order-status
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	var req model.UpdatePaymentStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, ok := middleware.ResolveUserID(c, "")
	if !ok {
		return
	}

	order, err := h.service.UpdatePaymentStatus(c.Request.Context(), userID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Payment status updated", gin.H{"order": order})
}

// ListUserOrders GET /user/orders/:userId
func (h *OrderHandler) ListUserOrders(c *gin.Context) {
	userID, ok := middleware.ResolveUserID(c, c.Param("userId"))
	if !ok {
		return
	}
	page, limit := utils.ParsePagination(c)

	orders, total, err := h.service.ListOrders(c.Request.Context(), model.ListOrdersFilter{
		UserID: &userID,
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, orders, response.NewMeta(page, limit, total))
}

// GetUserOrder GET /user/orders/:userId/:orderId
func (h *OrderHandler) GetUserOrder(c *gin.Context) {
	userID, ok := middleware.ResolveUserID(c, c.Param("userId"))
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.service.GetUserOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", order)
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// AdminUpdateStatus PUT /admin/update-order-status/:orderId
func (h *OrderHandler) AdminUpdateStatus(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	var req model.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	order, err := h.service.UpdateOrderStatus(c.Request.Context(), orderID, req.OrderStatus)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Order status updated", gin.H{"order": order})
}

// AdminCancelOrder PUT /admin/cancel-order/:orderId
func (h *OrderHandler) AdminCancelOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	var req model.CancelLineRequest
	if !bindAndValidate(c, &req) {
		return
	}

	order, err := h.service.AdminCancelLine(c.Request.Context(), orderID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Order cancelled", gin.H{"order": order})
}

// ListOrders GET /admin/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, limit := utils.ParsePagination(c)

	orders, total, err := h.service.ListOrders(c.Request.Context(), model.ListOrdersFilter{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, orders, response.NewMeta(page, limit, total))
}

// GetOrder GET /admin/orders/:orderId
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", order)
}

// =====================================================
// HELPERS
// =====================================================

func parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

type validatable interface {
	Validate() error
}

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

var orderStatus = map[string]int{
	model.ErrCodeOrderNotFound:        http.StatusNotFound,
	model.ErrCodeLineNotFound:         http.StatusNotFound,
	model.ErrCodeCartNotFound:         http.StatusNotFound,
	model.ErrCodeProductNotFound:      http.StatusNotFound,
	model.ErrCodeUserNotFound:         http.StatusNotFound,
	model.ErrCodeAddressNotFound:      http.StatusNotFound,
	model.ErrCodeLineAlreadyCancelled: http.StatusBadRequest,
	model.ErrCodeInsufficientStock:    http.StatusBadRequest,
	model.ErrCodeSizeNotFound:         http.StatusBadRequest,
	model.ErrCodeCODLimitExceeded:     http.StatusBadRequest,
	model.ErrCodeInsufficientFunds:    http.StatusBadRequest,
	model.ErrCodePriceChanged:         http.StatusBadRequest,
	model.ErrCodeInvalidCoupon:        http.StatusBadRequest,
	model.ErrCodePaymentVerification:  http.StatusBadRequest,
	model.ErrCodeInvalidStatus:        http.StatusBadRequest,
	model.ErrCodeCartEmpty:            http.StatusBadRequest,
	model.ErrCodeProductUnavailable:   http.StatusBadRequest,
	model.ErrCodeLineNotReturnable:    http.StatusBadRequest,
}

func (h *OrderHandler) handleServiceError(c *gin.Context, err error) {
	var orderErr *model.OrderError
	if errors.As(err, &orderErr) {
		status, ok := orderStatus[orderErr.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		response.Error(c, status, orderErr.Code, orderErr.Message, nil)
		return
	}

	logger.Error("order request failed", err)
	response.InternalServerError(c)
}
