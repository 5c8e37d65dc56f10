package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/coupon/model"
	"storefront-backend/internal/domains/coupon/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

type CouponHandler struct {
	service service.Service
}

func NewCouponHandler(s service.Service) *CouponHandler {
	return &CouponHandler{service: s}
}

// Create POST /admin/coupons
func (h *CouponHandler) Create(c *gin.Context) {
	var req model.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	coupon, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Coupon added successfully", coupon)
}

// List GET /admin/coupons
func (h *CouponHandler) List(c *gin.Context) {
	coupons, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", coupons)
}

// ListAvailable GET /user/coupons
func (h *CouponHandler) ListAvailable(c *gin.Context) {
	coupons, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", coupons)
}

// ToggleVisibility PATCH /admin/coupons/:id/status
func (h *CouponHandler) ToggleVisibility(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	coupon, err := h.service.ToggleVisibility(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Coupon visibility updated", gin.H{"id": coupon.ID, "visibility": coupon.Visibility})
}

// Delete DELETE /admin/coupons/:id
func (h *CouponHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Coupon deleted successfully", nil)
}

// Apply POST /user/coupons/apply
func (h *CouponHandler) Apply(c *gin.Context) {
	var req model.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), req.Code, req.Amount)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Coupon applied", quote)
}

func (h *CouponHandler) handleServiceError(c *gin.Context, err error) {
	var couponErr *model.CouponError
	if errors.As(err, &couponErr) {
		status := http.StatusBadRequest
		switch couponErr.Code {
		case model.ErrCodeCouponNotFound:
			status = http.StatusNotFound
		case model.ErrCodeCouponExists:
			status = http.StatusConflict
		}
		response.Error(c, status, couponErr.Code, couponErr.Message, nil)
		return
	}

	logger.Error("coupon request failed", err)
	response.InternalServerError(c)
}
