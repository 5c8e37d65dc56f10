package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/address/model"
	"storefront-backend/internal/domains/address/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

type AddressHandler struct {
	service service.Service
}

func NewAddressHandler(s service.Service) *AddressHandler {
	return &AddressHandler{service: s}
}

// AddAddress POST /user/add-address
func (h *AddressHandler) AddAddress(c *gin.Context) {
	userID, ok := middleware.ResolveUserID(c, "")
	if !ok {
		return
	}
	var req model.AddressRequest
	if !bindAddress(c, &req) {
		return
	}

	address, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Address added", address)
}

// ListAddresses GET /user/get-addresses/:userId
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	userID, ok := middleware.ResolveUserID(c, c.Param("userId"))
	if !ok {
		return
	}

	addresses, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", addresses)
}

// GetDefault GET /user/default-address/:id
func (h *AddressHandler) GetDefault(c *gin.Context) {
	userID, ok := middleware.ResolveUserID(c, c.Param("id"))
	if !ok {
		return
	}

	address, err := h.service.GetDefault(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", address)
}

// UpdateAddress PUT /user/edit-address/:addressId
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	userID, addressID, ok := callerAndAddress(c)
	if !ok {
		return
	}
	var req model.AddressRequest
	if !bindAddress(c, &req) {
		return
	}

	address, err := h.service.Update(c.Request.Context(), userID, addressID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Address updated", address)
}

// DeleteAddress DELETE /user/delete-address/:addressId
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	userID, addressID, ok := callerAndAddress(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, addressID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Address deleted", nil)
}

// SetDefault PATCH /user/set-default-address/:addressId
func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID, addressID, ok := callerAndAddress(c)
	if !ok {
		return
	}

	address, err := h.service.SetDefault(c.Request.Context(), userID, addressID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Default address updated", address)
}

// =====================================================
// HELPERS
// =====================================================

func callerAndAddress(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.ResolveUserID(c, "")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	addressID, err := uuid.Parse(c.Param("addressId"))
	if err != nil {
		response.BadRequest(c, "Invalid address ID", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, addressID, true
}

func bindAddress(c *gin.Context, req *model.AddressRequest) bool {
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

var addressStatus = map[string]int{
	model.ErrCodeAddressNotFound: http.StatusNotFound,
	model.ErrCodeNoDefault:       http.StatusNotFound,
	model.ErrCodeAddressLimit:    http.StatusBadRequest,
}

func (h *AddressHandler) handleServiceError(c *gin.Context, err error) {
	var addrErr *model.AddressError
	if errors.As(err, &addrErr) {
		status, ok := addressStatus[addrErr.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		response.Error(c, status, addrErr.Code, addrErr.Message, nil)
		return
	}

	logger.Error("address request failed", err)
	response.InternalServerError(c)
}
