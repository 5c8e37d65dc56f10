package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/user/model"
	"storefront-backend/internal/domains/user/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

type UserHandler struct {
	service service.Service
}

func NewUserHandler(s service.Service) *UserHandler {
	return &UserHandler{service: s}
}

// ListUsers GET /admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req model.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters", err.Error())
		return
	}
	req.Page, req.Limit = utils.ParsePagination(c)

	users, total, err := h.service.ListUsers(c.Request.Context(), req)
	if err != nil {
		logger.Error("list users failed", err)
		response.InternalServerError(c)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, users, response.NewMeta(req.Page, req.Limit, total))
}

// UpdateStatus PATCH /admin/users/:id/status
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID", nil)
		return
	}

	var req model.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	if err := h.service.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
		h.handleError(c, "update user status failed", err)
		return
	}

	response.Success(c, http.StatusOK, "User status updated", gin.H{"id": id, "is_active": *req.IsActive})
}

// GetProfile GET /user/user-details/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.ResolveUserID(c, c.Param("id"))
	if !ok {
		return
	}

	u, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, "get profile failed", err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", u)
}

// UpdateProfile PUT /user/update-profile/:id
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.ResolveUserID(c, c.Param("id"))
	if !ok {
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, "update profile failed", err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", u)
}

// DeleteUser DELETE /admin/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID", nil)
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		h.handleError(c, "delete user failed", err)
		return
	}

	response.Success(c, http.StatusOK, "User deleted", gin.H{"id": id})
}

func (h *UserHandler) handleError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, model.ErrEmailTaken):
		response.Error(c, http.StatusConflict, "EMAIL_TAKEN", err.Error(), nil)
	case errors.Is(err, model.ErrUserHasOrders):
		response.Error(c, http.StatusConflict, "USER_HAS_ORDERS", "User has orders; block the account instead", nil)
	default:
		logger.Error(msg, err)
		response.InternalServerError(c)
	}
}
