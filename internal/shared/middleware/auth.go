package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/jwt"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
	ContextKeyEmail  = "email"
)

// TokenValidator is satisfied by *jwt.Manager.
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware verifies the bearer access token and stores the caller's
// id, role and email in the gin context.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := validator.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid user ID in token")
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeyEmail, claims.Email)
		c.Next()
	}
}

// UserIDFromContext returns the authenticated caller id.
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// IsAdmin reports whether the caller holds the admin role.
func IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextKeyRole) == jwt.RoleAdmin
}

// ResolveUserID picks the user a request acts on. An empty requested id
// means the caller; any other id must match the caller unless the caller is
// an admin. On failure the response is already written.
func ResolveUserID(c *gin.Context, requested string) (uuid.UUID, bool) {
	callerID, ok := UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return uuid.Nil, false
	}
	if requested == "" {
		return callerID, true
	}

	id, err := uuid.Parse(requested)
	if err != nil {
		response.BadRequest(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}
	if id != callerID && !IsAdmin(c) {
		response.Forbidden(c, "cannot act on another user's resources")
		return uuid.Nil, false
	}
	return id, true
}
