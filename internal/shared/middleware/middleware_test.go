package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthedRouter(m *jwt.Manager) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(m))
	r.GET("/me", func(c *gin.Context) {
		id, ok := UserIDFromContext(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	m := jwt.NewManager("test-secret", time.Minute)
	userID := uuid.New()
	token, err := m.GenerateAccessToken(userID.String(), "u@example.com", jwt.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	r := newAuthedRouter(m)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID.String(), w.Body.String())
			}
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	m := jwt.NewManager("test-secret", time.Minute)
	r := gin.New()
	admin := r.Group("/admin", AuthMiddleware(m), AdminMiddleware())
	admin.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	call := func(role string) int {
		token, err := m.GenerateAccessToken(uuid.NewString(), "", role)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusForbidden, call(jwt.RoleUser))
	assert.Equal(t, http.StatusNoContent, call(jwt.RoleAdmin))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextKeyRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(HeaderRequestID))
}

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	r := gin.New()
	r.Use(ClientIPMiddleware(), limiter.Middleware())
	r.POST("/otp", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/otp", nil)
		req.Header.Set("X-Forwarded-For", ip)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}

func TestIPRateLimiter_SweepsIdleVisitorsPeriodically(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(60, 1)
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.allow("10.0.0.1"))
	require.True(t, limiter.allow("10.0.0.2"))
	assert.Len(t, limiter.visitors, 2)

	// Idle long enough, but the next sweep is not due yet.
	limiter.lastSweep = now
	now = now.Add(limiter.sweepEvery / 2)
	limiter.visitors["10.0.0.1"].lastSeen = now.Add(-limiter.idleTTL - time.Second)
	limiter.allow("10.0.0.3")
	assert.Len(t, limiter.visitors, 3)

	now = now.Add(limiter.sweepEvery)
	limiter.allow("10.0.0.3")
	assert.NotContains(t, limiter.visitors, "10.0.0.1")
	assert.Contains(t, limiter.visitors, "10.0.0.2")
	assert.Contains(t, limiter.visitors, "10.0.0.3")
	assert.Equal(t, now, limiter.lastSweep)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}

func TestResolveUserID(t *testing.T) {
	caller := uuid.New()
	other := uuid.New()

	tests := []struct {
		name       string
		role       string
		requested  string
		wantStatus int
		wantID     uuid.UUID
	}{
		{"empty uses caller", jwt.RoleUser, "", http.StatusOK, caller},
		{"own id", jwt.RoleUser, caller.String(), http.StatusOK, caller},
		{"other user forbidden", jwt.RoleUser, other.String(), http.StatusForbidden, uuid.Nil},
		{"admin may act on others", jwt.RoleAdmin, other.String(), http.StatusOK, other},
		{"malformed id", jwt.RoleUser, "nope", http.StatusBadRequest, uuid.Nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/u", func(c *gin.Context) {
				c.Set(ContextKeyUserID, caller)
				c.Set(ContextKeyRole, tt.role)
				id, ok := ResolveUserID(c, c.Query("id"))
				if !ok {
					return
				}
				c.String(http.StatusOK, id.String())
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/u?id="+tt.requested, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantID.String(), w.Body.String())
			}
		})
	}
}
