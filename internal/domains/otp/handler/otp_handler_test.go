package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"storefront-backend/internal/domains/otp/model"
)

type stubService struct {
	err error
}

func (s *stubService) Send(context.Context, string) error { return s.err }
func (s *stubService) Verify(context.Context, string, string) error { return s.err }

func newRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewOTPHandler(svc)
	r := gin.New()
	r.POST("/otp/send", h.Send)
	r.POST("/otp/verify", h.Verify)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOTPHandler(t *testing.T) {
	locked := model.NewOTPError(model.ErrCodeTooManyAttempts, "Too many attempts, try again later", model.ErrTooManyAttempts)
	invalid := model.NewOTPError(model.ErrCodeOTPInvalid, "Invalid OTP", model.ErrOTPInvalid)

	tests := []struct {
		name string
		path string
		body string
		err  error
		want int
	}{
		{"sent", "/otp/send", `{"email":"a@example.com"}`, nil, http.StatusOK},
		{"send while locked", "/otp/send", `{"email":"a@example.com"}`, locked, http.StatusTooManyRequests},
		{"send store down", "/otp/send", `{"email":"a@example.com"}`, errors.New("redis down"), http.StatusInternalServerError},
		{"bad email", "/otp/send", `{"email":"nope"}`, nil, http.StatusBadRequest},
		{"verified", "/otp/verify", `{"email":"a@example.com","otp":"123456"}`, nil, http.StatusOK},
		{"wrong code", "/otp/verify", `{"email":"a@example.com","otp":"123456"}`, invalid, http.StatusBadRequest},
		{"verify while locked", "/otp/verify", `{"email":"a@example.com","otp":"123456"}`, locked, http.StatusTooManyRequests},
		{"short code", "/otp/verify", `{"email":"a@example.com","otp":"123"}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(newRouter(&stubService{err: tt.err}), tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
