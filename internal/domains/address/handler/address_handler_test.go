package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"storefront-backend/internal/domains/address/model"
	"storefront-backend/internal/shared/middleware"
)

type stubService struct {
	err      error
	lastUser uuid.UUID
}

func (s *stubService) result(userID uuid.UUID) (*model.Address, error) {
	s.lastUser = userID
	if s.err != nil {
		return nil, s.err
	}
	return &model.Address{ID: uuid.New(), UserID: userID}, nil
}

func (s *stubService) Create(_ context.Context, userID uuid.UUID, _ model.AddressRequest) (*model.Address, error) {
	return s.result(userID)
}

func (s *stubService) List(_ context.Context, userID uuid.UUID) ([]model.Address, error) {
	a, err := s.result(userID)
	if err != nil {
		return nil, err
	}
	return []model.Address{*a}, nil
}

func (s *stubService) GetDefault(_ context.Context, userID uuid.UUID) (*model.Address, error) {
	return s.result(userID)
}

func (s *stubService) GetForUser(_ context.Context, userID, _ uuid.UUID) (*model.Address, error) {
	return s.result(userID)
}

func (s *stubService) Update(_ context.Context, userID, _ uuid.UUID, _ model.AddressRequest) (*model.Address, error) {
	return s.result(userID)
}

func (s *stubService) Delete(_ context.Context, userID, _ uuid.UUID) error {
	_, err := s.result(userID)
	return err
}

func (s *stubService) SetDefault(_ context.Context, userID, _ uuid.UUID) (*model.Address, error) {
	return s.result(userID)
}

var caller = uuid.New()

func newRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAddressHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, caller)
		c.Next()
	})
	r.POST("/user/add-address", h.AddAddress)
	r.GET("/user/get-addresses/:userId", h.ListAddresses)
	r.GET("/user/default-address/:id", h.GetDefault)
	r.DELETE("/user/delete-address/:addressId", h.DeleteAddress)
	r.PATCH("/user/set-default-address/:addressId", h.SetDefault)
	return r
}

func send(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func addressBody() map[string]interface{} {
	return map[string]interface{}{
		"name": "Asha", "phone": "9876543210", "pincode": "560001",
		"houseno": "12B", "city": "Bengaluru", "state": "KA",
	}
}

func TestAddAddress(t *testing.T) {
	svc := &stubService{}

	w := send(newRouter(svc), http.MethodPost, "/user/add-address", addressBody())

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, caller, svc.lastUser)
}

func TestAddAddress_MissingCity(t *testing.T) {
	body := addressBody()
	delete(body, "city")

	w := send(newRouter(&stubService{}), http.MethodPost, "/user/add-address", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestListAddresses_OtherUserForbidden(t *testing.T) {
	w := send(newRouter(&stubService{}), http.MethodGet, "/user/get-addresses/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddressErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		err    error
		want   int
	}{
		{"no default", http.MethodGet, "/user/default-address/" + caller.String(),
			model.NewAddressError(model.ErrCodeNoDefault, "Default address not found", nil), http.StatusNotFound},
		{"delete missing", http.MethodDelete, "/user/delete-address/" + uuid.NewString(),
			model.NewAddressError(model.ErrCodeAddressNotFound, "Address not found", nil), http.StatusNotFound},
		{"bad id", http.MethodPatch, "/user/set-default-address/nope", nil, http.StatusBadRequest},
		{"store down", http.MethodPatch, "/user/set-default-address/" + uuid.NewString(),
			errors.New("db down"), http.StatusInternalServerError},
		{"set default", http.MethodPatch, "/user/set-default-address/" + uuid.NewString(), nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := send(newRouter(&stubService{err: tt.err}), tt.method, tt.path, nil)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
