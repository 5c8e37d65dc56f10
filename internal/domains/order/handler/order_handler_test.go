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
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/shared/middleware"
)

// stubService answers every call with order or err.
type stubService struct {
	order    *model.Order
	err      error
	lastUser uuid.UUID
}

func (s *stubService) result(userID uuid.UUID) (*model.Order, error) {
	s.lastUser = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubService) PlaceOrder(_ context.Context, userID uuid.UUID, _ model.PlaceOrderRequest) (*model.Order, error) {
	return s.result(userID)
}

func (s *stubService) CheckoutCart(_ context.Context, userID uuid.UUID, _ model.CheckoutRequest) (*model.Order, error) {
	return s.result(userID)
}

func (s *stubService) CancelLine(_ context.Context, userID, _ uuid.UUID, _ model.CancelLineRequest) (*model.Order, error) {
	return s.result(userID)
}

func (s *stubService) AdminCancelLine(_ context.Context, _ uuid.UUID, _ model.CancelLineRequest) (*model.Order, error) {
	return s.result(uuid.Nil)
}

func (s *stubService) ReturnLine(_ context.Context, userID, _ uuid.UUID, _ model.ReturnLineRequest) (*model.Order, error) {
	return s.result(userID)
}

func (s *stubService) UpdatePaymentStatus(_ context.Context, userID uuid.UUID, _ model.UpdatePaymentStatusRequest) (*model.Order, error) {
	return s.result(userID)
}

func (s *stubService) UpdateOrderStatus(_ context.Context, _ uuid.UUID, _ string) (*model.Order, error) {
	return s.result(uuid.Nil)
}

func (s *stubService) GetUserOrder(_ context.Context, userID, _ uuid.UUID) (*model.Order, error) {
	return s.result(userID)
}

func (s *stubService) GetOrder(_ context.Context, _ uuid.UUID) (*model.Order, error) {
	return s.result(uuid.Nil)
}

func (s *stubService) ListOrders(_ context.Context, filter model.ListOrdersFilter) ([]model.Order, int, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return []model.Order{*s.order}, 1, nil
}

var caller = uuid.New()

func newRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewOrderHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, caller)
		c.Next()
	})
	r.POST("/user/place-order", h.PlaceOrder)
	r.PUT("/user/cancel-order/:userId/:orderId", h.CancelOrder)
	r.PUT("/admin/update-order-status/:orderId", h.AdminUpdateStatus)
	r.GET("/admin/orders", h.ListOrders)
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

func placeBody() map[string]interface{} {
	return map[string]interface{}{
		"address": map[string]string{
			"name": "Asha", "houseno": "1", "street": "Main", "town": "T", "city": "C",
			"state": "S", "pincode": "560001", "phone": "9876543210",
		},
		"products":      []map[string]interface{}{{"productId": uuid.New(), "size": "M", "quantity": 1}},
		"paymentMethod": model.PaymentMethodCOD,
		"totalAmount":   500,
	}
}

func TestPlaceOrder_Created(t *testing.T) {
	svc := &stubService{order: &model.Order{ID: uuid.New()}}

	w := send(newRouter(svc), http.MethodPost, "/user/place-order", placeBody())

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"order"`)
	assert.Equal(t, caller, svc.lastUser)
}

func TestPlaceOrder_ValidationFailure(t *testing.T) {
	body := placeBody()
	body["paymentMethod"] = "Cheque"

	w := send(newRouter(&stubService{}), http.MethodPost, "/user/place-order", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestPlaceOrder_ErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"cod limit", model.NewOrderError(model.ErrCodeCODLimitExceeded, "too much", nil), http.StatusBadRequest},
		{"user missing", model.NewOrderError(model.ErrCodeUserNotFound, "User not found", nil), http.StatusNotFound},
		{"unexpected", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := send(newRouter(&stubService{err: tt.err}), http.MethodPost, "/user/place-order", placeBody())
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCancelOrder_OtherUserForbidden(t *testing.T) {
	svc := &stubService{order: &model.Order{}}
	path := "/user/cancel-order/" + uuid.New().String() + "/" + uuid.New().String()

	w := send(newRouter(svc), http.MethodPut, path, map[string]interface{}{"productId": uuid.New()})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCancelOrder_BadOrderID(t *testing.T) {
	w := send(newRouter(&stubService{}), http.MethodPut,
		"/user/cancel-order/"+caller.String()+"/not-a-uuid", map[string]interface{}{"productId": uuid.New()})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	w := send(newRouter(&stubService{order: &model.Order{}}), http.MethodPut,
		"/admin/update-order-status/"+uuid.New().String(), map[string]string{"orderStatus": "Returned"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrders_Meta(t *testing.T) {
	w := send(newRouter(&stubService{order: &model.Order{ID: uuid.New()}}), http.MethodGet, "/admin/orders?page=1&limit=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}
