package job

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderModel "storefront-backend/internal/domains/order/model"
	userModel "storefront-backend/internal/domains/user/model"
	"storefront-backend/internal/infrastructure/email"
	"storefront-backend/internal/shared"
	"storefront-backend/internal/shared/utils"
)

type recordingMailer struct {
	otp   []email.OTPEmailData
	order []email.OrderConfirmationData
	err   error
}

func (m *recordingMailer) SendOTPEmail(_ context.Context, data email.OTPEmailData) error {
	m.otp = append(m.otp, data)
	return m.err
}

func (m *recordingMailer) SendOrderConfirmation(_ context.Context, data email.OrderConfirmationData) error {
	m.order = append(m.order, data)
	return m.err
}

type stubOrders map[uuid.UUID]*orderModel.Order

func (s stubOrders) GetByID(_ context.Context, id uuid.UUID) (*orderModel.Order, error) {
	if o, ok := s[id]; ok {
		return o, nil
	}
	return nil, orderModel.ErrOrderNotFound
}

type stubUsers map[uuid.UUID]*userModel.User

func (s stubUsers) FindByID(_ context.Context, id uuid.UUID) (*userModel.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, userModel.ErrUserNotFound
}

func TestOTPEmailHandler(t *testing.T) {
	mailer := &recordingMailer{}
	task, err := utils.NewTask(shared.TypeSendOTPEmail, shared.OTPEmailPayload{Email: "a@example.com", Code: "123456", ExpiresIn: "15 minutes"})
	require.NoError(t, err)

	require.NoError(t, NewOTPEmailHandler(mailer).ProcessTask(context.Background(), task))

	require.Len(t, mailer.otp, 1)
	assert.Equal(t, "123456", mailer.otp[0].Code)
}

func TestOTPEmailHandler_MalformedPayloadSkipsRetry(t *testing.T) {
	task := asynq.NewTask(shared.TypeSendOTPEmail, []byte("{"))

	err := NewOTPEmailHandler(&recordingMailer{}).ProcessTask(context.Background(), task)

	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestOrderConfirmationHandler(t *testing.T) {
	userID, orderID := uuid.New(), uuid.New()
	orders := stubOrders{orderID: {
		ID:            orderID,
		UserID:        userID,
		PaymentMethod: orderModel.PaymentMethodWallet,
		TotalAmount:   decimal.NewFromInt(1300),
		Lines: []orderModel.Line{
			{ProductName: "Linen Shirt", Size: "M", Quantity: 1, Price: decimal.NewFromInt(500)},
			{ProductName: "Jeans", Size: "32", Quantity: 1, Price: decimal.NewFromInt(800)},
		},
	}}
	users := stubUsers{userID: {ID: userID, Email: "a@example.com", FullName: "Asha"}}
	mailer := &recordingMailer{}

	task, err := utils.NewTask(shared.TypeSendOrderConfirmation, shared.OrderConfirmationPayload{OrderID: orderID.String(), UserID: userID.String()})
	require.NoError(t, err)

	require.NoError(t, NewOrderConfirmationHandler(mailer, orders, users).ProcessTask(context.Background(), task))

	require.Len(t, mailer.order, 1)
	got := mailer.order[0]
	assert.Equal(t, "a@example.com", got.Email)
	assert.Equal(t, "Asha", got.Name)
	assert.Len(t, got.Lines, 2)
	assert.True(t, decimal.NewFromInt(1300).Equal(got.Total))
}

func TestOrderConfirmationHandler_Failures(t *testing.T) {
	userID, orderID := uuid.New(), uuid.New()
	orders := stubOrders{orderID: {ID: orderID, UserID: userID}}
	users := stubUsers{userID: {ID: userID, Email: "a@example.com"}}

	tests := []struct {
		name      string
		payload   shared.OrderConfirmationPayload
		mailErr   error
		skipRetry bool
	}{
		{"bad order id", shared.OrderConfirmationPayload{OrderID: "x", UserID: userID.String()}, nil, true},
		{"missing order", shared.OrderConfirmationPayload{OrderID: uuid.NewString(), UserID: userID.String()}, nil, false},
		{"missing user", shared.OrderConfirmationPayload{OrderID: orderID.String(), UserID: uuid.NewString()}, nil, false},
		{"smtp down", shared.OrderConfirmationPayload{OrderID: orderID.String(), UserID: userID.String()}, errors.New("smtp down"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := utils.NewTask(shared.TypeSendOrderConfirmation, tt.payload)
			require.NoError(t, err)

			err = NewOrderConfirmationHandler(&recordingMailer{err: tt.mailErr}, orders, users).ProcessTask(context.Background(), task)

			require.Error(t, err)
			assert.Equal(t, tt.skipRetry, errors.Is(err, asynq.SkipRetry))
		})
	}
}
