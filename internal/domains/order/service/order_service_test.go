package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	addressModel "storefront-backend/internal/domains/address/model"
	cartModel "storefront-backend/internal/domains/cart/model"
	catalogModel "storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/order/model"
	userModel "storefront-backend/internal/domains/user/model"
	walletModel "storefront-backend/internal/domains/wallet/model"
	"storefront-backend/internal/shared"
)

type fixture struct {
	store     *memStore
	events    *fakeEvents
	tasks     *fakeTasks
	verifier  *fakeVerifier
	addresses *fakeAddresses
	svc       OrderService

	userID uuid.UUID
	shirt  uuid.UUID
	jeans  uuid.UUID
}

func newFixture() *fixture {
	st := newMemStore()
	f := &fixture{
		store:     st,
		events:    &fakeEvents{},
		tasks:     &fakeTasks{},
		verifier:  &fakeVerifier{valid: true},
		addresses: &fakeAddresses{entries: map[uuid.UUID]*addressModel.Address{}},
		userID:    uuid.New(),
		shirt:     uuid.New(),
		jeans:     uuid.New(),
	}

	st.users[f.userID] = &userModel.User{ID: f.userID, Email: "buyer@example.com", IsActive: true}
	st.products[f.shirt] = &catalogModel.Product{
		ID: f.shirt, Name: "Linen Shirt", SalePrice: decimal.NewFromInt(500), IsActive: true,
		Sizes: []catalogModel.ProductSize{{Name: "M", Stock: 5}, {Name: "L", Stock: 1}},
	}
	st.products[f.jeans] = &catalogModel.Product{
		ID: f.jeans, Name: "Slim Jeans", SalePrice: decimal.NewFromInt(800), IsActive: true,
		Sizes: []catalogModel.ProductSize{{Name: "32", Stock: 2}},
	}
	st.carts[f.userID] = &cartModel.Cart{
		ID:          uuid.New(),
		UserID:      f.userID,
		Items:       []cartModel.Item{{ProductID: f.shirt, Size: "M", Quantity: 2}},
		TotalAmount: decimal.NewFromInt(1000),
	}

	f.svc = NewOrderService(Dependencies{
		Orders:    st,
		Tx:        &snapshotTx{store: st},
		Catalog:   st,
		Stock:     st,
		Wallets:   st,
		Carts:     st,
		Users:     st,
		Addresses: f.addresses,
		Coupons:   &fakeCoupons{percent: map[string]int64{"SAVE10": 10}},
		Payments:  f.verifier,
		Events:    f.events,
		Tasks:     f.tasks,
		CODLimit:  decimal.NewFromInt(1000),
	})
	return f
}

func testAddress() model.Address {
	return model.Address{
		Name: "Asha Rao", HouseNo: "12B", Street: "MG Road", Town: "Indiranagar",
		City: "Bengaluru", State: "KA", Pincode: "560038", Phone: "9876543210",
	}
}

func (f *fixture) request(method string, total int64, lines ...model.LineInput) model.PlaceOrderRequest {
	return model.PlaceOrderRequest{
		Address:       testAddress(),
		Products:      lines,
		PaymentMethod: method,
		TotalAmount:   decimal.NewFromInt(total),
	}
}

func (f *fixture) shirts(size string, qty int) model.LineInput {
	return model.LineInput{ProductID: f.shirt, Size: size, Quantity: qty}
}

func (f *fixture) place(t *testing.T, method string, total int64, lines ...model.LineInput) *model.Order {
	t.Helper()
	o, err := f.svc.PlaceOrder(context.Background(), f.userID, f.request(method, total, lines...))
	require.NoError(t, err)
	return o
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func assertOrderCode(t *testing.T, err error, code string) {
	t.Helper()
	var oe *model.OrderError
	require.True(t, errors.As(err, &oe), "expected OrderError, got %v", err)
	assert.Equal(t, code, oe.Code)
}

// =====================================================
// PLACEMENT
// =====================================================

func TestPlaceOrder_WalletPayment(t *testing.T) {
	f := newFixture()
	f.store.wallets[f.userID] = decimal.NewFromInt(2000)

	o := f.place(t, model.PaymentMethodWallet, 1000, f.shirts("m", 2))

	assert.Equal(t, model.PaymentStatusCompleted, o.PaymentStatus)
	assert.Equal(t, model.OrderStatusProcessing, o.OrderStatus)
	assertAmount(t, "1000", o.TotalAmount)
	require.Len(t, o.Lines, 1)
	assert.Equal(t, "M", o.Lines[0].Size)
	assert.Equal(t, model.LineStatusPending, o.Lines[0].Status)
	assertAmount(t, "500", o.Lines[0].UnitPrice)

	assertAmount(t, "1000", f.store.wallets[f.userID])
	require.Len(t, f.store.ledger, 1)
	assert.Equal(t, walletModel.TxDebit, f.store.ledger[0].Type)
	assert.Equal(t, 3, f.store.stock(f.shirt, "M"))
	assert.Empty(t, f.store.carts[f.userID].Items)
	assert.Contains(t, f.store.orders, o.ID)

	assert.Equal(t, []string{model.EventOrderPlaced}, f.events.types())
	assert.Equal(t, []string{o.ID.String()}, f.events.keys)
	require.Len(t, f.tasks.tasks, 1)
	assert.Equal(t, shared.TypeSendOrderConfirmation, f.tasks.tasks[0].Type())
}

func TestPlaceOrder_SnapshotsAddressBookEntry(t *testing.T) {
	f := newFixture()
	saved := &addressModel.Address{
		ID: uuid.New(), UserID: f.userID, Name: "Office", HouseNo: "4F", Street: "Residency Rd",
		City: "Bengaluru", State: "KA", Pincode: "560025", Phone: "9000000001",
	}
	f.addresses.entries[saved.ID] = saved

	req := f.request(model.PaymentMethodCOD, 500, f.shirts("M", 1))
	req.AddressID = &saved.ID
	o, err := f.svc.PlaceOrder(context.Background(), f.userID, req)
	require.NoError(t, err)

	assert.Equal(t, "Office", o.Address.Name)
	assert.Equal(t, "560025", o.Address.Pincode)

	// later edits to the book do not reach the order
	saved.Name = "Renamed"
	assert.Equal(t, "Office", f.store.orders[o.ID].Address.Name)
}

func TestPlaceOrder_ForeignAddressRejected(t *testing.T) {
	f := newFixture()
	other := &addressModel.Address{ID: uuid.New(), UserID: uuid.New(), Name: "Not mine"}
	f.addresses.entries[other.ID] = other

	req := f.request(model.PaymentMethodCOD, 500, f.shirts("M", 1))
	req.AddressID = &other.ID
	_, err := f.svc.PlaceOrder(context.Background(), f.userID, req)

	assertOrderCode(t, err, model.ErrCodeAddressNotFound)
	assert.Empty(t, f.store.orders)
	assert.Equal(t, 5, f.store.stock(f.shirt, "M"))
}

func TestPlaceOrder_PaymentStatusByMethod(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{model.PaymentMethodCOD, model.PaymentStatusPending},
		{model.PaymentMethodRazorPay, model.PaymentStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			f := newFixture()
			o := f.place(t, tt.method, 500, f.shirts("M", 1))
			assert.Equal(t, tt.want, o.PaymentStatus)
			assert.Empty(t, f.store.ledger)
		})
	}
}

func TestPlaceOrder_CODLimitHasNoSideEffects(t *testing.T) {
	f := newFixture()

	_, err := f.svc.PlaceOrder(context.Background(), f.userID,
		f.request(model.PaymentMethodCOD, 1200, f.shirts("M", 2), model.LineInput{ProductID: f.jeans, Size: "32", Quantity: 1}))

	assertOrderCode(t, err, model.ErrCodeCODLimitExceeded)
	assert.Empty(t, f.store.orders)
	assert.Equal(t, 5, f.store.stock(f.shirt, "M"))
	assert.Len(t, f.store.carts[f.userID].Items, 1)
	assert.Empty(t, f.events.events)
}

func TestPlaceOrder_InsufficientFunds(t *testing.T) {
	tests := []struct {
		name      string
		hasWallet bool
		balance   int64
	}{
		{"low balance", true, 400},
		{"no wallet", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.hasWallet {
				f.store.wallets[f.userID] = decimal.NewFromInt(tt.balance)
			}

			_, err := f.svc.PlaceOrder(context.Background(), f.userID,
				f.request(model.PaymentMethodWallet, 1000, f.shirts("M", 2)))

			assertOrderCode(t, err, model.ErrCodeInsufficientFunds)
			assert.Empty(t, f.store.orders)
			assert.Equal(t, 5, f.store.stock(f.shirt, "M"))
			assert.Empty(t, f.store.ledger)
			assert.Empty(t, f.tasks.tasks)
		})
	}
}

func TestPlaceOrder_InsufficientStockRollsBackEverything(t *testing.T) {
	f := newFixture()
	f.store.wallets[f.userID] = decimal.NewFromInt(5000)

	_, err := f.svc.PlaceOrder(context.Background(), f.userID, f.request(model.PaymentMethodWallet, 3600,
		f.shirts("M", 2),
		model.LineInput{ProductID: f.jeans, Size: "32", Quantity: 2},
		f.shirts("L", 2),
	))

	assertOrderCode(t, err, model.ErrCodeInsufficientStock)
	assertAmount(t, "5000", f.store.wallets[f.userID])
	assert.Empty(t, f.store.ledger)
	assert.Equal(t, 5, f.store.stock(f.shirt, "M"))
	assert.Equal(t, 2, f.store.stock(f.jeans, "32"))
	assert.Equal(t, 1, f.store.stock(f.shirt, "L"))
	assert.Empty(t, f.store.orders)
	assert.Len(t, f.store.carts[f.userID].Items, 1)
	assert.Empty(t, f.events.events)
}

func TestPlaceOrder_RejectsStaleTotal(t *testing.T) {
	f := newFixture()

	_, err := f.svc.PlaceOrder(context.Background(), f.userID,
		f.request(model.PaymentMethodCOD, 900, f.shirts("M", 2)))

	assertOrderCode(t, err, model.ErrCodePriceChanged)
	assert.Empty(t, f.store.orders)
}

func TestPlaceOrder_AppliesCoupon(t *testing.T) {
	f := newFixture()
	req := f.request(model.PaymentMethodCOD, 900, f.shirts("M", 2))
	req.PromoCode = "save10"

	o, err := f.svc.PlaceOrder(context.Background(), f.userID, req)

	require.NoError(t, err)
	assertAmount(t, "900", o.TotalAmount)
	require.True(t, o.DiscountedAmount.Valid)
	assertAmount(t, "100", o.DiscountedAmount.Decimal)
	require.NotNil(t, o.CouponCode)
	assert.Equal(t, "SAVE10", *o.CouponCode)
}

func TestPlaceOrder_UnknownCoupon(t *testing.T) {
	f := newFixture()
	req := f.request(model.PaymentMethodCOD, 1000, f.shirts("M", 2))
	req.PromoCode = "NOPE"

	_, err := f.svc.PlaceOrder(context.Background(), f.userID, req)

	assertOrderCode(t, err, model.ErrCodeInvalidCoupon)
}

func TestPlaceOrder_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture) (uuid.UUID, model.LineInput)
		code  string
	}{
		{
			name: "unknown user",
			setup: func(f *fixture) (uuid.UUID, model.LineInput) {
				return uuid.New(), f.shirts("M", 1)
			},
			code: model.ErrCodeUserNotFound,
		},
		{
			name: "blocked user",
			setup: func(f *fixture) (uuid.UUID, model.LineInput) {
				f.store.users[f.userID].IsActive = false
				return f.userID, f.shirts("M", 1)
			},
			code: model.ErrCodeUserNotFound,
		},
		{
			name: "unknown product",
			setup: func(f *fixture) (uuid.UUID, model.LineInput) {
				return f.userID, model.LineInput{ProductID: uuid.New(), Size: "M", Quantity: 1}
			},
			code: model.ErrCodeProductNotFound,
		},
		{
			name: "inactive product",
			setup: func(f *fixture) (uuid.UUID, model.LineInput) {
				f.store.products[f.shirt].IsActive = false
				return f.userID, f.shirts("M", 1)
			},
			code: model.ErrCodeProductUnavailable,
		},
		{
			name: "unknown size",
			setup: func(f *fixture) (uuid.UUID, model.LineInput) {
				return f.userID, f.shirts("XXL", 1)
			},
			code: model.ErrCodeSizeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			userID, line := tt.setup(f)

			_, err := f.svc.PlaceOrder(context.Background(), userID, f.request(model.PaymentMethodCOD, 500, line))

			assertOrderCode(t, err, tt.code)
			assert.Empty(t, f.store.orders)
		})
	}
}

func TestPlaceOrder_EventFailureDoesNotFailOrder(t *testing.T) {
	f := newFixture()
	f.events.err = errBrokerDown
	f.tasks.err = errBrokerDown

	o := f.place(t, model.PaymentMethodCOD, 500, f.shirts("M", 1))

	assert.Contains(t, f.store.orders, o.ID)
	assert.Equal(t, 4, f.store.stock(f.shirt, "M"))
}

// =====================================================
// CART CHECKOUT
// =====================================================

func TestCheckoutCart_UsesCartItems(t *testing.T) {
	f := newFixture()
	req := model.CheckoutRequest{PlaceOrderRequest: f.request(model.PaymentMethodCOD, 1000)}

	o, err := f.svc.CheckoutCart(context.Background(), f.userID, req)

	require.NoError(t, err)
	require.Len(t, o.Lines, 1)
	assert.Equal(t, f.shirt, o.Lines[0].ProductID)
	assert.Equal(t, 2, o.Lines[0].Quantity)
	assert.Equal(t, 3, f.store.stock(f.shirt, "M"))
	assert.Empty(t, f.store.carts[f.userID].Items)
}

func TestCheckoutCart_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(f *fixture)
		method string
		code   string
	}{
		{
			name:   "no cart",
			setup:  func(f *fixture) { delete(f.store.carts, f.userID) },
			method: model.PaymentMethodCOD,
			code:   model.ErrCodeCartNotFound,
		},
		{
			name:   "empty cart",
			setup:  func(f *fixture) { f.store.carts[f.userID].Items = nil },
			method: model.PaymentMethodCOD,
			code:   model.ErrCodeCartEmpty,
		},
		{
			name:   "bad razorpay signature",
			setup:  func(f *fixture) { f.verifier.valid = false },
			method: model.PaymentMethodRazorPay,
			code:   model.ErrCodePaymentVerification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)
			req := model.CheckoutRequest{PlaceOrderRequest: f.request(tt.method, 1000)}
			req.RazorpayOrderID = "order_1"
			req.RazorpayPaymentID = "pay_1"
			req.RazorpaySignature = "sig"

			_, err := f.svc.CheckoutCart(context.Background(), f.userID, req)

			assertOrderCode(t, err, tt.code)
			assert.Empty(t, f.store.orders)
			assert.Equal(t, 5, f.store.stock(f.shirt, "M"))
		})
	}
}

func TestCheckoutCart_RazorPayStoresPaymentRef(t *testing.T) {
	f := newFixture()
	req := model.CheckoutRequest{PlaceOrderRequest: f.request(model.PaymentMethodRazorPay, 1000)}
	req.RazorpayOrderID = "order_1"
	req.RazorpayPaymentID = "pay_1"
	req.RazorpaySignature = "sig"

	o, err := f.svc.CheckoutCart(context.Background(), f.userID, req)

	require.NoError(t, err)
	require.NotNil(t, o.PaymentRef)
	assert.Equal(t, "pay_1", *o.PaymentRef)
	assert.Equal(t, model.PaymentStatusCompleted, o.PaymentStatus)
}

// =====================================================
// CANCELLATION
// =====================================================

func TestCancelLine_RestoresStockOnce(t *testing.T) {
	f := newFixture()
	o := f.place(t, model.PaymentMethodCOD, 1000, f.shirts("M", 2))
	ctx := context.Background()
	req := model.CancelLineRequest{ProductID: f.shirt}

	cancelled, err := f.svc.CancelLine(ctx, f.userID, o.ID, req)

	require.NoError(t, err)
	assert.Equal(t, model.LineStatusCancelled, cancelled.Lines[0].Status)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.OrderStatus)
	assert.Equal(t, 5, f.store.stock(f.shirt, "M"))
	assert.Empty(t, f.store.ledger, "pending COD line is not refunded")

	_, err = f.svc.CancelLine(ctx, f.userID, o.ID, req)
	assertOrderCode(t, err, model.ErrCodeLineAlreadyCancelled)
	assert.Equal(t, 5, f.store.stock(f.shirt, "M"))

	assert.Equal(t, []string{model.EventOrderPlaced, model.EventLineCancelled}, f.events.types())
}

func TestCancelLine_PartialKeepsOrderOpen(t *testing.T) {
	f := newFixture()
	o := f.place(t, model.PaymentMethodCOD, 1000, f.shirts("M", 1), f.shirts("L", 1))

	got, err := f.svc.CancelLine(context.Background(), f.userID, o.ID,
		model.CancelLineRequest{ProductID: f.shirt, Size: "L"})

	require.NoError(t, err)
	assert.Equal(t, model.LineStatusPending, got.Lines[0].Status)
	assert.Equal(t, model.LineStatusCancelled, got.Lines[1].Status)
	assert.Equal(t, model.OrderStatusProcessing, got.OrderStatus)
	assert.Equal(t, 1, f.store.stock(f.shirt, "L"))
	assert.Equal(t, 4, f.store.stock(f.shirt, "M"))
}

func TestCancelLine_SecondLineOfSameProduct(t *testing.T) {
	f := newFixture()
	o := f.place(t, model.PaymentMethodCOD, 1000, f.shirts("M", 1), f.shirts("L", 1))
	ctx := context.Background()
	req := model.CancelLineRequest{ProductID: f.shirt}

	_, err := f.svc.CancelLine(ctx, f.userID, o.ID, req)
	require.NoError(t, err)
	got, err := f.svc.CancelLine(ctx, f.userID, o.ID, req)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusCancelled, got.OrderStatus)

	_, err = f.svc.CancelLine(ctx, f.userID, o.ID, req)
	assertOrderCode(t, err, model.ErrCodeLineAlreadyCancelled)
}

func TestCancelLine_Refunds(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		delivered  bool
		promo      string
		total      int64
		wantRefund string
	}{
		{name: "razorpay", method: model.PaymentMethodRazorPay, total: 1000, wantRefund: "1000"},
		{name: "razorpay with coupon", method: model.PaymentMethodRazorPay, promo: "SAVE10", total: 900, wantRefund: "1100"},
		{name: "cod delivered", method: model.PaymentMethodCOD, delivered: true, total: 1000, wantRefund: "1000"},
		{name: "cod pending", method: model.PaymentMethodCOD, total: 1000},
		{name: "wallet", method: model.PaymentMethodWallet, total: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.store.wallets[f.userID] = decimal.NewFromInt(1000)
			req := f.request(tt.method, tt.total, f.shirts("M", 2))
			req.PromoCode = tt.promo
			o, err := f.svc.PlaceOrder(context.Background(), f.userID, req)
			require.NoError(t, err)
			if tt.delivered {
				f.store.orders[o.ID].Lines[0].Status = model.LineStatusDelivered
			}
			before := f.store.wallets[f.userID]
			entries := len(f.store.ledger)

			_, err = f.svc.CancelLine(context.Background(), f.userID, o.ID, model.CancelLineRequest{ProductID: f.shirt})
			require.NoError(t, err)

			if tt.wantRefund == "" {
				assert.Len(t, f.store.ledger, entries)
				assertAmount(t, before.String(), f.store.wallets[f.userID])
				return
			}
			require.Len(t, f.store.ledger, entries+1)
			last := f.store.ledger[len(f.store.ledger)-1]
			assert.Equal(t, walletModel.TxRefund, last.Type)
			assertAmount(t, tt.wantRefund, last.Amount)
			assertAmount(t, before.Add(decimal.RequireFromString(tt.wantRefund)).String(), f.store.wallets[f.userID])
		})
	}
}

func TestCancelLine_RefundCreatesWallet(t *testing.T) {
	f := newFixture()
	o := f.place(t, model.PaymentMethodRazorPay, 500, f.shirts("M", 1))
	_, hadWallet := f.store.wallets[f.userID]
	require.False(t, hadWallet)

	_, err := f.svc.CancelLine(context.Background(), f.userID, o.ID, model.CancelLineRequest{ProductID: f.shirt})

	require.NoError(t, err)
	assertAmount(t, "500", f.store.wallets[f.userID])
}

func TestCancelLine_OwnershipAndLookup(t *testing.T) {
	f := newFixture()
	o := f.place(t, model.PaymentMethodCOD, 500, f.shirts("M", 1))
	ctx := context.Background()

	_, err := f.svc.CancelLine(ctx, uuid.New(), o.ID, model.CancelLineRequest{ProductID: f.shirt})
	assertOrderCode(t, err, model.ErrCodeOrderNotFound)

	_, err = f.svc.CancelLine(ctx, f.userID, uuid.New(), model.CancelLineRequest{ProductID: f.shirt})
	assertOrderCode(t, err, model.ErrCodeOrderNotFound)

	_, err = f.svc.CancelLine(ctx, f.userID, o.ID, model.CancelLineRequest{ProductID: f.jeans})
	assertOrderCode(t, err, model.ErrCodeLineNotFound)

	assert.Equal(t, 4, f.store.stock(f.shirt, "M"))
}

func TestAdminCancelLine(t *testing.T) {
	f := newFixture()
	o := f.place(t, model.PaymentMethodRazorPay, 500, f.shirts("M", 1))

	got, err := f.svc.AdminCancelLine(context.Background(), o.ID, model.CancelLineRequest{ProductID: f.shirt})

	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, got.OrderStatus)
	assert.Equal(t, 5, f.store.stock(f.shirt, "M"))
	assertAmount(t, "500", f.store.wallets[f.userID])
}

// =====================================================
// RETURNS
// =====================================================

func TestReturnLine(t *testing.T) {
	f := newFixture()
	o := f.place(t, model.PaymentMethodRazorPay, 1300, f.shirts("M", 1), model.LineInput{ProductID: f.jeans, Size: "32", Quantity: 1})
	ctx := context.Background()

	got, err := f.svc.ReturnLine(ctx, f.userID, o.ID, model.ReturnLineRequest{ProductID: f.shirt, Reason: "too small"})
	require.NoError(t, err)
	assert.Equal(t, model.LineStatusReturned, got.Lines[0].Status)
	require.NotNil(t, got.Lines[0].ReturnReason)
	assert.Equal(t, "too small", *got.Lines[0].ReturnReason)
	assert.Equal(t, model.OrderStatusProcessing, got.OrderStatus)

	got, err = f.svc.ReturnLine(ctx, f.userID, o.ID, model.ReturnLineRequest{ProductID: f.jeans, Reason: "wrong fit"})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusReturned, got.OrderStatus)

	_, err = f.svc.ReturnLine(ctx, f.userID, o.ID, model.ReturnLineRequest{ProductID: f.jeans, Reason: "again"})
	assertOrderCode(t, err, model.ErrCodeLineNotReturnable)

	// Returns do not touch stock or the wallet.
	assert.Equal(t, 4, f.store.stock(f.shirt, "M"))
	assert.Equal(t, 1, f.store.stock(f.jeans, "32"))
	assert.Empty(t, f.store.ledger)
}

func TestReturnLine_CancelledLine(t *testing.T) {
	f := newFixture()
	o := f.place(t, model.PaymentMethodCOD, 500, f.shirts("M", 1))
	ctx := context.Background()
	_, err := f.svc.CancelLine(ctx, f.userID, o.ID, model.CancelLineRequest{ProductID: f.shirt})
	require.NoError(t, err)

	_, err = f.svc.ReturnLine(ctx, f.userID, o.ID, model.ReturnLineRequest{ProductID: f.shirt, Reason: "changed mind"})

	assertOrderCode(t, err, model.ErrCodeLineNotReturnable)
	assert.Equal(t, model.OrderStatusCancelled, f.store.orders[o.ID].OrderStatus)
}

// =====================================================
// STATUS UPDATES
// =====================================================

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture()
	o := f.place(t, model.PaymentMethodCOD, 500, f.shirts("M", 1))
	ctx := context.Background()

	got, err := f.svc.UpdateOrderStatus(ctx, o.ID, model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, got.OrderStatus)
	assert.Equal(t, model.PaymentStatusPending, got.PaymentStatus)

	got, err = f.svc.UpdateOrderStatus(ctx, o.ID, model.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCompleted, got.PaymentStatus)
	assert.Equal(t, model.LineStatusPending, got.Lines[0].Status)

	_, err = f.svc.UpdateOrderStatus(ctx, o.ID, model.OrderStatusReturned)
	assertOrderCode(t, err, model.ErrCodeInvalidStatus)
	assert.Equal(t, model.OrderStatusDelivered, f.store.orders[o.ID].OrderStatus)

	_, err = f.svc.UpdateOrderStatus(ctx, uuid.New(), model.OrderStatusShipped)
	assertOrderCode(t, err, model.ErrCodeOrderNotFound)
}

func TestUpdatePaymentStatus(t *testing.T) {
	f := newFixture()
	o := f.place(t, model.PaymentMethodCOD, 500, f.shirts("M", 1))
	f.store.orders[o.ID].OrderStatus = model.OrderStatusShipped
	ctx := context.Background()

	got, err := f.svc.UpdatePaymentStatus(ctx, f.userID, model.UpdatePaymentStatusRequest{
		OrderID: o.ID, PaymentStatus: model.PaymentStatusFailed,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusFailed, got.PaymentStatus)
	assert.Equal(t, model.OrderStatusShipped, got.OrderStatus)

	got, err = f.svc.UpdatePaymentStatus(ctx, f.userID, model.UpdatePaymentStatusRequest{
		OrderID: o.ID, PaymentStatus: model.PaymentStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, got.OrderStatus)

	_, err = f.svc.UpdatePaymentStatus(ctx, uuid.New(), model.UpdatePaymentStatusRequest{
		OrderID: o.ID, PaymentStatus: model.PaymentStatusCompleted,
	})
	assertOrderCode(t, err, model.ErrCodeOrderNotFound)
}

// =====================================================
// READ
// =====================================================

func TestListOrders(t *testing.T) {
	f := newFixture()
	first := f.place(t, model.PaymentMethodCOD, 500, f.shirts("M", 1))
	second := f.place(t, model.PaymentMethodCOD, 500, f.shirts("M", 1))
	other := uuid.New()
	f.store.users[other] = &userModel.User{ID: other, IsActive: true}
	_, err := f.svc.PlaceOrder(context.Background(), other, f.request(model.PaymentMethodCOD, 500, f.shirts("M", 1)))
	require.NoError(t, err)
	_, err = f.svc.UpdateOrderStatus(context.Background(), first.ID, model.OrderStatusShipped)
	require.NoError(t, err)

	orders, total, err := f.svc.ListOrders(context.Background(), model.ListOrdersFilter{UserID: &f.userID})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID, "newest first")

	orders, total, err = f.svc.ListOrders(context.Background(), model.ListOrdersFilter{Status: model.OrderStatusShipped, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, first.ID, orders[0].ID)

	_, _, err = f.svc.ListOrders(context.Background(), model.ListOrdersFilter{Status: "Lost"})
	assertOrderCode(t, err, model.ErrCodeInvalidStatus)
}

func TestGetUserOrder(t *testing.T) {
	f := newFixture()
	o := f.place(t, model.PaymentMethodCOD, 500, f.shirts("M", 1))

	got, err := f.svc.GetUserOrder(context.Background(), f.userID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = f.svc.GetUserOrder(context.Background(), uuid.New(), o.ID)
	assertOrderCode(t, err, model.ErrCodeOrderNotFound)
}
