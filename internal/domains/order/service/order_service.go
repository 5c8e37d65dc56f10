package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	addressModel "storefront-backend/internal/domains/address/model"
	cartModel "storefront-backend/internal/domains/cart/model"
	catalogModel "storefront-backend/internal/domains/catalog/model"
	couponModel "storefront-backend/internal/domains/coupon/model"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/repository"
	userModel "storefront-backend/internal/domains/user/model"
	walletModel "storefront-backend/internal/domains/wallet/model"
	"storefront-backend/internal/shared"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/database"
	"storefront-backend/pkg/logger"
)

// Dependencies groups everything the order workflow touches.
type Dependencies struct {
	Orders    repository.Repository
	Tx        database.TxManager
	Catalog   CatalogReader
	Stock     StockWriter
	Wallets   WalletLedger
	Carts     CartStore
	Users     UserReader
	Addresses AddressBook
	Coupons   CouponQuoter
	Payments  SignatureVerifier
	Events    EventPublisher
	Tasks     TaskEnqueuer
	// CODLimit is the largest total accepted for cash on delivery.
	CODLimit decimal.Decimal
}

type orderService struct {
	orders    repository.Repository
	tx        database.TxManager
	catalog   CatalogReader
	stock     StockWriter
	wallets   WalletLedger
	carts     CartStore
	users     UserReader
	addresses AddressBook
	coupons   CouponQuoter
	payments  SignatureVerifier
	events    EventPublisher
	tasks     TaskEnqueuer
	codLimit  decimal.Decimal
}

func NewOrderService(d Dependencies) OrderService {
	return &orderService{
		orders:    d.Orders,
		tx:        d.Tx,
		catalog:   d.Catalog,
		stock:     d.Stock,
		wallets:   d.Wallets,
		carts:     d.Carts,
		users:     d.Users,
		addresses: d.Addresses,
		coupons:   d.Coupons,
		payments:  d.Payments,
		events:    d.Events,
		tasks:     d.Tasks,
		codLimit:  d.CODLimit,
	}
}

// =====================================================
// PLACEMENT
// =====================================================

func (s *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req model.PlaceOrderRequest) (*model.Order, error) {
	if err := s.checkCODLimit(req.PaymentMethod, req.TotalAmount); err != nil {
		return nil, err
	}
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	o, err := s.buildOrder(ctx, userID, req, req.Products)
	if err != nil {
		return nil, err
	}
	if req.RazorpayPaymentID != "" {
		ref := req.RazorpayPaymentID
		o.PaymentRef = &ref
	}

	if err := s.commitOrder(ctx, o); err != nil {
		return nil, err
	}
	s.afterPlacement(ctx, o)
	return o, nil
}

func (s *orderService) CheckoutCart(ctx context.Context, userID uuid.UUID, req model.CheckoutRequest) (*model.Order, error) {
	if err := s.checkCODLimit(req.PaymentMethod, req.TotalAmount); err != nil {
		return nil, err
	}
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByUserID(ctx, userID)
	if errors.Is(err, cartModel.ErrCartNotFound) {
		return nil, model.NewOrderError(model.ErrCodeCartNotFound, "Cart not found", err)
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	inputs := req.Products
	if len(inputs) == 0 {
		if cart.IsEmpty() {
			return nil, model.NewOrderError(model.ErrCodeCartEmpty, "Cart is empty", model.ErrCartEmpty)
		}
		inputs = linesFromCart(cart)
	}

	if req.PaymentMethod == model.PaymentMethodRazorPay &&
		!s.payments.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return nil, model.NewOrderError(model.ErrCodePaymentVerification, "Payment verification failed", model.ErrPaymentVerification)
	}

	o, err := s.buildOrder(ctx, userID, req.PlaceOrderRequest, inputs)
	if err != nil {
		return nil, err
	}
	if req.PaymentMethod == model.PaymentMethodRazorPay {
		ref := req.RazorpayPaymentID
		o.PaymentRef = &ref
	}

	if err := s.commitOrder(ctx, o); err != nil {
		return nil, err
	}
	s.afterPlacement(ctx, o)
	return o, nil
}

func linesFromCart(cart *cartModel.Cart) []model.LineInput {
	inputs := make([]model.LineInput, 0, len(cart.Items))
	for _, it := range cart.Items {
		inputs = append(inputs, model.LineInput{ProductID: it.ProductID, Size: it.Size, Quantity: it.Quantity})
	}
	return inputs
}

func (s *orderService) checkCODLimit(method string, total decimal.Decimal) error {
	if method == model.PaymentMethodCOD && total.GreaterThan(s.codLimit) {
		return model.NewOrderError(model.ErrCodeCODLimitExceeded,
			fmt.Sprintf("Cash on delivery is not available for orders above %s", s.codLimit.StringFixed(2)),
			model.ErrCODLimitExceeded)
	}
	return nil
}

func (s *orderService) checkUser(ctx context.Context, userID uuid.UUID) error {
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, userModel.ErrUserNotFound) {
		return model.NewOrderError(model.ErrCodeUserNotFound, "User not found", err)
	}
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if !u.IsActive {
		return model.NewOrderError(model.ErrCodeUserNotFound, "User not found", userModel.ErrUserNotFound)
	}
	return nil
}

// buildOrder prices every line at the current catalog price and checks the
// result against the total the client saw.
func (s *orderService) buildOrder(ctx context.Context, userID uuid.UUID, req model.PlaceOrderRequest, inputs []model.LineInput) (*model.Order, error) {
	address, err := s.shippingAddress(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	o := &model.Order{
		ID:            uuid.New(),
		UserID:        userID,
		Address:       address,
		Lines:         make([]model.Line, 0, len(inputs)),
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: model.InitialPaymentStatus(req.PaymentMethod),
		OrderStatus:   model.OrderStatusProcessing,
	}

	subtotal := decimal.Zero
	for _, in := range inputs {
		line, err := s.priceLine(ctx, in)
		if err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, *line)
		subtotal = subtotal.Add(line.Price)
	}

	total := subtotal
	if code := strings.TrimSpace(req.PromoCode); code != "" {
		quote, err := s.coupons.Quote(ctx, code, subtotal)
		if err != nil {
			return nil, mapCouponErr(err)
		}
		total = quote.PayableAmount
		o.DiscountedAmount = decimal.NewNullDecimal(quote.Discount)
		o.CouponCode = &quote.Code
	}
	o.TotalAmount = total.Round(2)

	if !o.TotalAmount.Equal(req.TotalAmount.Round(2)) {
		return nil, model.NewOrderError(model.ErrCodePriceChanged,
			fmt.Sprintf("Prices have changed, the order total is now %s", o.TotalAmount.StringFixed(2)),
			model.ErrPriceChanged)
	}
	return o, nil
}

// shippingAddress snapshots the address book entry when one is referenced.
func (s *orderService) shippingAddress(ctx context.Context, userID uuid.UUID, req model.PlaceOrderRequest) (model.Address, error) {
	if req.AddressID == nil {
		return req.Address, nil
	}

	a, err := s.addresses.GetForUser(ctx, userID, *req.AddressID)
	if errors.Is(err, addressModel.ErrAddressNotFound) {
		return model.Address{}, model.NewOrderError(model.ErrCodeAddressNotFound, "Address not found", err)
	}
	if err != nil {
		return model.Address{}, fmt.Errorf("get address: %w", err)
	}

	return model.Address{
		Name:     a.Name,
		HouseNo:  a.HouseNo,
		Street:   a.Street,
		Landmark: a.Landmark,
		Town:     a.Town,
		City:     a.City,
		State:    a.State,
		Pincode:  a.Pincode,
		Phone:    a.Phone,
	}, nil
}

func (s *orderService) priceLine(ctx context.Context, in model.LineInput) (*model.Line, error) {
	priced, err := s.catalog.GetPricedProduct(ctx, in.ProductID)
	if err != nil {
		return nil, mapCatalogErr(err, in.ProductID.String(), in.Size)
	}
	p := priced.Product
	if !p.IsActive {
		return nil, model.NewOrderError(model.ErrCodeProductUnavailable,
			fmt.Sprintf("%s is not available", p.Name), catalogModel.ErrProductInactive)
	}

	size := strings.ToUpper(strings.TrimSpace(in.Size))
	if _, ok := p.Size(size); !ok {
		return nil, model.NewOrderError(model.ErrCodeSizeNotFound,
			fmt.Sprintf("Size %s is not available for %s", size, p.Name), catalogModel.ErrSizeNotFound)
	}

	line := &model.Line{
		ID:          uuid.New(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Size:        size,
		Quantity:    in.Quantity,
		UnitPrice:   priced.UnitPrice,
		Price:       priced.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
		Status:      model.LineStatusPending,
	}
	if len(p.Images) > 0 {
		line.ThumbnailURL = p.Images[0].ThumbnailURL
	}
	return line, nil
}

// commitOrder takes payment, stores the order, reserves stock and clears the
// cart. Any failure rolls all of it back.
func (s *orderService) commitOrder(ctx context.Context, o *model.Order) error {
	return s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if o.PaymentMethod == model.PaymentMethodWallet {
			_, err := s.wallets.DebitWithTx(ctx, tx, o.UserID, o.TotalAmount, "Payment for order "+o.ID.String())
			if errors.Is(err, walletModel.ErrInsufficientFunds) || errors.Is(err, walletModel.ErrWalletNotFound) {
				return model.NewOrderError(model.ErrCodeInsufficientFunds, "Not enough balance in wallet", err)
			}
			if err != nil {
				return fmt.Errorf("debit wallet: %w", err)
			}
		}

		if err := s.orders.CreateWithTx(ctx, tx, o); err != nil {
			return err
		}

		for _, l := range o.Lines {
			if err := s.stock.DecrementStockWithTx(ctx, tx, l.ProductID, l.Size, l.Quantity); err != nil {
				return mapCatalogErr(err, l.ProductName, l.Size)
			}
		}

		return s.carts.ClearWithTx(ctx, tx, o.UserID)
	})
}

func (s *orderService) afterPlacement(ctx context.Context, o *model.Order) {
	logger.Info("Order placed", map[string]interface{}{
		"order_id":       o.ID.String(),
		"user_id":        o.UserID.String(),
		"payment_method": o.PaymentMethod,
		"total":          o.TotalAmount.String(),
		"lines":          len(o.Lines),
	})
	s.publish(ctx, model.NewEvent(model.EventOrderPlaced, o))

	task, err := utils.NewTask(shared.TypeSendOrderConfirmation, shared.OrderConfirmationPayload{
		OrderID: o.ID.String(),
		UserID:  o.UserID.String(),
	}, asynq.Queue(shared.QueueDefault), asynq.MaxRetry(5))
	if err == nil {
		_, err = s.tasks.EnqueueContext(ctx, task)
	}
	if err != nil {
		logger.Error("enqueue order confirmation failed", err)
	}
}

func (s *orderService) publish(ctx context.Context, event model.Event) {
	if err := s.events.Publish(ctx, event.OrderID.String(), event); err != nil {
		logger.Error("publish order event failed", err)
	}
}

// =====================================================
// LINE CANCELLATION / RETURN
// =====================================================

func (s *orderService) CancelLine(ctx context.Context, userID, orderID uuid.UUID, req model.CancelLineRequest) (*model.Order, error) {
	return s.cancelLine(ctx, &userID, orderID, req)
}

func (s *orderService) AdminCancelLine(ctx context.Context, orderID uuid.UUID, req model.CancelLineRequest) (*model.Order, error) {
	return s.cancelLine(ctx, nil, orderID, req)
}

func (s *orderService) cancelLine(ctx context.Context, owner *uuid.UUID, orderID uuid.UUID, req model.CancelLineRequest) (*model.Order, error) {
	refund := decimal.Zero

	o, err := s.mutate(ctx, orderID, owner, func(tx pgx.Tx, o *model.Order) error {
		i := o.LineIndex(req.ProductID, req.Size)
		if i < 0 {
			return model.NewOrderError(model.ErrCodeLineNotFound, "Product not found in order", model.ErrLineNotFound)
		}

		prev, err := o.CancelLine(i)
		if err != nil {
			return model.NewOrderError(model.ErrCodeLineAlreadyCancelled, "Product already cancelled", err)
		}

		line := o.Lines[i]
		if err := s.stock.IncrementStockWithTx(ctx, tx, line.ProductID, line.Size, line.Quantity); err != nil {
			return mapCatalogErr(err, line.ProductName, line.Size)
		}

		if o.RefundDue(prev) {
			refund = o.RefundAmount(i)
			desc := fmt.Sprintf("Refund for %s (%s) in order %s", line.ProductName, line.Size, o.ID)
			if _, err := s.wallets.CreditWithTx(ctx, tx, o.UserID, walletModel.TxRefund, refund, desc); err != nil {
				return fmt.Errorf("credit refund: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order line cancelled", map[string]interface{}{
		"order_id":   o.ID.String(),
		"product_id": req.ProductID.String(),
		"by_admin":   owner == nil,
		"refund":     refund.String(),
	})

	event := model.NewEvent(model.EventLineCancelled, o)
	event.ProductID = &req.ProductID
	event.Refund = refund
	s.publish(ctx, event)
	return o, nil
}

func (s *orderService) ReturnLine(ctx context.Context, userID, orderID uuid.UUID, req model.ReturnLineRequest) (*model.Order, error) {
	o, err := s.mutate(ctx, orderID, &userID, func(_ pgx.Tx, o *model.Order) error {
		i := o.LineIndex(req.ProductID, req.Size)
		if i < 0 {
			return model.NewOrderError(model.ErrCodeLineNotFound, "Product not found in order", model.ErrLineNotFound)
		}
		if err := o.ReturnLine(i, strings.TrimSpace(req.Reason)); err != nil {
			return model.NewOrderError(model.ErrCodeLineNotReturnable, "Product cannot be returned", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order line returned", map[string]interface{}{
		"order_id":   o.ID.String(),
		"product_id": req.ProductID.String(),
	})

	event := model.NewEvent(model.EventLineReturned, o)
	event.ProductID = &req.ProductID
	s.publish(ctx, event)
	return o, nil
}

// =====================================================
// STATUS UPDATES
// =====================================================

func (s *orderService) UpdatePaymentStatus(ctx context.Context, userID uuid.UUID, req model.UpdatePaymentStatusRequest) (*model.Order, error) {
	o, err := s.mutate(ctx, req.OrderID, &userID, func(_ pgx.Tx, o *model.Order) error {
		if err := o.SetPaymentStatus(req.PaymentStatus); err != nil {
			return model.NewOrderError(model.ErrCodeInvalidStatus, "Invalid payment status", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, model.NewEvent(model.EventPaymentStatusChanged, o))
	return o, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*model.Order, error) {
	o, err := s.mutate(ctx, orderID, nil, func(_ pgx.Tx, o *model.Order) error {
		if err := o.SetOrderStatus(status); err != nil {
			return model.NewOrderError(model.ErrCodeInvalidStatus, "Invalid order status", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": o.ID.String(),
		"status":   o.OrderStatus,
	})
	s.publish(ctx, model.NewEvent(model.EventOrderStatusChanged, o))
	return o, nil
}

// mutate locks the order, applies fn and saves the result in one
// transaction. A non-nil owner must match the order's user.
func (s *orderService) mutate(ctx context.Context, orderID uuid.UUID, owner *uuid.UUID, fn func(pgx.Tx, *model.Order) error) (*model.Order, error) {
	var result *model.Order
	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		o, err := s.orders.GetForUpdateWithTx(ctx, tx, orderID)
		if err != nil {
			return mapOrderErr(err)
		}
		if owner != nil && o.UserID != *owner {
			return orderNotFound()
		}

		if err := fn(tx, o); err != nil {
			return err
		}
		if err := s.orders.UpdateWithTx(ctx, tx, o); err != nil {
			return mapOrderErr(err)
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// =====================================================
// READ
// =====================================================

func (s *orderService) GetUserOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, orderNotFound()
	}
	return o, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapOrderErr(err)
	}
	return o, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter model.ListOrdersFilter) ([]model.Order, int, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, model.NewOrderError(model.ErrCodeInvalidStatus, "Invalid order status filter", model.ErrInvalidStatus)
	}
	if filter.Page < 1 {
		filter.Page = utils.DefaultPage
	}
	if filter.Limit < 1 || filter.Limit > utils.MaxLimit {
		filter.Limit = utils.DefaultLimit
	}
	return s.orders.List(ctx, filter)
}

// =====================================================
// ERROR MAPPING
// =====================================================

func orderNotFound() error {
	return model.NewOrderError(model.ErrCodeOrderNotFound, "Order not found", model.ErrOrderNotFound)
}

func mapOrderErr(err error) error {
	if errors.Is(err, model.ErrOrderNotFound) {
		return orderNotFound()
	}
	return err
}

func mapCatalogErr(err error, product, size string) error {
	switch {
	case errors.Is(err, catalogModel.ErrProductNotFound):
		return model.NewOrderError(model.ErrCodeProductNotFound, "Product not found", err)
	case errors.Is(err, catalogModel.ErrSizeNotFound):
		return model.NewOrderError(model.ErrCodeSizeNotFound,
			fmt.Sprintf("Size %s is not available for %s", size, product), err)
	case errors.Is(err, catalogModel.ErrInsufficientStock):
		return model.NewOrderError(model.ErrCodeInsufficientStock,
			fmt.Sprintf("Not enough stock for %s in size %s", product, size), err)
	}
	return err
}

func mapCouponErr(err error) error {
	var ce *couponModel.CouponError
	if errors.As(err, &ce) {
		return model.NewOrderError(model.ErrCodeInvalidCoupon, ce.Message, err)
	}
	return fmt.Errorf("quote coupon: %w", err)
}
