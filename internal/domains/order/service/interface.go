package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	addressModel "storefront-backend/internal/domains/address/model"
	cartModel "storefront-backend/internal/domains/cart/model"
	catalogModel "storefront-backend/internal/domains/catalog/model"
	couponModel "storefront-backend/internal/domains/coupon/model"
	"storefront-backend/internal/domains/order/model"
	userModel "storefront-backend/internal/domains/user/model"
	walletModel "storefront-backend/internal/domains/wallet/model"
)

// =====================================================
// ORDER SERVICE INTERFACE
// =====================================================
type OrderService interface {
	// PlaceOrder prices the requested lines, takes payment, reserves stock and
	// clears the cart in one transaction.
	PlaceOrder(ctx context.Context, userID uuid.UUID, req model.PlaceOrderRequest) (*model.Order, error)
	// CheckoutCart is PlaceOrder driven by the user's cart. It also verifies
	// the Razorpay signature when paying with Razor Pay.
	CheckoutCart(ctx context.Context, userID uuid.UUID, req model.CheckoutRequest) (*model.Order, error)

	CancelLine(ctx context.Context, userID, orderID uuid.UUID, req model.CancelLineRequest) (*model.Order, error)
	AdminCancelLine(ctx context.Context, orderID uuid.UUID, req model.CancelLineRequest) (*model.Order, error)
	ReturnLine(ctx context.Context, userID, orderID uuid.UUID, req model.ReturnLineRequest) (*model.Order, error)

	UpdatePaymentStatus(ctx context.Context, userID uuid.UUID, req model.UpdatePaymentStatusRequest) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*model.Order, error)

	GetUserOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context, filter model.ListOrdersFilter) ([]model.Order, int, error)
}

// =====================================================
// COLLABORATORS
// =====================================================

type CatalogReader interface {
	GetPricedProduct(ctx context.Context, id uuid.UUID) (*catalogModel.PricedProduct, error)
}

type StockWriter interface {
	DecrementStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, size string, qty int) error
	IncrementStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, size string, qty int) error
}

type WalletLedger interface {
	DebitWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, amount decimal.Decimal, description string) (*walletModel.Wallet, error)
	CreditWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, txType string, amount decimal.Decimal, description string) (*walletModel.Wallet, error)
}

type CartStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*cartModel.Cart, error)
	ClearWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error
}

type UserReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*userModel.User, error)
}

type AddressBook interface {
	GetForUser(ctx context.Context, userID, id uuid.UUID) (*addressModel.Address, error)
}

type CouponQuoter interface {
	Quote(ctx context.Context, code string, amount decimal.Decimal) (*couponModel.Quote, error)
}

type SignatureVerifier interface {
	VerifySignature(orderRef, paymentRef, signature string) bool
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, event interface{}) error
}

type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
