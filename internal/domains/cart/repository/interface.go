package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/cart/model"
)

type Repository interface {
	// GetByUserID returns ErrCartNotFound when the user never added an item.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// SetItemQuantity inserts the line or overwrites its quantity.
	SetItemQuantity(ctx context.Context, cartID, productID uuid.UUID, size string, qty int) error
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID, size string) error
	UpdateTotal(ctx context.Context, cartID uuid.UUID, total decimal.Decimal) error

	// ClearWithTx empties the user's cart. A missing cart is not an error.
	ClearWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error
}
