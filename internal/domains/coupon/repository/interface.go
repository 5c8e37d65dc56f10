package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/coupon/model"
)

type Repository interface {
	Create(ctx context.Context, c *model.Coupon) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
	// ListAvailable returns visible coupons whose window contains now.
	ListAvailable(ctx context.Context, now time.Time) ([]model.Coupon, error)
	SetVisibility(ctx context.Context, id uuid.UUID, visible bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	// HideExpired hides visible coupons whose window closed before now.
	HideExpired(ctx context.Context, now time.Time) (int64, error)
}
