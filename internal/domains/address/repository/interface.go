package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/address/model"
)

type Repository interface {
	// Create inserts a. When a.IsDefault is set the user's previous default
	// is cleared in the same transaction.
	Create(ctx context.Context, a *model.Address) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error)
	// ListByUser returns the default first, then newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
	GetDefault(ctx context.Context, userID uuid.UUID) (*model.Address, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	Update(ctx context.Context, a *model.Address) error
	// Delete removes the user's address. Deleting the default promotes the
	// newest remaining address.
	Delete(ctx context.Context, userID, id uuid.UUID) error
	SetDefault(ctx context.Context, userID, id uuid.UUID) error
}
