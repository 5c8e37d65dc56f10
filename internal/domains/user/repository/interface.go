package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/user/model"
)

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context, req model.ListUsersRequest) ([]model.User, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error
	// UpdateProfile returns ErrEmailTaken when the email belongs to someone else.
	UpdateProfile(ctx context.Context, id uuid.UUID, req model.UpdateProfileRequest) (*model.User, error)
	// Delete removes the user with their cart, wallet and addresses.
	// Returns ErrUserHasOrders when orders still reference the user.
	Delete(ctx context.Context, id uuid.UUID) error
}
