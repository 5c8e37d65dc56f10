package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/order/model"
)

// =====================================================
// ORDER REPOSITORY INTERFACE
// =====================================================
type Repository interface {
	// CreateWithTx inserts the order and all of its lines.
	CreateWithTx(ctx context.Context, tx pgx.Tx, o *model.Order) error
	// GetForUpdateWithTx loads the order and locks its row until tx ends.
	GetForUpdateWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error)
	// UpdateWithTx persists order level statuses and every line's status and
	// return reason.
	UpdateWithTx(ctx context.Context, tx pgx.Tx, o *model.Order) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	// List returns orders newest first with the total count before paging.
	List(ctx context.Context, filter model.ListOrdersFilter) ([]model.Order, int, error)
}
