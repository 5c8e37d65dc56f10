package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/catalog/model"
)

// =====================================================
// PRODUCT REPOSITORY INTERFACE
// =====================================================
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SetOfferStatus(ctx context.Context, id uuid.UUID, status bool) error
	AddReview(ctx context.Context, productID uuid.UUID, review *model.Review) error
	AddImage(ctx context.Context, productID uuid.UUID, image model.ProductImage) error

	// Stock mutations are conditional updates so concurrent writers can
	// never drive a size below zero.
	DecrementStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, size string, qty int) error
	IncrementStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, size string, qty int) error
}

// =====================================================
// CATEGORY REPOSITORY INTERFACE
// =====================================================
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context, visibleOnly bool) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
