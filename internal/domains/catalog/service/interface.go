package service

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/catalog/model"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req model.UpdateProductRequest) (*model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductResponse, error)
	ToggleStatus(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ToggleOffer(ctx context.Context, id uuid.UUID) (*model.Product, error)
	AddReview(ctx context.Context, productID, userID uuid.UUID, req model.AddReviewRequest) (*model.Review, error)
	UploadImage(ctx context.Context, productID uuid.UUID, data []byte) (*model.ProductImage, error)

	// GetPricedProduct resolves the product's category and current unit price.
	// Cart and checkout price through this.
	GetPricedProduct(ctx context.Context, id uuid.UUID) (*model.PricedProduct, error)
}

type CategoryService interface {
	CreateCategory(ctx context.Context, req model.CategoryRequest) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListVisibleCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req model.CategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	// ToggleStatus switches whether the category discount applies.
	ToggleStatus(ctx context.Context, id uuid.UUID) (*model.Category, error)
}

// ImageStore persists processed image variants.
type ImageStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type ImageProcessor interface {
	ValidateImage(data []byte) error
	ProcessImage(data []byte) (map[string][]byte, error)
}
