package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/catalog/repository"
	"storefront-backend/internal/infrastructure/storage"
	"storefront-backend/pkg/logger"
)

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	images     ImageStore
	processor  ImageProcessor
}

// NewProductService wires the product use cases. images may be nil when
// object storage is not configured; uploads then fail with ErrInvalidImage.
func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	images ImageStore,
	processor ImageProcessor,
) ProductService {
	return &productService{
		products:   products,
		categories: categories,
		images:     images,
		processor:  processor,
	}
}

// =====================================================
// CREATE / UPDATE
// =====================================================

func (s *productService) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	category, err := s.resolveCategory(ctx, req)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		ID:       uuid.New(),
		IsActive: true,
	}
	applyRequest(p, req, category)

	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": p.ID,
		"category":   p.CategoryName,
		"stock":      p.TotalStock(),
	})
	return p, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req model.UpdateProductRequest) (*model.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, mapProductErr(err)
	}

	category, err := s.resolveCategory(ctx, req)
	if err != nil {
		return nil, err
	}
	applyRequest(p, req, category)

	// An offer cannot stay enabled once its price is removed.
	if !p.OfferPrice.Valid {
		p.OfferStatus = false
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, mapProductErr(err)
	}
	return p, nil
}

func (s *productService) resolveCategory(ctx context.Context, req model.CreateProductRequest) (*model.Category, error) {
	if !req.StockMatches() {
		return nil, model.NewCatalogError(model.ErrCodeStockMismatch, "Sum of size stock must equal stock quantity", model.ErrStockMismatch)
	}

	category, err := s.categories.GetByName(ctx, req.CategoryName)
	if errors.Is(err, model.ErrCategoryNotFound) {
		return nil, model.NewCatalogError(model.ErrCodeCategoryNotFound, "Category not found", err)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

func applyRequest(p *model.Product, req model.CreateProductRequest, category *model.Category) {
	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.CategoryName = category.Name
	p.BrandName = req.BrandName
	p.SalePrice = req.SalePrice
	p.OfferPrice = decimal.NullDecimal{}
	if req.OfferPrice != nil {
		p.OfferPrice = decimal.NewNullDecimal(*req.OfferPrice)
	}

	p.Sizes = make([]model.ProductSize, 0, len(req.Sizes))
	for _, sz := range req.Sizes {
		p.Sizes = append(p.Sizes, model.ProductSize{
			Name:  strings.ToUpper(strings.TrimSpace(sz.Name)),
			Stock: sz.Stock,
		})
	}
}

// =====================================================
// READ
// =====================================================

func (s *productService) GetPricedProduct(ctx context.Context, id uuid.UUID) (*model.PricedProduct, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, mapProductErr(err)
	}

	category, err := s.categories.GetByName(ctx, p.CategoryName)
	if err != nil && !errors.Is(err, model.ErrCategoryNotFound) {
		return nil, fmt.Errorf("get category: %w", err)
	}

	return model.NewPricedProduct(p, category), nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductResponse, error) {
	pp, err := s.GetPricedProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.NewProductResponse(pp), nil
}

// =====================================================
// TOGGLES
// =====================================================

func (s *productService) ToggleStatus(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, mapProductErr(err)
	}

	p.IsActive = !p.IsActive
	if err := s.products.SetActive(ctx, id, p.IsActive); err != nil {
		return nil, mapProductErr(err)
	}
	return p, nil
}

func (s *productService) ToggleOffer(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, mapProductErr(err)
	}

	if !p.OfferStatus && !p.OfferPrice.Valid {
		return nil, model.NewCatalogError(model.ErrCodeOfferPriceMissing, "Set an offer price before enabling the offer", model.ErrOfferPriceMissing)
	}

	p.OfferStatus = !p.OfferStatus
	if err := s.products.SetOfferStatus(ctx, id, p.OfferStatus); err != nil {
		return nil, mapProductErr(err)
	}
	return p, nil
}

// =====================================================
// REVIEWS & IMAGES
// =====================================================

func (s *productService) AddReview(ctx context.Context, productID, userID uuid.UUID, req model.AddReviewRequest) (*model.Review, error) {
	review := &model.Review{
		ID:      uuid.New(),
		UserID:  userID,
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	}

	if err := s.products.AddReview(ctx, productID, review); err != nil {
		return nil, mapProductErr(err)
	}
	return review, nil
}

func (s *productService) UploadImage(ctx context.Context, productID uuid.UUID, data []byte) (*model.ProductImage, error) {
	if s.images == nil {
		return nil, model.NewCatalogError(model.ErrCodeInvalidImage, "Image storage is not configured", model.ErrInvalidImage)
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, mapProductErr(err)
	}

	if err := s.processor.ValidateImage(data); err != nil {
		return nil, model.NewCatalogError(model.ErrCodeInvalidImage, err.Error(), model.ErrInvalidImage)
	}
	variants, err := s.processor.ProcessImage(data)
	if err != nil {
		return nil, model.NewCatalogError(model.ErrCodeInvalidImage, err.Error(), model.ErrInvalidImage)
	}

	prefix := fmt.Sprintf("products/%s/%s/", productID, uuid.NewString())
	urls := make(map[string]string, len(variants))
	for name, payload := range variants {
		url, err := s.images.Upload(ctx, prefix+name+".jpg", payload, "image/jpeg")
		if err != nil {
			s.cleanupUpload(ctx, prefix)
			return nil, fmt.Errorf("upload %s variant: %w", name, err)
		}
		urls[name] = url
	}

	image := model.ProductImage{
		LargeURL:     urls[storage.VariantLarge],
		MediumURL:    urls[storage.VariantMedium],
		ThumbnailURL: urls[storage.VariantThumbnail],
	}
	if err := s.products.AddImage(ctx, productID, image); err != nil {
		s.cleanupUpload(ctx, prefix)
		return nil, err
	}

	return &image, nil
}

func (s *productService) cleanupUpload(ctx context.Context, prefix string) {
	if err := s.images.DeleteByPrefix(ctx, prefix); err != nil {
		logger.Error("Failed to clean up partial image upload", err)
	}
}

func mapProductErr(err error) error {
	if errors.Is(err, model.ErrProductNotFound) {
		return model.NewCatalogError(model.ErrCodeProductNotFound, "Product not found", err)
	}
	return err
}
