package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// =====================================================
// VALIDATION HELPERS
// =====================================================

func positiveDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || !d.IsPositive() {
		return errors.New("must be greater than 0")
	}
	return nil
}

func percentDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || d.IsNegative() || d.GreaterThan(hundred) {
		return errors.New("must be between 0 and 100")
	}
	return nil
}

type SizeInput struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

func (s SizeInput) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 10)),
		validation.Field(&s.Stock, validation.Min(0)),
	)
}

func uniqueSizes(value interface{}) error {
	sizes, _ := value.([]SizeInput)
	seen := make(map[string]bool, len(sizes))
	for _, s := range sizes {
		key := strings.ToUpper(strings.TrimSpace(s.Name))
		if seen[key] {
			return errors.New("duplicate size " + s.Name)
		}
		seen[key] = true
	}
	return nil
}

// =====================================================
// PRODUCT REQUESTS
// =====================================================
type CreateProductRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	CategoryName  string           `json:"category"`
	BrandName     string           `json:"brand_name"`
	SalePrice     decimal.Decimal  `json:"sale_price"`
	OfferPrice    *decimal.Decimal `json:"offer_price,omitempty"`
	StockQuantity int              `json:"stock_quantity"`
	Sizes         []SizeInput      `json:"sizes"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.CategoryName, validation.Required),
		validation.Field(&r.BrandName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.SalePrice, validation.By(positiveDecimal)),
		validation.Field(&r.OfferPrice, validation.When(r.OfferPrice != nil, validation.By(func(v interface{}) error {
			op := v.(*decimal.Decimal)
			if err := positiveDecimal(*op); err != nil {
				return err
			}
			if op.GreaterThanOrEqual(r.SalePrice) {
				return errors.New("must be lower than sale price")
			}
			return nil
		}))),
		validation.Field(&r.StockQuantity, validation.Min(0)),
		validation.Field(&r.Sizes, validation.Required, validation.By(uniqueSizes)),
	)
}

// StockMatches reports whether per-size stock adds up to the declared total.
func (r CreateProductRequest) StockMatches() bool {
	sum := 0
	for _, s := range r.Sizes {
		sum += s.Stock
	}
	return sum == r.StockQuantity
}

// UpdateProductRequest replaces every editable field including sizes.
type UpdateProductRequest = CreateProductRequest

type AddReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (r AddReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&r.Comment, validation.Length(0, 1000)),
	)
}

// =====================================================
// CATEGORY REQUESTS
// =====================================================
type CategoryRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Offer       decimal.Decimal `json:"offer"`
	Status      bool            `json:"status"`
	Visibility  bool            `json:"visibility"`
}

func (r CategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.Offer, validation.By(percentDecimal)),
	)
}

// =====================================================
// RESPONSES
// =====================================================
type ProductResponse struct {
	*Product
	EffectivePrice decimal.Decimal `json:"effective_price"`
	TotalStock     int             `json:"total_stock"`
	AverageRating  float64         `json:"average_rating"`
}

func NewProductResponse(pp *PricedProduct) *ProductResponse {
	return &ProductResponse{
		Product:        pp.Product,
		EffectivePrice: pp.UnitPrice,
		TotalStock:     pp.Product.TotalStock(),
		AverageRating:  pp.Product.AverageRating(),
	}
}

type ImageUploadResponse struct {
	ProductID string       `json:"product_id"`
	Image     ProductImage `json:"image"`
}
