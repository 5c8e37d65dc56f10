package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// PRODUCT ENTITY
// =====================================================
type Product struct {
	ID           uuid.UUID           `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	CategoryName string              `json:"category"`
	BrandName    string              `json:"brand_name"`
	SalePrice    decimal.Decimal     `json:"sale_price"`
	OfferPrice   decimal.NullDecimal `json:"offer_price"`
	OfferStatus  bool                `json:"offer_status"`
	IsActive     bool                `json:"is_active"`
	Sizes        []ProductSize       `json:"sizes"`
	Reviews      []Review            `json:"reviews"`
	Images       []ProductImage      `json:"images"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type ProductSize struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductImage struct {
	LargeURL     string `json:"large_url"`
	MediumURL    string `json:"medium_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Size looks a size up by name, case-insensitively.
func (p *Product) Size(name string) (ProductSize, bool) {
	for _, s := range p.Sizes {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return ProductSize{}, false
}

func (p *Product) TotalStock() int {
	total := 0
	for _, s := range p.Sizes {
		total += s.Stock
	}
	return total
}

// AverageRating is 0 when there are no reviews.
func (p *Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(p.Reviews))
}
