package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxQuantityPerLine caps a single (product, size) line.
const MaxQuantityPerLine = 5

type Cart struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Items       []Item          `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Item struct {
	ProductID uuid.UUID `json:"product_id"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
}

// Find returns the index of the (product, size) line or -1.
func (c *Cart) Find(productID uuid.UUID, size string) int {
	for i, it := range c.Items {
		if it.ProductID == productID && it.Size == size {
			return i
		}
	}
	return -1
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// =====================================================
// REQUESTS
// =====================================================

type AddItemRequest struct {
	UserID    string    `json:"userId"`
	ProductID uuid.UUID `json:"productId"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required),
		validation.Field(&r.Size, validation.Required, validation.Length(1, 10)),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1), validation.Max(MaxQuantityPerLine)),
	)
}

type EditQuantityRequest = AddItemRequest

type RemoveItemRequest struct {
	UserID    string    `json:"userId"`
	ProductID uuid.UUID `json:"productId"`
	Size      string    `json:"size"`
}

func (r RemoveItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required),
		validation.Field(&r.Size, validation.Required),
	)
}

// =====================================================
// RESPONSES
// =====================================================

// Line is a cart item priced at today's catalog price.
type Line struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Size         string          `json:"size"`
	Quantity     int             `json:"quantity"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	UnitPrice    decimal.Decimal `json:"discounted_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	StockForSize int             `json:"stock"`
	ThumbnailURL string          `json:"thumbnail_url,omitempty"`
}

type View struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Items         []Line          `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
}
