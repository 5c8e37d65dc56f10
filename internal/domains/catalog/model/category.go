package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category names are unique (case-insensitive) because products refer to
// their category by name.
type Category struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Offer       decimal.Decimal `json:"offer"` // percent
	Status      bool            `json:"status"`
	Visibility  bool            `json:"visibility"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
