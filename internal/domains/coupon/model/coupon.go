package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Code              string          `json:"code"`
	Discount          decimal.Decimal `json:"discount"` // percent
	MinPurchaseAmount decimal.Decimal `json:"min_purchase_amount"`
	MaxDiscountAmount decimal.Decimal `json:"max_discount_amount"`
	ValidFrom         time.Time       `json:"valid_from"`
	ValidTo           time.Time       `json:"valid_to"`
	Visibility        bool            `json:"visibility"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ActiveAt reports whether the coupon window contains t.
func (c *Coupon) ActiveAt(t time.Time) bool {
	return !t.Before(c.ValidFrom) && !t.After(c.ValidTo)
}

// NormalizeCode makes codes case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// =====================================================
// REQUESTS
// =====================================================

type CreateCouponRequest struct {
	Name              string          `json:"name"`
	Code              string          `json:"code"`
	Discount          decimal.Decimal `json:"discount"`
	MinPurchaseAmount decimal.Decimal `json:"minPurchaseAmount"`
	MaxDiscountAmount decimal.Decimal `json:"maxDiscountAmount"`
	ValidFrom         time.Time       `json:"validFrom"`
	ValidTo           time.Time       `json:"validTo"`
	Status            bool            `json:"status"`
}

func (r CreateCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Code, validation.Required, validation.Length(3, 30), is.Alphanumeric),
		// A 100% coupon would leave a zero total, which orders reject.
		validation.Field(&r.Discount, validation.By(func(v interface{}) error {
			d := v.(decimal.Decimal)
			if !d.IsPositive() || !d.LessThan(decimal.NewFromInt(100)) {
				return validation.NewError("validation_percent", "must be greater than 0 and less than 100")
			}
			return nil
		})),
		validation.Field(&r.MinPurchaseAmount, validation.By(nonNegative)),
		validation.Field(&r.MaxDiscountAmount, validation.By(func(v interface{}) error {
			if !v.(decimal.Decimal).IsPositive() {
				return validation.NewError("validation_positive", "must be greater than zero")
			}
			return nil
		})),
		validation.Field(&r.ValidFrom, validation.Required),
		validation.Field(&r.ValidTo, validation.Required, validation.By(func(v interface{}) error {
			if !v.(time.Time).After(r.ValidFrom) {
				return validation.NewError("validation_window", "must be after validFrom")
			}
			return nil
		})),
	)
}

func nonNegative(v interface{}) error {
	if v.(decimal.Decimal).IsNegative() {
		return validation.NewError("validation_non_negative", "must not be negative")
	}
	return nil
}

type ApplyCouponRequest struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

func (r ApplyCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required),
		validation.Field(&r.Amount, validation.By(nonNegative)),
	)
}

// Quote is the discount a coupon grants on a given amount.
type Quote struct {
	Code          string          `json:"code"`
	Amount        decimal.Decimal `json:"amount"`
	Discount      decimal.Decimal `json:"discount"`
	PayableAmount decimal.Decimal `json:"payable_amount"`
	Capped        bool            `json:"capped"`
}
