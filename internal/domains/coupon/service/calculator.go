package service

import (
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/coupon/model"
)

var hundred = decimal.NewFromInt(100)

// DiscountCalculator turns a coupon and an order amount into a discount.
type DiscountCalculator struct{}

func NewDiscountCalculator() *DiscountCalculator {
	return &DiscountCalculator{}
}

// Calculate returns min(amount × discount%, maxDiscount), rounded to 2 dp,
// and whether the cap applied. The discount never exceeds amount.
func (DiscountCalculator) Calculate(c *model.Coupon, amount decimal.Decimal) (decimal.Decimal, bool) {
	discount := amount.Mul(c.Discount).Div(hundred)
	capped := false

	if c.MaxDiscountAmount.IsPositive() && discount.GreaterThan(c.MaxDiscountAmount) {
		discount = c.MaxDiscountAmount
		capped = true
	}
	if discount.GreaterThan(amount) {
		discount = amount
	}

	return discount.Round(2), capped
}
