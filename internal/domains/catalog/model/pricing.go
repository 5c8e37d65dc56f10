package model

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// EffectivePrice is the unit price a shopper pays right now.
// An active product offer wins; otherwise an applied category offer
// discounts the sale price; otherwise the sale price stands.
func EffectivePrice(p *Product, c *Category) decimal.Decimal {
	if p.OfferStatus && p.OfferPrice.Valid {
		return p.OfferPrice.Decimal.Round(2)
	}

	if c != nil && c.Status && c.Offer.IsPositive() {
		factor := hundred.Sub(c.Offer).Div(hundred)
		if factor.IsNegative() {
			factor = decimal.Zero
		}
		return p.SalePrice.Mul(factor).Round(2)
	}

	return p.SalePrice.Round(2)
}

// PricedProduct couples a product with its category and current unit price.
type PricedProduct struct {
	Product   *Product        `json:"product"`
	Category  *Category       `json:"-"`
	UnitPrice decimal.Decimal `json:"effective_price"`
}

func NewPricedProduct(p *Product, c *Category) *PricedProduct {
	return &PricedProduct{Product: p, Category: c, UnitPrice: EffectivePrice(p, c)}
}
