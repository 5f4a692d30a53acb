package cart

import (
	"github.com/shopspring/decimal"
)

// Pricing is the aggregate result for a cart before any coupon applies.
type Pricing struct {
	Subtotal         decimal.Decimal
	QuantityDiscount decimal.Decimal
	Total            decimal.Decimal
}

type PriceCalculator interface {
	Price(c *Cart) Pricing
}

// DefaultPriceCalculator applies the storefront's bulk rule: each line
// whose quantity reaches the threshold gets a flat rate off that line.
// The rule is per line, not cart-aggregate: two lines of quantity one
// earn nothing, one line of quantity two does.
type DefaultPriceCalculator struct {
	QuantityDiscountRate decimal.Decimal
	QuantityThreshold    int
}

func NewDefaultPriceCalculator() *DefaultPriceCalculator {
	return &DefaultPriceCalculator{
		QuantityDiscountRate: decimal.NewFromFloat(0.05),
		QuantityThreshold:    2,
	}
}

func (pc *DefaultPriceCalculator) Price(c *Cart) Pricing {
	subtotal := decimal.Zero
	quantityDiscount := decimal.Zero

	for _, line := range c.Lines() {
		lineTotal := line.LineTotal()
		subtotal = subtotal.Add(lineTotal)
		if line.Quantity >= pc.QuantityThreshold {
			quantityDiscount = quantityDiscount.Add(lineTotal.Mul(pc.QuantityDiscountRate))
		}
	}

	subtotal = subtotal.Round(2)
	quantityDiscount = quantityDiscount.Round(2)

	return Pricing{
		Subtotal:         subtotal,
		QuantityDiscount: quantityDiscount,
		Total:            subtotal.Sub(quantityDiscount),
	}
}

// Payable combines the aggregate pricing with a coupon discount. The two
// discounts stack additively against the raw subtotal; the result is
// floored at zero.
func Payable(p Pricing, couponDiscount decimal.Decimal) decimal.Decimal {
	total := p.Subtotal.Sub(p.QuantityDiscount).Sub(couponDiscount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
