package queries

import (
	"context"
	"errors"

	"storefront-api/internal/domain/cart"
	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/pkg/clock"
	"storefront-api/internal/pkg/errs"
)

// CouponReadStore resolves coupon codes case-insensitively against the
// catalog. A missing code is reported with errs.ErrCouponNotFound.
type CouponReadStore interface {
	FindByCode(ctx context.Context, code string) (*coupon.Coupon, error)
}

type PricingQueries interface {
	// Quote prices a cart with an optional coupon code. A rejected coupon
	// never fails the call: pricing proceeds without it and the rejection
	// is carried in the view.
	Quote(ctx context.Context, lines []cart.LineItem, couponCode string) (*QuoteView, error)
}

type pricingQueriesImpl struct {
	coupons CouponReadStore
	calc    cart.PriceCalculator
	clock   clock.Clock
}

func NewPricingQueries(coupons CouponReadStore, calc cart.PriceCalculator, clk clock.Clock) PricingQueries {
	return &pricingQueriesImpl{coupons: coupons, calc: calc, clock: clk}
}

func (q *pricingQueriesImpl) Quote(ctx context.Context, lines []cart.LineItem, couponCode string) (*QuoteView, error) {
	c := cart.FromLines(lines)
	if c.IsEmpty() {
		return nil, errs.ErrEmptyCart
	}

	pricing := q.calc.Price(c)

	view := &QuoteView{
		Subtotal:         pricing.Subtotal,
		QuantityDiscount: pricing.QuantityDiscount,
		FinalTotal:       pricing.Total,
		ItemCount:        c.ItemCount(),
	}

	if couponCode == "" {
		return view, nil
	}

	cpn, rejection, err := q.resolveCoupon(ctx, couponCode, c, pricing)
	if err != nil {
		return nil, err
	}
	if rejection != nil {
		view.RejectionReason = string(rejection.Reason)
		view.Error = rejection.Message
		return view, nil
	}

	view.Valid = true
	view.CouponDiscount = cpn.DiscountFor(pricing.Subtotal)
	view.FinalTotal = cart.Payable(pricing, view.CouponDiscount)
	return view, nil
}

func (q *pricingQueriesImpl) resolveCoupon(ctx context.Context, code string, c *cart.Cart, pricing cart.Pricing) (*coupon.Coupon, *coupon.Rejection, error) {
	cpn, err := q.coupons.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, errs.ErrCouponNotFound) {
			return nil, coupon.RejectNotFound(), nil
		}
		return nil, nil, err
	}

	if rejection := cpn.ValidateForCart(q.clock.Now(), pricing.Subtotal, c.Categories()); rejection != nil {
		return nil, rejection, nil
	}
	return cpn, nil, nil
}
