package coupon

import (
	"errors"
	"time"

	"storefront-api/internal/pkg/category"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidMinimumPurchase = errors.New("minimum purchase cannot be negative")
	ErrInvalidUsageLimit      = errors.New("usage limit must be positive")
)

// Categories excluded from the public coupon listing.
var hiddenCategories = map[string]struct{}{
	"vip":  {},
	"test": {},
}

type Coupon struct {
	id                   uuid.UUID
	code                 Code
	discount             Discount
	description          string
	minimumPurchase      decimal.Decimal
	expirationDate       time.Time
	usageLimit           int32
	usedCount            int32
	isActive             bool
	category             string
	applicableCategories []string
	createdAt            time.Time
	updatedAt            time.Time
}

func New(
	code string,
	typ string,
	value decimal.Decimal,
	maxDiscount *decimal.Decimal,
	description string,
	minimumPurchase decimal.Decimal,
	expirationDate time.Time,
	usageLimit int32,
	cat string,
	applicableCategories []string,
) (*Coupon, error) {
	couponCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}

	couponType, err := NewType(typ)
	if err != nil {
		return nil, err
	}

	discount, err := NewDiscount(couponType, value, maxDiscount)
	if err != nil {
		return nil, err
	}

	if minimumPurchase.IsNegative() {
		return nil, ErrInvalidMinimumPurchase
	}
	if usageLimit <= 0 {
		return nil, ErrInvalidUsageLimit
	}

	return &Coupon{
		id:                   uuid.New(),
		code:                 couponCode,
		discount:             discount,
		description:          description,
		minimumPurchase:      minimumPurchase,
		expirationDate:       expirationDate,
		usageLimit:           usageLimit,
		isActive:             true,
		category:             cat,
		applicableCategories: applicableCategories,
	}, nil
}

// Reconstruct rebuilds a coupon from storage without re-running the
// creation validations. Stored rows are trusted.
func Reconstruct(
	id uuid.UUID,
	code Code,
	discount Discount,
	description string,
	minimumPurchase decimal.Decimal,
	expirationDate time.Time,
	usageLimit, usedCount int32,
	isActive bool,
	cat string,
	applicableCategories []string,
	createdAt, updatedAt time.Time,
) *Coupon {
	return &Coupon{
		id:                   id,
		code:                 code,
		discount:             discount,
		description:          description,
		minimumPurchase:      minimumPurchase,
		expirationDate:       expirationDate,
		usageLimit:           usageLimit,
		usedCount:            usedCount,
		isActive:             isActive,
		category:             cat,
		applicableCategories: applicableCategories,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

func (c *Coupon) ID() uuid.UUID                  { return c.id }
func (c *Coupon) Code() Code                     { return c.code }
func (c *Coupon) Discount() Discount             { return c.discount }
func (c *Coupon) Description() string            { return c.description }
func (c *Coupon) MinimumPurchase() decimal.Decimal { return c.minimumPurchase }
func (c *Coupon) ExpirationDate() time.Time      { return c.expirationDate }
func (c *Coupon) UsageLimit() int32              { return c.usageLimit }
func (c *Coupon) UsedCount() int32               { return c.usedCount }
func (c *Coupon) IsActive() bool                 { return c.isActive }
func (c *Coupon) Category() string               { return c.category }
func (c *Coupon) ApplicableCategories() []string { return c.applicableCategories }
func (c *Coupon) CreatedAt() time.Time           { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time           { return c.updatedAt }

// IsExpiredAt compares calendar dates: a coupon is valid through the whole
// of its expiration date and invalid strictly after it.
func (c *Coupon) IsExpiredAt(t time.Time) bool {
	today := t.UTC().Truncate(24 * time.Hour)
	expiry := c.expirationDate.UTC().Truncate(24 * time.Hour)
	return today.After(expiry)
}

// ValidateForCart runs the eligibility checks in their fixed order and
// returns the first rejection, or nil when the coupon is redeemable.
// Callers observe the order through the rejection reasons, so it must not
// change: active, expiration, usage, minimum purchase, categories.
func (c *Coupon) ValidateForCart(now time.Time, subtotal decimal.Decimal, cartCategories []string) *Rejection {
	if !c.isActive {
		return rejectInactive()
	}
	if c.IsExpiredAt(now) {
		return rejectExpired()
	}
	if c.usedCount >= c.usageLimit {
		return RejectUsageLimit()
	}
	if subtotal.LessThan(c.minimumPurchase) {
		return rejectBelowMinimum(c.minimumPurchase)
	}
	if len(c.applicableCategories) > 0 && !c.matchesAnyCategory(cartCategories) {
		return rejectCategoryMismatch(c.applicableCategories)
	}
	return nil
}

// DiscountFor computes the monetary discount for a cart subtotal. Pure;
// it does not imply eligibility, callers validate first.
func (c *Coupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	return c.discount.AmountFor(subtotal)
}

// IsListable reports whether the coupon belongs in the public listing:
// currently redeemable and not part of a hidden campaign category.
func (c *Coupon) IsListable(now time.Time) bool {
	if !c.isActive || c.IsExpiredAt(now) || c.usedCount >= c.usageLimit {
		return false
	}
	_, hidden := hiddenCategories[category.Canonical(c.category)]
	return !hidden
}

func (c *Coupon) matchesAnyCategory(cartCategories []string) bool {
	for _, allowed := range c.applicableCategories {
		if category.MatchAny(allowed, cartCategories) {
			return true
		}
	}
	return false
}
