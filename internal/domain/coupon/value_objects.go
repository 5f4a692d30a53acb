package coupon

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountType    = errors.New("invalid discount type")
	ErrInvalidDiscountAmount  = errors.New("discount amount must be positive")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
	ErrInvalidMaxDiscount     = errors.New("max discount must be positive")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type Type string

const (
	// TypePercentage discounts a fraction of the cart subtotal.
	TypePercentage Type = "percentage"
	// TypeFixed discounts an absolute amount, not prorated.
	TypeFixed Type = "fixed"
)

func NewType(t string) (Type, error) {
	switch Type(t) {
	case TypePercentage, TypeFixed:
		return Type(t), nil
	default:
		return Type(""), ErrInvalidDiscountType
	}
}

func (t Type) String() string {
	return string(t)
}

var oneHundred = decimal.NewFromInt(100)

// Discount is the magnitude of a coupon: percentage points or an absolute
// amount depending on its type. MaxDiscount caps percentage discounts only.
type Discount struct {
	typ         Type
	value       decimal.Decimal
	maxDiscount *decimal.Decimal
}

func NewDiscount(typ Type, value decimal.Decimal, maxDiscount *decimal.Decimal) (Discount, error) {
	switch typ {
	case TypePercentage:
		if !value.IsPositive() || value.GreaterThan(oneHundred) {
			return Discount{}, ErrInvalidDiscountPercent
		}
	case TypeFixed:
		if !value.IsPositive() {
			return Discount{}, ErrInvalidDiscountAmount
		}
	default:
		return Discount{}, ErrInvalidDiscountType
	}

	if maxDiscount != nil {
		if !maxDiscount.IsPositive() {
			return Discount{}, ErrInvalidMaxDiscount
		}
		capped := *maxDiscount
		maxDiscount = &capped
	}

	return Discount{typ: typ, value: value, maxDiscount: maxDiscount}, nil
}

func (d Discount) Type() Type             { return d.typ }
func (d Discount) Value() decimal.Decimal { return d.value }

func (d Discount) MaxDiscount() *decimal.Decimal {
	if d.maxDiscount == nil {
		return nil
	}
	v := *d.maxDiscount
	return &v
}

// AmountFor computes the monetary discount for a cart subtotal.
// Percentage discounts are clamped to MaxDiscount when set; every discount
// is clamped to the subtotal so the payable total can never go negative.
func (d Discount) AmountFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsNegative() {
		subtotal = decimal.Zero
	}

	var amount decimal.Decimal
	switch d.typ {
	case TypePercentage:
		amount = subtotal.Mul(d.value).Div(oneHundred)
		if d.maxDiscount != nil && amount.GreaterThan(*d.maxDiscount) {
			amount = *d.maxDiscount
		}
	case TypeFixed:
		amount = d.value
	default:
		return decimal.Zero
	}

	if amount.GreaterThan(subtotal) {
		amount = subtotal
	}
	return amount.Round(2)
}
