package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Coupon errors
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrDuplicateCoupon = errors.New("coupon code already exists")

	// Cart / checkout errors
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
	ErrPaymentFailed = errors.New("payment failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")
)
