package coupon

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RejectionReason is the closed set of validation failures. Every reason
// is recoverable: the checkout proceeds without the coupon.
type RejectionReason string

const (
	ReasonNotFound         RejectionReason = "not_found"
	ReasonInactive         RejectionReason = "inactive"
	ReasonExpired          RejectionReason = "expired"
	ReasonUsageLimit       RejectionReason = "usage_limit_reached"
	ReasonBelowMinimum     RejectionReason = "below_minimum"
	ReasonCategoryMismatch RejectionReason = "category_mismatch"
)

// Rejection carries a machine-readable reason plus the shopper-facing
// message, including the threshold or list that caused the failure.
type Rejection struct {
	Reason  RejectionReason
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

func RejectNotFound() *Rejection {
	return &Rejection{Reason: ReasonNotFound, Message: "Cupón no válido"}
}

func rejectInactive() *Rejection {
	return &Rejection{Reason: ReasonInactive, Message: "Este cupón ya no está activo"}
}

func rejectExpired() *Rejection {
	return &Rejection{Reason: ReasonExpired, Message: "Este cupón ha expirado"}
}

// RejectUsageLimit is exported for the checkout path, where losing the
// redemption race downgrades an already-validated coupon to this rejection.
func RejectUsageLimit() *Rejection {
	return &Rejection{Reason: ReasonUsageLimit, Message: "Este cupón ha alcanzado su límite de uso"}
}

func rejectBelowMinimum(minimum decimal.Decimal) *Rejection {
	return &Rejection{
		Reason:  ReasonBelowMinimum,
		Message: fmt.Sprintf("Compra mínima requerida: $%s", minimum.StringFixed(2)),
	}
}

func rejectCategoryMismatch(allowed []string) *Rejection {
	return &Rejection{
		Reason:  ReasonCategoryMismatch,
		Message: "Este cupón solo aplica para: " + strings.Join(allowed, ", "),
	}
}
