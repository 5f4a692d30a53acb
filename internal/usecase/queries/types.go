package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)

// CouponView is the public projection of a coupon: no usage counters, no
// active flag, nothing an admin surface would need.
type CouponView struct {
	Code            string          `json:"code"`
	Type            string          `json:"type"`
	Discount        decimal.Decimal `json:"discount"`
	Description     string          `json:"description"`
	MinimumPurchase decimal.Decimal `json:"minimum_purchase"`
	Category        string          `json:"category"`
	ExpirationDate  time.Time       `json:"expiration_date"`
}

// AdminCouponView exposes the full catalog record.
type AdminCouponView struct {
	ID                   uuid.UUID        `json:"id"`
	Code                 string           `json:"code"`
	Type                 string           `json:"type"`
	Discount             decimal.Decimal  `json:"discount"`
	MaxDiscount          *decimal.Decimal `json:"max_discount,omitempty"`
	Description          string           `json:"description"`
	MinimumPurchase      decimal.Decimal  `json:"minimum_purchase"`
	ExpirationDate       time.Time        `json:"expiration_date"`
	UsageLimit           int32            `json:"usage_limit"`
	UsedCount            int32            `json:"used_count"`
	IsActive             bool             `json:"is_active"`
	Category             string           `json:"category"`
	ApplicableCategories []string         `json:"applicable_categories,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

type ProductView struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

// QuoteView is what the checkout UI consumes: the cart aggregates, the
// coupon outcome and the single payable amount.
type QuoteView struct {
	Valid            bool            `json:"valid"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	QuantityDiscount decimal.Decimal `json:"quantity_discount"`
	CouponDiscount   decimal.Decimal `json:"coupon_discount"`
	FinalTotal       decimal.Decimal `json:"final_total"`
	ItemCount        int             `json:"item_count"`
	RejectionReason  string          `json:"rejection_reason,omitempty"`
	Error            string          `json:"error,omitempty"`
}
