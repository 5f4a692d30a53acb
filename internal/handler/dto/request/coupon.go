package request

import (
	"github.com/shopspring/decimal"
)

type CreateCouponRequest struct {
	Code                 string           `json:"code" binding:"required"`
	Type                 string           `json:"type" binding:"required,oneof=percentage fixed"`
	Discount             decimal.Decimal  `json:"discount" binding:"required"`
	MaxDiscount          *decimal.Decimal `json:"max_discount,omitempty"`
	Description          string           `json:"description,omitempty"`
	MinimumPurchase      decimal.Decimal  `json:"minimum_purchase"`
	ExpirationDate       string           `json:"expiration_date" binding:"required"`
	UsageLimit           int32            `json:"usage_limit" binding:"required,min=1"`
	Category             string           `json:"category,omitempty"`
	ApplicableCategories []string         `json:"applicable_categories,omitempty"`
}

type UpdateCouponRequest struct {
	Code                 *string          `json:"code,omitempty"`
	Type                 *string          `json:"type,omitempty" binding:"omitempty,oneof=percentage fixed"`
	Discount             *decimal.Decimal `json:"discount,omitempty"`
	MaxDiscount          *decimal.Decimal `json:"max_discount,omitempty"`
	Description          *string          `json:"description,omitempty"`
	MinimumPurchase      *decimal.Decimal `json:"minimum_purchase,omitempty"`
	ExpirationDate       *string          `json:"expiration_date,omitempty"`
	UsageLimit           *int32           `json:"usage_limit,omitempty"`
	Category             *string          `json:"category,omitempty"`
	ApplicableCategories *[]string        `json:"applicable_categories,omitempty"`
}

type SetCouponActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
