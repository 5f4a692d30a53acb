//go:build unit || e2e

package builder

import (
	"time"

	domcoupon "storefront-api/internal/domain/coupon"
	reqdto "storefront-api/internal/handler/dto/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponBuilder struct {
	ID                   uuid.UUID
	Code                 string
	Type                 string
	Discount             decimal.Decimal
	MaxDiscount          *decimal.Decimal
	Description          string
	MinimumPurchase      decimal.Decimal
	ExpirationDate       time.Time
	UsageLimit           int32
	UsedCount            int32
	IsActive             bool
	Category             string
	ApplicableCategories []string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func NewCouponBuilder() *CouponBuilder {
	now := time.Now()
	return &CouponBuilder{
		ID:              uuid.New(),
		Code:            "SAVE15",
		Type:            "percentage",
		Discount:        decimal.NewFromInt(15),
		Description:     "15% de descuento",
		MinimumPurchase: decimal.NewFromInt(100),
		ExpirationDate:  now.AddDate(1, 0, 0),
		UsageLimit:      100,
		UsedCount:       0,
		IsActive:        true,
		Category:        "general",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) BuildDomain() (*domcoupon.Coupon, error) {
	return domcoupon.New(
		b.Code,
		b.Type,
		b.Discount,
		b.MaxDiscount,
		b.Description,
		b.MinimumPurchase,
		b.ExpirationDate,
		b.UsageLimit,
		b.Category,
		b.ApplicableCategories,
	)
}

// BuildReconstructed bypasses creation validation so tests control the full
// persisted state, used count and active flag included.
func (b *CouponBuilder) BuildReconstructed() *domcoupon.Coupon {
	code, err := domcoupon.NewCode(b.Code)
	if err != nil {
		panic("builder: invalid coupon code: " + err.Error())
	}
	typ, err := domcoupon.NewType(b.Type)
	if err != nil {
		panic("builder: invalid coupon type: " + err.Error())
	}
	discount, err := domcoupon.NewDiscount(typ, b.Discount, b.MaxDiscount)
	if err != nil {
		panic("builder: invalid discount: " + err.Error())
	}
	return domcoupon.Reconstruct(
		b.ID,
		code,
		discount,
		b.Description,
		b.MinimumPurchase,
		b.ExpirationDate,
		b.UsageLimit,
		b.UsedCount,
		b.IsActive,
		b.Category,
		b.ApplicableCategories,
		b.CreatedAt,
		b.UpdatedAt,
	)
}

func (b *CouponBuilder) BuildCreateRequestDTO() reqdto.CreateCouponRequest {
	return reqdto.CreateCouponRequest{
		Code:                 b.Code,
		Type:                 b.Type,
		Discount:             b.Discount,
		MaxDiscount:          b.MaxDiscount,
		Description:          b.Description,
		MinimumPurchase:      b.MinimumPurchase,
		ExpirationDate:       b.ExpirationDate.Format("2006-01-02"),
		UsageLimit:           b.UsageLimit,
		Category:             b.Category,
		ApplicableCategories: b.ApplicableCategories,
	}
}
