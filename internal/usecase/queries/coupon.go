package queries

import (
	"context"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/pkg/clock"

	"github.com/google/uuid"
)

// CouponCatalogReadStore lists catalog rows for the projection endpoints.
type CouponCatalogReadStore interface {
	ListAll(ctx context.Context) ([]*coupon.Coupon, error)
	FindByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error)
}

type CouponQueries interface {
	// ListPublic re-applies the redeemability predicate at request time and
	// hides vip/test campaign coupons.
	ListPublic(ctx context.Context) ([]*CouponView, error)
	ListAdmin(ctx context.Context) ([]*AdminCouponView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*AdminCouponView, error)
}

type couponQueriesImpl struct {
	catalog CouponCatalogReadStore
	clock   clock.Clock
}

func NewCouponQueries(catalog CouponCatalogReadStore, clk clock.Clock) CouponQueries {
	return &couponQueriesImpl{catalog: catalog, clock: clk}
}

func (q *couponQueriesImpl) ListPublic(ctx context.Context) ([]*CouponView, error) {
	coupons, err := q.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	views := make([]*CouponView, 0, len(coupons))
	for _, c := range coupons {
		if !c.IsListable(now) {
			continue
		}
		views = append(views, toPublicCouponView(c))
	}
	return views, nil
}

func (q *couponQueriesImpl) ListAdmin(ctx context.Context) ([]*AdminCouponView, error) {
	coupons, err := q.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*AdminCouponView, 0, len(coupons))
	for _, c := range coupons {
		views = append(views, ToAdminCouponView(c))
	}
	return views, nil
}

func (q *couponQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*AdminCouponView, error) {
	c, err := q.catalog.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToAdminCouponView(c), nil
}

func toPublicCouponView(c *coupon.Coupon) *CouponView {
	return &CouponView{
		Code:            c.Code().String(),
		Type:            c.Discount().Type().String(),
		Discount:        c.Discount().Value(),
		Description:     c.Description(),
		MinimumPurchase: c.MinimumPurchase(),
		Category:        c.Category(),
		ExpirationDate:  c.ExpirationDate(),
	}
}

func ToAdminCouponView(c *coupon.Coupon) *AdminCouponView {
	return &AdminCouponView{
		ID:                   c.ID(),
		Code:                 c.Code().String(),
		Type:                 c.Discount().Type().String(),
		Discount:             c.Discount().Value(),
		MaxDiscount:          c.Discount().MaxDiscount(),
		Description:          c.Description(),
		MinimumPurchase:      c.MinimumPurchase(),
		ExpirationDate:       c.ExpirationDate(),
		UsageLimit:           c.UsageLimit(),
		UsedCount:            c.UsedCount(),
		IsActive:             c.IsActive(),
		Category:             c.Category(),
		ApplicableCategories: c.ApplicableCategories(),
		CreatedAt:            c.CreatedAt(),
		UpdatedAt:            c.UpdatedAt(),
	}
}
