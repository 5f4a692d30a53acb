package commands

import (
	"context"
	"time"

	"storefront-api/internal/domain/coupon"
	reqdto "storefront-api/internal/handler/dto/request"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/pkg/patch"
	"storefront-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const expirationDateLayout = "2006-01-02"

var ErrInvalidExpirationDate = errs.New("invalid expiration date, expected YYYY-MM-DD")

type CouponWriteRepository interface {
	Create(ctx context.Context, c *coupon.Coupon) (uuid.UUID, error)
	UpdateByID(ctx context.Context, id uuid.UUID, c *coupon.Coupon) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CouponCommands interface {
	Create(ctx context.Context, req reqdto.CreateCouponRequest) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateCouponRequest) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type couponUseCaseImpl struct {
	repo    CouponWriteRepository
	catalog queries.CouponCatalogReadStore
}

func NewCouponUseCase(repo CouponWriteRepository, catalog queries.CouponCatalogReadStore) CouponCommands {
	return &couponUseCaseImpl{repo: repo, catalog: catalog}
}

func (u *couponUseCaseImpl) Create(ctx context.Context, req reqdto.CreateCouponRequest) (uuid.UUID, error) {
	expiration, err := parseExpirationDate(req.ExpirationDate)
	if err != nil {
		return uuid.Nil, err
	}

	cpn, err := coupon.New(
		req.Code,
		req.Type,
		req.Discount,
		req.MaxDiscount,
		req.Description,
		req.MinimumPurchase,
		expiration,
		req.UsageLimit,
		req.Category,
		req.ApplicableCategories,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	return u.repo.Create(ctx, cpn)
}

func (u *couponUseCaseImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateCouponRequest) error {
	existing, err := u.catalog.FindByID(ctx, id)
	if err != nil {
		return err
	}

	expirationRaw := patch.Coalesce(req.ExpirationDate, existing.ExpirationDate().Format(expirationDateLayout))
	expiration, err := parseExpirationDate(expirationRaw)
	if err != nil {
		return err
	}

	maxDiscount := existing.Discount().MaxDiscount()
	if req.MaxDiscount != nil {
		maxDiscount = req.MaxDiscount
	}

	updated, err := coupon.New(
		patch.Coalesce(req.Code, existing.Code().String()),
		patch.Coalesce(req.Type, existing.Discount().Type().String()),
		coalesceDecimal(req.Discount, existing.Discount().Value()),
		maxDiscount,
		patch.Coalesce(req.Description, existing.Description()),
		coalesceDecimal(req.MinimumPurchase, existing.MinimumPurchase()),
		expiration,
		patch.Coalesce(req.UsageLimit, existing.UsageLimit()),
		patch.Coalesce(req.Category, existing.Category()),
		coalesceSlice(req.ApplicableCategories, existing.ApplicableCategories()),
	)
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	return u.repo.UpdateByID(ctx, id, updated)
}

func (u *couponUseCaseImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return u.repo.SetActive(ctx, id, active)
}

func (u *couponUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return u.repo.Delete(ctx, id)
}

func parseExpirationDate(raw string) (time.Time, error) {
	t, err := time.Parse(expirationDateLayout, raw)
	if err != nil {
		return time.Time{}, errs.Mark(err, ErrInvalidExpirationDate)
	}
	return t, nil
}

func coalesceDecimal(ptr *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

func coalesceSlice(ptr *[]string, fallback []string) []string {
	if ptr != nil {
		return *ptr
	}
	return fallback
}
