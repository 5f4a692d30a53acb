package repository

import (
	"context"
	"errors"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/infra"
	"storefront-api/internal/infra/db"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

type CouponRepository struct {
	db db.DBTX
}

func NewCouponRepository(db db.DBTX) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO coupons (
			code, type, discount, max_discount, description,
			minimum_purchase, expiration_date, usage_limit,
			is_active, category, applicable_categories
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		c.Code().String(),
		c.Discount().Type().String(),
		pgconv.DecimalToNumeric(c.Discount().Value()),
		pgconv.DecimalPtrToNumeric(c.Discount().MaxDiscount()),
		c.Description(),
		pgconv.DecimalToNumeric(c.MinimumPurchase()),
		pgconv.DateToPgtype(c.ExpirationDate()),
		c.UsageLimit(),
		c.IsActive(),
		c.Category(),
		applicableCategories(c),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, errs.Mark(
				infra.WrapRepoErr("coupon code already exists", err, infra.KindDuplicateKey),
				errs.ErrDuplicateCoupon,
			)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create coupon", err)
	}
	return id, nil
}

func (r *CouponRepository) UpdateByID(ctx context.Context, id uuid.UUID, c *coupon.Coupon) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE coupons SET
			code = $2, type = $3, discount = $4, max_discount = $5,
			description = $6, minimum_purchase = $7, expiration_date = $8,
			usage_limit = $9, category = $10, applicable_categories = $11,
			updated_at = now()
		WHERE id = $1`,
		id,
		c.Code().String(),
		c.Discount().Type().String(),
		pgconv.DecimalToNumeric(c.Discount().Value()),
		pgconv.DecimalPtrToNumeric(c.Discount().MaxDiscount()),
		c.Description(),
		pgconv.DecimalToNumeric(c.MinimumPurchase()),
		pgconv.DateToPgtype(c.ExpirationDate()),
		c.UsageLimit(),
		c.Category(),
		applicableCategories(c),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Mark(
				infra.WrapRepoErr("coupon code already exists", err, infra.KindDuplicateKey),
				errs.ErrDuplicateCoupon,
			)
		}
		return infra.WrapRepoErr("failed to update coupon", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.Mark(
			infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound),
			errs.ErrCouponNotFound,
		)
	}
	return nil
}

func (r *CouponRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE coupons SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return infra.WrapRepoErr("failed to toggle coupon", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.Mark(
			infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound),
			errs.ErrCouponNotFound,
		)
	}
	return nil
}

func (r *CouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete coupon", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.Mark(
			infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound),
			errs.ErrCouponNotFound,
		)
	}
	return nil
}

// RedeemOnce is the atomic increment-if-below-limit. The WHERE guard makes
// concurrent redemptions safe: only one transaction can take the last slot,
// the rest see zero rows affected.
func (r *CouponRepository) RedeemOnce(ctx context.Context, tx db.DBTX, code coupon.Code) (bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE coupons
		SET used_count = used_count + 1, updated_at = now()
		WHERE lower(code) = lower($1) AND used_count < usage_limit`,
		code.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to redeem coupon", err)
	}
	return tag.RowsAffected() == 1, nil
}

func applicableCategories(c *coupon.Coupon) []string {
	cats := c.ApplicableCategories()
	if cats == nil {
		return []string{}
	}
	return cats
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}
