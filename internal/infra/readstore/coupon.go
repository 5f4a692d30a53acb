package readstore

import (
	"context"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/infra"
	"storefront-api/internal/infra/db"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const couponColumns = `
	id, code, type, discount, max_discount, description,
	minimum_purchase, expiration_date, usage_limit, used_count,
	is_active, category, applicable_categories, created_at, updated_at`

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(db db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: db}
}

// FindByCode matches case-insensitively; lookups always go through the
// lower(code) index.
func (r *CouponReadStore) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	row := r.db.QueryRow(ctx,
		`SELECT`+couponColumns+` FROM coupons WHERE lower(code) = lower($1)`, code)

	cpn, err := scanCoupon(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(
				infra.WrapRepoErr("coupon not found", err, infra.KindNotFound),
				errs.ErrCouponNotFound,
			)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}
	return cpn, nil
}

func (r *CouponReadStore) FindByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	row := r.db.QueryRow(ctx,
		`SELECT`+couponColumns+` FROM coupons WHERE id = $1`, id)

	cpn, err := scanCoupon(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(
				infra.WrapRepoErr("coupon not found", err, infra.KindNotFound),
				errs.ErrCouponNotFound,
			)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by ID", err)
	}
	return cpn, nil
}

func (r *CouponReadStore) ListAll(ctx context.Context) ([]*coupon.Coupon, error) {
	rows, err := r.db.Query(ctx,
		`SELECT`+couponColumns+` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupons", err)
	}
	defer rows.Close()

	var coupons []*coupon.Coupon
	for rows.Next() {
		cpn, scanErr := scanCoupon(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan coupon row", scanErr)
		}
		coupons = append(coupons, cpn)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate coupon rows", err)
	}
	return coupons, nil
}

func scanCoupon(row pgx.Row) (*coupon.Coupon, error) {
	var (
		id                   uuid.UUID
		code                 string
		typ                  string
		discount             pgtype.Numeric
		maxDiscount          pgtype.Numeric
		description          string
		minimumPurchase      pgtype.Numeric
		expirationDate       pgtype.Date
		usageLimit           int32
		usedCount            int32
		isActive             bool
		categoryTag          string
		applicableCategories []string
		createdAt            pgtype.Timestamptz
		updatedAt            pgtype.Timestamptz
	)

	if err := row.Scan(
		&id, &code, &typ, &discount, &maxDiscount, &description,
		&minimumPurchase, &expirationDate, &usageLimit, &usedCount,
		&isActive, &categoryTag, &applicableCategories, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	couponType, err := coupon.NewType(typ)
	if err != nil {
		return nil, err
	}

	discountValue, err := pgconv.DecimalFromNumeric(discount)
	if err != nil {
		return nil, err
	}
	maxDiscountValue, err := pgconv.DecimalPtrFromNumeric(maxDiscount)
	if err != nil {
		return nil, err
	}
	minimumValue, err := pgconv.DecimalFromNumeric(minimumPurchase)
	if err != nil {
		return nil, err
	}

	discountVO, err := coupon.NewDiscount(couponType, discountValue, maxDiscountValue)
	if err != nil {
		return nil, err
	}

	return coupon.Reconstruct(
		id,
		coupon.Code(code),
		discountVO,
		description,
		minimumValue,
		pgconv.DateFromPgtype(expirationDate),
		usageLimit,
		usedCount,
		isActive,
		categoryTag,
		applicableCategories,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
