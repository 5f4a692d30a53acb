//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront-api/internal/pkg/category"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	// bcrypt hash of "password123"
	passwordHash := "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."
	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, passwordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active = true", email).Scan(&userID)
	}

	return userID
}

// TestCoupon carries the columns a test cares about; zero values fall back
// to a redeemable percentage coupon.
type TestCoupon struct {
	Code                 string
	Type                 string
	Discount             decimal.Decimal
	MaxDiscount          *decimal.Decimal
	MinimumPurchase      decimal.Decimal
	ExpirationDate       time.Time
	UsageLimit           int32
	UsedCount            int32
	IsActive             *bool
	Category             string
	ApplicableCategories []string
}

func CreateTestCoupon(t *testing.T, db DBLike, tc TestCoupon) uuid.UUID {
	t.Helper()

	if tc.Code == "" {
		tc.Code = "SAVE15"
	}
	if tc.Type == "" {
		tc.Type = "percentage"
	}
	if tc.Discount.IsZero() {
		tc.Discount = decimal.NewFromInt(15)
	}
	if tc.ExpirationDate.IsZero() {
		tc.ExpirationDate = time.Now().UTC().AddDate(1, 0, 0)
	}
	if tc.UsageLimit == 0 {
		tc.UsageLimit = 100
	}
	active := true
	if tc.IsActive != nil {
		active = *tc.IsActive
	}
	if tc.ApplicableCategories == nil {
		tc.ApplicableCategories = []string{}
	}

	couponID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO coupons (id, code, type, discount, max_discount, minimum_purchase,
		                     expiration_date, usage_limit, used_count, is_active, category, applicable_categories)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		couponID, strings.ToUpper(tc.Code), tc.Type, tc.Discount, tc.MaxDiscount, tc.MinimumPurchase,
		tc.ExpirationDate, tc.UsageLimit, tc.UsedCount, active, tc.Category, tc.ApplicableCategories)
	require.NoError(t, err)

	return couponID
}

func CreateTestProduct(t *testing.T, db DBLike, code, name, cat string, unitPrice decimal.Decimal) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO products (id, code, name, category, category_slug, unit_price, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		ON CONFLICT (code) DO NOTHING`,
		productID, code, name, cat, category.Normalize(cat), unitPrice)
	require.NoError(t, err)

	return productID
}

// GetCouponUsedCount reads the durable redemption counter directly.
func GetCouponUsedCount(t *testing.T, db DBLike, code string) int32 {
	t.Helper()

	var used int32
	err := db.QueryRow(context.Background(),
		"SELECT used_count FROM coupons WHERE lower(code) = lower($1)", code).Scan(&used)
	require.NoError(t, err)
	return used
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO products (code, name, category, category_slug, unit_price) VALUES
		    ('LAPTOP-01', 'Laptop Pro 14', 'Electrónica', 'electronica', 999.00),
		    ('MOUSE-01', 'Mouse Inalámbrico', 'Electrónica', 'electronica', 25.50),
		    ('SHIRT-01', 'Camisa Casual', 'Ropa', 'ropa', 35.00)
		ON CONFLICT (code) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
