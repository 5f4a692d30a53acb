//go:build e2e

package coupon_test

import (
	"net/http"
	"testing"
	"time"

	"storefront-api/internal/domain/user"
	"storefront-api/internal/usecase/queries"
	"storefront-api/tests/common/authtest"
	"storefront-api/tests/common/builder"
	"storefront-api/tests/common/dbtest"
	"storefront-api/tests/common/httptest"
	"storefront-api/tests/e2e"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	publicCouponsURL = "/api/coupons"
	adminCouponsURL  = "/api/admin/coupons"
)

type CouponSuite struct {
	e2e.SharedSuite
}

func (s *CouponSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestCouponSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CouponSuite))
}

func (s *CouponSuite) TestPublicListing() {
	s.Run("Normal case: only redeemable public coupons are listed", func() {
		t := s.T()

		dbtest.CreateTestCoupon(t, s.DB, dbtest.TestCoupon{Code: "SAVE15", Category: "general"})
		dbtest.CreateTestCoupon(t, s.DB, dbtest.TestCoupon{Code: "VIP25", Category: "VIP"})
		dbtest.CreateTestCoupon(t, s.DB, dbtest.TestCoupon{Code: "QA10", Category: "test"})
		dbtest.CreateTestCoupon(t, s.DB, dbtest.TestCoupon{
			Code:           "OLD10",
			ExpirationDate: time.Now().UTC().AddDate(0, 0, -1),
		})
		dbtest.CreateTestCoupon(t, s.DB, dbtest.TestCoupon{
			Code:       "USED",
			UsageLimit: 5,
			UsedCount:  5,
		})
		inactive := false
		dbtest.CreateTestCoupon(t, s.DB, dbtest.TestCoupon{Code: "OFF", IsActive: &inactive})

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, publicCouponsURL, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var listed []queries.CouponView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &listed))
		require.Len(t, listed, 1)
		require.Equal(t, "SAVE15", listed[0].Code)
	})

	s.Run("Normal case: listing needs no authentication", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, publicCouponsURL, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func (s *CouponSuite) TestAdminListing() {
	s.Run("Normal case: staff sees the full catalog with counters", func() {
		t := s.T()

		dbtest.CreateTestCoupon(t, s.DB, dbtest.TestCoupon{Code: "VIP25", Category: "VIP"})
		dbtest.CreateTestCoupon(t, s.DB, dbtest.TestCoupon{
			Code:       "USED",
			UsageLimit: 5,
			UsedCount:  3,
		})

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "staff@example.com", string(user.RoleStaff))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, adminCouponsURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var listed []queries.AdminCouponView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &listed))
		require.Len(t, listed, 2)

		byCode := map[string]queries.AdminCouponView{}
		for _, c := range listed {
			byCode[c.Code] = c
		}
		require.Equal(t, int32(3), byCode["USED"].UsedCount)
		require.Equal(t, "VIP", byCode["VIP25"].Category)
	})

	s.Run("Error case: missing token is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, adminCouponsURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *CouponSuite) TestCouponLifecycle() {
	s.Run("Normal case: admin creates, deactivates and deletes a coupon", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))

		reqBody := builder.NewCouponBuilder().
			With(func(b *builder.CouponBuilder) {
				b.Code = "SPRING20"
				b.Discount = decimal.NewFromInt(20)
			}).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, adminCouponsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created map[string]string
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		id := created["id"]
		require.NotEmpty(t, id)

		// The new coupon shows up publicly.
		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, publicCouponsURL, nil, "")
		require.Equal(t, http.StatusOK, lw.Code)
		var listed []queries.CouponView
		require.NoError(t, httptest.DecodeResponseBody(t, lw.Body, &listed))
		require.Len(t, listed, 1)
		require.Equal(t, "SPRING20", listed[0].Code)

		// Deactivation hides it from shoppers.
		dw := httptest.PerformRequest(t, s.Router, http.MethodPut, adminCouponsURL+"/"+id+"/active",
			map[string]any{"is_active": false}, token)
		require.Equal(t, http.StatusNoContent, dw.Code, dw.Body.String())

		lw = httptest.PerformRequest(t, s.Router, http.MethodGet, publicCouponsURL, nil, "")
		require.Equal(t, http.StatusOK, lw.Code)
		listed = nil
		require.NoError(t, httptest.DecodeResponseBody(t, lw.Body, &listed))
		require.Empty(t, listed)

		// Deletion removes it from the catalog.
		delw := httptest.PerformRequest(t, s.Router, http.MethodDelete, adminCouponsURL+"/"+id, nil, token)
		require.Equal(t, http.StatusNoContent, delw.Code, delw.Body.String())

		gw := httptest.PerformRequest(t, s.Router, http.MethodGet, adminCouponsURL+"/"+id, nil, token)
		require.Equal(t, http.StatusNotFound, gw.Code)
	})

	s.Run("Error case: duplicate code conflicts regardless of case", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))
		dbtest.CreateTestCoupon(t, s.DB, dbtest.TestCoupon{Code: "SPRING20"})

		reqBody := builder.NewCouponBuilder().
			With(func(b *builder.CouponBuilder) { b.Code = "spring20" }).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, adminCouponsURL, reqBody, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: staff cannot mutate the catalog", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "staff@example.com", string(user.RoleStaff))

		reqBody := builder.NewCouponBuilder().BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, adminCouponsURL, reqBody, token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}
