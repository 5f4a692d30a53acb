//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront-api/internal/domain/cart"
	"storefront-api/internal/pkg/clock"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/queries"
	"storefront-api/tests/common/builder"
	queriesmock "storefront-api/tests/mock/queries"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PricingQueriesTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockStore  *queriesmock.MockCouponReadStore
	fixedClock *clock.MockClock
	pricing    queries.PricingQueries
}

func (s *PricingQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockStore = queriesmock.NewMockCouponReadStore(s.mockCtrl)
	s.fixedClock = clock.NewMockClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	s.pricing = queries.NewPricingQueries(s.mockStore, cart.NewDefaultPriceCalculator(), s.fixedClock)
}

func (s *PricingQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPricingQueriesSuite(t *testing.T) {
	suite.Run(t, new(PricingQueriesTestSuite))
}

func (s *PricingQueriesTestSuite) TestQuote() {
	ctx := context.Background()
	lines := builder.CartLines(
		builder.Line{Code: "P1", Price: "120.00", Quantity: 1, Category: "electronica"},
	)

	s.Run("empty cart fails", func() {
		_, err := s.pricing.Quote(ctx, nil, "")
		s.ErrorIs(err, errs.ErrEmptyCart)
	})

	s.Run("no coupon code prices the cart only", func() {
		view, err := s.pricing.Quote(ctx, lines, "")
		s.Require().NoError(err)

		s.False(view.Valid)
		s.True(view.Subtotal.Equal(decimal.NewFromInt(120)))
		s.True(view.CouponDiscount.IsZero())
		s.True(view.FinalTotal.Equal(decimal.NewFromInt(120)))
		s.Equal(1, view.ItemCount)
		s.Empty(view.RejectionReason)
	})

	s.Run("valid coupon discounts the total", func() {
		cpn := builder.NewCouponBuilder().BuildReconstructed()
		s.mockStore.EXPECT().FindByCode(gomock.Any(), "SAVE15").Return(cpn, nil)

		view, err := s.pricing.Quote(ctx, lines, "SAVE15")
		s.Require().NoError(err)

		s.True(view.Valid)
		s.True(view.CouponDiscount.Equal(decimal.NewFromInt(18)), "discount %s", view.CouponDiscount)
		s.True(view.FinalTotal.Equal(decimal.NewFromInt(102)), "total %s", view.FinalTotal)
	})

	s.Run("unknown code is a rejection, not an error", func() {
		s.mockStore.EXPECT().FindByCode(gomock.Any(), "NOPE123").
			Return(nil, errs.ErrCouponNotFound)

		view, err := s.pricing.Quote(ctx, lines, "NOPE123")
		s.Require().NoError(err)

		s.False(view.Valid)
		s.Equal("not_found", view.RejectionReason)
		s.Equal("Cupón no válido", view.Error)
		s.True(view.FinalTotal.Equal(decimal.NewFromInt(120)))
	})

	s.Run("rejected coupon keeps the undiscounted total", func() {
		cpn := builder.NewCouponBuilder().
			With(func(b *builder.CouponBuilder) { b.MinimumPurchase = decimal.NewFromInt(500) }).
			BuildReconstructed()
		s.mockStore.EXPECT().FindByCode(gomock.Any(), "SAVE15").Return(cpn, nil)

		view, err := s.pricing.Quote(ctx, lines, "SAVE15")
		s.Require().NoError(err)

		s.False(view.Valid)
		s.Equal("below_minimum", view.RejectionReason)
		s.Equal("Compra mínima requerida: $500.00", view.Error)
		s.True(view.CouponDiscount.IsZero())
		s.True(view.FinalTotal.Equal(decimal.NewFromInt(120)))
	})

	s.Run("storage failure propagates", func() {
		s.mockStore.EXPECT().FindByCode(gomock.Any(), "SAVE15").
			Return(nil, errs.New("connection refused"))

		_, err := s.pricing.Quote(ctx, lines, "SAVE15")
		s.Error(err)
	})

	s.Run("coupon validates against the pre-coupon subtotal", func() {
		// Quantity discount drops the payable below the minimum, but
		// eligibility is judged on the raw subtotal.
		bulkLines := builder.CartLines(
			builder.Line{Code: "P1", Price: "50.00", Quantity: 2},
		)
		cpn := builder.NewCouponBuilder().BuildReconstructed() // minimum 100

		s.mockStore.EXPECT().FindByCode(gomock.Any(), "SAVE15").Return(cpn, nil)

		view, err := s.pricing.Quote(ctx, bulkLines, "SAVE15")
		s.Require().NoError(err)

		s.True(view.Valid)
		s.True(view.Subtotal.Equal(decimal.NewFromInt(100)))
		s.True(view.QuantityDiscount.Equal(decimal.NewFromInt(5)))
		// 100 - 5 - 15 = 80
		s.True(view.FinalTotal.Equal(decimal.NewFromInt(80)), "total %s", view.FinalTotal)
	})
}
