//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/pkg/clock"
	"storefront-api/internal/usecase/queries"
	"storefront-api/tests/common/builder"
	queriesmock "storefront-api/tests/mock/queries"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CouponQueriesTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockCatalog *queriesmock.MockCouponCatalogReadStore
	queries     queries.CouponQueries
}

func (s *CouponQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCatalog = queriesmock.NewMockCouponCatalogReadStore(s.mockCtrl)
	fixedClock := clock.NewMockClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	s.queries = queries.NewCouponQueries(s.mockCatalog, fixedClock)
}

func (s *CouponQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCouponQueriesSuite(t *testing.T) {
	suite.Run(t, new(CouponQueriesTestSuite))
}

func (s *CouponQueriesTestSuite) TestListPublic() {
	ctx := context.Background()

	listed := builder.NewCouponBuilder().BuildReconstructed()
	hiddenVIP := builder.NewCouponBuilder().
		With(func(b *builder.CouponBuilder) {
			b.Code = "VIP25"
			b.Category = "vip"
		}).
		BuildReconstructed()
	inactive := builder.NewCouponBuilder().
		With(func(b *builder.CouponBuilder) {
			b.Code = "PAUSED1"
			b.IsActive = false
		}).
		BuildReconstructed()
	exhausted := builder.NewCouponBuilder().
		With(func(b *builder.CouponBuilder) {
			b.Code = "GONE123"
			b.UsageLimit = 1
			b.UsedCount = 1
		}).
		BuildReconstructed()

	s.mockCatalog.EXPECT().ListAll(gomock.Any()).
		Return([]*coupon.Coupon{listed, hiddenVIP, inactive, exhausted}, nil)

	views, err := s.queries.ListPublic(ctx)
	s.Require().NoError(err)

	s.Require().Len(views, 1)
	s.Equal("SAVE15", views[0].Code)
	s.Equal("percentage", views[0].Type)
}

func (s *CouponQueriesTestSuite) TestListAdmin() {
	ctx := context.Background()

	// The admin listing is unfiltered and carries the usage counters.
	exhausted := builder.NewCouponBuilder().
		With(func(b *builder.CouponBuilder) {
			b.UsageLimit = 1
			b.UsedCount = 1
			b.IsActive = false
		}).
		BuildReconstructed()

	s.mockCatalog.EXPECT().ListAll(gomock.Any()).
		Return([]*coupon.Coupon{exhausted}, nil)

	views, err := s.queries.ListAdmin(ctx)
	s.Require().NoError(err)

	s.Require().Len(views, 1)
	s.EqualValues(1, views[0].UsedCount)
	s.False(views[0].IsActive)
}

func (s *CouponQueriesTestSuite) TestGetByID() {
	ctx := context.Background()
	cpn := builder.NewCouponBuilder().BuildReconstructed()

	s.mockCatalog.EXPECT().FindByID(gomock.Any(), cpn.ID()).Return(cpn, nil)

	view, err := s.queries.GetByID(ctx, cpn.ID())
	s.Require().NoError(err)
	s.Equal(cpn.ID(), view.ID)
	s.Equal("SAVE15", view.Code)
}
