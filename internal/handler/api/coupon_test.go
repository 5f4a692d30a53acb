//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"storefront-api/internal/handler/api"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/commands"
	"storefront-api/internal/usecase/queries"
	"storefront-api/tests/common/builder"
	"storefront-api/tests/common/httptest"
	commandsmock "storefront-api/tests/mock/commands"
	queriesmock "storefront-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CouponHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockQueries  *queriesmock.MockCouponQueries
	mockCommands *commandsmock.MockCouponCommands
	handler      *api.CouponHandler
}

func (s *CouponHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockCouponQueries(s.mockCtrl)
	s.mockCommands = commandsmock.NewMockCouponCommands(s.mockCtrl)
	s.handler = api.NewCouponHandler(s.mockQueries, s.mockCommands)

	s.router.GET("/coupons", s.handler.ListPublic)
	s.router.GET("/admin/coupons", s.handler.ListAdmin)
	s.router.GET("/admin/coupons/:id", s.handler.Get)
	s.router.POST("/admin/coupons", s.handler.Create)
	s.router.PATCH("/admin/coupons/:id", s.handler.Update)
	s.router.PUT("/admin/coupons/:id/active", s.handler.SetActive)
	s.router.DELETE("/admin/coupons/:id", s.handler.Delete)
}

func (s *CouponHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCouponHandlerSuite(t *testing.T) {
	suite.Run(t, new(CouponHandlerTestSuite))
}

func (s *CouponHandlerTestSuite) TestListPublic() {
	s.Run("success: returns the public views", func() {
		s.mockQueries.EXPECT().ListPublic(gomock.Any()).Return([]*queries.CouponView{
			{
				Code:            "SAVE15",
				Type:            "percentage",
				Discount:        decimal.NewFromInt(15),
				MinimumPurchase: decimal.NewFromInt(100),
				ExpirationDate:  time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
			},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/coupons", nil, "")

		var body []queries.CouponView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal("SAVE15", body[0].Code)
	})

	s.Run("error: 500 on storage failure", func() {
		s.mockQueries.EXPECT().ListPublic(gomock.Any()).Return(nil, errs.New("boom"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/coupons", nil, "")
		httptest.AssertPublicErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *CouponHandlerTestSuite) TestCreate() {
	url := "/admin/coupons"
	reqBody := builder.NewCouponBuilder().BuildCreateRequestDTO()

	s.Run("success: returns 201 with the new id", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(id, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(id.String(), body["id"])
	})

	s.Run("error: 400 on unknown discount type", func() {
		bad := reqBody
		bad.Type = "bogus"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, bad, "")
		httptest.AssertPublicErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 409 on duplicate code", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errs.Mark(errs.New("duplicate"), errs.ErrDuplicateCoupon))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertPublicErrorResponse(s.T(), rec, http.StatusConflict, "already exists")
	})

	s.Run("error: 400 on bad expiration date", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, commands.ErrInvalidExpirationDate)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertPublicErrorResponse(s.T(), rec, http.StatusBadRequest, "expiration date")
	})

	s.Run("error: 422 on domain validation failure", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errs.Mark(errs.New("bad percent"), errs.ErrDomainValidation))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertPublicErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "validation failed")
	})
}

func (s *CouponHandlerTestSuite) TestGet() {
	id := uuid.New()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(&queries.AdminCouponView{ID: id, Code: "SAVE15"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/coupons/"+id.String(), nil, "")

		var body queries.AdminCouponView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("SAVE15", body.Code)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/coupons/not-a-uuid", nil, "")
		httptest.AssertPublicErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid coupon ID")
	})

	s.Run("error: 404 when missing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, errs.Mark(errs.New("no rows"), errs.ErrCouponNotFound))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/coupons/"+id.String(), nil, "")
		httptest.AssertPublicErrorResponse(s.T(), rec, http.StatusNotFound, "Coupon not found")
	})
}

func (s *CouponHandlerTestSuite) TestSetActive() {
	id := uuid.New()
	url := "/admin/coupons/" + id.String() + "/active"

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().SetActive(gomock.Any(), id, false).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"is_active": false}, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 when the flag is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{}, "")
		httptest.AssertPublicErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *CouponHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/coupons/"+id.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 when missing", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).
			Return(errs.Mark(errs.New("no rows"), errs.ErrCouponNotFound))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/coupons/"+id.String(), nil, "")
		httptest.AssertPublicErrorResponse(s.T(), rec, http.StatusNotFound, "Coupon not found")
	})
}
