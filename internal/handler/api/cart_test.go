//go:build unit

package api_test

import (
	"net/http"
	"testing"

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

type CartHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockPricing  *queriesmock.MockPricingQueries
	mockCheckout *commandsmock.MockCheckoutCommands
	handler      *api.CartHandler
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockPricing = queriesmock.NewMockPricingQueries(s.mockCtrl)
	s.mockCheckout = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.handler = api.NewCartHandler(s.mockPricing, s.mockCheckout)

	s.router.POST("/cart/quote", s.handler.Quote)
	s.router.POST("/checkout", s.handler.Checkout)
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

func (s *CartHandlerTestSuite) TestQuote() {
	url := "/cart/quote"
	reqBody := builder.QuoteRequestDTO("SAVE15",
		builder.Line{Code: "P1", Price: "120.00", Quantity: 1},
	)

	s.Run("success: returns the quote view", func() {
		s.mockPricing.EXPECT().Quote(gomock.Any(), gomock.Any(), "SAVE15").
			Return(&queries.QuoteView{
				Valid:          true,
				Subtotal:       decimal.NewFromInt(120),
				CouponDiscount: decimal.NewFromInt(18),
				FinalTotal:     decimal.NewFromInt(102),
				ItemCount:      1,
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body queries.QuoteView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Valid)
		s.True(body.FinalTotal.Equal(decimal.NewFromInt(102)))
	})

	s.Run("success: a rejected coupon still returns 200", func() {
		s.mockPricing.EXPECT().Quote(gomock.Any(), gomock.Any(), "SAVE15").
			Return(&queries.QuoteView{
				Subtotal:        decimal.NewFromInt(90),
				FinalTotal:      decimal.NewFromInt(90),
				ItemCount:       1,
				RejectionReason: "below_minimum",
				Error:           "Compra mínima requerida: $100.00",
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body queries.QuoteView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Valid)
		s.Equal("below_minimum", body.RejectionReason)
	})

	s.Run("error: 400 on malformed body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"items": "nope"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 400 when items are missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 400 on empty cart", func() {
		s.mockPricing.EXPECT().Quote(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrEmptyCart)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Cart is empty")
	})

	s.Run("error: 500 on storage failure", func() {
		s.mockPricing.EXPECT().Quote(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.New("boom"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *CartHandlerTestSuite) TestCheckout() {
	url := "/checkout"
	reqBody := builder.CheckoutRequestDTO("SAVE15",
		builder.Line{Code: "P1", Price: "120.00", Quantity: 1},
	)

	s.Run("success: returns 201 with the order", func() {
		orderID := uuid.New()
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), gomock.Any(), "SAVE15").
			Return(&commands.CheckoutResult{
				OrderID:    orderID,
				Quote:      &queries.QuoteView{Valid: true, FinalTotal: decimal.NewFromInt(102)},
				PaymentRef: "pay_abc",
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body commands.CheckoutResult
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(orderID, body.OrderID)
		s.Equal("pay_abc", body.PaymentRef)
	})

	s.Run("error: 502 when the payment fails", func() {
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("card declined"), errs.ErrPaymentFailed))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Payment could not be processed")
	})

	s.Run("error: 400 on empty cart", func() {
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrEmptyCart)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Cart is empty")
	})
}
