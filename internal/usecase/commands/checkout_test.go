//go:build unit

package commands_test

import (
	"context"
	"testing"

	"storefront-api/internal/infra/db"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/commands"
	"storefront-api/internal/usecase/queries"
	"storefront-api/tests/common/builder"
	commandsmock "storefront-api/tests/mock/commands"
	queriesmock "storefront-api/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// passthroughUoW runs the closure without a real transaction.
type passthroughUoW struct{}

func (passthroughUoW) Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return fn(ctx, nil)
}

type CheckoutTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockPricing  *queriesmock.MockPricingQueries
	mockRedeemer *commandsmock.MockCouponRedeemer
	mockOrders   *commandsmock.MockOrderRepository
	mockPayments *commandsmock.MockPaymentGateway
	checkout     commands.CheckoutCommands
}

func (s *CheckoutTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockPricing = queriesmock.NewMockPricingQueries(s.mockCtrl)
	s.mockRedeemer = commandsmock.NewMockCouponRedeemer(s.mockCtrl)
	s.mockOrders = commandsmock.NewMockOrderRepository(s.mockCtrl)
	s.mockPayments = commandsmock.NewMockPaymentGateway(s.mockCtrl)
	s.checkout = commands.NewCheckoutUseCase(
		s.mockPricing, s.mockRedeemer, s.mockOrders, s.mockPayments, passthroughUoW{}, nil,
	)
}

func (s *CheckoutTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutSuite(t *testing.T) {
	suite.Run(t, new(CheckoutTestSuite))
}

func validQuote() *queries.QuoteView {
	return &queries.QuoteView{
		Valid:          true,
		Subtotal:       decimal.NewFromInt(120),
		CouponDiscount: decimal.NewFromInt(18),
		FinalTotal:     decimal.NewFromInt(102),
		ItemCount:      2,
	}
}

func (s *CheckoutTestSuite) TestCheckout() {
	ctx := context.Background()
	lines := builder.CartLines(builder.Line{Code: "P1", Price: "60.00", Quantity: 2})
	orderID := uuid.New()

	s.Run("valid coupon is redeemed and the order paid", func() {
		s.mockPricing.EXPECT().Quote(gomock.Any(), gomock.Any(), "SAVE15").Return(validQuote(), nil)
		s.mockRedeemer.EXPECT().RedeemOnce(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		s.mockOrders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, order *commands.OrderRecord) (uuid.UUID, error) {
				s.Require().NotNil(order.CouponCode)
				s.Equal("SAVE15", *order.CouponCode)
				s.True(order.Total.Equal(decimal.NewFromInt(102)))
				s.Equal(commands.OrderStatusPending, order.Status)
				return orderID, nil
			})
		s.mockPayments.EXPECT().Charge(gomock.Any(), gomock.Any(), "Pedido de 2 artículos").
			Return("pay_abc", nil)
		s.mockOrders.EXPECT().MarkPaid(gomock.Any(), gomock.Any(), orderID, "pay_abc").Return(nil)

		result, err := s.checkout.Checkout(ctx, lines, "SAVE15")
		s.Require().NoError(err)

		s.Equal(orderID, result.OrderID)
		s.Equal("pay_abc", result.PaymentRef)
		s.True(result.Quote.Valid)
	})

	s.Run("losing the redemption race downgrades the coupon", func() {
		s.mockPricing.EXPECT().Quote(gomock.Any(), gomock.Any(), "SAVE15").Return(validQuote(), nil)
		s.mockRedeemer.EXPECT().RedeemOnce(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		s.mockOrders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, order *commands.OrderRecord) (uuid.UUID, error) {
				s.Nil(order.CouponCode)
				s.True(order.CouponDiscount.IsZero())
				s.True(order.Total.Equal(decimal.NewFromInt(120)))
				return orderID, nil
			})
		s.mockPayments.EXPECT().Charge(gomock.Any(), gomock.Any(), gomock.Any()).Return("pay_def", nil)
		s.mockOrders.EXPECT().MarkPaid(gomock.Any(), gomock.Any(), orderID, "pay_def").Return(nil)

		result, err := s.checkout.Checkout(ctx, lines, "SAVE15")
		s.Require().NoError(err)

		s.False(result.Quote.Valid)
		s.Equal("usage_limit_reached", result.Quote.RejectionReason)
		s.True(result.Quote.FinalTotal.Equal(decimal.NewFromInt(120)))
	})

	s.Run("rejected coupon skips redemption entirely", func() {
		rejected := &queries.QuoteView{
			Subtotal:        decimal.NewFromInt(90),
			FinalTotal:      decimal.NewFromInt(90),
			ItemCount:       1,
			RejectionReason: "below_minimum",
			Error:           "Compra mínima requerida: $100.00",
		}
		s.mockPricing.EXPECT().Quote(gomock.Any(), gomock.Any(), "SAVE15").Return(rejected, nil)
		s.mockOrders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(orderID, nil)
		s.mockPayments.EXPECT().Charge(gomock.Any(), gomock.Any(), gomock.Any()).Return("pay_ghi", nil)
		s.mockOrders.EXPECT().MarkPaid(gomock.Any(), gomock.Any(), orderID, "pay_ghi").Return(nil)

		result, err := s.checkout.Checkout(ctx, lines, "SAVE15")
		s.Require().NoError(err)

		s.False(result.Quote.Valid)
		s.Equal("below_minimum", result.Quote.RejectionReason)
	})

	s.Run("empty cart propagates", func() {
		s.mockPricing.EXPECT().Quote(gomock.Any(), gomock.Any(), "").Return(nil, errs.ErrEmptyCart)

		_, err := s.checkout.Checkout(ctx, nil, "")
		s.ErrorIs(err, errs.ErrEmptyCart)
	})

	s.Run("payment failure is marked", func() {
		s.mockPricing.EXPECT().Quote(gomock.Any(), gomock.Any(), "").Return(&queries.QuoteView{
			Subtotal:   decimal.NewFromInt(50),
			FinalTotal: decimal.NewFromInt(50),
			ItemCount:  1,
		}, nil)
		s.mockOrders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(orderID, nil)
		s.mockPayments.EXPECT().Charge(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errs.New("card declined"))

		_, err := s.checkout.Checkout(ctx, lines, "")
		s.ErrorIs(err, errs.ErrPaymentFailed)
	})

	s.Run("redemption error aborts the order", func() {
		s.mockPricing.EXPECT().Quote(gomock.Any(), gomock.Any(), "SAVE15").Return(validQuote(), nil)
		s.mockRedeemer.EXPECT().RedeemOnce(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, errs.New("connection reset"))

		_, err := s.checkout.Checkout(ctx, lines, "SAVE15")
		s.Error(err)
	})
}
