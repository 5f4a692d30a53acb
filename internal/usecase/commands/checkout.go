package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront-api/internal/domain/cart"
	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/infra/db"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/queries"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// OrderRecord is the write model persisted at checkout.
type OrderRecord struct {
	ID               uuid.UUID
	ItemCount        int
	Description      string
	Subtotal         decimal.Decimal
	QuantityDiscount decimal.Decimal
	CouponCode       *string
	CouponDiscount   decimal.Decimal
	Total            decimal.Decimal
	Status           string
	PaymentRef       *string
	CreatedAt        time.Time
}

// CouponRedeemer performs the durable increment-if-below-limit. It returns
// false, without error, when the usage limit was reached concurrently.
type CouponRedeemer interface {
	RedeemOnce(ctx context.Context, tx db.DBTX, code coupon.Code) (bool, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, order *OrderRecord) (uuid.UUID, error)
	MarkPaid(ctx context.Context, tx db.DBTX, id uuid.UUID, paymentRef string) error
}

// PaymentGateway is the external payment collaborator. It receives only
// the final amount in major currency units and a description string,
// never coupon internals.
type PaymentGateway interface {
	Charge(ctx context.Context, amount decimal.Decimal, description string) (string, error)
}

type CheckoutResult struct {
	OrderID    uuid.UUID          `json:"order_id"`
	Quote      *queries.QuoteView `json:"quote"`
	PaymentRef string             `json:"payment_ref"`
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, lines []cart.LineItem, couponCode string) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	pricing  queries.PricingQueries
	redeemer CouponRedeemer
	orders   OrderRepository
	payments PaymentGateway
	uow      shared.UnitOfWork
	pool     db.DBTX
}

func NewCheckoutUseCase(
	pricing queries.PricingQueries,
	redeemer CouponRedeemer,
	orders OrderRepository,
	payments PaymentGateway,
	uow shared.UnitOfWork,
	pool db.DBTX,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		pricing:  pricing,
		redeemer: redeemer,
		orders:   orders,
		payments: payments,
		uow:      uow,
		pool:     pool,
	}
}

// Checkout prices the cart, durably redeems the coupon and records the
// order. Coupon rejections never block the purchase: when validation (or
// the redemption race) fails, the order proceeds without the coupon and
// the rejection is surfaced in the returned quote.
func (u *checkoutUseCaseImpl) Checkout(ctx context.Context, lines []cart.LineItem, couponCode string) (*CheckoutResult, error) {
	quote, err := u.pricing.Quote(ctx, lines, couponCode)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Pedido de %d artículos", quote.ItemCount)

	var orderID uuid.UUID
	err = u.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		var redeemedCode *string
		if quote.Valid {
			code, codeErr := coupon.NewCode(couponCode)
			if codeErr != nil {
				return errs.Mark(codeErr, errs.ErrDomainValidation)
			}
			redeemed, redeemErr := u.redeemer.RedeemOnce(ctx, tx, code)
			if redeemErr != nil {
				return redeemErr
			}
			if redeemed {
				normalized := code.String()
				redeemedCode = &normalized
			} else {
				// Lost the race for the last redemption: the purchase still
				// goes through, just without the coupon.
				downgradeQuote(quote)
			}
		}

		record := toOrderRecord(quote, redeemedCode)
		id, createErr := u.orders.Create(ctx, tx, record)
		if createErr != nil {
			return createErr
		}
		orderID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	paymentRef, err := u.payments.Charge(ctx, quote.FinalTotal, description)
	if err != nil {
		slog.Error("payment charge failed", "order_id", orderID, "error", err.Error())
		return nil, errs.Mark(err, errs.ErrPaymentFailed)
	}

	if err := u.orders.MarkPaid(ctx, u.pool, orderID, paymentRef); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		OrderID:    orderID,
		Quote:      quote,
		PaymentRef: paymentRef,
	}, nil
}

func downgradeQuote(quote *queries.QuoteView) {
	rejection := coupon.RejectUsageLimit()
	quote.Valid = false
	quote.CouponDiscount = decimal.Zero
	quote.FinalTotal = quote.Subtotal.Sub(quote.QuantityDiscount)
	quote.RejectionReason = string(rejection.Reason)
	quote.Error = rejection.Message
}

func toOrderRecord(quote *queries.QuoteView, redeemedCode *string) *OrderRecord {
	return &OrderRecord{
		ItemCount:        quote.ItemCount,
		Description:      fmt.Sprintf("Pedido de %d artículos", quote.ItemCount),
		Subtotal:         quote.Subtotal,
		QuantityDiscount: quote.QuantityDiscount,
		CouponCode:       redeemedCode,
		CouponDiscount:   quote.CouponDiscount,
		Total:            quote.FinalTotal,
		Status:           OrderStatusPending,
	}
}
