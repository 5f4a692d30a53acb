package request

import (
	"strings"

	"storefront-api/internal/domain/cart"

	"github.com/shopspring/decimal"
)

type LineItemRequest struct {
	ProductCode string           `json:"product_code,omitempty"`
	Name        string           `json:"name,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Quantity    int              `json:"quantity" binding:"required,min=1"`
	Category    string           `json:"category,omitempty"`
}

func (r LineItemRequest) ToDomain() cart.LineItem {
	price := decimal.Zero
	if r.UnitPrice != nil {
		price = *r.UnitPrice
	}
	return cart.LineItem{
		ProductCode: strings.TrimSpace(r.ProductCode),
		Name:        strings.TrimSpace(r.Name),
		UnitPrice:   price,
		Quantity:    r.Quantity,
		Category:    strings.TrimSpace(r.Category),
	}
}

type QuoteRequest struct {
	Items      []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	CouponCode *string           `json:"coupon_code,omitempty"`
}

func (r QuoteRequest) GetCouponCode() string {
	if r.CouponCode == nil {
		return ""
	}
	return strings.TrimSpace(*r.CouponCode)
}

func (r QuoteRequest) ToDomain() []cart.LineItem {
	lines := make([]cart.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, item.ToDomain())
	}
	return lines
}

type CheckoutRequest struct {
	Items      []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	CouponCode *string           `json:"coupon_code,omitempty"`
}

func (r CheckoutRequest) GetCouponCode() string {
	if r.CouponCode == nil {
		return ""
	}
	return strings.TrimSpace(*r.CouponCode)
}

func (r CheckoutRequest) ToDomain() []cart.LineItem {
	lines := make([]cart.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, item.ToDomain())
	}
	return lines
}
