//go:build unit || e2e

package builder

import (
	"storefront-api/internal/domain/cart"
	reqdto "storefront-api/internal/handler/dto/request"

	"github.com/shopspring/decimal"
)

// Line is a terse literal form for cart fixtures.
type Line struct {
	Code     string
	Name     string
	Price    string
	Quantity int
	Category string
}

func CartLines(lines ...Line) []cart.LineItem {
	items := make([]cart.LineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, cart.LineItem{
			ProductCode: l.Code,
			Name:        l.Name,
			UnitPrice:   decimal.RequireFromString(l.Price),
			Quantity:    l.Quantity,
			Category:    l.Category,
		})
	}
	return items
}

func QuoteRequestDTO(couponCode string, lines ...Line) reqdto.QuoteRequest {
	req := reqdto.QuoteRequest{Items: lineItemDTOs(lines)}
	if couponCode != "" {
		req.CouponCode = &couponCode
	}
	return req
}

func CheckoutRequestDTO(couponCode string, lines ...Line) reqdto.CheckoutRequest {
	req := reqdto.CheckoutRequest{Items: lineItemDTOs(lines)}
	if couponCode != "" {
		req.CouponCode = &couponCode
	}
	return req
}

func lineItemDTOs(lines []Line) []reqdto.LineItemRequest {
	items := make([]reqdto.LineItemRequest, 0, len(lines))
	for _, l := range lines {
		price := decimal.RequireFromString(l.Price)
		items = append(items, reqdto.LineItemRequest{
			ProductCode: l.Code,
			Name:        l.Name,
			UnitPrice:   &price,
			Quantity:    l.Quantity,
			Category:    l.Category,
		})
	}
	return items
}
