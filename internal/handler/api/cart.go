package api

import (
	"errors"
	"net/http"

	reqdto "storefront-api/internal/handler/dto/request"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/commands"
	"storefront-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	pricingQueries   queries.PricingQueries
	checkoutCommands commands.CheckoutCommands
}

func NewCartHandler(pricingQueries queries.PricingQueries, checkoutCommands commands.CheckoutCommands) *CartHandler {
	return &CartHandler{
		pricingQueries:   pricingQueries,
		checkoutCommands: checkoutCommands,
	}
}

// @Summary Quote cart
// @Description Price a cart with an optional coupon code. A rejected coupon never fails the call.
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.QuoteRequest true "Cart lines and optional coupon"
// @Success 200 {object} queries.QuoteView
// @Failure 400 {object} map[string]string
// @Router /cart/quote [post]
func (h *CartHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	quote, err := h.pricingQueries.Quote(c.Request.Context(), req.ToDomain(), req.GetCouponCode())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, quote)
}

// @Summary Checkout cart
// @Description Create an order from the cart. A rejected or exhausted coupon downgrades the quote instead of blocking the order.
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.CheckoutRequest true "Cart lines and optional coupon"
// @Success 201 {object} commands.CheckoutResult
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.checkoutCommands.Checkout(c.Request.Context(), req.ToDomain(), req.GetCouponCode())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
		case errors.Is(err, errs.ErrPaymentFailed):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment could not be processed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}
