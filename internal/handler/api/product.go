package api

import (
	"net/http"

	"storefront-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productQueries queries.ProductQueries
}

func NewProductHandler(productQueries queries.ProductQueries) *ProductHandler {
	return &ProductHandler{
		productQueries: productQueries,
	}
}

// @Summary List products
// @Description List active catalog products, optionally filtered by category
// @Tags products
// @Produce json
// @Param category query string false "Category filter, accent and spelling tolerant"
// @Success 200 {array} queries.ProductView
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productQueries.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, products)
}
