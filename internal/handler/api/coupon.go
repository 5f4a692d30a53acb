package api

import (
	"errors"
	"net/http"

	reqdto "storefront-api/internal/handler/dto/request"
	resdto "storefront-api/internal/handler/dto/response"
	"storefront-api/internal/handler/httperr"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/commands"
	"storefront-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CouponHandler struct {
	couponQueries  queries.CouponQueries
	couponCommands commands.CouponCommands
}

func NewCouponHandler(couponQueries queries.CouponQueries, couponCommands commands.CouponCommands) *CouponHandler {
	return &CouponHandler{
		couponQueries:  couponQueries,
		couponCommands: couponCommands,
	}
}

// @Summary List available coupons
// @Description List coupons currently redeemable by customers
// @Tags coupons
// @Produce json
// @Success 200 {array} queries.CouponView
// @Router /coupons [get]
func (h *CouponHandler) ListPublic(c *gin.Context) {
	coupons, err := h.couponQueries.ListPublic(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, coupons)
}

// @Summary List all coupons
// @Description List the full coupon catalog including inactive and exhausted coupons
// @Tags admin-coupons
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.AdminCouponView
// @Failure 401 {object} map[string]string
// @Router /admin/coupons [get]
func (h *CouponHandler) ListAdmin(c *gin.Context) {
	coupons, err := h.couponQueries.ListAdmin(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, coupons)
}

// @Summary Get coupon
// @Description Get a coupon by ID
// @Tags admin-coupons
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 200 {object} queries.AdminCouponView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/coupons/{id} [get]
func (h *CouponHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	coupon, err := h.couponQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, coupon)
}

// @Summary Create coupon
// @Description Create a new coupon
// @Tags admin-coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCouponRequest true "Coupon definition"
// @Success 201 {object} resdto.CouponCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	var req reqdto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.couponCommands.Create(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CouponCreatedResponse{ID: id})
}

// @Summary Update coupon
// @Description Partially update a coupon. Omitted fields keep their current value.
// @Tags admin-coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Param request body reqdto.UpdateCouponRequest true "Fields to update"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/coupons/{id} [patch]
func (h *CouponHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.couponCommands.Update(c.Request.Context(), id, req); err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Activate or deactivate coupon
// @Description Toggle the active flag on a coupon
// @Tags admin-coupons
// @Accept json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Param request body reqdto.SetCouponActiveRequest true "Active flag"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/coupons/{id}/active [put]
func (h *CouponHandler) SetActive(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req reqdto.SetCouponActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	if req.IsActive == nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("is_active is required"), "Invalid request format", nil)
		return
	}

	if err := h.couponCommands.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Delete coupon
// @Description Remove a coupon from the catalog
// @Tags admin-coupons
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/coupons/{id} [delete]
func (h *CouponHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.couponCommands.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CouponHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid coupon ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *CouponHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrCouponNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Coupon not found", nil)
	case errors.Is(err, errs.ErrDuplicateCoupon):
		httperr.AbortWithError(c, http.StatusConflict, err, "A coupon with this code already exists", nil)
	case errors.Is(err, commands.ErrInvalidExpirationDate):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid expiration date, expected YYYY-MM-DD", nil)
	case errors.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Coupon validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
