//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-api/internal/handler/httperr"
	"storefront-api/internal/handler/middleware"
	"storefront-api/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type ErrorHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *ErrorHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())
}

func TestErrorHandlerSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}

func (s *ErrorHandlerTestSuite) TestPublicErrors() {
	s.Run("abort renders the public envelope", func() {
		s.router.GET("/abort", func(c *gin.Context) {
			httperr.AbortWithError(c, http.StatusConflict, errs.New("duplicate"), "A coupon with this code already exists", nil)
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/abort", nil)
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusConflict, rec.Code)
		s.JSONEq(`{"error":{"message":"A coupon with this code already exists"}}`, rec.Body.String())
	})

	s.Run("unwritten public error is drained by the middleware", func() {
		s.router.GET("/drain", func(c *gin.Context) {
			resp := httperr.Response{Status: http.StatusNotFound}
			resp.Error.Message = "Coupon not found"
			_ = c.Error(gin.Error{
				Err:  errs.New("not found"),
				Type: gin.ErrorTypePublic,
				Meta: resp,
			})
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/drain", nil)
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusNotFound, rec.Code)
		s.JSONEq(`{"error":{"message":"Coupon not found"}}`, rec.Body.String())
	})

	s.Run("unhandled request falls back to internal server error", func() {
		s.router.GET("/unhandled", func(c *gin.Context) {
			_ = c.Error(errs.New("boom"))
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/unhandled", nil)
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusInternalServerError, rec.Code)
		s.JSONEq(`{"error":{"message":"Internal server error"}}`, rec.Body.String())
	})
}
