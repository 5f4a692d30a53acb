package components

import (
	"storefront-api/internal/handler"
	"storefront-api/internal/handler/api"
	"storefront-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCartHandler,
		api.NewCouponHandler,
		api.NewProductHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
