package components

import (
	"storefront-api/internal/domain/cart"
	"storefront-api/internal/pkg/clock"
	"storefront-api/internal/pkg/config"
	"storefront-api/internal/usecase"
	"storefront-api/internal/usecase/commands"
	"storefront-api/internal/usecase/queries"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		NewPriceCalculator,
		fx.As(new(cart.PriceCalculator)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCouponUseCase,
		commands.NewCheckoutUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		usecase.NewAuthUseCase,
		queries.NewPricingQueries,
		queries.NewCouponQueries,
		queries.NewProductQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewPriceCalculator(cfg config.Config) (*cart.DefaultPriceCalculator, error) {
	rate, err := decimal.NewFromString(cfg.Store.QuantityDiscountRate)
	if err != nil {
		return nil, err
	}

	return &cart.DefaultPriceCalculator{
		QuantityDiscountRate: rate,
		QuantityThreshold:    cfg.Store.QuantityDiscountThreshold,
	}, nil
}
