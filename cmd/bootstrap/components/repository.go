package components

import (
	"storefront-api/internal/infra/db"
	"storefront-api/internal/infra/payment"
	"storefront-api/internal/infra/readstore"
	"storefront-api/internal/infra/repository"
	"storefront-api/internal/infra/uow"
	"storefront-api/internal/usecase"
	"storefront-api/internal/usecase/commands"
	"storefront-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		fx.Annotate(
			repository.NewCouponRepository,
			fx.As(new(commands.CouponWriteRepository)),
			fx.As(new(commands.CouponRedeemer)),
		),
		fx.Annotate(
			repository.NewOrderRepository,
			fx.As(new(commands.OrderRepository)),
		),
		fx.Annotate(
			payment.NewRecordingGateway,
			fx.As(new(commands.PaymentGateway)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewCouponReadStore,
			fx.As(new(queries.CouponReadStore)),
			fx.As(new(queries.CouponCatalogReadStore)),
		),
		fx.Annotate(
			readstore.NewProductReadStore,
			fx.As(new(queries.ProductReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
