package shared

import (
	"context"

	"storefront-api/internal/infra/db"
)

// UnitOfWork wraps a function in a database transaction. Within retries on
// serialization failures; the one mutation that needs it is the atomic
// coupon redemption during checkout.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error
}
