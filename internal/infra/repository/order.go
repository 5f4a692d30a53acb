package repository

import (
	"context"

	"storefront-api/internal/infra"
	"storefront-api/internal/infra/db"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/pkg/pgconv"
	"storefront-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, order *commands.OrderRecord) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO orders (
			item_count, description, subtotal, quantity_discount,
			coupon_code, coupon_discount, total, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		order.ItemCount,
		order.Description,
		pgconv.DecimalToNumeric(order.Subtotal),
		pgconv.DecimalToNumeric(order.QuantityDiscount),
		pgconv.StringPtrToPgtype(order.CouponCode),
		pgconv.DecimalToNumeric(order.CouponDiscount),
		pgconv.DecimalToNumeric(order.Total),
		order.Status,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create order", err)
	}
	return id, nil
}

func (r *OrderRepository) MarkPaid(ctx context.Context, tx db.DBTX, id uuid.UUID, paymentRef string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE orders SET status = $2, payment_ref = $3 WHERE id = $1`,
		id, commands.OrderStatusPaid, paymentRef)
	if err != nil {
		return infra.WrapRepoErr("failed to mark order paid", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.Mark(
			infra.WrapRepoErr("order not found", nil, infra.KindNotFound),
			errs.ErrOrderNotFound,
		)
	}
	return nil
}
