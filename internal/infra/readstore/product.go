package readstore

import (
	"context"

	"storefront-api/internal/infra"
	"storefront-api/internal/infra/db"
	"storefront-api/internal/pkg/pgconv"
	"storefront-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(db db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: db}
}

func (r *ProductReadStore) List(ctx context.Context, categorySlug string) ([]*queries.ProductView, error) {
	query := `
		SELECT id, code, name, category, unit_price, created_at
		FROM products
		WHERE is_active`
	var args []any
	if categorySlug != "" {
		query += ` AND category_slug = $1`
		args = append(args, categorySlug)
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	var products []*queries.ProductView
	for rows.Next() {
		var (
			id        uuid.UUID
			code      string
			name      string
			category  string
			unitPrice pgtype.Numeric
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &code, &name, &category, &unitPrice, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product row", err)
		}

		price, convErr := pgconv.DecimalFromNumeric(unitPrice)
		if convErr != nil {
			return nil, infra.WrapRepoErr("failed to convert product price", convErr)
		}

		products = append(products, &queries.ProductView{
			ID:        id,
			Code:      code,
			Name:      name,
			Category:  category,
			UnitPrice: price,
			CreatedAt: pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate product rows", err)
	}
	return products, nil
}
