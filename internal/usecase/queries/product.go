package queries

import (
	"context"

	"storefront-api/internal/pkg/category"
)

type ProductReadStore interface {
	List(ctx context.Context, categorySlug string) ([]*ProductView, error)
}

type ProductQueries interface {
	// List returns active catalog products, optionally filtered by a
	// category. The filter tolerates accents and known aliases.
	List(ctx context.Context, categoryFilter string) ([]*ProductView, error)
}

type productQueriesImpl struct {
	products ProductReadStore
}

func NewProductQueries(products ProductReadStore) ProductQueries {
	return &productQueriesImpl{products: products}
}

func (q *productQueriesImpl) List(ctx context.Context, categoryFilter string) ([]*ProductView, error) {
	return q.products.List(ctx, category.Canonical(categoryFilter))
}
