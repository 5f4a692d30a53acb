//go:build unit

package cart_test

import (
	"testing"

	"storefront-api/internal/domain/cart"
	"storefront-api/tests/common/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	t.Run("merges duplicate product codes", func(t *testing.T) {
		c := cart.New()
		require.NoError(t, c.Add(cart.LineItem{ProductCode: "P1", UnitPrice: decimal.NewFromInt(10), Quantity: 1}))
		require.NoError(t, c.Add(cart.LineItem{ProductCode: "P1", UnitPrice: decimal.NewFromInt(10), Quantity: 2}))

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 3, lines[0].Quantity)
	})

	t.Run("falls back to normalized name as identifier", func(t *testing.T) {
		c := cart.New()
		require.NoError(t, c.Add(cart.LineItem{Name: "Laptop", UnitPrice: decimal.NewFromInt(900), Quantity: 1}))
		require.NoError(t, c.Add(cart.LineItem{Name: "  laptop ", UnitPrice: decimal.NewFromInt(900), Quantity: 1}))

		require.Len(t, c.Lines(), 1)
		assert.Equal(t, 2, c.Lines()[0].Quantity)
	})

	t.Run("rejects lines without any identifier", func(t *testing.T) {
		c := cart.New()
		err := c.Add(cart.LineItem{UnitPrice: decimal.NewFromInt(5), Quantity: 1})
		assert.ErrorIs(t, err, cart.ErrEmptyIdentifier)
		assert.True(t, c.IsEmpty())
	})

	t.Run("quantity below one is coerced to one", func(t *testing.T) {
		c := cart.New()
		require.NoError(t, c.Add(cart.LineItem{ProductCode: "P1", UnitPrice: decimal.NewFromInt(10), Quantity: 0}))
		assert.Equal(t, 1, c.Lines()[0].Quantity)
	})
}

func TestUpdateQuantity(t *testing.T) {
	c := cart.FromLines(builder.CartLines(
		builder.Line{Code: "P1", Price: "10.00", Quantity: 2},
		builder.Line{Code: "P2", Price: "5.00", Quantity: 1},
	))

	t.Run("sets quantity in place", func(t *testing.T) {
		c.UpdateQuantity("P1", 5)
		assert.Equal(t, 5, c.Lines()[0].Quantity)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		c.UpdateQuantity("P2", 0)
		assert.Len(t, c.Lines(), 1)
	})
}

func TestLineTotal(t *testing.T) {
	t.Run("price times quantity", func(t *testing.T) {
		l := cart.LineItem{ProductCode: "P1", UnitPrice: decimal.RequireFromString("10.50"), Quantity: 3}
		assert.True(t, l.LineTotal().Equal(decimal.RequireFromString("31.50")))
	})

	t.Run("invalid lines contribute zero", func(t *testing.T) {
		negative := cart.LineItem{ProductCode: "P1", UnitPrice: decimal.NewFromInt(-10), Quantity: 1}
		zeroQty := cart.LineItem{ProductCode: "P1", UnitPrice: decimal.NewFromInt(10), Quantity: 0}

		assert.True(t, negative.LineTotal().IsZero())
		assert.True(t, zeroQty.LineTotal().IsZero())
	})
}

func TestCategories(t *testing.T) {
	c := cart.FromLines(builder.CartLines(
		builder.Line{Code: "P1", Price: "10.00", Quantity: 1, Category: "Electrónica"},
		builder.Line{Code: "P2", Price: "5.00", Quantity: 1, Category: "electronica"},
		builder.Line{Code: "P3", Price: "8.00", Quantity: 1, Category: "ropa"},
		builder.Line{Code: "P4", Price: "2.00", Quantity: 1},
	))

	// Accent variants collapse into one canonical slug; empty categories
	// are skipped.
	cats := c.Categories()
	assert.Len(t, cats, 2)
}

func TestItemCount(t *testing.T) {
	c := cart.FromLines(builder.CartLines(
		builder.Line{Code: "P1", Price: "10.00", Quantity: 2},
		builder.Line{Code: "P2", Price: "5.00", Quantity: 3},
	))
	assert.Equal(t, 5, c.ItemCount())
}
