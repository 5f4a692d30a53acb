package cart

import (
	"errors"
	"strings"

	"storefront-api/internal/pkg/category"

	"github.com/shopspring/decimal"
)

var ErrEmptyIdentifier = errors.New("line item needs a product code or name")

// LineItem is one cart row. The cart itself is client-held: the server
// receives the full line list on every pricing call and never persists it.
type LineItem struct {
	ProductCode string
	Name        string
	UnitPrice   decimal.Decimal
	Quantity    int
	Category    string
}

// Key is the de-duplication identifier: the product code when present,
// otherwise the normalized name.
func (l LineItem) Key() string {
	if l.ProductCode != "" {
		return l.ProductCode
	}
	return strings.ToLower(strings.TrimSpace(l.Name))
}

// LineTotal is the line's contribution to the subtotal. Invalid lines
// (non-positive price or quantity) contribute zero instead of failing,
// favoring checkout availability over strict validation.
func (l LineItem) LineTotal() decimal.Decimal {
	if l.Quantity < 1 || l.UnitPrice.IsNegative() {
		return decimal.Zero
	}
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	lines []LineItem
}

func New() *Cart {
	return &Cart{}
}

// FromLines builds a cart from a client-supplied line list, merging
// duplicate identifiers the same way repeated "add to cart" calls would.
func FromLines(lines []LineItem) *Cart {
	c := New()
	for _, l := range lines {
		// Merge errors only occur for unidentifiable lines; drop those.
		_ = c.Add(l)
	}
	return c
}

// Add appends a line, merging quantities when the identifier already
// exists in the cart.
func (c *Cart) Add(item LineItem) error {
	if item.Key() == "" {
		return ErrEmptyIdentifier
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].Key() == item.Key() {
			c.lines[i].Quantity += item.Quantity
			return nil
		}
	}
	c.lines = append(c.lines, item)
	return nil
}

// UpdateQuantity sets a line's quantity in place; zero removes the line.
func (c *Cart) UpdateQuantity(key string, quantity int) {
	if quantity <= 0 {
		c.Remove(key)
		return
	}
	for i := range c.lines {
		if c.lines[i].Key() == key {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Remove(key string) {
	for i := range c.lines {
		if c.lines[i].Key() == key {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Lines() []LineItem {
	out := make([]LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.lines {
		if l.Quantity > 0 {
			count += l.Quantity
		}
	}
	return count
}

// Categories returns the distinct canonical categories present in the
// cart, for coupon category matching.
func (c *Cart) Categories() []string {
	seen := make(map[string]struct{}, len(c.lines))
	var out []string
	for _, l := range c.lines {
		if l.Category == "" {
			continue
		}
		slug := category.Canonical(l.Category)
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, l.Category)
	}
	return out
}
