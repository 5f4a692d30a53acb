//go:build unit

package category_test

import (
	"testing"

	"storefront-api/internal/pkg/category"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Electrónica", "electronica"},
		{"  ROPA  ", "ropa"},
		{"Electrónica de Consumo", "electronica-de-consumo"},
		{"Niños & Bebés", "ninos-bebes"},
		{"__café__", "cafe"},
		{"", ""},
		{"---", ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, category.Normalize(c.in), "Normalize(%q)", c.in)
	}
}

func TestCanonical(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Electrónica", "electronica"},
		{"electronics", "electronica"},
		{"Tecnología", "electronica"},
		{"electro", "electronica"},
		{"Moda", "ropa"},
		{"Alimentos", "comida"},
		{"deportes", "deportes"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, category.Canonical(c.in), "Canonical(%q)", c.in)
	}
}

func TestMatch(t *testing.T) {
	t.Run("canonical equality", func(t *testing.T) {
		assert.True(t, category.Match("Electrónica", "electronics"))
		assert.True(t, category.Match("MODA", "ropa"))
	})

	t.Run("substring covers compound names", func(t *testing.T) {
		assert.True(t, category.Match("ropa-deportiva", "ropa"))
		assert.True(t, category.Match("ropa", "Ropa Deportiva"))
	})

	t.Run("different categories do not match", func(t *testing.T) {
		assert.False(t, category.Match("ropa", "comida"))
	})

	t.Run("empty never matches", func(t *testing.T) {
		assert.False(t, category.Match("", "ropa"))
		assert.False(t, category.Match("ropa", ""))
	})
}

func TestMatchAny(t *testing.T) {
	assert.True(t, category.MatchAny("electronica", []string{"comida", "Electrónica"}))
	assert.False(t, category.MatchAny("electronica", []string{"comida", "ropa"}))
	assert.False(t, category.MatchAny("electronica", nil))
}
