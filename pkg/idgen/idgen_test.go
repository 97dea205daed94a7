package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_CodigosUnicos(t *testing.T) {
	g, err := New(1)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := g.ItemCode()
		require.False(t, seen[code], "código repetido: %s", code)
		seen[code] = true
	}
}

func TestGenerator_SKU(t *testing.T) {
	g, err := New(2)
	require.NoError(t, err)

	sku := g.SKU("Apple", "iPhone 15", "Negro")
	assert.True(t, strings.HasPrefix(sku, "APP-IPH-NEG-"), sku)

	sku = g.SKU("", "--", "x")
	assert.True(t, strings.HasPrefix(sku, "GEN-GEN-X-"), sku)
}

func TestGenerator_BarcodeNumerico(t *testing.T) {
	g, err := New(3)
	require.NoError(t, err)

	code := g.Barcode()
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "barcode debe ser numérico: %s", code)
	}
}

func TestNew_NodoInvalido(t *testing.T) {
	_, err := New(5000)
	assert.Error(t, err)
}
