package pdf

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-admin/internal/application/ports"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

func TestTableWriter_GeneraPDF(t *testing.T) {
	var buf bytes.Buffer
	err := NewTableWriter().Write(&buf, ports.Table{
		Title:    "Inventario",
		Subtitle: "Generado hoy",
		Headers:  []string{"item_id", "brand", "quantity"},
		Rows: [][]string{
			{"ITM-1", "Samsung", "5"},
			{"ITM-2", "Apple", "0"},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestTableWriter_SinColumnas(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, NewTableWriter().Write(&buf, ports.Table{Title: "x"}))
}

func TestLabelRenderer(t *testing.T) {
	b, err := NewLabelRenderer().ItemLabel(&entity.Item{
		ItemCode:    "ITM-ABC",
		SKU:         "SAM-GAL-NEG-1",
		Barcode:     "1234567890123",
		Brand:       "Samsung",
		Model:       "Galaxy A15",
		Color:       "Negro",
		RetailPrice: decimal.NewFromInt(599000),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "999", formatMoney("999"))
	assert.Equal(t, "-1.500", formatMoney("-1500"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
