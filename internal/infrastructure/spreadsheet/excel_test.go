package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-admin/internal/application/ports"
)

func TestWriterYReader(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter().Write(&buf, ports.Table{
		Title:   "Inventario",
		Headers: []string{"sku_id", "barcode", "quantity", "cost_price"},
		Rows: [][]string{
			{"A-1", "00123", "5", "1500.50"},
			{"B-2", "7701234567890", "0", "0.00"},
		},
	})
	require.NoError(t, err)

	rows, err := NewReader().Read(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"sku_id", "barcode", "quantity", "cost_price"}, rows[0])
	assert.Equal(t, "A-1", rows[1][0])
	assert.Equal(t, "00123", rows[1][1], "los ceros a la izquierda se conservan")
	assert.Equal(t, "5", rows[1][2])
	assert.Equal(t, "7701234567890", rows[2][1])
}

func TestReader_ArchivoInvalido(t *testing.T) {
	_, err := NewReader().Read(bytes.NewReader([]byte("no es un xlsx")))
	assert.Error(t, err)
}

func TestCellValue(t *testing.T) {
	assert.Equal(t, 5.0, cellValue("5"))
	assert.Equal(t, 0.5, cellValue("0.5"))
	assert.Equal(t, "00123", cellValue("00123"))
	assert.Equal(t, "7701234567890", cellValue("7701234567890"))
	assert.Equal(t, "1e5", cellValue("1e5"))
	assert.Equal(t, "ITM-1", cellValue("ITM-1"))
}
