package csvfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-admin/internal/application/ports"
)

func TestWriterYReader(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter().Write(&buf, ports.Table{
		Headers: []string{"sku_id", "description"},
		Rows:    [][]string{{"A-1", "Funda, negra"}, {"B-2", "Cargador \"rápido\""}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))

	rows, err := NewReader().Read(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"sku_id", "description"}, rows[0])
	assert.Equal(t, "Funda, negra", rows[1][1])
	assert.Equal(t, "Cargador \"rápido\"", rows[2][1])
}

func TestReader_PuntoYComa(t *testing.T) {
	rows, err := NewReader().Read(strings.NewReader("brand;model;color\nApple;iPhone 15;Azul\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Apple", "iPhone 15", "Azul"}, rows[1])
}

func TestLatin1Reader(t *testing.T) {
	// "Camión" en ISO-8859-1: ó = 0xF3
	in := []byte("brand,model,color\nCami\xf3n,X,Rojo\n")
	rows, err := NewLatin1Reader().Read(bytes.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "Camión", rows[1][0])
}
