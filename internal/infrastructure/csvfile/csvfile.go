// Package csvfile lee y escribe tablas en CSV (UTF-8 o ISO-8859-1).
package csvfile

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventory-admin/internal/application/ports"
)

// utf8BOM hace que Excel abra el CSV como UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer implementa ports.TableWriter en CSV UTF-8 con BOM.
type Writer struct{}

// NewWriter construye el writer.
func NewWriter() *Writer { return &Writer{} }

func (Writer) ContentType() string { return "text/csv; charset=utf-8" }
func (Writer) Extension() string   { return "csv" }

// Write escribe la cabecera y las filas; título y subtítulo no van en CSV.
func (Writer) Write(w io.Writer, t ports.Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("csv: escribir filas: %w", err)
	}
	return nil
}

// Reader implementa ports.TableReader. Detecta ';' como separador si la cabecera lo usa.
type Reader struct {
	latin1 bool
}

// NewReader lector UTF-8 (con o sin BOM).
func NewReader() *Reader { return &Reader{} }

// NewLatin1Reader lector ISO-8859-1, típico de CSV guardados desde Excel en Windows.
func NewLatin1Reader() *Reader { return &Reader{latin1: true} }

func (r *Reader) Read(in io.Reader) ([][]string, error) {
	if r.latin1 {
		in = transform.NewReader(in, charmap.ISO8859_1.NewDecoder())
	}
	br := bufio.NewReader(in)
	if b, err := br.Peek(3); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(3)
	}
	first, _ := br.Peek(4096)
	if nl := bytes.IndexByte(first, '\n'); nl >= 0 {
		first = first[:nl]
	}

	cr := csv.NewReader(br)
	if bytes.Count(first, []byte{';'}) > bytes.Count(first, []byte{','}) {
		cr.Comma = ';'
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return rows, nil
}
