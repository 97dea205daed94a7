// Package spreadsheet lee y escribe tablas XLSX con excelize.
package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventory-admin/internal/application/ports"
)

const sheetName = "Datos"

// Writer implementa ports.TableWriter en XLSX.
type Writer struct{}

// NewWriter construye el writer.
func NewWriter() *Writer { return &Writer{} }

func (Writer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (Writer) Extension() string { return "xlsx" }

// Write escribe la cabecera en negrita, congelada, con autofiltro y las filas debajo.
// Las celdas numéricas se guardan como número.
func (Writer) Write(w io.Writer, t ports.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for c, h := range t.Headers {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}
	if len(t.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
			return err
		}
		lastCol, _ := excelize.ColumnNumberToName(len(t.Headers))
		_ = f.SetColWidth(sheetName, "A", lastCol, 18)
		_ = f.SetPanes(sheetName, &excelize.Panes{Freeze: true, Split: false, XSplit: 0, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
		lastRow, _ := excelize.CoordinatesToCellName(len(t.Headers), len(t.Rows)+1)
		_ = f.AutoFilter(sheetName, "A1:"+lastRow, nil)
	}

	for r, row := range t.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheetName, cell, cellValue(v)); err != nil {
				return fmt.Errorf("xlsx: celda %s: %w", cell, err)
			}
		}
	}
	_, err = f.WriteTo(w)
	return err
}

// cellValue convierte a número solo valores cortos sin ceros a la izquierda,
// así códigos como "00123" o un barcode EAN-13 quedan como texto.
func cellValue(v string) any {
	if v == "" || (len(v) > 1 && v[0] == '0' && v[1] != '.') || len(v) > 10 {
		return v
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil && !strings.ContainsAny(v, "eE") {
		return n
	}
	return v
}

// Reader implementa ports.TableReader leyendo la primera hoja.
type Reader struct{}

// NewReader construye el reader.
func NewReader() *Reader { return &Reader{} }

func (Reader) Read(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx: sin hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer filas: %w", err)
	}
	return rows, nil
}
