// Package pdf genera reportes tabulares y etiquetas de ítems con Maroto v2.
//
// Layout del reporte (A4 horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO                              Subtítulo (fecha/rango) │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CABECERA (se repite en cada página)                         │
//	│  fila | fila | fila ...                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Total de filas                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"io"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventory-admin/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorZebra   = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// maxCellRunes recorta celdas largas; las filas tienen alto fijo.
const maxCellRunes = 48

// ── Writer ────────────────────────────────────────────────────────────────────

// TableWriter implementa ports.TableWriter en PDF.
type TableWriter struct{}

// NewTableWriter construye el writer.
func NewTableWriter() *TableWriter { return &TableWriter{} }

func (TableWriter) ContentType() string { return "application/pdf" }
func (TableWriter) Extension() string   { return "pdf" }

// Write genera el documento. Cada columna ocupa una unidad de la grilla.
func (TableWriter) Write(w io.Writer, t ports.Table) error {
	grid := len(t.Headers)
	if grid == 0 {
		return fmt.Errorf("pdf: tabla sin columnas")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(grid).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle(t.Title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(titleRow(t, grid))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if err := m.RegisterHeader(headerRow(t.Headers)); err != nil {
		return fmt.Errorf("pdf: cabecera: %w", err)
	}
	for i, r := range t.Rows {
		m.AddRows(dataRow(r, grid, i%2 == 1))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(grid).Add(
		text.New(fmt.Sprintf("Total de filas: %d", len(t.Rows)), props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	_, err = w.Write(doc.GetBytes())
	return err
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(t ports.Table, grid int) core.Row {
	left := grid / 2
	if left == 0 {
		left = 1
	}
	r := row.New(12).Add(col.New(left).Add(
		text.New(t.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2}),
	))
	if right := grid - left; right > 0 {
		r.Add(col.New(right).Add(
			text.New(t.Subtitle, props.Text{Size: 8, Align: align.Right, Color: colorGray, Top: 4}),
		))
	}
	return r
}

func headerRow(headers []string) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for _, h := range headers {
		cols = append(cols, col.New(1).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 7, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func dataRow(values []string, grid int, zebra bool) core.Row {
	cols := make([]core.Col, 0, grid)
	for i := 0; i < grid; i++ {
		v := ""
		if i < len(values) {
			v = truncate(values[i], maxCellRunes)
		}
		cols = append(cols, col.New(1).Add(text.New(v, props.Text{Size: 6.5, Top: 1, Left: 1, Right: 1})))
	}
	r := row.New(6).Add(cols...)
	if zebra {
		r.WithStyle(&props.Cell{BackgroundColor: colorZebra})
	}
	return r
}

// ── helpers ───────────────────────────────────────────────────────────────────

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
