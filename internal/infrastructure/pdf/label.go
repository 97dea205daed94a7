package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// Medidas de la etiqueta en milímetros.
const (
	labelWidth  = 100
	labelHeight = 50
)

// LabelRenderer implementa ports.LabelRenderer: etiqueta con marca/modelo/color,
// códigos, precio de venta y código de barras Code128.
type LabelRenderer struct{}

// NewLabelRenderer construye el renderer.
func NewLabelRenderer() *LabelRenderer { return &LabelRenderer{} }

// ItemLabel genera el PDF de una etiqueta. Sin barcode se codifica el SKU.
func (LabelRenderer) ItemLabel(item *entity.Item) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(labelWidth, labelHeight).
		WithLeftMargin(3).WithRightMargin(3).
		WithTopMargin(3).WithBottomMargin(2).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Etiqueta "+item.ItemCode, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(
		row.New(7).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s %s", item.Brand, item.Model), props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary,
			}),
		)),
		row.New(5).Add(
			col.New(7).Add(text.New(item.Color, props.Text{Size: 8, Color: colorGray})),
			col.New(5).Add(text.New("$"+formatMoney(item.RetailPrice.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
			})),
		),
		row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s  |  %s", item.ItemCode, item.SKU), props.Text{Size: 7, Color: colorGray}),
		)),
	)

	value := item.Barcode
	if value == "" {
		value = item.SKU
	}
	m.AddRows(
		row.New(18).Add(col.New(12).Add(code.NewBar(value, props.Barcode{Percent: 95, Center: true}))),
		row.New(4).Add(col.New(12).Add(text.New(value, props.Text{Size: 7, Align: align.Center}))),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}
