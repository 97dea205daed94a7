// Package idgen genera los códigos de negocio de los ítems (item_code, sku_id, barcode)
// a partir de IDs snowflake, únicos por nodo sin coordinación con la DB.
package idgen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bwmarrin/snowflake"
)

// Generator envuelve un nodo snowflake.
type Generator struct {
	node *snowflake.Node
}

// New crea un generador para el nodo indicado (0-1023).
func New(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("idgen: nodo snowflake: %w", err)
	}
	return &Generator{node: node}, nil
}

// ItemCode devuelve un código de ítem, ej. "ITM-1A2B3C4D5E6F".
func (g *Generator) ItemCode() string {
	return "ITM-" + strings.ToUpper(g.node.Generate().Base36())
}

// SKU arma un SKU legible a partir de marca/modelo/color más un sufijo único,
// ej. "APP-IPH-BLA-1A2B3C4D5E6F".
func (g *Generator) SKU(brand, model, color string) string {
	parts := []string{abbrev(brand), abbrev(model), abbrev(color)}
	parts = append(parts, strings.ToUpper(g.node.Generate().Base36()))
	return strings.Join(parts, "-")
}

// Barcode devuelve un código numérico (Code128) con el ID snowflake en decimal.
func (g *Generator) Barcode() string {
	return g.node.Generate().String()
}

// abbrev toma los 3 primeros caracteres alfanuméricos en mayúscula; "GEN" si no hay.
func abbrev(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() >= 3 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "GEN"
	}
	return b.String()
}
