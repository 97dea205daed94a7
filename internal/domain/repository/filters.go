package repository

import "time"

// Page paginación común (limit/offset). Limit <= 0 significa sin límite.
type Page struct {
	Limit  int
	Offset int
}

// DateRange rango de fechas opcional [From, To).
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ItemFilter filtros del listado de ítems.
type ItemFilter struct {
	Search string // busca en item_code, sku, barcode, marca, modelo, color y descripción
	Status string
	Brand  string
	Model  string
	Color  string
	Sort   string // columna permitida; ver ItemSortColumns
	Order  string // asc | desc
	Page
}

// ItemSortColumns columnas por las que se puede ordenar el listado de ítems.
var ItemSortColumns = map[string]bool{
	"item_code":    true,
	"sku":          true,
	"brand":        true,
	"model":        true,
	"color":        true,
	"quantity":     true,
	"cost_price":   true,
	"retail_price": true,
	"status":       true,
	"created_at":   true,
	"updated_at":   true,
}

// MovementFilter filtros del libro de movimientos.
type MovementFilter struct {
	ItemID string
	Type   string
	DateRange
	Page
}

// DamagedFilter filtros de ítems dañados.
type DamagedFilter struct {
	ItemID string
	DateRange
	Page
}

// ActivityFilter filtros del log de actividad.
type ActivityFilter struct {
	Type   string
	ItemID string
	UserID string
	DateRange
	Page
}
