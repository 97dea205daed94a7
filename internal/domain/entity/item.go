package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus estado de stock derivado de la cantidad (ver inventory.DeriveStatus).
type ItemStatus string

const (
	StatusOutOfStock ItemStatus = "out_of_stock"
	StatusLowStock   ItemStatus = "low_stock"
	StatusReadyStock ItemStatus = "ready_stock"
)

// Valid indica si el estado es uno de los conocidos.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusOutOfStock, StatusLowStock, StatusReadyStock:
		return true
	}
	return false
}

// Item representa un artículo del catálogo. Marca/modelo/color se guardan
// desnormalizados como texto; Quantity solo cambia vía movimientos de stock.
type Item struct {
	ID          string
	ItemCode    string // código de negocio único (item_id en la API)
	SKU         string // único
	Barcode     string // único
	Brand       string
	Model       string
	Color       string
	Description string
	CostPrice   decimal.Decimal
	RetailPrice decimal.Decimal
	Quantity    int
	Status      ItemStatus
	ImagePath   string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockValue valor del stock a costo.
func (i *Item) StockValue() decimal.Decimal {
	return i.CostPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
