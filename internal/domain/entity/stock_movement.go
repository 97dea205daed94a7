package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de stock.
type MovementType string

const (
	MovementIn  MovementType = "in"  // entrada
	MovementOut MovementType = "out" // salida
)

// StockMovement fila del libro de movimientos (solo se inserta, nunca se edita).
type StockMovement struct {
	ID           string
	ItemID       string
	Type         MovementType
	Quantity     int // siempre positivo; el signo lo da Type
	Reason       string
	BalanceAfter int
	UnitCost     decimal.Decimal
	TotalCost    decimal.Decimal
	UserID       string
	CreatedAt    time.Time

	// Solo lectura (JOIN en listados).
	ItemCode string
	ItemSKU  string
	UserName string
}
