package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBatch lote recibido en una entrada; se consume FIFO por CreatedAt.
type StockBatch struct {
	ID                string
	ItemID            string
	BatchCode         string
	QuantityReceived  int
	QuantityRemaining int
	UnitCost          decimal.Decimal
	MovementID        string
	UserID            string
	CreatedAt         time.Time
}

// Open indica si el lote todavía tiene unidades.
func (b *StockBatch) Open() bool { return b.QuantityRemaining > 0 }
