package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// StockInRequest body para POST /api/stock/in. UnitCost nil usa el costo actual del ítem.
type StockInRequest struct {
	ItemID    string           `json:"item_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"required,min=1"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason    string           `json:"reason" validate:"max=255"`
	BatchCode string           `json:"batch_code" validate:"omitempty,max=50"`
}

// StockOutRequest body para POST /api/stock/out.
type StockOutRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Reason   string `json:"reason" validate:"max=255"`
}

// DamagedRequest body para POST /api/damaged.
type DamagedRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Reason   string `json:"reason" validate:"required,max=255"`
}

// MovementListQuery query string de GET /api/stock/movements.
type MovementListQuery struct {
	ItemID string `query:"item_id"`
	Type   string `query:"type" validate:"omitempty,oneof=in out"`
	DateRangeQuery
	PageRequest
}

// DamagedListQuery query string de GET /api/damaged.
type DamagedListQuery struct {
	ItemID string `query:"item_id"`
	DateRangeQuery
	PageRequest
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID           string          `json:"id"`
	ItemID       string          `json:"item_id"`
	ItemCode     string          `json:"item_code,omitempty"`
	ItemSKU      string          `json:"sku_id,omitempty"`
	Type         string          `json:"type"`
	Quantity     int             `json:"quantity"`
	Reason       string          `json:"reason"`
	BalanceAfter int             `json:"balance_after"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	UserID       string          `json:"user_id"`
	UserName     string          `json:"user_name,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewMovementResponse mapea la entidad.
func NewMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		ItemID:       m.ItemID,
		ItemCode:     m.ItemCode,
		ItemSKU:      m.ItemSKU,
		Type:         string(m.Type),
		Quantity:     m.Quantity,
		Reason:       m.Reason,
		BalanceAfter: m.BalanceAfter,
		UnitCost:     m.UnitCost,
		TotalCost:    m.TotalCost,
		UserID:       m.UserID,
		UserName:     m.UserName,
		CreatedAt:    m.CreatedAt,
	}
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID                string          `json:"id"`
	ItemID            string          `json:"item_id"`
	BatchCode         string          `json:"batch_code"`
	QuantityReceived  int             `json:"quantity_received"`
	QuantityRemaining int             `json:"quantity_remaining"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	MovementID        string          `json:"movement_id"`
	CreatedAt         time.Time       `json:"created_at"`
}

// NewBatchResponse mapea la entidad.
func NewBatchResponse(b *entity.StockBatch) BatchResponse {
	return BatchResponse{
		ID:                b.ID,
		ItemID:            b.ItemID,
		BatchCode:         b.BatchCode,
		QuantityReceived:  b.QuantityReceived,
		QuantityRemaining: b.QuantityRemaining,
		UnitCost:          b.UnitCost,
		MovementID:        b.MovementID,
		CreatedAt:         b.CreatedAt,
	}
}

// DamagedResponse salida de un registro de daño.
type DamagedResponse struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	ItemCode   string    `json:"item_code,omitempty"`
	ItemSKU    string    `json:"sku_id,omitempty"`
	Quantity   int       `json:"quantity"`
	Reason     string    `json:"reason"`
	MovementID string    `json:"movement_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewDamagedResponse mapea la entidad.
func NewDamagedResponse(d *entity.DamagedItem) DamagedResponse {
	return DamagedResponse{
		ID:         d.ID,
		ItemID:     d.ItemID,
		ItemCode:   d.ItemCode,
		ItemSKU:    d.ItemSKU,
		Quantity:   d.Quantity,
		Reason:     d.Reason,
		MovementID: d.MovementID,
		UserID:     d.UserID,
		UserName:   d.UserName,
		CreatedAt:  d.CreatedAt,
	}
}

// BatchTakeResponse consumo de un lote en una asignación FIFO.
type BatchTakeResponse struct {
	BatchID   string          `json:"batch_id"`
	BatchCode string          `json:"batch_code"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Remaining int             `json:"remaining"`
}

// AllocationResponse resultado (o vista previa) de una asignación FIFO.
type AllocationResponse struct {
	Requested int                 `json:"requested"`
	Covered   int                 `json:"covered"`
	Unbatched int                 `json:"unbatched"`
	UnitCost  decimal.Decimal     `json:"unit_cost"`
	TotalCost decimal.Decimal     `json:"total_cost"`
	Takes     []BatchTakeResponse `json:"batches"`
}

// StockOperationResponse salida de entradas, salidas y daños.
type StockOperationResponse struct {
	Movement   MovementResponse    `json:"movement"`
	Item       ItemResponse        `json:"item"`
	Batch      *BatchResponse      `json:"batch,omitempty"`
	Allocation *AllocationResponse `json:"allocation,omitempty"`
	Damaged    *DamagedResponse    `json:"damaged,omitempty"`
}
