package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// BatchTake cantidad consumida de un lote concreto.
type BatchTake struct {
	BatchID   string
	BatchCode string
	Quantity  int
	UnitCost  decimal.Decimal
	Remaining int // lo que queda en el lote después de consumir
}

// Allocation resultado de repartir una salida entre lotes FIFO.
type Allocation struct {
	Requested int
	Takes     []BatchTake
	Unbatched int             // unidades que ningún lote cubre
	Cost      decimal.Decimal // suma de take*unit_cost (sin incluir Unbatched)
}

// Covered unidades cubiertas por lotes.
func (a Allocation) Covered() int { return a.Requested - a.Unbatched }

// TotalCost costo total de la salida valorando las unidades sin lote a fallbackCost.
func (a Allocation) TotalCost(fallbackCost decimal.Decimal) decimal.Decimal {
	return a.Cost.Add(fallbackCost.Mul(decimal.NewFromInt(int64(a.Unbatched))))
}

// UnitCost costo unitario medio de la salida.
func (a Allocation) UnitCost(fallbackCost decimal.Decimal) decimal.Decimal {
	if a.Requested <= 0 {
		return decimal.Zero
	}
	return a.TotalCost(fallbackCost).Div(decimal.NewFromInt(int64(a.Requested))).Round(2)
}

// OrderFIFO ordena los lotes del más antiguo al más nuevo; empates por ID.
func OrderFIFO(batches []*entity.StockBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i], batches[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// AllocateFIFO reparte qty entre los lotes consumiendo primero los más antiguos.
// No modifica los lotes; el llamador aplica Takes. Los lotes vacíos se saltan.
func AllocateFIFO(batches []*entity.StockBatch, qty int) (Allocation, error) {
	if qty <= 0 {
		return Allocation{}, domain.ErrInvalidInput
	}
	ordered := make([]*entity.StockBatch, len(batches))
	copy(ordered, batches)
	OrderFIFO(ordered)

	alloc := Allocation{Requested: qty, Cost: decimal.Zero}
	need := qty
	for _, b := range ordered {
		if need == 0 {
			break
		}
		if b.QuantityRemaining <= 0 {
			continue
		}
		take := b.QuantityRemaining
		if take > need {
			take = need
		}
		alloc.Takes = append(alloc.Takes, BatchTake{
			BatchID:   b.ID,
			BatchCode: b.BatchCode,
			Quantity:  take,
			UnitCost:  b.UnitCost,
			Remaining: b.QuantityRemaining - take,
		})
		alloc.Cost = alloc.Cost.Add(b.UnitCost.Mul(decimal.NewFromInt(int64(take))))
		need -= take
	}
	alloc.Unbatched = need
	return alloc, nil
}
