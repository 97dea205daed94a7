package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/inventory"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

// DamagedReasonPrefix prefijo del motivo de los movimientos de salida por daño.
const DamagedReasonPrefix = "damaged: "

// StockUseCase registra entradas, salidas y daños de forma transaccional
// con bloqueo de fila (SELECT FOR UPDATE) sobre el ítem y sus lotes.
type StockUseCase struct {
	txRunner    TxRunner
	itemRepo    repository.ItemRepository
	movRepo     repository.StockMovementRepository
	batchRepo   repository.StockBatchRepository
	damagedRepo repository.DamagedItemRepository
	now         func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	batchRepo repository.StockBatchRepository,
	damagedRepo repository.DamagedItemRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:    txRunner,
		itemRepo:    itemRepo,
		movRepo:     movRepo,
		batchRepo:   batchRepo,
		damagedRepo: damagedRepo,
		now:         time.Now,
	}
}

// StockIn suma unidades al ítem, crea un lote nuevo y recalcula el costo promedio.
func (uc *StockUseCase) StockIn(ctx context.Context, userID string, in dto.StockInRequest) (*dto.StockOperationResponse, error) {
	if in.ItemID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	var out dto.StockOperationResponse

	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		item, err := r.Items.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		unitCost := item.CostPrice
		if in.UnitCost != nil {
			unitCost = *in.UnitCost
		}
		item.CostPrice = inventory.WeightedCost(item.Quantity, item.CostPrice, in.Quantity, unitCost)
		inventory.ApplyQuantity(item, item.Quantity+in.Quantity)
		item.UpdatedAt = now
		if err := r.Items.UpdateStock(ctx, item); err != nil {
			return err
		}

		reason := strings.TrimSpace(in.Reason)
		if reason == "" {
			reason = "stock in"
		}
		mov, batch, err := receive(ctx, r, item, in.Quantity, unitCost, reason, in.BatchCode, userID, now)
		if err != nil {
			return err
		}
		act := entity.NewActivity(entity.ActivityStockIn,
			fmt.Sprintf("Entrada de %d unidades de %s", in.Quantity, item.SKU),
			item.ID, userID, map[string]any{
				"quantity":      in.Quantity,
				"unit_cost":     unitCost.String(),
				"batch_code":    batch.BatchCode,
				"balance_after": item.Quantity,
			})
		act.ID = uuid.New().String()
		act.CreatedAt = now
		if err := r.Activity.Create(ctx, act); err != nil {
			return err
		}

		br := dto.NewBatchResponse(batch)
		out = dto.StockOperationResponse{
			Movement: dto.NewMovementResponse(mov),
			Item:     dto.NewItemResponse(item),
			Batch:    &br,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// StockOut descuenta unidades consumiendo lotes FIFO. Devuelve ErrInsufficientStock
// si la cantidad supera el stock del ítem.
func (uc *StockUseCase) StockOut(ctx context.Context, userID string, in dto.StockOutRequest) (*dto.StockOperationResponse, error) {
	if in.ItemID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = "stock out"
	}
	var out dto.StockOperationResponse
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		res, err := uc.dispatch(ctx, r, userID, in.ItemID, in.Quantity, reason, entity.ActivityStockOut)
		if err != nil {
			return err
		}
		out = *res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ReportDamaged registra unidades dañadas: salida FIFO con motivo "damaged: ..." más la fila de daño.
func (uc *StockUseCase) ReportDamaged(ctx context.Context, userID string, in dto.DamagedRequest) (*dto.StockOperationResponse, error) {
	reason := strings.TrimSpace(in.Reason)
	if in.ItemID == "" || in.Quantity <= 0 || reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var out dto.StockOperationResponse
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		res, err := uc.dispatch(ctx, r, userID, in.ItemID, in.Quantity, DamagedReasonPrefix+reason, entity.ActivityItemDamaged)
		if err != nil {
			return err
		}
		d := &entity.DamagedItem{
			ID:         uuid.New().String(),
			ItemID:     in.ItemID,
			Quantity:   in.Quantity,
			Reason:     reason,
			MovementID: res.Movement.ID,
			UserID:     userID,
			CreatedAt:  res.Movement.CreatedAt,
		}
		if err := r.Damaged.Create(ctx, d); err != nil {
			return err
		}
		dr := dto.NewDamagedResponse(d)
		res.Damaged = &dr
		out = *res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// dispatch salida común a StockOut y ReportDamaged; corre dentro de la tx del llamador.
func (uc *StockUseCase) dispatch(ctx context.Context, r TxRepos, userID, itemID string, qty int, reason, activityType string) (*dto.StockOperationResponse, error) {
	now := uc.now()
	item, err := r.Items.GetForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if qty > item.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	batches, err := r.Batches.ListOpenForUpdate(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	alloc, err := inventory.AllocateFIFO(batches, qty)
	if err != nil {
		return nil, err
	}
	for _, t := range alloc.Takes {
		if err := r.Batches.UpdateRemaining(ctx, t.BatchID, t.Remaining); err != nil {
			return nil, err
		}
	}

	inventory.ApplyQuantity(item, item.Quantity-qty)
	item.UpdatedAt = now
	if err := r.Items.UpdateStock(ctx, item); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		ItemID:       item.ID,
		Type:         entity.MovementOut,
		Quantity:     qty,
		Reason:       reason,
		BalanceAfter: item.Quantity,
		UnitCost:     alloc.UnitCost(item.CostPrice),
		TotalCost:    alloc.TotalCost(item.CostPrice),
		UserID:       userID,
		CreatedAt:    now,
	}
	if err := r.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Salida de %d unidades de %s", qty, item.SKU)
	if activityType == entity.ActivityItemDamaged {
		description = fmt.Sprintf("%d unidades de %s reportadas como dañadas", qty, item.SKU)
	}
	takes := make([]map[string]any, 0, len(alloc.Takes))
	for _, t := range alloc.Takes {
		takes = append(takes, map[string]any{"batch_code": t.BatchCode, "quantity": t.Quantity})
	}
	act := entity.NewActivity(activityType, description, item.ID, userID, map[string]any{
		"quantity":      qty,
		"reason":        reason,
		"batches":       takes,
		"unbatched":     alloc.Unbatched,
		"total_cost":    mov.TotalCost.String(),
		"balance_after": item.Quantity,
	})
	act.ID = uuid.New().String()
	act.CreatedAt = now
	if err := r.Activity.Create(ctx, act); err != nil {
		return nil, err
	}

	ar := allocationResponse(alloc, item.CostPrice)
	return &dto.StockOperationResponse{
		Movement:   dto.NewMovementResponse(mov),
		Item:       dto.NewItemResponse(item),
		Allocation: &ar,
	}, nil
}

// RegisterOpeningStock crea el movimiento y el lote iniciales de un ítem recién creado
// con cantidad > 0. Corre dentro de la tx del llamador.
func RegisterOpeningStock(ctx context.Context, r TxRepos, item *entity.Item, userID string, now time.Time) error {
	if item.Quantity <= 0 {
		return nil
	}
	_, _, err := receive(ctx, r, item, item.Quantity, item.CostPrice, "opening stock", "", userID, now)
	return err
}

// receive inserta el movimiento de entrada y su lote. item ya tiene la cantidad nueva.
func receive(ctx context.Context, r TxRepos, item *entity.Item, qty int, unitCost decimal.Decimal, reason, batchCode, userID string, now time.Time) (*entity.StockMovement, *entity.StockBatch, error) {
	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		ItemID:       item.ID,
		Type:         entity.MovementIn,
		Quantity:     qty,
		Reason:       reason,
		BalanceAfter: item.Quantity,
		UnitCost:     unitCost,
		TotalCost:    unitCost.Mul(decimal.NewFromInt(int64(qty))),
		UserID:       userID,
		CreatedAt:    now,
	}
	if err := r.Movements.Create(ctx, mov); err != nil {
		return nil, nil, err
	}
	batchID := uuid.New().String()
	if strings.TrimSpace(batchCode) == "" {
		batchCode = NewBatchCode(batchID, now)
	}
	batch := &entity.StockBatch{
		ID:                batchID,
		ItemID:            item.ID,
		BatchCode:         batchCode,
		QuantityReceived:  qty,
		QuantityRemaining: qty,
		UnitCost:          unitCost,
		MovementID:        mov.ID,
		UserID:            userID,
		CreatedAt:         now,
	}
	if err := r.Batches.Create(ctx, batch); err != nil {
		return nil, nil, err
	}
	return mov, batch, nil
}

// NewBatchCode código de lote legible: LOT-YYYYMMDD-XXXXXXXX.
func NewBatchCode(batchID string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(batchID, "-", ""))
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return "LOT-" + now.Format("20060102") + "-" + suffix
}

// PreviewFIFO calcula la asignación FIFO de una salida hipotética sin escribir nada.
func (uc *StockUseCase) PreviewFIFO(ctx context.Context, itemID string, qty int) (*dto.AllocationResponse, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	batches, err := uc.batchRepo.ListByItem(ctx, itemID, true)
	if err != nil {
		return nil, err
	}
	alloc, err := inventory.AllocateFIFO(batches, qty)
	if err != nil {
		return nil, err
	}
	ar := allocationResponse(alloc, item.CostPrice)
	return &ar, nil
}

// ListBatches lotes de un ítem, del más antiguo al más nuevo.
func (uc *StockUseCase) ListBatches(ctx context.Context, itemID string, onlyOpen bool) ([]dto.BatchResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	batches, err := uc.batchRepo.ListByItem(ctx, itemID, onlyOpen)
	if err != nil {
		return nil, err
	}
	inventory.OrderFIFO(batches)
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.NewBatchResponse(b))
	}
	return out, nil
}

// ListMovements libro de movimientos filtrado y paginado, más recientes primero.
func (uc *StockUseCase) ListMovements(ctx context.Context, q dto.MovementListQuery) (*dto.ListResponse[dto.MovementResponse], error) {
	q.DefaultPage()
	from, to, err := q.Bounds()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	list, total, err := uc.movRepo.List(ctx, repository.MovementFilter{
		ItemID:    q.ItemID,
		Type:      q.Type,
		DateRange: repository.DateRange{From: from, To: to},
		Page:      repository.Page{Limit: q.Limit, Offset: q.Offset},
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.NewMovementResponse(m))
	}
	res := dto.NewList(items, q.PageRequest, total)
	return &res, nil
}

// ListDamaged registros de daño filtrados y paginados, más recientes primero.
func (uc *StockUseCase) ListDamaged(ctx context.Context, q dto.DamagedListQuery) (*dto.ListResponse[dto.DamagedResponse], error) {
	q.DefaultPage()
	from, to, err := q.Bounds()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	list, total, err := uc.damagedRepo.List(ctx, repository.DamagedFilter{
		ItemID:    q.ItemID,
		DateRange: repository.DateRange{From: from, To: to},
		Page:      repository.Page{Limit: q.Limit, Offset: q.Offset},
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.DamagedResponse, 0, len(list))
	for _, d := range list {
		items = append(items, dto.NewDamagedResponse(d))
	}
	res := dto.NewList(items, q.PageRequest, total)
	return &res, nil
}

func allocationResponse(a inventory.Allocation, fallbackCost decimal.Decimal) dto.AllocationResponse {
	takes := make([]dto.BatchTakeResponse, 0, len(a.Takes))
	for _, t := range a.Takes {
		takes = append(takes, dto.BatchTakeResponse{
			BatchID:   t.BatchID,
			BatchCode: t.BatchCode,
			Quantity:  t.Quantity,
			UnitCost:  t.UnitCost,
			Remaining: t.Remaining,
		})
	}
	return dto.AllocationResponse{
		Requested: a.Requested,
		Covered:   a.Covered(),
		Unbatched: a.Unbatched,
		UnitCost:  a.UnitCost(fallbackCost),
		TotalCost: a.TotalCost(fallbackCost),
		Takes:     takes,
	}
}
