package repository

import (
	"context"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del libro de movimientos (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, int, error)
}

// StockBatchRepository define el puerto de persistencia de lotes FIFO.
type StockBatchRepository interface {
	Create(ctx context.Context, batch *entity.StockBatch) error
	ListByItem(ctx context.Context, itemID string, onlyOpen bool) ([]*entity.StockBatch, error)
	// ListOpenForUpdate devuelve los lotes con saldo, del más antiguo al más nuevo, bloqueados.
	ListOpenForUpdate(ctx context.Context, itemID string) ([]*entity.StockBatch, error)
	UpdateRemaining(ctx context.Context, id string, remaining int) error
}

// DamagedItemRepository define el puerto de persistencia de ítems dañados.
type DamagedItemRepository interface {
	Create(ctx context.Context, d *entity.DamagedItem) error
	List(ctx context.Context, f DamagedFilter) ([]*entity.DamagedItem, int, error)
}
