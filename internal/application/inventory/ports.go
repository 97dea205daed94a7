package inventory

import (
	"context"

	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Items     repository.ItemRepository
	Movements repository.StockMovementRepository
	Batches   repository.StockBatchRepository
	Damaged   repository.DamagedItemRepository
	Activity  repository.ActivityLogRepository
	Catalog   repository.CatalogRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
