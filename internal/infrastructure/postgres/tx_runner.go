package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventory-admin/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// maxTxAttempts intentos ante deadlock o fallo de serialización.
const maxTxAttempts = 3

// TxRunner ejecuta operaciones de stock dentro de una transacción read committed.
// Las filas de ítems y lotes se bloquean con FOR UPDATE desde los repos.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run llama a fn con repos atados a la tx; error de fn = rollback.
// Si PostgreSQL aborta la tx por deadlock (40P01) o serialización (40001) se reintenta entera.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = r.runOnce(ctx, fn)
		if err == nil || !retryable(err) || ctx.Err() != nil {
			return err
		}
	}
	return fmt.Errorf("transacción abortada tras %d intentos: %w", maxTxAttempts, err)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(inventory.TxRepos{
		Items:     NewItemRepository(tx),
		Movements: NewStockMovementRepository(tx),
		Batches:   NewStockBatchRepository(tx),
		Damaged:   NewDamagedItemRepository(tx),
		Activity:  NewActivityLogRepository(tx),
		Catalog:   NewCatalogRepository(tx),
	}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40P01" || pgErr.Code == "40001"
}
