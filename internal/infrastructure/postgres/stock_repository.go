package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

var (
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
	_ repository.StockBatchRepository    = (*StockBatchRepo)(nil)
	_ repository.DamagedItemRepository   = (*DamagedItemRepo)(nil)
)

// StockMovementRepo libro de movimientos. Solo inserta y lista.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, item_id, type, quantity, reason, balance_after, unit_cost, total_cost, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, m.Type, m.Quantity, m.Reason, m.BalanceAfter, m.UnitCost, m.TotalCost,
		nullable(m.UserID), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// List devuelve movimientos del más reciente al más antiguo, con código del ítem y nombre del usuario.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	var w where
	if f.ItemID != "" {
		w.add("m.item_id = ?", f.ItemID)
	}
	if f.Type != "" {
		w.add("m.type = ?", f.Type)
	}
	w.dateRange("m.created_at", f.DateRange)

	from := ` FROM stock_movements m
		JOIN items i ON i.id = m.item_id
		LEFT JOIN users u ON u.id = m.user_id`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+from+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	cond := w.sql()
	limit := w.page(f.Page)
	query := `
		SELECT m.id, m.item_id, m.type, m.quantity, m.reason, m.balance_after, m.unit_cost, m.total_cost,
			COALESCE(m.user_id::text, ''), m.created_at, i.item_code, i.sku,
			COALESCE(TRIM(u.first_name || ' ' || u.last_name), '')` + from + cond +
		` ORDER BY m.created_at DESC, m.id DESC` + limit
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Type, &m.Quantity, &m.Reason, &m.BalanceAfter,
			&m.UnitCost, &m.TotalCost, &m.UserID, &m.CreatedAt, &m.ItemCode, &m.ItemSKU, &m.UserName); err != nil {
			return nil, 0, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, total, rows.Err()
}

// StockBatchRepo lotes FIFO.
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador.
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

const batchColumns = `id, item_id, batch_code, quantity_received, quantity_remaining, unit_cost,
	COALESCE(movement_id::text, ''), COALESCE(user_id::text, ''), created_at`

func (r *StockBatchRepo) Create(ctx context.Context, b *entity.StockBatch) error {
	query := `
		INSERT INTO stock_batches (id, item_id, batch_code, quantity_received, quantity_remaining, unit_cost, movement_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.ItemID, b.BatchCode, b.QuantityReceived, b.QuantityRemaining, b.UnitCost,
		nullable(b.MovementID), nullable(b.UserID), b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock batch: %w", err)
	}
	return nil
}

// ListByItem lotes del ítem en orden FIFO.
func (r *StockBatchRepo) ListByItem(ctx context.Context, itemID string, onlyOpen bool) ([]*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM stock_batches WHERE item_id = $1`
	if onlyOpen {
		query += ` AND quantity_remaining > 0`
	}
	return r.list(ctx, query+` ORDER BY created_at, id`, itemID)
}

// ListOpenForUpdate bloquea los lotes con saldo; llamar dentro de la tx que los consume.
func (r *StockBatchRepo) ListOpenForUpdate(ctx context.Context, itemID string) ([]*entity.StockBatch, error) {
	return r.list(ctx, `SELECT `+batchColumns+` FROM stock_batches
		WHERE item_id = $1 AND quantity_remaining > 0
		ORDER BY created_at, id
		FOR UPDATE`, itemID)
}

func (r *StockBatchRepo) list(ctx context.Context, query, itemID string) ([]*entity.StockBatch, error) {
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list stock batches: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockBatch
	for rows.Next() {
		var b entity.StockBatch
		if err := rows.Scan(&b.ID, &b.ItemID, &b.BatchCode, &b.QuantityReceived, &b.QuantityRemaining,
			&b.UnitCost, &b.MovementID, &b.UserID, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock batch: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (r *StockBatchRepo) UpdateRemaining(ctx context.Context, id string, remaining int) error {
	tag, err := r.q.Exec(ctx, `UPDATE stock_batches SET quantity_remaining = $2 WHERE id = $1`, id, remaining)
	if err != nil {
		return fmt.Errorf("update stock batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DamagedItemRepo registros de unidades dañadas.
type DamagedItemRepo struct {
	q Querier
}

// NewDamagedItemRepository construye el adaptador.
func NewDamagedItemRepository(q Querier) *DamagedItemRepo {
	return &DamagedItemRepo{q: q}
}

func (r *DamagedItemRepo) Create(ctx context.Context, d *entity.DamagedItem) error {
	query := `
		INSERT INTO damaged_items (id, item_id, quantity, reason, movement_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.ItemID, d.Quantity, d.Reason, nullable(d.MovementID), nullable(d.UserID), d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert damaged item: %w", err)
	}
	return nil
}

func (r *DamagedItemRepo) List(ctx context.Context, f repository.DamagedFilter) ([]*entity.DamagedItem, int, error) {
	var w where
	if f.ItemID != "" {
		w.add("d.item_id = ?", f.ItemID)
	}
	w.dateRange("d.created_at", f.DateRange)

	from := ` FROM damaged_items d
		JOIN items i ON i.id = d.item_id
		LEFT JOIN users u ON u.id = d.user_id`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+from+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count damaged items: %w", err)
	}

	cond := w.sql()
	limit := w.page(f.Page)
	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.item_id, d.quantity, d.reason, COALESCE(d.movement_id::text, ''),
			COALESCE(d.user_id::text, ''), d.created_at, i.item_code, i.sku,
			COALESCE(TRIM(u.first_name || ' ' || u.last_name), '')`+from+cond+
		` ORDER BY d.created_at DESC, d.id DESC`+limit, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list damaged items: %w", err)
	}
	defer rows.Close()

	var out []*entity.DamagedItem
	for rows.Next() {
		var d entity.DamagedItem
		if err := rows.Scan(&d.ID, &d.ItemID, &d.Quantity, &d.Reason, &d.MovementID, &d.UserID,
			&d.CreatedAt, &d.ItemCode, &d.ItemSKU, &d.UserName); err != nil {
			return nil, 0, fmt.Errorf("scan damaged item: %w", err)
		}
		out = append(out, &d)
	}
	return out, total, rows.Err()
}
