package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// StockTotals valoriza el inventario a costo y a precio de venta.
func (r *AnalyticsRepo) StockTotals(ctx context.Context) (repository.StockTotals, error) {
	const query = `
	SELECT
	    COUNT(*)                                   AS total_items,
	    COALESCE(SUM(quantity), 0)                 AS total_units,
	    COALESCE(SUM(quantity * cost_price), 0)    AS cost_value,
	    COALESCE(SUM(quantity * retail_price), 0)  AS retail_value
	FROM items`

	var t repository.StockTotals
	err := r.q.QueryRow(ctx, query).Scan(&t.TotalItems, &t.TotalUnits, &t.CostValue, &t.RetailValue)
	if err != nil {
		return repository.StockTotals{}, fmt.Errorf("analytics.StockTotals: %w", err)
	}
	return t, nil
}

func (r *AnalyticsRepo) CountByStatus(ctx context.Context) (map[entity.ItemStatus]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM items GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountByStatus: %w", err)
	}
	defer rows.Close()

	out := make(map[entity.ItemStatus]int)
	for rows.Next() {
		var (
			status entity.ItemStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("analytics.CountByStatus scan: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) DamagedUnits(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM damaged_items WHERE created_at >= $1 AND created_at < $2`,
		from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics.DamagedUnits: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) MovementCount(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM stock_movements WHERE created_at >= $1 AND created_at < $2`,
		from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics.MovementCount: %w", err)
	}
	return n, nil
}

// MovementsPerDay agrupa por día calendario según el desfase horario de from.
func (r *AnalyticsRepo) MovementsPerDay(ctx context.Context, from, to time.Time) ([]repository.DailyMovement, error) {
	const query = `
	SELECT
	    (created_at AT TIME ZONE 'UTC' + make_interval(secs => $3))::date  AS day,
	    COALESCE(SUM(quantity) FILTER (WHERE type = 'in'), 0)           AS units_in,
	    COALESCE(SUM(quantity) FILTER (WHERE type = 'out'), 0)          AS units_out
	FROM stock_movements
	WHERE created_at >= $1 AND created_at < $2
	GROUP BY day
	ORDER BY day`

	loc := from.Location()
	_, offset := from.Zone()
	rows, err := r.q.Query(ctx, query, from, to, offset)
	if err != nil {
		return nil, fmt.Errorf("analytics.MovementsPerDay: %w", err)
	}
	defer rows.Close()

	var out []repository.DailyMovement
	for rows.Next() {
		var (
			day time.Time
			dm  repository.DailyMovement
		)
		if err := rows.Scan(&day, &dm.In, &dm.Out); err != nil {
			return nil, fmt.Errorf("analytics.MovementsPerDay scan: %w", err)
		}
		dm.Day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		out = append(out, dm)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) UnitsByBrand(ctx context.Context, limit int) ([]repository.LabelCount, error) {
	query := `
	SELECT brand, COALESCE(SUM(quantity), 0) AS units
	FROM items
	GROUP BY brand
	ORDER BY units DESC, brand`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.UnitsByBrand: %w", err)
	}
	defer rows.Close()

	var out []repository.LabelCount
	for rows.Next() {
		var lc repository.LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, fmt.Errorf("analytics.UnitsByBrand scan: %w", err)
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

// LowStock ítems con stock bajo o agotado, los de menos unidades primero.
func (r *AnalyticsRepo) LowStock(ctx context.Context, limit int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE status IN ($1, $2) ORDER BY quantity, sku`
	args := []any{entity.StatusLowStock, entity.StatusOutOfStock}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.LowStock: %w", err)
	}
	defer rows.Close()

	var out []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("analytics.LowStock scan: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
