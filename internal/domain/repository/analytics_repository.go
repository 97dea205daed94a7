package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// StockTotals agregados del catálogo.
type StockTotals struct {
	TotalItems  int
	TotalUnits  int
	CostValue   decimal.Decimal // sum(quantity * cost_price)
	RetailValue decimal.Decimal // sum(quantity * retail_price)
}

// DailyMovement unidades de entrada y salida de un día.
type DailyMovement struct {
	Day time.Time
	In  int
	Out int
}

// LabelCount par etiqueta/valor para gráficos.
type LabelCount struct {
	Label string
	Count int
}

// AnalyticsRepository consultas de lectura del dashboard. Read-only.
type AnalyticsRepository interface {
	StockTotals(ctx context.Context) (StockTotals, error)
	// CountByStatus devuelve el número de ítems por estado (estados sin ítems no aparecen).
	CountByStatus(ctx context.Context) (map[entity.ItemStatus]int, error)
	DamagedUnits(ctx context.Context, from, to time.Time) (int, error)
	MovementCount(ctx context.Context, from, to time.Time) (int, error)
	// MovementsPerDay días sin movimientos no aparecen; el use case rellena los huecos.
	MovementsPerDay(ctx context.Context, from, to time.Time) ([]DailyMovement, error)
	UnitsByBrand(ctx context.Context, limit int) ([]LabelCount, error)
	LowStock(ctx context.Context, limit int) ([]*entity.Item, error)
}
