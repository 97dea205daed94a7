package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-admin/internal/application/analytics"
	"github.com/jhoicas/inventory-admin/internal/application/dto"
	appinv "github.com/jhoicas/inventory-admin/internal/application/inventory"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/memory"
)

func seed(t *testing.T, s *memory.Store, id, brand string, cost, retail int64) {
	t.Helper()
	now := time.Now()
	require.NoError(t, s.Items().Create(context.Background(), &entity.Item{
		ID: id, ItemCode: "C-" + id, SKU: "S-" + id, Barcode: "B-" + id,
		Brand: brand, Model: "M", Color: "C",
		CostPrice: decimal.NewFromInt(cost), RetailPrice: decimal.NewFromInt(retail),
		Status: entity.StatusOutOfStock, CreatedAt: now, UpdatedAt: now,
	}))
}

func TestDashboard_Summary(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seed(t, s, "a", "Apple", 10, 20)
	seed(t, s, "b", "Nokia", 5, 8)
	stock := appinv.NewStockUseCase(s, s.Items(), s.Movements(), s.Batches(), s.Damaged())

	_, err := stock.StockIn(ctx, "u", dto.StockInRequest{ItemID: "a", Quantity: 12})
	require.NoError(t, err)
	_, err = stock.StockIn(ctx, "u", dto.StockInRequest{ItemID: "b", Quantity: 4})
	require.NoError(t, err)
	_, err = stock.ReportDamaged(ctx, "u", dto.DamagedRequest{ItemID: "a", Quantity: 2, Reason: "golpe"})
	require.NoError(t, err)

	uc := analytics.NewDashboardUseCase(s.Analytics(), s.Activity())
	sum, err := uc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.TotalItems)
	assert.Equal(t, 14, sum.TotalUnits)
	assert.Equal(t, "120", sum.StockValueCost.String()) // 10*10 + 4*5
	assert.Equal(t, "232", sum.StockValueRetail.String())
	assert.Equal(t, 1, sum.StatusCounts.ReadyStock)
	assert.Equal(t, 1, sum.StatusCounts.LowStock)
	assert.Equal(t, 2, sum.DamagedUnitsMonth)
	assert.Equal(t, 3, sum.MovementsToday)
	require.Len(t, sum.LowStock, 1)
	assert.Equal(t, "b", sum.LowStock[0].ID)
	assert.Len(t, sum.RecentActivity, 3)
	assert.NotEmpty(t, sum.DateLabel)
}

func TestDashboard_ChartsRellenaDias(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seed(t, s, "a", "Apple", 1, 2)
	stock := appinv.NewStockUseCase(s, s.Items(), s.Movements(), s.Batches(), s.Damaged())
	_, err := stock.StockIn(ctx, "u", dto.StockInRequest{ItemID: "a", Quantity: 5})
	require.NoError(t, err)
	_, err = stock.StockOut(ctx, "u", dto.StockOutRequest{ItemID: "a", Quantity: 2})
	require.NoError(t, err)

	uc := analytics.NewDashboardUseCase(s.Analytics(), s.Activity())
	charts, err := uc.GetCharts(ctx, 7)
	require.NoError(t, err)
	require.Len(t, charts.Movements, 7)
	last := charts.Movements[6]
	assert.Equal(t, time.Now().Format(dto.DateLayout), last.Date)
	assert.Equal(t, 5, last.In)
	assert.Equal(t, 2, last.Out)
	assert.Zero(t, charts.Movements[0].In)

	require.Len(t, charts.Brands, 1)
	assert.Equal(t, "Apple", charts.Brands[0].Label)
	assert.Equal(t, 3, charts.Brands[0].Value)

	charts, err = uc.GetCharts(ctx, 365)
	require.NoError(t, err)
	assert.Equal(t, 90, charts.Days)
}
