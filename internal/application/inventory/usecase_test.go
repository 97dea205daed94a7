package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	appinv "github.com/jhoicas/inventory-admin/internal/application/inventory"
	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/memory"
)

const testUser = "user-1"

func newStockUseCase(t *testing.T) (*appinv.StockUseCase, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	uc := appinv.NewStockUseCase(s, s.Items(), s.Movements(), s.Batches(), s.Damaged())
	return uc, s
}

func seedItem(t *testing.T, s *memory.Store, qty int, cost string) *entity.Item {
	t.Helper()
	now := time.Now().Add(-time.Hour)
	item := &entity.Item{
		ID:          "item-1",
		ItemCode:    "ITM-1",
		SKU:         "APP-IPH-NEG-1",
		Barcode:     "1001",
		Brand:       "Apple",
		Model:       "iPhone 15",
		Color:       "Negro",
		CostPrice:   decimal.RequireFromString(cost),
		RetailPrice: decimal.NewFromInt(1500),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	item.Quantity = qty
	require.NoError(t, s.Items().Create(context.Background(), item))
	return item
}

func TestStockIn_CreaLoteYRecalculaCosto(t *testing.T) {
	uc, s := newStockUseCase(t)
	ctx := context.Background()
	seedItem(t, s, 0, "100")

	cost := decimal.NewFromInt(100)
	res, err := uc.StockIn(ctx, testUser, dto.StockInRequest{ItemID: "item-1", Quantity: 10, UnitCost: &cost})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Item.Quantity)
	assert.Equal(t, string(entity.StatusReadyStock), res.Item.Status)
	assert.Equal(t, 10, res.Movement.BalanceAfter)
	require.NotNil(t, res.Batch)
	assert.Equal(t, 10, res.Batch.QuantityRemaining)
	assert.Contains(t, res.Batch.BatchCode, "LOT-")

	cost2 := decimal.NewFromInt(200)
	res, err = uc.StockIn(ctx, testUser, dto.StockInRequest{ItemID: "item-1", Quantity: 10, UnitCost: &cost2, BatchCode: "PO-77"})
	require.NoError(t, err)
	assert.Equal(t, "150.00", res.Item.CostPrice.StringFixed(2))
	assert.Equal(t, "PO-77", res.Batch.BatchCode)

	batches, err := uc.ListBatches(ctx, "item-1", false)
	require.NoError(t, err)
	assert.Len(t, batches, 2)

	acts, total, err := s.Activity().List(ctx, repository.ActivityFilter{Type: entity.ActivityStockIn})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "item-1", acts[0].ItemID)
}

func TestStockIn_SinCostoUsaCostoDelItem(t *testing.T) {
	uc, s := newStockUseCase(t)
	seedItem(t, s, 0, "42.50")

	res, err := uc.StockIn(context.Background(), testUser, dto.StockInRequest{ItemID: "item-1", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "42.50", res.Batch.UnitCost.StringFixed(2))
	assert.Equal(t, string(entity.StatusLowStock), res.Item.Status)
}

func TestStockIn_Validaciones(t *testing.T) {
	uc, s := newStockUseCase(t)
	seedItem(t, s, 0, "1")
	ctx := context.Background()

	_, err := uc.StockIn(ctx, testUser, dto.StockInRequest{ItemID: "item-1", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	neg := decimal.NewFromInt(-1)
	_, err = uc.StockIn(ctx, testUser, dto.StockInRequest{ItemID: "item-1", Quantity: 1, UnitCost: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.StockIn(ctx, testUser, dto.StockInRequest{ItemID: "nope", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockOut_ConsumeFIFO(t *testing.T) {
	uc, s := newStockUseCase(t)
	ctx := context.Background()
	seedItem(t, s, 0, "0")

	c1, c2 := decimal.NewFromInt(10), decimal.NewFromInt(20)
	_, err := uc.StockIn(ctx, testUser, dto.StockInRequest{ItemID: "item-1", Quantity: 5, UnitCost: &c1})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = uc.StockIn(ctx, testUser, dto.StockInRequest{ItemID: "item-1", Quantity: 5, UnitCost: &c2})
	require.NoError(t, err)

	res, err := uc.StockOut(ctx, testUser, dto.StockOutRequest{ItemID: "item-1", Quantity: 7, Reason: "venta"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Item.Quantity)
	assert.Equal(t, string(entity.StatusLowStock), res.Item.Status)
	require.NotNil(t, res.Allocation)
	require.Len(t, res.Allocation.Takes, 2)
	assert.Equal(t, 5, res.Allocation.Takes[0].Quantity)
	assert.Equal(t, 2, res.Allocation.Takes[1].Quantity)
	assert.Equal(t, "90.00", res.Movement.TotalCost.StringFixed(2))
	assert.Equal(t, "out", res.Movement.Type)

	open, err := uc.ListBatches(ctx, "item-1", true)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, 3, open[0].QuantityRemaining)
}

func TestStockOut_StockInsuficienteNoModificaNada(t *testing.T) {
	uc, s := newStockUseCase(t)
	ctx := context.Background()
	seedItem(t, s, 0, "5")
	_, err := uc.StockIn(ctx, testUser, dto.StockInRequest{ItemID: "item-1", Quantity: 2})
	require.NoError(t, err)

	_, err = uc.StockOut(ctx, testUser, dto.StockOutRequest{ItemID: "item-1", Quantity: 3})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	item, err := s.Items().GetByID(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	_, total, err := s.Movements().List(ctx, repository.MovementFilter{ItemID: "item-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestStockOut_SinLotesValoraAlCostoDelItem(t *testing.T) {
	uc, s := newStockUseCase(t)
	// stock heredado sin lotes
	seedItem(t, s, 4, "25")

	res, err := uc.StockOut(context.Background(), testUser, dto.StockOutRequest{ItemID: "item-1", Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Allocation.Unbatched)
	assert.Equal(t, "100.00", res.Movement.TotalCost.StringFixed(2))
	assert.Equal(t, string(entity.StatusOutOfStock), res.Item.Status)
}

func TestReportDamaged(t *testing.T) {
	uc, s := newStockUseCase(t)
	ctx := context.Background()
	seedItem(t, s, 0, "10")
	_, err := uc.StockIn(ctx, testUser, dto.StockInRequest{ItemID: "item-1", Quantity: 12})
	require.NoError(t, err)

	_, err = uc.ReportDamaged(ctx, testUser, dto.DamagedRequest{ItemID: "item-1", Quantity: 1, Reason: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := uc.ReportDamaged(ctx, testUser, dto.DamagedRequest{ItemID: "item-1", Quantity: 2, Reason: "pantalla rota"})
	require.NoError(t, err)
	require.NotNil(t, res.Damaged)
	assert.Equal(t, res.Movement.ID, res.Damaged.MovementID)
	assert.Equal(t, appinv.DamagedReasonPrefix+"pantalla rota", res.Movement.Reason)
	assert.Equal(t, 10, res.Item.Quantity)

	list, err := uc.ListDamaged(ctx, dto.DamagedListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
	assert.Equal(t, "ITM-1", list.Items[0].ItemCode)

	_, total, err := s.Activity().List(ctx, repository.ActivityFilter{Type: entity.ActivityItemDamaged})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestPreviewFIFO_NoEscribe(t *testing.T) {
	uc, s := newStockUseCase(t)
	ctx := context.Background()
	seedItem(t, s, 0, "8")
	_, err := uc.StockIn(ctx, testUser, dto.StockInRequest{ItemID: "item-1", Quantity: 5})
	require.NoError(t, err)

	prev, err := uc.PreviewFIFO(ctx, "item-1", 8)
	require.NoError(t, err)
	assert.Equal(t, 5, prev.Covered)
	assert.Equal(t, 3, prev.Unbatched)

	open, err := uc.ListBatches(ctx, "item-1", true)
	require.NoError(t, err)
	assert.Equal(t, 5, open[0].QuantityRemaining)

	_, err = uc.PreviewFIFO(ctx, "item-1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMovements_FiltraYPagina(t *testing.T) {
	uc, s := newStockUseCase(t)
	ctx := context.Background()
	seedItem(t, s, 0, "1")
	for i := 0; i < 3; i++ {
		_, err := uc.StockIn(ctx, testUser, dto.StockInRequest{ItemID: "item-1", Quantity: 4})
		require.NoError(t, err)
	}
	_, err := uc.StockOut(ctx, testUser, dto.StockOutRequest{ItemID: "item-1", Quantity: 1})
	require.NoError(t, err)

	res, err := uc.ListMovements(ctx, dto.MovementListQuery{Type: "in", PageRequest: dto.PageRequest{Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Page.Total)
	assert.Len(t, res.Items, 2)

	_, err = uc.ListMovements(ctx, dto.MovementListQuery{DateRangeQuery: dto.DateRangeQuery{From: "ayer"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterOpeningStock(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	item := seedItem(t, s, 15, "3")

	err := s.Run(ctx, func(r appinv.TxRepos) error {
		return appinv.RegisterOpeningStock(ctx, r, item, testUser, time.Now())
	})
	require.NoError(t, err)

	batches, err := s.Batches().ListByItem(ctx, item.ID, true)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, 15, batches[0].QuantityReceived)
}
