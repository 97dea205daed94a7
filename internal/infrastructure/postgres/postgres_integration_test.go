//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/application/inventory"
	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()
	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase("inventory_test"),
		tcpostgres.WithUsername("inventory"),
		tcpostgres.WithPassword("inventory"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	applied, err := Migrate(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init"}, applied)

	again, err := Migrate(ctx, pool)
	require.NoError(t, err)
	assert.Empty(t, again)
	return pool
}

func newTestItem(code, sku, barcode string) *entity.Item {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &entity.Item{
		ID:          uuid.New().String(),
		ItemCode:    code,
		SKU:         sku,
		Barcode:     barcode,
		Brand:       "Apple",
		Model:       "iPhone 15",
		Color:       "Negro",
		CostPrice:   decimal.NewFromInt(1000),
		RetailPrice: decimal.NewFromInt(1500),
		Status:      entity.StatusOutOfStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestPostgresRepositories(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	users := NewUserRepository(pool)
	admin := &entity.User{
		ID: uuid.New().String(), FirstName: "Ana", LastName: "Admin", Email: "ana@example.com",
		PasswordHash: "x", Role: entity.RoleAdmin, Status: entity.UserActive,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, users.Create(ctx, admin))
	dup := *admin
	dup.ID = uuid.New().String()
	dup.Email = "ANA@example.com"
	assert.ErrorIs(t, users.Create(ctx, &dup), domain.ErrEmailAlreadyExists)

	got, err := users.GetByEmail(ctx, "Ana@Example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, admin.ID, got.ID)
	n, err := users.CountActiveAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	t.Run("items", func(t *testing.T) {
		items := NewItemRepository(pool)
		it := newTestItem("ITM-1", "APP-IPH-NEG-1", "7700000000011")
		it.CreatedBy = admin.ID
		require.NoError(t, items.Create(ctx, it))
		assert.ErrorIs(t, items.Create(ctx, newTestItem("ITM-2", "APP-IPH-NEG-1", "7700000000028")), domain.ErrDuplicate)

		byCode, err := items.GetByCode(ctx, "7700000000011")
		require.NoError(t, err)
		require.NotNil(t, byCode)
		assert.Equal(t, it.ID, byCode.ID)
		assert.True(t, it.CostPrice.Equal(byCode.CostPrice))

		missing, err := items.GetByID(ctx, uuid.New().String())
		require.NoError(t, err)
		assert.Nil(t, missing)

		list, total, err := items.List(ctx, repository.ItemFilter{Search: "iphone", Page: repository.Page{Limit: 10}})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, list, 1)

		c, err := items.CountByCatalog(ctx, "apple", "IPHONE 15", "")
		require.NoError(t, err)
		assert.Equal(t, 1, c)

		n, err := items.RenameCatalog(ctx, repository.CatalogRename{
			Field: repository.CatalogModel, Brand: "APPLE", Old: "iphone 15", New: "iPhone 15 Pro",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		n, err = items.RenameCatalog(ctx, repository.CatalogRename{
			Field: repository.CatalogColor, Brand: "Samsung", Model: "iPhone 15 Pro", Old: "Negro", New: "Grafito",
		})
		require.NoError(t, err)
		assert.Zero(t, n, "otra marca no se toca")
		renamed, err := items.GetByID(ctx, it.ID)
		require.NoError(t, err)
		assert.Equal(t, "iPhone 15 Pro", renamed.Model)
		assert.Equal(t, "Negro", renamed.Color)

		// Update deriva el estado de la cantidad de la fila, no de la copia.
		require.NoError(t, pool.QueryRow(ctx, `UPDATE items SET quantity = 50 WHERE id = $1 RETURNING id`, it.ID).Scan(new(string)))
		renamed.Status = entity.StatusOutOfStock
		renamed.Description = "edición"
		require.NoError(t, items.Update(ctx, renamed))
		after, err := items.GetByID(ctx, it.ID)
		require.NoError(t, err)
		assert.Equal(t, 50, after.Quantity)
		assert.Equal(t, entity.StatusReadyStock, after.Status)
	})

	t.Run("stock in and out through tx runner", func(t *testing.T) {
		items := NewItemRepository(pool)
		it := newTestItem("ITM-3", "APP-IPH-NEG-3", "7700000000035")
		require.NoError(t, items.Create(ctx, it))

		uc := inventory.NewStockUseCase(NewTxRunner(pool), items,
			NewStockMovementRepository(pool), NewStockBatchRepository(pool), NewDamagedItemRepository(pool))
		cost := decimal.NewFromInt(900)
		_, err := uc.StockIn(ctx, admin.ID, dto.StockInRequest{ItemID: it.ID, Quantity: 5, UnitCost: &cost})
		require.NoError(t, err)
		out, err := uc.StockOut(ctx, admin.ID, dto.StockOutRequest{ItemID: it.ID, Quantity: 2, Reason: "venta"})
		require.NoError(t, err)
		assert.Equal(t, 3, out.Item.Quantity)

		_, err = uc.StockOut(ctx, admin.ID, dto.StockOutRequest{ItemID: it.ID, Quantity: 10})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		batches, err := NewStockBatchRepository(pool).ListByItem(ctx, it.ID, true)
		require.NoError(t, err)
		require.Len(t, batches, 1)
		assert.Equal(t, 3, batches[0].QuantityRemaining)

		movs, total, err := NewStockMovementRepository(pool).List(ctx, repository.MovementFilter{ItemID: it.ID})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, entity.MovementOut, movs[0].Type)
		assert.Equal(t, "Ana Admin", movs[0].UserName)

		totals, err := NewAnalyticsRepository(pool).StockTotals(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, totals.TotalUnits, 3)
	})

	t.Run("exports", func(t *testing.T) {
		repo := NewExportNotificationRepository(pool)
		n := &entity.ExportNotification{
			ID: uuid.New().String(), UserID: admin.ID, ExportType: entity.ExportItems,
			Format: entity.FormatCSV, Status: entity.ExportPending, CreatedAt: time.Now(),
		}
		require.NoError(t, repo.Create(ctx, n))
		unread, err := repo.CountUnread(ctx, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, unread)

		assert.ErrorIs(t, repo.MarkRead(ctx, n.ID, uuid.New().String()), domain.ErrNotFound)
		marked, err := repo.MarkAllRead(ctx, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, marked)

		failed, err := repo.FailPendingBefore(ctx, time.Now().Add(time.Minute), "interrumpida")
		require.NoError(t, err)
		assert.Equal(t, 1, failed)
		got, err := repo.GetByID(ctx, n.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.ExportFailed, got.Status)
		assert.Equal(t, "interrumpida", got.ErrorMessage)
		assert.NotNil(t, got.CompletedAt)

		require.NoError(t, repo.Delete(ctx, n.ID, admin.ID))
	})

	t.Run("catalog", func(t *testing.T) {
		repo := NewCatalogRepository(pool)
		b := &entity.Brand{ID: uuid.New().String(), Name: "Samsung", CreatedAt: time.Now(), UpdatedAt: time.Now()}
		require.NoError(t, repo.CreateBrand(ctx, b))
		assert.ErrorIs(t, repo.CreateBrand(ctx, &entity.Brand{ID: uuid.New().String(), Name: "SAMSUNG"}), domain.ErrDuplicate)
		m := &entity.ItemModel{ID: uuid.New().String(), BrandID: b.ID, Name: "Galaxy A15", CreatedAt: time.Now(), UpdatedAt: time.Now()}
		require.NoError(t, repo.CreateModel(ctx, m))
		require.NoError(t, repo.DeleteBrand(ctx, b.ID))
		gone, err := repo.GetModel(ctx, m.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}
