package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/memory"
)

func newItem(code, sku, barcode string) *entity.Item {
	now := time.Now()
	return &entity.Item{
		ID:        uuid.New().String(),
		ItemCode:  code,
		SKU:       sku,
		Barcode:   barcode,
		Brand:     "Apple",
		Model:     "iPhone 15",
		Color:     "Negro",
		Status:    entity.StatusOutOfStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestItems_GetByCodePrioridad(t *testing.T) {
	ctx := context.Background()
	items := memory.NewStore().Items()

	// El mismo texto es barcode de uno, sku de otro e item_code de un tercero.
	byBarcode := newItem("ITM-1", "SKU-1", "X-100")
	bySKU := newItem("ITM-2", "X-100", "7700000000002")
	byCode := newItem("X-100", "SKU-3", "7700000000003")
	for _, it := range []*entity.Item{byBarcode, bySKU, byCode} {
		require.NoError(t, items.Create(ctx, it))
	}

	// Se repite para no depender del orden de iteración del mapa.
	for i := 0; i < 20; i++ {
		got, err := items.GetByCode(ctx, "X-100")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, byCode.ID, got.ID)
	}

	require.NoError(t, items.Delete(ctx, byCode.ID))
	got, err := items.GetByCode(ctx, "X-100")
	require.NoError(t, err)
	assert.Equal(t, bySKU.ID, got.ID)

	require.NoError(t, items.Delete(ctx, bySKU.ID))
	got, err = items.GetByCode(ctx, "X-100")
	require.NoError(t, err)
	assert.Equal(t, byBarcode.ID, got.ID)

	got, err = items.GetByCode(ctx, "nada")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestItems_UpdateDerivaEstadoDeLaCantidadGuardada(t *testing.T) {
	ctx := context.Background()
	items := memory.NewStore().Items()
	it := newItem("ITM-1", "SKU-1", "7700000000001")
	require.NoError(t, items.Create(ctx, it))

	stocked := *it
	stocked.Quantity = 50
	stocked.Status = entity.StatusReadyStock
	require.NoError(t, items.UpdateStock(ctx, &stocked))

	// Copia previa a la entrada: cantidad 0 y estado out_of_stock.
	it.Description = "edición"
	require.NoError(t, items.Update(ctx, it))

	got, err := items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Quantity)
	assert.Equal(t, entity.StatusReadyStock, got.Status)
	assert.Equal(t, "edición", got.Description)
}

func TestItems_RenameCatalog(t *testing.T) {
	ctx := context.Background()
	items := memory.NewStore().Items()
	a := newItem("ITM-1", "SKU-1", "7700000000001")
	b := newItem("ITM-2", "SKU-2", "7700000000002")
	b.Brand = "Samsung"
	for _, it := range []*entity.Item{a, b} {
		require.NoError(t, items.Create(ctx, it))
	}

	n, err := items.RenameCatalog(ctx, repository.CatalogRename{
		Field: repository.CatalogColor, Brand: "APPLE", Model: "iphone 15", Old: "negro", New: "Medianoche",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := items.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Medianoche", got.Color)
	got, err = items.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Negro", got.Color, "otra marca no cambia")

	_, err = items.RenameCatalog(ctx, repository.CatalogRename{Field: "status", Old: "a", New: "b"})
	assert.Error(t, err)
}
