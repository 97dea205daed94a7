package repository

import (
	"context"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// Los Get devuelven (nil, nil) si no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	// GetByCode busca por item_code, sku o barcode.
	GetByCode(ctx context.Context, code string) (*entity.Item, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Item, error)
	// Update modifica datos descriptivos, precios y estado; no toca cantidad ni imagen.
	Update(ctx context.Context, item *entity.Item) error
	// UpdateStock persiste cantidad, estado y costo (motor de inventario).
	UpdateStock(ctx context.Context, item *entity.Item) error
	UpdateImage(ctx context.Context, id, imagePath string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ItemFilter) ([]*entity.Item, int, error)
	// CountByCatalog cuenta ítems que usan la marca (y modelo/color si no están vacíos).
	CountByCatalog(ctx context.Context, brand, model, color string) (int, error)
	// RenameCatalog reescribe en los ítems el nombre de una marca, modelo o color; devuelve cuántos cambió.
	RenameCatalog(ctx context.Context, r CatalogRename) (int, error)
}

// Campos de ítem que copian un nombre del catálogo.
const (
	CatalogBrand = "brand"
	CatalogModel = "model"
	CatalogColor = "color"
)

// CatalogRename cambio de nombre a propagar. Brand acota un modelo a su marca y
// Brand+Model acotan un color. Las comparaciones ignoran mayúsculas.
type CatalogRename struct {
	Field string
	Old   string
	New   string
	Brand string
	Model string
}
