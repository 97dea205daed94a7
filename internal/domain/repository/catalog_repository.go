package repository

import (
	"context"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// CatalogRepository puerto de persistencia de la jerarquía marca > modelo > color.
// Los nombres se comparan sin distinguir mayúsculas.
type CatalogRepository interface {
	CreateBrand(ctx context.Context, b *entity.Brand) error
	GetBrand(ctx context.Context, id string) (*entity.Brand, error)
	GetBrandByName(ctx context.Context, name string) (*entity.Brand, error)
	ListBrands(ctx context.Context) ([]*entity.Brand, error)
	UpdateBrand(ctx context.Context, b *entity.Brand) error
	DeleteBrand(ctx context.Context, id string) error

	CreateModel(ctx context.Context, m *entity.ItemModel) error
	GetModel(ctx context.Context, id string) (*entity.ItemModel, error)
	GetModelByName(ctx context.Context, brandID, name string) (*entity.ItemModel, error)
	ListModels(ctx context.Context, brandID string) ([]*entity.ItemModel, error)
	UpdateModel(ctx context.Context, m *entity.ItemModel) error
	DeleteModel(ctx context.Context, id string) error

	CreateColor(ctx context.Context, c *entity.Color) error
	GetColor(ctx context.Context, id string) (*entity.Color, error)
	GetColorByName(ctx context.Context, modelID, name string) (*entity.Color, error)
	ListColors(ctx context.Context, modelID string) ([]*entity.Color, error)
	UpdateColor(ctx context.Context, c *entity.Color) error
	DeleteColor(ctx context.Context, id string) error
}
