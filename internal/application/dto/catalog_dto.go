package dto

import (
	"time"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// CatalogNameRequest body para crear o renombrar marca, modelo o color.
type CatalogNameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// BrandResponse salida de una marca.
type BrandResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ModelResponse salida de un modelo.
type ModelResponse struct {
	ID        string    `json:"id"`
	BrandID   string    `json:"brand_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ColorResponse salida de un color.
type ColorResponse struct {
	ID        string    `json:"id"`
	BrandID   string    `json:"brand_id"`
	ModelID   string    `json:"model_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBrandResponse(b *entity.Brand) BrandResponse {
	return BrandResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt}
}

func NewModelResponse(m *entity.ItemModel) ModelResponse {
	return ModelResponse{ID: m.ID, BrandID: m.BrandID, Name: m.Name, CreatedAt: m.CreatedAt}
}

func NewColorResponse(c *entity.Color) ColorResponse {
	return ColorResponse{ID: c.ID, BrandID: c.BrandID, ModelID: c.ModelID, Name: c.Name, CreatedAt: c.CreatedAt}
}
