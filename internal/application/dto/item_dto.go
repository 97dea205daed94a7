package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// CreateItemRequest body para POST /api/items. Códigos vacíos se generan.
type CreateItemRequest struct {
	ItemCode    string          `json:"item_id" validate:"omitempty,max=50"`
	SKU         string          `json:"sku_id" validate:"omitempty,max=80"`
	Barcode     string          `json:"barcode" validate:"omitempty,max=64"`
	Brand       string          `json:"brand" validate:"required,max=100"`
	Model       string          `json:"model" validate:"required,max=100"`
	Color       string          `json:"color" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=2000"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	RetailPrice decimal.Decimal `json:"retail_price"`
	Quantity    int             `json:"quantity" validate:"min=0"`
}

// UpdateItemRequest body para PUT /api/items/:id. La cantidad solo cambia con movimientos.
// Códigos vacíos conservan el valor actual; description y precios ausentes (nil) también.
type UpdateItemRequest struct {
	ItemCode    string           `json:"item_id" validate:"omitempty,max=50"`
	SKU         string           `json:"sku_id" validate:"omitempty,max=80"`
	Barcode     string           `json:"barcode" validate:"omitempty,max=64"`
	Brand       string           `json:"brand" validate:"required,max=100"`
	Model       string           `json:"model" validate:"required,max=100"`
	Color       string           `json:"color" validate:"required,max=100"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	RetailPrice *decimal.Decimal `json:"retail_price,omitempty"`
}

// UpsertItemRequest fila de importación. Los campos nil no venían en el archivo
// (columna ausente o celda vacía): en un alta valen cero y en una actualización se conservan.
type UpsertItemRequest struct {
	ItemCode    string
	SKU         string
	Barcode     string
	Brand       string
	Model       string
	Color       string
	Description *string
	CostPrice   *decimal.Decimal
	RetailPrice *decimal.Decimal
	Quantity    int
}

// CreateRequest datos para dar de alta la fila.
func (u UpsertItemRequest) CreateRequest() CreateItemRequest {
	in := CreateItemRequest{
		ItemCode: u.ItemCode,
		SKU:      u.SKU,
		Barcode:  u.Barcode,
		Brand:    u.Brand,
		Model:    u.Model,
		Color:    u.Color,
		Quantity: u.Quantity,
	}
	if u.Description != nil {
		in.Description = *u.Description
	}
	if u.CostPrice != nil {
		in.CostPrice = *u.CostPrice
	}
	if u.RetailPrice != nil {
		in.RetailPrice = *u.RetailPrice
	}
	return in
}

// UpdateRequest datos para actualizar un ítem existente; la cantidad se ignora.
func (u UpsertItemRequest) UpdateRequest() UpdateItemRequest {
	return UpdateItemRequest{
		ItemCode:    u.ItemCode,
		Barcode:     u.Barcode,
		Brand:       u.Brand,
		Model:       u.Model,
		Color:       u.Color,
		Description: u.Description,
		CostPrice:   u.CostPrice,
		RetailPrice: u.RetailPrice,
	}
}

// ItemListQuery query string de GET /api/items.
type ItemListQuery struct {
	Search string `query:"search"`
	Status string `query:"status" validate:"omitempty,oneof=out_of_stock low_stock ready_stock"`
	Brand  string `query:"brand"`
	Model  string `query:"model"`
	Color  string `query:"color"`
	Sort   string `query:"sort"`
	Order  string `query:"order" validate:"omitempty,oneof=asc desc"`
	PageRequest
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID          string          `json:"id"`
	ItemCode    string          `json:"item_id"`
	SKU         string          `json:"sku_id"`
	Barcode     string          `json:"barcode"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Color       string          `json:"color"`
	Description string          `json:"description"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	RetailPrice decimal.Decimal `json:"retail_price"`
	Quantity    int             `json:"quantity"`
	Status      string          `json:"status"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewItemResponse mapea la entidad; imagePath relativo se expone bajo /uploads.
func NewItemResponse(i *entity.Item) ItemResponse {
	r := ItemResponse{
		ID:          i.ID,
		ItemCode:    i.ItemCode,
		SKU:         i.SKU,
		Barcode:     i.Barcode,
		Brand:       i.Brand,
		Model:       i.Model,
		Color:       i.Color,
		Description: i.Description,
		CostPrice:   i.CostPrice,
		RetailPrice: i.RetailPrice,
		Quantity:    i.Quantity,
		Status:      string(i.Status),
		CreatedBy:   i.CreatedBy,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
	if i.ImagePath != "" {
		r.ImageURL = "/uploads/" + i.ImagePath
	}
	return r
}

// NewItemResponses mapea un slice.
func NewItemResponses(items []*entity.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, NewItemResponse(i))
	}
	return out
}
