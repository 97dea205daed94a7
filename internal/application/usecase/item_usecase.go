package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/application/inventory"
	"github.com/jhoicas/inventory-admin/internal/application/ports"
	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	domaininv "github.com/jhoicas/inventory-admin/internal/domain/inventory"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

// ItemImageDir carpeta (relativa al store de uploads) de las imágenes de ítems.
const ItemImageDir = "items"

// ItemUseCase casos de uso CRUD para ítems. Cantidad y costo se manejan vía movimientos,
// salvo la cantidad inicial del alta que genera el lote de apertura.
type ItemUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ItemRepository
	activity repository.ActivityLogRepository
	catalog  *CatalogUseCase
	codes    ports.CodeGenerator
	images   ports.ImageProcessor
	uploads  ports.FileStore
	labels   ports.LabelRenderer
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	txRunner inventory.TxRunner,
	repo repository.ItemRepository,
	activity repository.ActivityLogRepository,
	catalog *CatalogUseCase,
	codes ports.CodeGenerator,
	images ports.ImageProcessor,
	uploads ports.FileStore,
	labels ports.LabelRenderer,
) *ItemUseCase {
	return &ItemUseCase{
		txRunner: txRunner,
		repo:     repo,
		activity: activity,
		catalog:  catalog,
		codes:    codes,
		images:   images,
		uploads:  uploads,
		labels:   labels,
	}
}

// Create da de alta un ítem. Los códigos vacíos se generan y el estado se deriva de la cantidad.
func (uc *ItemUseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Quantity < 0 || in.CostPrice.IsNegative() || in.RetailPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	names, err := uc.catalog.Ensure(ctx, in.Brand, in.Model, in.Color)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		ItemCode:    strings.TrimSpace(in.ItemCode),
		SKU:         strings.TrimSpace(in.SKU),
		Barcode:     strings.TrimSpace(in.Barcode),
		Brand:       names.Brand,
		Model:       names.Model,
		Color:       names.Color,
		Description: strings.TrimSpace(in.Description),
		CostPrice:   in.CostPrice,
		RetailPrice: in.RetailPrice,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	uc.fillCodes(item)
	domaininv.ApplyQuantity(item, in.Quantity)

	err = uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		if err := r.Items.Create(ctx, item); err != nil {
			return err
		}
		if err := inventory.RegisterOpeningStock(ctx, r, item, userID, now); err != nil {
			return err
		}
		return record(ctx, r.Activity, entity.ActivityItemCreated,
			fmt.Sprintf("Ítem creado: %s (%s %s %s)", item.SKU, item.Brand, item.Model, item.Color),
			item.ID, userID, map[string]any{"item_code": item.ItemCode, "quantity": item.Quantity})
	})
	if err != nil {
		return nil, err
	}
	res := dto.NewItemResponse(item)
	return &res, nil
}

// Upsert crea el ítem o, si su sku_id ya existe, actualiza solo los campos presentes en la fila.
// La cantidad solo se usa en altas; en ítems existentes cambia únicamente con movimientos.
func (uc *ItemUseCase) Upsert(ctx context.Context, userID string, in dto.UpsertItemRequest) (created bool, err error) {
	sku := strings.TrimSpace(in.SKU)
	if sku != "" {
		existing, err := uc.repo.GetBySKU(ctx, sku)
		if err != nil {
			return false, err
		}
		if existing != nil {
			_, err = uc.Update(ctx, userID, existing.ID, in.UpdateRequest())
			return false, err
		}
	}
	if _, err := uc.Create(ctx, userID, in.CreateRequest()); err != nil {
		return false, err
	}
	return true, nil
}

// GetByID obtiene un ítem; ErrNotFound si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewItemResponse(item)
	return &res, nil
}

// Lookup busca por item_code, sku o barcode (lector de códigos).
func (uc *ItemUseCase) Lookup(ctx context.Context, code string) (*dto.ItemResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	res := dto.NewItemResponse(item)
	return &res, nil
}

// Update modifica datos descriptivos y precios sobre la fila bloqueada del ítem, así una
// entrada o salida concurrente no se pisa. El estado se recalcula con la cantidad vigente.
func (uc *ItemUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if (in.CostPrice != nil && in.CostPrice.IsNegative()) || (in.RetailPrice != nil && in.RetailPrice.IsNegative()) {
		return nil, domain.ErrInvalidInput
	}
	names, err := uc.catalog.Ensure(ctx, in.Brand, in.Model, in.Color)
	if err != nil {
		return nil, err
	}

	var item *entity.Item
	err = uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		var err error
		item, err = r.Items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		changes := applyItemChanges(item, in, names)
		domaininv.ApplyQuantity(item, item.Quantity)
		item.UpdatedAt = time.Now()

		if err := r.Items.Update(ctx, item); err != nil {
			return err
		}
		return record(ctx, r.Activity, entity.ActivityItemUpdated, "Ítem actualizado: "+item.SKU, item.ID, userID, changes)
	})
	if err != nil {
		return nil, err
	}
	res := dto.NewItemResponse(item)
	return &res, nil
}

// applyItemChanges copia sobre item los campos informados y devuelve el detalle from/to.
func applyItemChanges(item *entity.Item, in dto.UpdateItemRequest, names Names) map[string]any {
	changes := map[string]any{}
	set := func(field string, dst *string, v string) {
		v = strings.TrimSpace(v)
		if v != "" && v != *dst {
			changes[field] = map[string]string{"from": *dst, "to": v}
			*dst = v
		}
	}
	set("item_id", &item.ItemCode, in.ItemCode)
	set("sku_id", &item.SKU, in.SKU)
	set("barcode", &item.Barcode, in.Barcode)
	set("brand", &item.Brand, names.Brand)
	set("model", &item.Model, names.Model)
	set("color", &item.Color, names.Color)
	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != item.Description {
			changes["description"] = true
			item.Description = d
		}
	}
	setPrice := func(field string, dst *decimal.Decimal, v *decimal.Decimal) {
		if v != nil && !v.Equal(*dst) {
			changes[field] = map[string]string{"from": dst.String(), "to": v.String()}
			*dst = *v
		}
	}
	setPrice("cost_price", &item.CostPrice, in.CostPrice)
	setPrice("retail_price", &item.RetailPrice, in.RetailPrice)
	return changes
}

// Delete elimina el ítem (sus movimientos, lotes y daños caen en cascada) y su imagen.
func (uc *ItemUseCase) Delete(ctx context.Context, userID, id string) error {
	item, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if item.ImagePath != "" {
		_ = uc.uploads.Remove(ctx, item.ImagePath)
	}
	return record(ctx, uc.activity, entity.ActivityItemDeleted,
		fmt.Sprintf("Ítem eliminado: %s (%s)", item.SKU, item.ItemCode), "", userID,
		map[string]any{"item_code": item.ItemCode, "sku_id": item.SKU, "quantity": item.Quantity})
}

// List listado filtrado, ordenado y paginado con total.
func (uc *ItemUseCase) List(ctx context.Context, q dto.ItemListQuery) (*dto.ListResponse[dto.ItemResponse], error) {
	q.DefaultPage()
	if q.Sort != "" && !repository.ItemSortColumns[q.Sort] {
		return nil, fmt.Errorf("%w: sort %q", domain.ErrInvalidInput, q.Sort)
	}
	if q.Status != "" && !entity.ItemStatus(q.Status).Valid() {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, q.Status)
	}
	list, total, err := uc.repo.List(ctx, repository.ItemFilter{
		Search: strings.TrimSpace(q.Search),
		Status: q.Status,
		Brand:  q.Brand,
		Model:  q.Model,
		Color:  q.Color,
		Sort:   q.Sort,
		Order:  strings.ToLower(q.Order),
		Page:   repository.Page{Limit: q.Limit, Offset: q.Offset},
	})
	if err != nil {
		return nil, err
	}
	res := dto.NewList(dto.NewItemResponses(list), q.PageRequest, total)
	return &res, nil
}

// UploadImage procesa la imagen (cuadrada, JPEG) y la guarda como items/<id>.jpg.
func (uc *ItemUseCase) UploadImage(ctx context.Context, userID, id string, r io.Reader) (*dto.ItemResponse, error) {
	item, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := uc.images.Process(r)
	if err != nil {
		return nil, err
	}
	rel := ItemImageDir + "/" + item.ID + ".jpg"
	if _, err := uc.uploads.Save(ctx, rel, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("guardar imagen: %w", err)
	}
	if err := uc.repo.UpdateImage(ctx, item.ID, rel); err != nil {
		return nil, err
	}
	item.ImagePath = rel
	if err := record(ctx, uc.activity, entity.ActivityItemImage, "Imagen actualizada: "+item.SKU, item.ID, userID,
		map[string]any{"bytes": len(data)}); err != nil {
		return nil, err
	}
	res := dto.NewItemResponse(item)
	return &res, nil
}

// DeleteImage quita la imagen del ítem.
func (uc *ItemUseCase) DeleteImage(ctx context.Context, userID, id string) (*dto.ItemResponse, error) {
	item, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.ImagePath == "" {
		res := dto.NewItemResponse(item)
		return &res, nil
	}
	if err := uc.uploads.Remove(ctx, item.ImagePath); err != nil {
		return nil, fmt.Errorf("borrar imagen: %w", err)
	}
	if err := uc.repo.UpdateImage(ctx, item.ID, ""); err != nil {
		return nil, err
	}
	item.ImagePath = ""
	if err := record(ctx, uc.activity, entity.ActivityItemImage, "Imagen eliminada: "+item.SKU, item.ID, userID, nil); err != nil {
		return nil, err
	}
	res := dto.NewItemResponse(item)
	return &res, nil
}

// Label devuelve la etiqueta PDF con el código de barras del ítem.
func (uc *ItemUseCase) Label(ctx context.Context, id string) ([]byte, *dto.ItemResponse, error) {
	item, err := uc.get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := uc.labels.ItemLabel(item)
	if err != nil {
		return nil, nil, fmt.Errorf("generar etiqueta: %w", err)
	}
	res := dto.NewItemResponse(item)
	return pdf, &res, nil
}

func (uc *ItemUseCase) get(ctx context.Context, id string) (*entity.Item, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (uc *ItemUseCase) fillCodes(item *entity.Item) {
	if item.ItemCode == "" {
		item.ItemCode = uc.codes.ItemCode()
	}
	if item.SKU == "" {
		item.SKU = uc.codes.SKU(item.Brand, item.Model, item.Color)
	}
	if item.Barcode == "" {
		item.Barcode = uc.codes.Barcode()
	}
}
