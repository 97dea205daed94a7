package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/application/inventory"
	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

// CatalogUseCase administra la jerarquía marca > modelo > color.
// Los ítems guardan el texto de cada nivel: renombrar lo reescribe en la misma tx y
// borrar exige que ningún ítem lo use.
type CatalogUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.CatalogRepository
	items    repository.ItemRepository
	activity repository.ActivityLogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	txRunner inventory.TxRunner,
	repo repository.CatalogRepository,
	items repository.ItemRepository,
	activity repository.ActivityLogRepository,
) *CatalogUseCase {
	return &CatalogUseCase{txRunner: txRunner, repo: repo, items: items, activity: activity}
}

// Names nombres canónicos de una combinación marca/modelo/color.
type Names struct {
	Brand string
	Model string
	Color string
}

// Ensure registra marca, modelo y color si no existen ("first or create") y devuelve
// los nombres tal como están guardados.
func (uc *CatalogUseCase) Ensure(ctx context.Context, brand, model, color string) (Names, error) {
	brand, model, color = clean(brand), clean(model), clean(color)
	if brand == "" || model == "" || color == "" {
		return Names{}, domain.ErrInvalidInput
	}
	now := time.Now()

	b, err := uc.repo.GetBrandByName(ctx, brand)
	if err != nil {
		return Names{}, err
	}
	if b == nil {
		b = &entity.Brand{ID: uuid.New().String(), Name: brand, CreatedAt: now, UpdatedAt: now}
		if err := uc.repo.CreateBrand(ctx, b); err != nil {
			return Names{}, err
		}
	}
	m, err := uc.repo.GetModelByName(ctx, b.ID, model)
	if err != nil {
		return Names{}, err
	}
	if m == nil {
		m = &entity.ItemModel{ID: uuid.New().String(), BrandID: b.ID, Name: model, CreatedAt: now, UpdatedAt: now}
		if err := uc.repo.CreateModel(ctx, m); err != nil {
			return Names{}, err
		}
	}
	c, err := uc.repo.GetColorByName(ctx, m.ID, color)
	if err != nil {
		return Names{}, err
	}
	if c == nil {
		c = &entity.Color{ID: uuid.New().String(), BrandID: b.ID, ModelID: m.ID, Name: color, CreatedAt: now, UpdatedAt: now}
		if err := uc.repo.CreateColor(ctx, c); err != nil {
			return Names{}, err
		}
	}
	return Names{Brand: b.Name, Model: m.Name, Color: c.Name}, nil
}

// ListBrands marcas ordenadas por nombre.
func (uc *CatalogUseCase) ListBrands(ctx context.Context) ([]dto.BrandResponse, error) {
	list, err := uc.repo.ListBrands(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.NewBrandResponse(b))
	}
	return out, nil
}

// CreateBrand crea una marca; ErrDuplicate si el nombre ya existe.
func (uc *CatalogUseCase) CreateBrand(ctx context.Context, userID string, in dto.CatalogNameRequest) (*dto.BrandResponse, error) {
	name := clean(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	b := &entity.Brand{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.CreateBrand(ctx, b); err != nil {
		return nil, err
	}
	uc.log(ctx, userID, "Marca creada: "+name, map[string]any{"brand_id": b.ID, "action": "create"})
	res := dto.NewBrandResponse(b)
	return &res, nil
}

// UpdateBrand renombra una marca y la reescribe en sus ítems.
func (uc *CatalogUseCase) UpdateBrand(ctx context.Context, userID, id string, in dto.CatalogNameRequest) (*dto.BrandResponse, error) {
	name := clean(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.repo.GetBrand(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	old := b.Name
	b.Name = name
	b.UpdatedAt = time.Now()
	n, err := uc.rename(ctx, repository.CatalogRename{Field: repository.CatalogBrand, Old: old, New: name},
		func(r repository.CatalogRepository) error { return r.UpdateBrand(ctx, b) })
	if err != nil {
		return nil, err
	}
	uc.log(ctx, userID, fmt.Sprintf("Marca renombrada: %s -> %s", old, name),
		map[string]any{"brand_id": id, "action": "update", "items": n})
	res := dto.NewBrandResponse(b)
	return &res, nil
}

// DeleteBrand borra la marca con sus modelos y colores. ErrConflict si algún ítem la usa.
func (uc *CatalogUseCase) DeleteBrand(ctx context.Context, userID, id string) error {
	b, err := uc.repo.GetBrand(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrNotFound
	}
	if err := uc.ensureUnused(ctx, b.Name, "", ""); err != nil {
		return err
	}
	if err := uc.repo.DeleteBrand(ctx, id); err != nil {
		return err
	}
	uc.log(ctx, userID, "Marca eliminada: "+b.Name, map[string]any{"brand_id": id, "action": "delete"})
	return nil
}

// ListModels modelos de una marca.
func (uc *CatalogUseCase) ListModels(ctx context.Context, brandID string) ([]dto.ModelResponse, error) {
	b, err := uc.repo.GetBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListModels(ctx, brandID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ModelResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewModelResponse(m))
	}
	return out, nil
}

// CreateModel crea un modelo dentro de una marca.
func (uc *CatalogUseCase) CreateModel(ctx context.Context, userID, brandID string, in dto.CatalogNameRequest) (*dto.ModelResponse, error) {
	name := clean(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.repo.GetBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	m := &entity.ItemModel{ID: uuid.New().String(), BrandID: brandID, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.CreateModel(ctx, m); err != nil {
		return nil, err
	}
	uc.log(ctx, userID, fmt.Sprintf("Modelo creado: %s %s", b.Name, name), map[string]any{"model_id": m.ID, "action": "create"})
	res := dto.NewModelResponse(m)
	return &res, nil
}

// UpdateModel renombra un modelo y lo reescribe en los ítems de su marca.
func (uc *CatalogUseCase) UpdateModel(ctx context.Context, userID, id string, in dto.CatalogNameRequest) (*dto.ModelResponse, error) {
	name := clean(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	m, err := uc.repo.GetModel(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	b, err := uc.repo.GetBrand(ctx, m.BrandID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	old := m.Name
	m.Name = name
	m.UpdatedAt = time.Now()
	n, err := uc.rename(ctx, repository.CatalogRename{Field: repository.CatalogModel, Brand: b.Name, Old: old, New: name},
		func(r repository.CatalogRepository) error { return r.UpdateModel(ctx, m) })
	if err != nil {
		return nil, err
	}
	uc.log(ctx, userID, fmt.Sprintf("Modelo renombrado: %s -> %s", old, name),
		map[string]any{"model_id": id, "action": "update", "items": n})
	res := dto.NewModelResponse(m)
	return &res, nil
}

// DeleteModel borra el modelo y sus colores. ErrConflict si algún ítem lo usa.
func (uc *CatalogUseCase) DeleteModel(ctx context.Context, userID, id string) error {
	m, err := uc.repo.GetModel(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	b, err := uc.repo.GetBrand(ctx, m.BrandID)
	if err != nil {
		return err
	}
	if b != nil {
		if err := uc.ensureUnused(ctx, b.Name, m.Name, ""); err != nil {
			return err
		}
	}
	if err := uc.repo.DeleteModel(ctx, id); err != nil {
		return err
	}
	uc.log(ctx, userID, "Modelo eliminado: "+m.Name, map[string]any{"model_id": id, "action": "delete"})
	return nil
}

// ListColors colores de un modelo.
func (uc *CatalogUseCase) ListColors(ctx context.Context, modelID string) ([]dto.ColorResponse, error) {
	m, err := uc.repo.GetModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListColors(ctx, modelID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ColorResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewColorResponse(c))
	}
	return out, nil
}

// CreateColor crea un color para un modelo.
func (uc *CatalogUseCase) CreateColor(ctx context.Context, userID, modelID string, in dto.CatalogNameRequest) (*dto.ColorResponse, error) {
	name := clean(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	m, err := uc.repo.GetModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	c := &entity.Color{ID: uuid.New().String(), BrandID: m.BrandID, ModelID: modelID, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.CreateColor(ctx, c); err != nil {
		return nil, err
	}
	uc.log(ctx, userID, fmt.Sprintf("Color creado: %s %s", m.Name, name), map[string]any{"color_id": c.ID, "action": "create"})
	res := dto.NewColorResponse(c)
	return &res, nil
}

// UpdateColor renombra un color y lo reescribe en los ítems de su marca y modelo.
func (uc *CatalogUseCase) UpdateColor(ctx context.Context, userID, id string, in dto.CatalogNameRequest) (*dto.ColorResponse, error) {
	name := clean(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetColor(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	b, err := uc.repo.GetBrand(ctx, c.BrandID)
	if err != nil {
		return nil, err
	}
	m, err := uc.repo.GetModel(ctx, c.ModelID)
	if err != nil {
		return nil, err
	}
	if b == nil || m == nil {
		return nil, domain.ErrNotFound
	}
	old := c.Name
	c.Name = name
	c.UpdatedAt = time.Now()
	n, err := uc.rename(ctx, repository.CatalogRename{Field: repository.CatalogColor, Brand: b.Name, Model: m.Name, Old: old, New: name},
		func(r repository.CatalogRepository) error { return r.UpdateColor(ctx, c) })
	if err != nil {
		return nil, err
	}
	uc.log(ctx, userID, fmt.Sprintf("Color renombrado: %s -> %s", old, name),
		map[string]any{"color_id": id, "action": "update", "items": n})
	res := dto.NewColorResponse(c)
	return &res, nil
}

// DeleteColor borra un color. ErrConflict si algún ítem lo usa.
func (uc *CatalogUseCase) DeleteColor(ctx context.Context, userID, id string) error {
	c, err := uc.repo.GetColor(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	b, err := uc.repo.GetBrand(ctx, c.BrandID)
	if err != nil {
		return err
	}
	m, err := uc.repo.GetModel(ctx, c.ModelID)
	if err != nil {
		return err
	}
	if b != nil && m != nil {
		if err := uc.ensureUnused(ctx, b.Name, m.Name, c.Name); err != nil {
			return err
		}
	}
	if err := uc.repo.DeleteColor(ctx, id); err != nil {
		return err
	}
	uc.log(ctx, userID, "Color eliminado: "+c.Name, map[string]any{"color_id": id, "action": "delete"})
	return nil
}

// rename guarda el nodo del catálogo y propaga el nombre a los ítems en una sola tx.
func (uc *CatalogUseCase) rename(ctx context.Context, rn repository.CatalogRename, save func(r repository.CatalogRepository) error) (int, error) {
	var n int
	err := uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		if err := save(r.Catalog); err != nil {
			return err
		}
		var err error
		n, err = r.Items.RenameCatalog(ctx, rn)
		return err
	})
	return n, err
}

func (uc *CatalogUseCase) ensureUnused(ctx context.Context, brand, model, color string) error {
	n, err := uc.items.CountByCatalog(ctx, brand, model, color)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d ítems lo usan", domain.ErrConflict, n)
	}
	return nil
}

// log registra el cambio; un fallo del log no revierte la operación de catálogo.
func (uc *CatalogUseCase) log(ctx context.Context, userID, description string, metadata map[string]any) {
	_ = record(ctx, uc.activity, entity.ActivityCatalogChanged, description, "", userID, metadata)
}

// clean recorta y colapsa espacios internos.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
