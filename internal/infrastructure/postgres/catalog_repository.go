package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo marcas, modelos y colores sobre PostgreSQL. Los nombres son únicos sin
// distinguir mayúsculas (índices sobre lower(name)).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// ── Marcas ───────────────────────────────────────────────────────────────────

func (r *CatalogRepo) CreateBrand(ctx context.Context, b *entity.Brand) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO brands (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		b.ID, b.Name, b.CreatedAt, b.UpdatedAt)
	return catalogWriteErr("insert brand", err)
}

func (r *CatalogRepo) GetBrand(ctx context.Context, id string) (*entity.Brand, error) {
	return r.brand(ctx, `SELECT id, name, created_at, updated_at FROM brands WHERE id = $1`, id)
}

func (r *CatalogRepo) GetBrandByName(ctx context.Context, name string) (*entity.Brand, error) {
	return r.brand(ctx, `SELECT id, name, created_at, updated_at FROM brands WHERE lower(name) = lower($1)`, name)
}

func (r *CatalogRepo) brand(ctx context.Context, query string, arg string) (*entity.Brand, error) {
	var b entity.Brand
	err := r.q.QueryRow(ctx, query, arg).Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

func (r *CatalogRepo) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at, updated_at FROM brands ORDER BY lower(name)`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()
	var out []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) UpdateBrand(ctx context.Context, b *entity.Brand) error {
	tag, err := r.q.Exec(ctx, `UPDATE brands SET name = $2, updated_at = $3 WHERE id = $1`, b.ID, b.Name, b.UpdatedAt)
	if err := catalogWriteErr("update brand", err); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteBrand borra la marca con sus modelos y colores (ON DELETE CASCADE).
func (r *CatalogRepo) DeleteBrand(ctx context.Context, id string) error {
	return r.delete(ctx, "brands", id)
}

// ── Modelos ──────────────────────────────────────────────────────────────────

func (r *CatalogRepo) CreateModel(ctx context.Context, m *entity.ItemModel) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO item_models (id, brand_id, name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.BrandID, m.Name, m.CreatedAt, m.UpdatedAt)
	return catalogWriteErr("insert model", err)
}

func (r *CatalogRepo) GetModel(ctx context.Context, id string) (*entity.ItemModel, error) {
	return r.model(ctx, `SELECT id, brand_id, name, created_at, updated_at FROM item_models WHERE id = $1`, id)
}

func (r *CatalogRepo) GetModelByName(ctx context.Context, brandID, name string) (*entity.ItemModel, error) {
	return r.model(ctx,
		`SELECT id, brand_id, name, created_at, updated_at FROM item_models WHERE brand_id = $1 AND lower(name) = lower($2)`,
		brandID, name)
}

func (r *CatalogRepo) model(ctx context.Context, query string, args ...any) (*entity.ItemModel, error) {
	var m entity.ItemModel
	err := r.q.QueryRow(ctx, query, args...).Scan(&m.ID, &m.BrandID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get model: %w", err)
	}
	return &m, nil
}

func (r *CatalogRepo) ListModels(ctx context.Context, brandID string) ([]*entity.ItemModel, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, brand_id, name, created_at, updated_at FROM item_models WHERE brand_id = $1 ORDER BY lower(name)`, brandID)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()
	var out []*entity.ItemModel
	for rows.Next() {
		var m entity.ItemModel
		if err := rows.Scan(&m.ID, &m.BrandID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) UpdateModel(ctx context.Context, m *entity.ItemModel) error {
	tag, err := r.q.Exec(ctx, `UPDATE item_models SET name = $2, updated_at = $3 WHERE id = $1`, m.ID, m.Name, m.UpdatedAt)
	if err := catalogWriteErr("update model", err); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CatalogRepo) DeleteModel(ctx context.Context, id string) error {
	return r.delete(ctx, "item_models", id)
}

// ── Colores ──────────────────────────────────────────────────────────────────

func (r *CatalogRepo) CreateColor(ctx context.Context, c *entity.Color) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO colors (id, brand_id, model_id, name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.BrandID, c.ModelID, c.Name, c.CreatedAt, c.UpdatedAt)
	return catalogWriteErr("insert color", err)
}

func (r *CatalogRepo) GetColor(ctx context.Context, id string) (*entity.Color, error) {
	return r.color(ctx, `SELECT id, brand_id, model_id, name, created_at, updated_at FROM colors WHERE id = $1`, id)
}

func (r *CatalogRepo) GetColorByName(ctx context.Context, modelID, name string) (*entity.Color, error) {
	return r.color(ctx,
		`SELECT id, brand_id, model_id, name, created_at, updated_at FROM colors WHERE model_id = $1 AND lower(name) = lower($2)`,
		modelID, name)
}

func (r *CatalogRepo) color(ctx context.Context, query string, args ...any) (*entity.Color, error) {
	var c entity.Color
	err := r.q.QueryRow(ctx, query, args...).Scan(&c.ID, &c.BrandID, &c.ModelID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get color: %w", err)
	}
	return &c, nil
}

func (r *CatalogRepo) ListColors(ctx context.Context, modelID string) ([]*entity.Color, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, brand_id, model_id, name, created_at, updated_at FROM colors WHERE model_id = $1 ORDER BY lower(name)`, modelID)
	if err != nil {
		return nil, fmt.Errorf("list colors: %w", err)
	}
	defer rows.Close()
	var out []*entity.Color
	for rows.Next() {
		var c entity.Color
		if err := rows.Scan(&c.ID, &c.BrandID, &c.ModelID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan color: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) UpdateColor(ctx context.Context, c *entity.Color) error {
	tag, err := r.q.Exec(ctx, `UPDATE colors SET name = $2, updated_at = $3 WHERE id = $1`, c.ID, c.Name, c.UpdatedAt)
	if err := catalogWriteErr("update color", err); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CatalogRepo) DeleteColor(ctx context.Context, id string) error {
	return r.delete(ctx, "colors", id)
}

// ── helpers ──────────────────────────────────────────────────────────────────

// delete: table es siempre una constante interna.
func (r *CatalogRepo) delete(ctx context.Context, table, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func catalogWriteErr(what string, err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return fmt.Errorf("%s: %w", what, err)
}
