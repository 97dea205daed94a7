package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	domaininv "github.com/jhoicas/inventory-admin/internal/domain/inventory"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, item_code, sku, barcode, brand, model, color, description,
	cost_price, retail_price, quantity, status, image_path, COALESCE(created_by::text, ''), created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.ItemCode, &it.SKU, &it.Barcode, &it.Brand, &it.Model, &it.Color, &it.Description,
		&it.CostPrice, &it.RetailPrice, &it.Quantity, &it.Status, &it.ImagePath, &it.CreatedBy,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un ítem nuevo.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (id, item_code, sku, barcode, brand, model, color, description,
			cost_price, retail_price, quantity, status, image_path, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.ItemCode, it.SKU, it.Barcode, it.Brand, it.Model, it.Color, it.Description,
		it.CostPrice, it.RetailPrice, it.Quantity, it.Status, it.ImagePath, nullable(it.CreatedBy),
		it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) getOne(ctx context.Context, what, query string, args ...any) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return it, nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, "get item", `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, "get item for update", `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

// GetByCode busca por item_code, sku o barcode (en ese orden de prioridad).
func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + ` FROM items
		WHERE item_code = $1 OR sku = $1 OR barcode = $1
		ORDER BY (item_code = $1) DESC, (sku = $1) DESC
		LIMIT 1`
	return r.getOne(ctx, "get item by code", query, code)
}

// GetBySKU obtiene un ítem por SKU.
func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	return r.getOne(ctx, "get item by sku", `SELECT `+itemColumns+` FROM items WHERE sku = $1`, sku)
}

// Update modifica datos descriptivos y precios. El estado se deriva de la cantidad
// guardada en la fila, no de la copia en memoria.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	query := `
		UPDATE items SET item_code = $2, sku = $3, barcode = $4, brand = $5, model = $6, color = $7,
			description = $8, cost_price = $9, retail_price = $10, updated_at = $11,
			status = CASE WHEN quantity <= 0 THEN 'out_of_stock'
				WHEN quantity < $12 THEN 'low_stock'
				ELSE 'ready_stock' END
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		it.ID, it.ItemCode, it.SKU, it.Barcode, it.Brand, it.Model, it.Color,
		it.Description, it.CostPrice, it.RetailPrice, it.UpdatedAt, domaininv.LowStockThreshold,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock persiste cantidad, estado y costo promedio.
func (r *ItemRepo) UpdateStock(ctx context.Context, it *entity.Item) error {
	query := `UPDATE items SET quantity = $2, status = $3, cost_price = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, it.ID, it.Quantity, it.Status, it.CostPrice, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateImage guarda la ruta relativa de la imagen ("" la quita).
func (r *ItemRepo) UpdateImage(ctx context.Context, id, imagePath string) error {
	tag, err := r.q.Exec(ctx, `UPDATE items SET image_path = $2, updated_at = now() WHERE id = $1`, id, imagePath)
	if err != nil {
		return fmt.Errorf("update item image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el ítem; movimientos, lotes y daños caen por ON DELETE CASCADE.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// List listado filtrado con total. Sort debe venir validado contra ItemSortColumns.
func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.Item, int, error) {
	var w where
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + escapeLike(s) + "%"
		w.add(`(item_code ILIKE ? OR sku ILIKE ? OR barcode ILIKE ? OR brand ILIKE ? OR model ILIKE ? OR color ILIKE ? OR description ILIKE ?)`,
			like, like, like, like, like, like, like)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Brand != "" {
		w.add("lower(brand) = lower(?)", f.Brand)
	}
	if f.Model != "" {
		w.add("lower(model) = lower(?)", f.Model)
	}
	if f.Color != "" {
		w.add("lower(color) = lower(?)", f.Color)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM items`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	col := f.Sort
	if !repository.ItemSortColumns[col] {
		col = "created_at"
	}
	dir := "DESC"
	if f.Order == "asc" {
		dir = "ASC"
	}
	query := `SELECT ` + itemColumns + ` FROM items` + w.sql() +
		fmt.Sprintf(" ORDER BY %s %s, id", col, dir) + w.page(f.Page)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, total, rows.Err()
}

// CountByCatalog cuenta ítems que usan la marca (y modelo/color si no están vacíos).
func (r *ItemRepo) CountByCatalog(ctx context.Context, brand, model, color string) (int, error) {
	var w where
	w.add("lower(brand) = lower(?)", brand)
	if model != "" {
		w.add("lower(model) = lower(?)", model)
	}
	if color != "" {
		w.add("lower(color) = lower(?)", color)
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM items`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items by catalog: %w", err)
	}
	return n, nil
}

// RenameCatalog reescribe brand, model o color de los ítems que usan el nombre anterior.
func (r *ItemRepo) RenameCatalog(ctx context.Context, rn repository.CatalogRename) (int, error) {
	var w where
	switch rn.Field {
	case repository.CatalogBrand:
		w.add("lower(brand) = lower(?)", rn.Old)
	case repository.CatalogModel:
		w.add("lower(brand) = lower(?)", rn.Brand)
		w.add("lower(model) = lower(?)", rn.Old)
	case repository.CatalogColor:
		w.add("lower(brand) = lower(?)", rn.Brand)
		w.add("lower(model) = lower(?)", rn.Model)
		w.add("lower(color) = lower(?)", rn.Old)
	default:
		return 0, fmt.Errorf("%w: campo de catálogo %q", domain.ErrInvalidInput, rn.Field)
	}
	// Field validado en el switch; el nombre nuevo va como último parámetro.
	args := append(w.args, rn.New)
	query := fmt.Sprintf(`UPDATE items SET %s = $%d, updated_at = now()`, rn.Field, len(args)) + w.sql()
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("rename items %s: %w", rn.Field, err)
	}
	return int(tag.RowsAffected()), nil
}

// escapeLike escapa los comodines de LIKE en texto del usuario.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
