package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	domaininv "github.com/jhoicas/inventory-admin/internal/domain/inventory"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo ítems en memoria.
type ItemRepo struct{ s *Store }

func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.ID == item.ID || it.ItemCode == item.ItemCode || it.SKU == item.SKU || it.Barcode == item.Barcode {
			return domain.ErrDuplicate
		}
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

// GetByCode prioriza item_code, luego sku y por último barcode, como la consulta SQL.
func (r *ItemRepo) GetByCode(_ context.Context, code string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	fields := []func(entity.Item) string{
		func(it entity.Item) string { return it.ItemCode },
		func(it entity.Item) string { return it.SKU },
		func(it entity.Item) string { return it.Barcode },
	}
	for _, field := range fields {
		for _, it := range r.s.items {
			if field(it) == code {
				found := it
				return &found, nil
			}
		}
	}
	return nil, nil
}

func (r *ItemRepo) GetBySKU(_ context.Context, sku string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, it := range r.s.items {
		if it.SKU == sku {
			found := it
			return &found, nil
		}
	}
	return nil, nil
}

func (r *ItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, it := range r.s.items {
		if it.ID != item.ID && (it.ItemCode == item.ItemCode || it.SKU == item.SKU || it.Barcode == item.Barcode) {
			return domain.ErrDuplicate
		}
	}
	cur.ItemCode = item.ItemCode
	cur.SKU = item.SKU
	cur.Barcode = item.Barcode
	cur.Brand = item.Brand
	cur.Model = item.Model
	cur.Color = item.Color
	cur.Description = item.Description
	cur.CostPrice = item.CostPrice
	cur.RetailPrice = item.RetailPrice
	cur.Status = domaininv.DeriveStatus(cur.Quantity)
	cur.UpdatedAt = item.UpdatedAt
	r.s.items[item.ID] = cur
	return nil
}

func (r *ItemRepo) UpdateStock(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Quantity = item.Quantity
	cur.Status = item.Status
	cur.CostPrice = item.CostPrice
	cur.UpdatedAt = item.UpdatedAt
	r.s.items[item.ID] = cur
	return nil
}

func (r *ItemRepo) UpdateImage(_ context.Context, id, imagePath string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.ImagePath = imagePath
	r.s.items[id] = cur
	return nil
}

// Delete borra el ítem y sus lotes, movimientos y daños (como ON DELETE CASCADE).
func (r *ItemRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, id)
	for k, b := range r.s.batches {
		if b.ItemID == id {
			delete(r.s.batches, k)
		}
	}
	movs := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.ItemID != id {
			movs = append(movs, m)
		}
	}
	r.s.movements = movs
	dmg := r.s.damaged[:0]
	for _, d := range r.s.damaged {
		if d.ItemID != id {
			dmg = append(dmg, d)
		}
	}
	r.s.damaged = dmg
	for i := range r.s.activity {
		if r.s.activity[i].ItemID == id {
			r.s.activity[i].ItemID = ""
		}
	}
	return nil
}

func (r *ItemRepo) List(_ context.Context, f repository.ItemFilter) ([]*entity.Item, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var list []entity.Item
	for _, it := range r.s.items {
		if f.Status != "" && string(it.Status) != f.Status {
			continue
		}
		if f.Brand != "" && !strings.EqualFold(it.Brand, f.Brand) {
			continue
		}
		if f.Model != "" && !strings.EqualFold(it.Model, f.Model) {
			continue
		}
		if f.Color != "" && !strings.EqualFold(it.Color, f.Color) {
			continue
		}
		if search != "" && !matchesSearch(it, search) {
			continue
		}
		list = append(list, it)
	}
	sortItems(list, f.Sort, f.Order)
	total := len(list)
	page := paginate(list, f.Page)
	out := make([]*entity.Item, 0, len(page))
	for i := range page {
		it := page[i]
		out = append(out, &it)
	}
	return out, total, nil
}

func (r *ItemRepo) CountByCatalog(_ context.Context, brand, model, color string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, it := range r.s.items {
		if !strings.EqualFold(it.Brand, brand) {
			continue
		}
		if model != "" && !strings.EqualFold(it.Model, model) {
			continue
		}
		if color != "" && !strings.EqualFold(it.Color, color) {
			continue
		}
		n++
	}
	return n, nil
}

func (r *ItemRepo) RenameCatalog(_ context.Context, rn repository.CatalogRename) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var pick func(it *entity.Item) *string
	switch rn.Field {
	case repository.CatalogBrand:
		pick = func(it *entity.Item) *string { return &it.Brand }
	case repository.CatalogModel:
		pick = func(it *entity.Item) *string {
			if !strings.EqualFold(it.Brand, rn.Brand) {
				return nil
			}
			return &it.Model
		}
	case repository.CatalogColor:
		pick = func(it *entity.Item) *string {
			if !strings.EqualFold(it.Brand, rn.Brand) || !strings.EqualFold(it.Model, rn.Model) {
				return nil
			}
			return &it.Color
		}
	default:
		return 0, domain.ErrInvalidInput
	}
	n := 0
	now := time.Now()
	for id, it := range r.s.items {
		dst := pick(&it)
		if dst == nil || !strings.EqualFold(*dst, rn.Old) {
			continue
		}
		*dst = rn.New
		it.UpdatedAt = now
		r.s.items[id] = it
		n++
	}
	return n, nil
}

func matchesSearch(it entity.Item, q string) bool {
	for _, v := range []string{it.ItemCode, it.SKU, it.Barcode, it.Brand, it.Model, it.Color, it.Description} {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

func sortItems(list []entity.Item, col, order string) {
	desc := order != "asc"
	if col == "" {
		col = "created_at"
	}
	less := func(a, b entity.Item) bool {
		switch col {
		case "item_code":
			return a.ItemCode < b.ItemCode
		case "sku":
			return a.SKU < b.SKU
		case "brand":
			return a.Brand < b.Brand
		case "model":
			return a.Model < b.Model
		case "color":
			return a.Color < b.Color
		case "quantity":
			return a.Quantity < b.Quantity
		case "cost_price":
			return a.CostPrice.LessThan(b.CostPrice)
		case "retail_price":
			return a.RetailPrice.LessThan(b.RetailPrice)
		case "status":
			return a.Status < b.Status
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
}
