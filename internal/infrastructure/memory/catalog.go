package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo marcas, modelos y colores en memoria. Borrar una marca borra sus modelos y colores.
type CatalogRepo struct{ s *Store }

func (r *CatalogRepo) CreateBrand(_ context.Context, b *entity.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.brands {
		if strings.EqualFold(x.Name, b.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.brands[b.ID] = *b
	return nil
}

func (r *CatalogRepo) GetBrand(_ context.Context, id string) (*entity.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.brands[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *CatalogRepo) GetBrandByName(_ context.Context, name string) (*entity.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.brands {
		if strings.EqualFold(b.Name, name) {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

func (r *CatalogRepo) ListBrands(_ context.Context) ([]*entity.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Brand, 0, len(r.s.brands))
	for _, b := range r.s.brands {
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *CatalogRepo) UpdateBrand(_ context.Context, b *entity.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.brands {
		if x.ID != b.ID && strings.EqualFold(x.Name, b.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.brands[b.ID] = *b
	return nil
}

func (r *CatalogRepo) DeleteBrand(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.brands, id)
	for k, m := range r.s.models {
		if m.BrandID == id {
			delete(r.s.models, k)
		}
	}
	for k, c := range r.s.colors {
		if c.BrandID == id {
			delete(r.s.colors, k)
		}
	}
	return nil
}

func (r *CatalogRepo) CreateModel(_ context.Context, m *entity.ItemModel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.models {
		if x.BrandID == m.BrandID && strings.EqualFold(x.Name, m.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.models[m.ID] = *m
	return nil
}

func (r *CatalogRepo) GetModel(_ context.Context, id string) (*entity.ItemModel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.models[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *CatalogRepo) GetModelByName(_ context.Context, brandID, name string) (*entity.ItemModel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.models {
		if m.BrandID == brandID && strings.EqualFold(m.Name, name) {
			found := m
			return &found, nil
		}
	}
	return nil, nil
}

func (r *CatalogRepo) ListModels(_ context.Context, brandID string) ([]*entity.ItemModel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.ItemModel
	for _, m := range r.s.models {
		if m.BrandID == brandID {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *CatalogRepo) UpdateModel(_ context.Context, m *entity.ItemModel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.models {
		if x.ID != m.ID && x.BrandID == m.BrandID && strings.EqualFold(x.Name, m.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.models[m.ID] = *m
	return nil
}

func (r *CatalogRepo) DeleteModel(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.models, id)
	for k, c := range r.s.colors {
		if c.ModelID == id {
			delete(r.s.colors, k)
		}
	}
	return nil
}

func (r *CatalogRepo) CreateColor(_ context.Context, c *entity.Color) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.colors {
		if x.ModelID == c.ModelID && strings.EqualFold(x.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.colors[c.ID] = *c
	return nil
}

func (r *CatalogRepo) GetColor(_ context.Context, id string) (*entity.Color, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.colors[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CatalogRepo) GetColorByName(_ context.Context, modelID, name string) (*entity.Color, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.colors {
		if c.ModelID == modelID && strings.EqualFold(c.Name, name) {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (r *CatalogRepo) ListColors(_ context.Context, modelID string) ([]*entity.Color, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Color
	for _, c := range r.s.colors {
		if c.ModelID == modelID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *CatalogRepo) UpdateColor(_ context.Context, c *entity.Color) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.colors {
		if x.ID != c.ID && x.ModelID == c.ModelID && strings.EqualFold(x.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.colors[c.ID] = *c
	return nil
}

func (r *CatalogRepo) DeleteColor(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.colors, id)
	return nil
}
