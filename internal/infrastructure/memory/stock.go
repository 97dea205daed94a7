package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/inventory"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

var (
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.StockBatchRepository    = (*BatchRepo)(nil)
	_ repository.DamagedItemRepository   = (*DamagedRepo)(nil)
)

// MovementRepo libro de movimientos en memoria.
type MovementRepo struct{ s *Store }

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []entity.StockMovement
	for _, m := range r.s.movements {
		if f.ItemID != "" && m.ItemID != f.ItemID {
			continue
		}
		if f.Type != "" && string(m.Type) != f.Type {
			continue
		}
		if !inRange(f.DateRange, m.CreatedAt) {
			continue
		}
		it := r.s.items[m.ItemID]
		m.ItemCode, m.ItemSKU = it.ItemCode, it.SKU
		m.UserName = r.s.userName(m.UserID)
		list = append(list, m)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	total := len(list)
	page := paginate(list, f.Page)
	out := make([]*entity.StockMovement, 0, len(page))
	for i := range page {
		m := page[i]
		out = append(out, &m)
	}
	return out, total, nil
}

// BatchRepo lotes en memoria.
type BatchRepo struct{ s *Store }

func (r *BatchRepo) Create(_ context.Context, b *entity.StockBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.batches[b.ID] = *b
	return nil
}

func (r *BatchRepo) ListByItem(_ context.Context, itemID string, onlyOpen bool) ([]*entity.StockBatch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.StockBatch
	for _, b := range r.s.batches {
		if b.ItemID != itemID || (onlyOpen && b.QuantityRemaining <= 0) {
			continue
		}
		b := b
		out = append(out, &b)
	}
	inventory.OrderFIFO(out)
	return out, nil
}

func (r *BatchRepo) ListOpenForUpdate(ctx context.Context, itemID string) ([]*entity.StockBatch, error) {
	return r.ListByItem(ctx, itemID, true)
}

func (r *BatchRepo) UpdateRemaining(_ context.Context, id string, remaining int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.batches[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.QuantityRemaining = remaining
	r.s.batches[id] = b
	return nil
}

// DamagedRepo ítems dañados en memoria.
type DamagedRepo struct{ s *Store }

func (r *DamagedRepo) Create(_ context.Context, d *entity.DamagedItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.damaged = append(r.s.damaged, *d)
	return nil
}

func (r *DamagedRepo) List(_ context.Context, f repository.DamagedFilter) ([]*entity.DamagedItem, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []entity.DamagedItem
	for _, d := range r.s.damaged {
		if f.ItemID != "" && d.ItemID != f.ItemID {
			continue
		}
		if !inRange(f.DateRange, d.CreatedAt) {
			continue
		}
		it := r.s.items[d.ItemID]
		d.ItemCode, d.ItemSKU = it.ItemCode, it.SKU
		d.UserName = r.s.userName(d.UserID)
		list = append(list, d)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	total := len(list)
	page := paginate(list, f.Page)
	out := make([]*entity.DamagedItem, 0, len(page))
	for i := range page {
		d := page[i]
		out = append(out, &d)
	}
	return out, total, nil
}

// userName requiere mu tomado.
func (s *Store) userName(id string) string {
	if u, ok := s.users[id]; ok {
		return u.FullName()
	}
	return ""
}
