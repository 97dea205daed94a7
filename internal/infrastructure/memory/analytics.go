package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados del dashboard calculados sobre el store.
type AnalyticsRepo struct{ s *Store }

func (r *AnalyticsRepo) StockTotals(_ context.Context) (repository.StockTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t := repository.StockTotals{CostValue: decimal.Zero, RetailValue: decimal.Zero}
	for _, it := range r.s.items {
		t.TotalItems++
		t.TotalUnits += it.Quantity
		q := decimal.NewFromInt(int64(it.Quantity))
		t.CostValue = t.CostValue.Add(it.CostPrice.Mul(q))
		t.RetailValue = t.RetailValue.Add(it.RetailPrice.Mul(q))
	}
	return t, nil
}

func (r *AnalyticsRepo) CountByStatus(_ context.Context) (map[entity.ItemStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[entity.ItemStatus]int)
	for _, it := range r.s.items {
		out[it.Status]++
	}
	return out, nil
}

func (r *AnalyticsRepo) DamagedUnits(_ context.Context, from, to time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rng := repository.DateRange{From: &from, To: &to}
	n := 0
	for _, d := range r.s.damaged {
		if inRange(rng, d.CreatedAt) {
			n += d.Quantity
		}
	}
	return n, nil
}

func (r *AnalyticsRepo) MovementCount(_ context.Context, from, to time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rng := repository.DateRange{From: &from, To: &to}
	n := 0
	for _, m := range r.s.movements {
		if inRange(rng, m.CreatedAt) {
			n++
		}
	}
	return n, nil
}

func (r *AnalyticsRepo) MovementsPerDay(_ context.Context, from, to time.Time) ([]repository.DailyMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rng := repository.DateRange{From: &from, To: &to}
	byDay := make(map[time.Time]*repository.DailyMovement)
	for _, m := range r.s.movements {
		if !inRange(rng, m.CreatedAt) {
			continue
		}
		t := m.CreatedAt.In(from.Location())
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, from.Location())
		dm, ok := byDay[day]
		if !ok {
			dm = &repository.DailyMovement{Day: day}
			byDay[day] = dm
		}
		if m.Type == entity.MovementIn {
			dm.In += m.Quantity
		} else {
			dm.Out += m.Quantity
		}
	}
	out := make([]repository.DailyMovement, 0, len(byDay))
	for _, dm := range byDay {
		out = append(out, *dm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (r *AnalyticsRepo) UnitsByBrand(_ context.Context, limit int) ([]repository.LabelCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	units := make(map[string]int)
	for _, it := range r.s.items {
		units[it.Brand] += it.Quantity
	}
	out := make([]repository.LabelCount, 0, len(units))
	for b, n := range units {
		out = append(out, repository.LabelCount{Label: b, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AnalyticsRepo) LowStock(_ context.Context, limit int) ([]*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []entity.Item
	for _, it := range r.s.items {
		if it.Status == entity.StatusLowStock || it.Status == entity.StatusOutOfStock {
			list = append(list, it)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Quantity != list[j].Quantity {
			return list[i].Quantity < list[j].Quantity
		}
		return list[i].SKU < list[j].SKU
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	out := make([]*entity.Item, 0, len(list))
	for i := range list {
		it := list[i]
		out = append(out, &it)
	}
	return out, nil
}
