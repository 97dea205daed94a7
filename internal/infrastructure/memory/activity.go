package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

var (
	_ repository.ActivityLogRepository        = (*ActivityRepo)(nil)
	_ repository.ExportNotificationRepository = (*ExportRepo)(nil)
)

// ActivityRepo log de actividad en memoria.
type ActivityRepo struct{ s *Store }

func (r *ActivityRepo) Create(_ context.Context, a *entity.ActivityLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.activity = append(r.s.activity, *a)
	return nil
}

func (r *ActivityRepo) List(_ context.Context, f repository.ActivityFilter) ([]*entity.ActivityLog, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []entity.ActivityLog
	for _, a := range r.s.activity {
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		if f.ItemID != "" && a.ItemID != f.ItemID {
			continue
		}
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		if !inRange(f.DateRange, a.CreatedAt) {
			continue
		}
		a.UserName = r.s.userName(a.UserID)
		a.ItemCode = r.s.items[a.ItemID].ItemCode
		list = append(list, a)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	total := len(list)
	page := paginate(list, f.Page)
	out := make([]*entity.ActivityLog, 0, len(page))
	for i := range page {
		a := page[i]
		out = append(out, &a)
	}
	return out, total, nil
}

// ExportRepo avisos de exportación en memoria.
type ExportRepo struct{ s *Store }

func (r *ExportRepo) Create(_ context.Context, n *entity.ExportNotification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.exports[n.ID] = *n
	return nil
}

func (r *ExportRepo) GetByID(_ context.Context, id string) (*entity.ExportNotification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.exports[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (r *ExportRepo) Complete(_ context.Context, n *entity.ExportNotification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.exports[n.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status = n.Status
	cur.FileName = n.FileName
	cur.FilePath = n.FilePath
	cur.FileSize = n.FileSize
	cur.ErrorMessage = n.ErrorMessage
	cur.CompletedAt = n.CompletedAt
	r.s.exports[n.ID] = cur
	return nil
}

func (r *ExportRepo) FailPendingBefore(_ context.Context, before time.Time, message string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	now := time.Now()
	for id, e := range r.s.exports {
		if e.Status != entity.ExportPending || !e.CreatedAt.Before(before) {
			continue
		}
		e.Status = entity.ExportFailed
		e.ErrorMessage = message
		e.CompletedAt = &now
		r.s.exports[id] = e
		n++
	}
	return n, nil
}

func (r *ExportRepo) ListByUser(_ context.Context, userID string, p repository.Page) ([]*entity.ExportNotification, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []entity.ExportNotification
	for _, n := range r.s.exports {
		if n.UserID == userID {
			list = append(list, n)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsRead != list[j].IsRead {
			return !list[i].IsRead
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	total := len(list)
	page := paginate(list, p)
	out := make([]*entity.ExportNotification, 0, len(page))
	for i := range page {
		n := page[i]
		out = append(out, &n)
	}
	return out, total, nil
}

func (r *ExportRepo) CountUnread(_ context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c := 0
	for _, n := range r.s.exports {
		if n.UserID == userID && !n.IsRead {
			c++
		}
	}
	return c, nil
}

func (r *ExportRepo) MarkRead(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.exports[id]
	if !ok || n.UserID != userID {
		return domain.ErrNotFound
	}
	n.IsRead = true
	r.s.exports[id] = n
	return nil
}

func (r *ExportRepo) MarkAllRead(_ context.Context, userID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := 0
	for id, n := range r.s.exports {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			r.s.exports[id] = n
			c++
		}
	}
	return c, nil
}

func (r *ExportRepo) Delete(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.exports[id]
	if !ok || n.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.exports, id)
	return nil
}
