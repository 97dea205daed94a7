package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if strings.EqualFold(x.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, x := range r.s.users {
		if x.ID != u.ID && strings.EqualFold(x.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cur.FirstName, cur.LastName, cur.Email = u.FirstName, u.LastName, u.Email
	cur.Role, cur.Status, cur.UpdatedAt = u.Role, u.Status, u.UpdatedAt
	r.s.users[u.ID] = cur
	return nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	cur.PasswordHash = hash
	r.s.users[id] = cur
	return nil
}

func (r *UserRepo) List(_ context.Context, p repository.Page) ([]*entity.User, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		list = append(list, u)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	total := len(list)
	page := paginate(list, p)
	out := make([]*entity.User, 0, len(page))
	for i := range page {
		u := page[i]
		out = append(out, &u)
	}
	return out, total, nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	return nil
}

func (r *UserRepo) CountActiveAdmins(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, u := range r.s.users {
		if u.Role == entity.RoleAdmin && u.Status == entity.UserActive {
			n++
		}
	}
	return n, nil
}
