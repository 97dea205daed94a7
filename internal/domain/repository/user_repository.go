package repository

import (
	"context"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	List(ctx context.Context, p Page) ([]*entity.User, int, error)
	Delete(ctx context.Context, id string) error
	// CountActiveAdmins cuenta administradores activos (para no dejar el sistema sin admin).
	CountActiveAdmins(ctx context.Context) (int, error)
}
