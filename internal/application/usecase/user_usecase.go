package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios (solo administradores).
// Un admin no puede borrarse, desactivarse ni quitarse el rol a sí mismo,
// y el sistema nunca queda sin un admin activo.
type UserUseCase struct {
	repo     repository.UserRepository
	activity repository.ActivityLogRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, activity repository.ActivityLogRepository) *UserUseCase {
	return &UserUseCase{repo: repo, activity: activity}
}

// List usuarios paginados.
func (uc *UserUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.ListResponse[dto.UserResponse], error) {
	p.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.Page{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.NewUserResponse(u))
	}
	res := dto.NewList(items, p, total)
	return &res, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	res := dto.NewUserResponse(user)
	return &res, nil
}

// Create crea un usuario: hashea password con bcrypt y persiste.
func (uc *UserUseCase) Create(ctx context.Context, actorID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 || !validRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	status := in.Status
	if status == "" {
		status = entity.UserActive
	}
	if !validStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := record(ctx, uc.activity, entity.ActivityUserCreated, "Usuario creado: "+user.Email, "", actorID,
		map[string]any{"user_id": user.ID, "role": user.Role}); err != nil {
		return nil, err
	}
	res := dto.NewUserResponse(user)
	return &res, nil
}

// Update modifica nombre, email, rol, estado y opcionalmente la contraseña.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !validRole(in.Role) || !validStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if in.Password != "" && len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if id == actorID && (in.Role != entity.RoleAdmin || in.Status != entity.UserActive) && user.Role == entity.RoleAdmin {
		return nil, domain.ErrSelfAction
	}
	losesAdmin := user.Role == entity.RoleAdmin && user.IsActive() &&
		(in.Role != entity.RoleAdmin || in.Status != entity.UserActive)
	if losesAdmin {
		if err := uc.ensureAnotherAdmin(ctx); err != nil {
			return nil, err
		}
	}

	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.Email = strings.ToLower(strings.TrimSpace(in.Email))
	user.Role = in.Role
	user.Status = in.Status
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		if err := uc.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
			return nil, err
		}
	}
	if err := record(ctx, uc.activity, entity.ActivityUserUpdated, "Usuario actualizado: "+user.Email, "", actorID,
		map[string]any{"user_id": user.ID, "role": user.Role, "status": user.Status, "password_changed": in.Password != ""}); err != nil {
		return nil, err
	}
	res := dto.NewUserResponse(user)
	return &res, nil
}

// Delete elimina un usuario. Sus movimientos y actividad quedan sin usuario.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if id == actorID {
		return domain.ErrSelfAction
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Role == entity.RoleAdmin && user.IsActive() {
		if err := uc.ensureAnotherAdmin(ctx); err != nil {
			return err
		}
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	return record(ctx, uc.activity, entity.ActivityUserDeleted, "Usuario eliminado: "+user.Email, "", actorID,
		map[string]any{"user_id": user.ID})
}

// ensureAnotherAdmin falla si el único admin activo es el que se va a perder.
func (uc *UserUseCase) ensureAnotherAdmin(ctx context.Context) error {
	n, err := uc.repo.CountActiveAdmins(ctx)
	if err != nil {
		return err
	}
	if n <= 1 {
		return fmt.Errorf("%w: debe quedar al menos un administrador activo", domain.ErrConflict)
	}
	return nil
}

func validRole(r string) bool {
	return r == entity.RoleAdmin || r == entity.RoleStaff
}

func validStatus(s string) bool {
	return s == entity.UserActive || s == entity.UserInactive
}
