package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
	"github.com/jhoicas/inventory-admin/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, perfil y cambio de contraseña.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityLogRepository
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, activityRepo repository.ActivityLogRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, activityRepo: activityRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log(ctx, entity.ActivityLogin, "Inicio de sesión: "+user.Email, user.ID)
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		User:      dto.NewUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	res := dto.NewUserResponse(user)
	return &res, nil
}

// ChangePassword cambia la contraseña propia; exige la actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < 8 {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	uc.log(ctx, entity.ActivityPasswordChanged, "Contraseña cambiada: "+user.Email, user.ID)
	return nil
}

func (uc *AuthUseCase) log(ctx context.Context, kind, description, userID string) {
	a := entity.NewActivity(kind, description, "", userID, nil)
	a.ID = uuid.New().String()
	_ = uc.activityRepo.Create(ctx, a)
}
