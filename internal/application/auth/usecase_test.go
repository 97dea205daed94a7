package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-admin/internal/application/auth"
	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/inventory-admin/pkg/jwt"
)

const secret = "test-secret-key-for-unit-tests"

func setup(t *testing.T, status string) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.Users().Create(context.Background(), &entity.User{
		ID:           "u-1",
		FirstName:    "Ana",
		LastName:     "Pérez",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         entity.RoleStaff,
		Status:       status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}))
	uc := auth.NewAuthUseCase(s.Users(), s.Activity(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
	return uc, s
}

func TestLogin_OK(t *testing.T) {
	uc, s := setup(t, entity.UserActive)
	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", res.User.FullName)

	userID, role, err := pkgjwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, entity.RoleStaff, role)

	_, total, err := s.Activity().List(context.Background(), repository.ActivityFilter{Type: entity.ActivityLogin})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := setup(t, entity.UserActive)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, _ := setup(t, entity.UserInactive)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestChangePassword(t *testing.T) {
	uc, _ := setup(t, entity.UserActive)
	ctx := context.Background()

	err := uc.ChangePassword(ctx, "u-1", dto.ChangePasswordRequest{CurrentPassword: "mal", NewPassword: "nuevo-secreto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = uc.ChangePassword(ctx, "u-1", dto.ChangePasswordRequest{CurrentPassword: "secreto123", NewPassword: "nuevo-secreto"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "nuevo-secreto"})
	assert.NoError(t, err)
}

func TestMe(t *testing.T) {
	uc, _ := setup(t, entity.UserActive)
	me, err := uc.Me(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", me.Email)

	_, err = uc.Me(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
