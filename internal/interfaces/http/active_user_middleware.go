package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// userLookup es el contrato mínimo que necesita el middleware para verificar al usuario.
// Lo implementa repository.UserRepository.
type userLookup interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// RequireActiveUser rechaza tokens de usuarios borrados o desactivados después de emitido el token.
// Debe usarse DESPUÉS de AuthMiddleware. El rol vigente en la base reemplaza al del token.
//
// Comportamiento:
//   - 401 Unauthorized → el usuario ya no existe.
//   - 403 Forbidden → el usuario está inactivo.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireActiveUser(users userLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := users.GetByID(c.UserContext(), GetUserID(c))
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "USER_CHECK_FAILED",
				Message: "no se pudo verificar el usuario, intente más tarde",
			})
		}
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "el usuario del token no existe",
			})
		}
		if !u.IsActive() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "USER_INACTIVE",
				Message: "cuenta inactiva",
			})
		}
		c.Locals(LocalRole, u.Role)
		return c.Next()
	}
}
