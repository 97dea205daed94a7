package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	apphttp "github.com/jhoicas/inventory-admin/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventory-admin/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "inventory-admin-test"
	testExpMin    = 60
)

// guardedApp expone GET /guarded detrás de AuthMiddleware y, si se pasan roles, RequireRole.
func guardedApp(roles ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	handlers := []fiber.Handler{apphttp.AuthMiddleware(testJWTSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, apphttp.RequireRole(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
	})
	app.Get("/guarded", handlers...)
	return app
}

func signed(t *testing.T, role string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, expMin)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	otherSecret, err := pkgjwt.Generate("otra-clave", testUserID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"sin cabecera", "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"sin esquema Bearer", signed(t, entity.RoleStaff, testExpMin), http.StatusUnauthorized, "INVALID_TOKEN"},
		{"esquema Basic", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token basura", "Bearer abc.def.ghi", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"firma con otra clave", "Bearer " + otherSecret, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token vencido", "Bearer " + signed(t, entity.RoleStaff, -5), http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"bearer en minúsculas", "bearer " + signed(t, entity.RoleStaff, testExpMin), http.StatusOK, ""},
		{"válido", "Bearer " + signed(t, entity.RoleAdmin, testExpMin), http.StatusOK, ""},
	}
	app := guardedApp()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			assert.Equal(t, tc.status, resp.StatusCode, string(body))
			if tc.code != "" {
				assert.Contains(t, string(body), tc.code)
			} else {
				assert.Contains(t, string(body), testUserID)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		allowed []string
		role    string
		status  int
	}{
		{"admin en ruta admin", []string{entity.RoleAdmin}, entity.RoleAdmin, http.StatusOK},
		{"staff en ruta admin", []string{entity.RoleAdmin}, entity.RoleStaff, http.StatusForbidden},
		{"staff en ruta compartida", []string{entity.RoleAdmin, entity.RoleStaff}, entity.RoleStaff, http.StatusOK},
		{"rol desconocido", []string{entity.RoleAdmin, entity.RoleStaff}, "auditor", http.StatusForbidden},
		{"token sin rol", []string{entity.RoleAdmin}, "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			req.Header.Set("Authorization", "Bearer "+signed(t, tc.role, testExpMin))
			resp, err := guardedApp(tc.allowed...).Test(req, -1)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
