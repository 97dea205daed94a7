package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/domain"
)

var validate = validator.New()

func init() {
	// decimal.Decimal se valida como número (min=0, gt=0).
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	// Los errores usan el nombre del campo en JSON/query, no el del struct.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// errorStatus tabla de errores de dominio a status y código HTTP.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrExportNotReady, fiber.StatusConflict, "EXPORT_NOT_READY"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrSelfAction, fiber.StatusForbidden, "SELF_ACTION"},
	{domain.ErrUnsupportedMedia, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA"},
}

// writeError responde con dto.ErrorResponse según el error de dominio; el resto es 500.
func writeError(c *fiber.Ctx, err error) error {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Message: err.Error()})
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: strings.ToUpper(strings.ReplaceAll(fe.Message, " ", "_")), Message: fe.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

// ErrorHandler error handler de fiber para errores que escapan de los handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return writeError(c, err)
}

// parseBody decodifica el JSON y corre las reglas de validación.
// Si devuelve false ya escribió la respuesta.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return check(c, out)
}

// parseQuery decodifica la query string y la valida.
func parseQuery(c *fiber.Ctx, out any) (bool, error) {
	if err := c.QueryParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	return check(c, out)
}

func check(c *fiber.Ctx, out any) (bool, error) {
	err := validate.Struct(out)
	if err == nil {
		return true, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false, writeError(c, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "datos inválidos",
		Fields:  fields,
	})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "requerido"
	case "email":
		return "email inválido"
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	default:
		return fe.Tag()
	}
}
