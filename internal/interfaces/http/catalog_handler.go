package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/application/usecase"
)

// CatalogHandler jerarquía marca > modelo > color.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListBrands godoc
// @Summary      Listar marcas
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BrandResponse
// @Router       /api/brands [get]
func (h *CatalogHandler) ListBrands(c *fiber.Ctx) error {
	out, err := h.uc.ListBrands(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateBrand godoc
// @Summary      Crear marca
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CatalogNameRequest  true  "Nombre"
// @Success      201   {object}  dto.BrandResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/brands [post]
func (h *CatalogHandler) CreateBrand(c *fiber.Ctx) error {
	var in dto.CatalogNameRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateBrand(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateBrand godoc
// @Summary      Renombrar marca
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la marca"
// @Param        body  body  dto.CatalogNameRequest  true  "Nombre"
// @Success      200   {object}  dto.BrandResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [put]
func (h *CatalogHandler) UpdateBrand(c *fiber.Ctx) error {
	var in dto.CatalogNameRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateBrand(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteBrand godoc
// @Summary      Eliminar marca (admin)
// @Description  409 si algún ítem usa la marca.
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID de la marca"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [delete]
func (h *CatalogHandler) DeleteBrand(c *fiber.Ctx) error {
	if err := h.uc.DeleteBrand(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListModels godoc
// @Summary      Modelos de una marca
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la marca"
// @Success      200  {array}   dto.ModelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brands/{id}/models [get]
func (h *CatalogHandler) ListModels(c *fiber.Ctx) error {
	out, err := h.uc.ListModels(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateModel godoc
// @Summary      Crear modelo
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la marca"
// @Param        body  body  dto.CatalogNameRequest  true  "Nombre"
// @Success      201   {object}  dto.ModelResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/brands/{id}/models [post]
func (h *CatalogHandler) CreateModel(c *fiber.Ctx) error {
	var in dto.CatalogNameRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateModel(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateModel godoc
// @Summary      Renombrar modelo
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del modelo"
// @Param        body  body  dto.CatalogNameRequest  true  "Nombre"
// @Success      200   {object}  dto.ModelResponse
// @Router       /api/models/{id} [put]
func (h *CatalogHandler) UpdateModel(c *fiber.Ctx) error {
	var in dto.CatalogNameRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateModel(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteModel godoc
// @Summary      Eliminar modelo (admin)
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID del modelo"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/models/{id} [delete]
func (h *CatalogHandler) DeleteModel(c *fiber.Ctx) error {
	if err := h.uc.DeleteModel(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListColors godoc
// @Summary      Colores de un modelo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del modelo"
// @Success      200  {array}  dto.ColorResponse
// @Router       /api/models/{id}/colors [get]
func (h *CatalogHandler) ListColors(c *fiber.Ctx) error {
	out, err := h.uc.ListColors(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateColor godoc
// @Summary      Crear color
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del modelo"
// @Param        body  body  dto.CatalogNameRequest  true  "Nombre"
// @Success      201   {object}  dto.ColorResponse
// @Router       /api/models/{id}/colors [post]
func (h *CatalogHandler) CreateColor(c *fiber.Ctx) error {
	var in dto.CatalogNameRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateColor(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateColor godoc
// @Summary      Renombrar color
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del color"
// @Param        body  body  dto.CatalogNameRequest  true  "Nombre"
// @Success      200   {object}  dto.ColorResponse
// @Router       /api/colors/{id} [put]
func (h *CatalogHandler) UpdateColor(c *fiber.Ctx) error {
	var in dto.CatalogNameRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateColor(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteColor godoc
// @Summary      Eliminar color (admin)
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID del color"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/colors/{id} [delete]
func (h *CatalogHandler) DeleteColor(c *fiber.Ctx) error {
	if err := h.uc.DeleteColor(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
