package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/application/usecase"
)

// ActivityHandler log de actividad.
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Log de actividad
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        type     query  string  false  "Tipo (item_created, stock_in, ...)"
// @Param        item_id  query  string  false  "ID del ítem"
// @Param        user_id  query  string  false  "ID del usuario"
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200      {object}  dto.ListResponse[dto.ActivityResponse]
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var q dto.ActivityListQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
