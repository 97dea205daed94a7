package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/application/inventory"
)

// StockHandler entradas, salidas y daños de stock.
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// StockIn godoc
// @Summary      Entrada de stock
// @Description  Suma unidades, crea un lote y recalcula el costo promedio ponderado.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "item_id, quantity, unit_cost opcional"
// @Success      201   {object}  dto.StockOperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/in [post]
func (h *StockHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.StockIn(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// StockOut godoc
// @Summary      Salida de stock
// @Description  Descuenta unidades consumiendo lotes FIFO. 409 si no hay stock suficiente.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOutRequest  true  "item_id, quantity, reason"
// @Success      201   {object}  dto.StockOperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/out [post]
func (h *StockHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockOutRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.StockOut(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Libro de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "ID del ítem"
// @Param        type     query  string  false  "in | out"
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200      {object}  dto.ListResponse[dto.MovementResponse]
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var q dto.MovementListQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.ListMovements(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportDamaged godoc
// @Summary      Registrar ítems dañados
// @Description  Genera una salida FIFO con motivo "damaged: ..." y el registro de daño.
// @Tags         damaged
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DamagedRequest  true  "item_id, quantity, reason"
// @Success      201   {object}  dto.StockOperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/damaged [post]
func (h *StockHandler) ReportDamaged(c *fiber.Ctx) error {
	var in dto.DamagedRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.ReportDamaged(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDamaged godoc
// @Summary      Listar ítems dañados
// @Tags         damaged
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "ID del ítem"
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200      {object}  dto.ListResponse[dto.DamagedResponse]
// @Router       /api/damaged [get]
func (h *StockHandler) ListDamaged(c *fiber.Ctx) error {
	var q dto.DamagedListQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.ListDamaged(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
