package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventory-admin/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del inventario
// @Description  Totales, valor del stock, ítems por estado, daños del mes, movimientos de hoy,
// @Description  stock bajo y actividad reciente. Las fechas se calculan en el servidor.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetCharts godoc
// @Summary      Datos de gráficos del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Días hacia atrás (máx. 90)"  default(30)
// @Success      200   {object}  dto.DashboardChartsDTO
// @Router       /api/dashboard/charts [get]
func (h *DashboardHandler) GetCharts(c *fiber.Ctx) error {
	charts, err := h.uc.GetCharts(c.Context(), c.QueryInt("days", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(charts)
}
