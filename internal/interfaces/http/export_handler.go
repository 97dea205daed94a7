package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/application/export"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

var exportContentTypes = map[string]string{
	entity.FormatCSV:  "text/csv; charset=utf-8",
	entity.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	entity.FormatPDF:  "application/pdf",
}

// ExportHandler exportaciones asíncronas y sus avisos.
type ExportHandler struct {
	uc *export.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Request godoc
// @Summary      Solicitar exportación
// @Description  Encola la generación del archivo; el aviso pasa a completed o failed al terminar.
// @Tags         exports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExportRequest  true  "type, format y filtros"
// @Success      202   {object}  dto.ExportNotificationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/exports [post]
func (h *ExportHandler) Request(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.RequestExport(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// List godoc
// @Summary      Mis exportaciones
// @Description  No leídas primero; incluye el contador de no leídas.
// @Tags         exports
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ExportListResponse
// @Router       /api/exports [get]
func (h *ExportHandler) List(c *fiber.Ctx) error {
	var p dto.PageRequest
	if ok, err := parseQuery(c, &p); !ok {
		return err
	}
	out, err := h.uc.List(c.Context(), GetUserID(c), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar aviso como leído
// @Tags         exports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del aviso"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exports/{id}/read [put]
func (h *ExportHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "aviso marcado como leído"})
}

// MarkAllRead godoc
// @Summary      Marcar todos los avisos como leídos
// @Tags         exports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/exports/read-all [put]
func (h *ExportHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.uc.MarkAllRead(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"updated": n})
}

// Download godoc
// @Summary      Descargar archivo exportado
// @Tags         exports
// @Security     Bearer
// @Produce      octet-stream
// @Param        id   path  string  true  "ID del aviso"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/exports/{id}/download [get]
func (h *ExportHandler) Download(c *fiber.Ctx) error {
	rc, n, err := h.uc.Download(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	ct, ok := exportContentTypes[n.Format]
	if !ok {
		ct = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, ct)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+n.FileName+`"`)
	// fasthttp cierra rc al terminar de enviar.
	if n.FileSize > 0 {
		return c.SendStream(rc, int(n.FileSize))
	}
	return c.SendStream(rc)
}

// Delete godoc
// @Summary      Eliminar aviso y archivo
// @Tags         exports
// @Security     Bearer
// @Param        id   path  string  true  "ID del aviso"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exports/{id} [delete]
func (h *ExportHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
