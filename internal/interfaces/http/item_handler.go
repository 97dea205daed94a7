package http

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/application/export"
	"github.com/jhoicas/inventory-admin/internal/application/inventory"
	"github.com/jhoicas/inventory-admin/internal/application/usecase"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// ItemHandler maneja las peticiones HTTP de ítems (protegido).
type ItemHandler struct {
	uc       *usecase.ItemUseCase
	stock    *inventory.StockUseCase
	importer *export.Importer
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase, stock *inventory.StockUseCase, importer *export.Importer) *ItemHandler {
	return &ItemHandler{uc: uc, stock: stock, importer: importer}
}

// Create godoc
// @Summary      Crear ítem
// @Description  item_id, sku_id y barcode vacíos se generan. Una cantidad inicial crea el lote de apertura.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ítems
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Busca en códigos, marca, modelo, color y descripción"
// @Param        status  query  string  false  "out_of_stock | low_stock | ready_stock"
// @Param        brand   query  string  false  "Marca"
// @Param        model   query  string  false  "Modelo"
// @Param        color   query  string  false  "Color"
// @Param        sort    query  string  false  "Columna de orden"  default(created_at)
// @Param        order   query  string  false  "asc | desc"         default(desc)
// @Param        limit   query  int     false  "Límite"             default(20)
// @Param        offset  query  int     false  "Offset"             default(0)
// @Success      200     {object}  dto.ListResponse[dto.ItemResponse]
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var q dto.ItemListQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ítem por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Lookup godoc
// @Summary      Buscar ítem por código
// @Description  Acepta item_id, sku_id o código de barras (lector de códigos).
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "item_id, sku_id o barcode"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/lookup/{code} [get]
func (h *ItemHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.uc.Lookup(c.Context(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ítem
// @Description  La cantidad no se modifica aquí; usar movimientos de stock. Description y precios omitidos se conservan.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ítem"
// @Param        body  body  dto.UpdateItemRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ítem (admin)
// @Tags         items
// @Security     Bearer
// @Param        id   path  string  true  "ID del ítem"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadImage godoc
// @Summary      Subir imagen del ítem
// @Description  JPEG o PNG; se recorta al centro en cuadrado y se guarda como JPEG.
// @Tags         items
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "ID del ítem"
// @Param        image  formData  file    true  "Imagen"
// @Success      200    {object}  dto.ItemResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      415    {object}  dto.ErrorResponse
// @Router       /api/items/{id}/image [post]
func (h *ItemHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo image requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()
	out, err := h.uc.UploadImage(c.Context(), GetUserID(c), c.Params("id"), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteImage godoc
// @Summary      Quitar imagen del ítem
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/image [delete]
func (h *ItemHandler) DeleteImage(c *fiber.Ctx) error {
	out, err := h.uc.DeleteImage(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Label godoc
// @Summary      Etiqueta PDF con código de barras
// @Tags         items
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/label [get]
func (h *ItemHandler) Label(c *fiber.Ctx) error {
	pdf, item, err := h.uc.Label(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="etiqueta_`+item.SKU+`.pdf"`)
	return c.Send(pdf)
}

// Batches godoc
// @Summary      Lotes FIFO del ítem
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del ítem"
// @Param        open  query  bool    false  "Solo lotes con saldo"
// @Success      200   {array}   dto.BatchResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/batches [get]
func (h *ItemHandler) Batches(c *fiber.Ctx) error {
	out, err := h.stock.ListBatches(c.Context(), c.Params("id"), c.QueryBool("open", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// FIFOPreview godoc
// @Summary      Simular una salida FIFO
// @Description  Muestra qué lotes consumiría una salida de quantity unidades, sin modificar nada.
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true  "ID del ítem"
// @Param        quantity  query  int     true  "Unidades"
// @Success      200  {object}  dto.AllocationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/fifo [get]
func (h *ItemHandler) FIFOPreview(c *fiber.Ctx) error {
	out, err := h.stock.PreviewFIFO(c.Context(), c.Params("id"), c.QueryInt("quantity", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Movimientos del ítem
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        type    query  string  false  "in | out"
// @Param        from    query  string  false  "YYYY-MM-DD"
// @Param        to      query  string  false  "YYYY-MM-DD"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[dto.MovementResponse]
// @Router       /api/items/{id}/movements [get]
func (h *ItemHandler) Movements(c *fiber.Ctx) error {
	var q dto.MovementListQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	q.ItemID = c.Params("id")
	out, err := h.stock.ListMovements(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar ítems desde CSV o XLSX
// @Description  Upsert por sku_id. Las filas con error se informan sin detener el resto.
// @Tags         items
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    true   "Archivo .csv o .xlsx"
// @Param        format    query     string  false  "csv | xlsx (por defecto, la extensión)"
// @Param        encoding  query     string  false  "utf-8 | latin1 (solo CSV)"
// @Success      200       {object}  dto.ImportResult
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      415       {object}  dto.ErrorResponse
// @Router       /api/items/import [post]
func (h *ItemHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo file requerido"})
	}
	format := strings.ToLower(c.Query("format"))
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
	}
	if format == entity.FormatCSV && isLatin1(c.Query("encoding")) {
		format = "csv-latin1"
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()
	out, err := h.importer.Import(c.Context(), GetUserID(c), format, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ImportTemplate godoc
// @Summary      Plantilla de importación
// @Tags         items
// @Security     Bearer
// @Produce      octet-stream
// @Param        format  query  string  false  "csv | xlsx"  default(xlsx)
// @Success      200     {file}    binary
// @Failure      415     {object}  dto.ErrorResponse
// @Router       /api/items/import/template [get]
func (h *ItemHandler) ImportTemplate(c *fiber.Ctx) error {
	data, w, err := h.importer.Template(c.Query("format", entity.FormatXLSX))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, w.ContentType())
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="plantilla_items.`+w.Extension()+`"`)
	return c.Send(data)
}

func isLatin1(enc string) bool {
	switch strings.ToLower(strings.ReplaceAll(enc, "-", "")) {
	case "latin1", "iso88591", "windows1252", "cp1252":
		return true
	}
	return false
}
