package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/application/ports"
	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
	"github.com/jhoicas/inventory-admin/pkg/logger"
)

// MaxImportRows filas de datos aceptadas por archivo.
const MaxImportRows = 5000

// ItemUpserter crea o actualiza un ítem por sku_id.
type ItemUpserter interface {
	Upsert(ctx context.Context, userID string, in dto.UpsertItemRequest) (created bool, err error)
}

// Importer carga ítems desde archivos tabulares.
type Importer struct {
	items    ItemUpserter
	activity repository.ActivityLogRepository
	readers  map[string]ports.TableReader
	writers  map[string]ports.TableWriter
	log      *logger.Logger
}

// NewImporter construye el importador. readers se indexa por nombre de formato
// ("csv", "csv-latin1", "xlsx"); writers por Extension() y sirve para la plantilla.
func NewImporter(items ItemUpserter, activity repository.ActivityLogRepository, readers map[string]ports.TableReader, log *logger.Logger, writers ...ports.TableWriter) *Importer {
	byExt := make(map[string]ports.TableWriter, len(writers))
	for _, w := range writers {
		byExt[w.Extension()] = w
	}
	return &Importer{items: items, activity: activity, readers: readers, writers: byExt, log: log.Named("import")}
}

// Import lee el archivo y hace upsert fila por fila. Una fila inválida no detiene el resto.
func (im *Importer) Import(ctx context.Context, userID, format string, r io.Reader) (*dto.ImportResult, error) {
	reader, ok := im.readers[format]
	if !ok {
		return nil, domain.ErrUnsupportedMedia
	}
	rows, err := reader.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	cols := headerIndex(rows[0])
	for _, req := range []string{"brand", "model", "color"} {
		if _, ok := cols[req]; !ok {
			return nil, fmt.Errorf("%w: falta la columna %q", domain.ErrInvalidInput, req)
		}
	}
	if len(rows)-1 > MaxImportRows {
		return nil, fmt.Errorf("%w: máximo %d filas por archivo", domain.ErrInvalidInput, MaxImportRows)
	}

	res := &dto.ImportResult{Errors: []dto.ImportRowError{}}
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rowNum := i + 2
		in, err := parseRow(cols, row)
		if err == nil {
			var created bool
			created, err = im.items.Upsert(ctx, userID, in)
			if err == nil {
				if created {
					res.Created++
				} else {
					res.Updated++
				}
				continue
			}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		res.Failed++
		res.Errors = append(res.Errors, dto.ImportRowError{Row: rowNum, Message: rowMessage(err)})
	}

	im.log.Info().Str("user_id", userID).Str("format", format).
		Int("created", res.Created).Int("updated", res.Updated).Int("failed", res.Failed).
		Msg("importación de ítems")

	a := entity.NewActivity(entity.ActivityItemsImported,
		fmt.Sprintf("Importación: %d creados, %d actualizados, %d con error", res.Created, res.Updated, res.Failed),
		"", userID, map[string]any{"format": format, "created": res.Created, "updated": res.Updated, "failed": res.Failed})
	a.ID = uuid.New().String()
	if err := im.activity.Create(ctx, a); err != nil {
		return nil, err
	}
	return res, nil
}

// Template devuelve la plantilla de importación (cabecera y una fila de ejemplo).
func (im *Importer) Template(format string) ([]byte, ports.TableWriter, error) {
	w, ok := im.writers[format]
	if !ok || format == entity.FormatPDF {
		return nil, nil, domain.ErrUnsupportedMedia
	}
	var buf bytes.Buffer
	err := w.Write(&buf, ports.Table{
		Title:   "Plantilla de importación",
		Headers: ItemColumns,
		Rows: [][]string{{
			"", "", "", "Samsung", "Galaxy A15", "Negro",
			"Celular 128GB", "450000.00", "599000.00", "5",
		}},
	})
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), w, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		h = strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[h]; !dup && h != "" {
			idx[h] = i
		}
	}
	return idx
}

// parseRow arma la fila. Columnas ausentes y celdas vacías de description y precios
// quedan en nil para no pisar los valores de un ítem existente.
func parseRow(cols map[string]int, row []string) (dto.UpsertItemRequest, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	in := dto.UpsertItemRequest{
		ItemCode: get("item_id"),
		SKU:      get("sku_id"),
		Barcode:  get("barcode"),
		Brand:    get("brand"),
		Model:    get("model"),
		Color:    get("color"),
	}
	if in.Brand == "" || in.Model == "" || in.Color == "" {
		return in, errors.New("brand, model y color son obligatorios")
	}
	if d := get("description"); d != "" {
		in.Description = &d
	}
	var err error
	if in.CostPrice, err = parseMoney(get("cost_price")); err != nil {
		return in, fmt.Errorf("cost_price inválido: %w", err)
	}
	if in.RetailPrice, err = parseMoney(get("retail_price")); err != nil {
		return in, fmt.Errorf("retail_price inválido: %w", err)
	}
	if q := get("quantity"); q != "" {
		if in.Quantity, err = strconv.Atoi(q); err != nil || in.Quantity < 0 {
			return in, fmt.Errorf("quantity inválida: %q", q)
		}
	}
	return in, nil
}

// parseMoney acepta "1234.5" y "1234,5"; vacío es nil.
func parseMoney(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	if d.IsNegative() {
		return nil, errors.New("no puede ser negativo")
	}
	return &d, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func rowMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return "código duplicado (item_id, sku_id o barcode)"
	case errors.Is(err, domain.ErrInvalidInput):
		return "datos inválidos"
	}
	return err.Error()
}
