package export

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/application/ports"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

const tsLayout = "2006-01-02 15:04"

// ItemColumns cabecera de exportación e importación de ítems, en orden.
var ItemColumns = []string{
	"item_id", "sku_id", "barcode", "brand", "model", "color",
	"description", "cost_price", "retail_price", "quantity",
}

// Sources repositorios de lectura usados para armar las tablas.
type Sources struct {
	Items     repository.ItemRepository
	Movements repository.StockMovementRepository
	Damaged   repository.DamagedItemRepository
	Activity  repository.ActivityLogRepository
}

// BuildTable arma la tabla completa (sin paginar) del tipo pedido.
func (s Sources) BuildTable(ctx context.Context, kind string, f dto.ExportFilters, now time.Time) (ports.Table, error) {
	from, to, err := f.Range().Bounds()
	if err != nil {
		return ports.Table{}, err
	}
	dr := repository.DateRange{From: from, To: to}
	t := ports.Table{Subtitle: subtitle(f, now)}

	switch kind {
	case entity.ExportItems:
		list, _, err := s.Items.List(ctx, repository.ItemFilter{
			Search: f.Search, Status: f.Status, Brand: f.Brand, Model: f.Model, Color: f.Color,
			Sort: "item_code", Order: "asc",
		})
		if err != nil {
			return t, err
		}
		t.Title = "Inventario de ítems"
		t.Headers = append(append([]string{}, ItemColumns...), "status", "stock_value", "updated_at")
		for _, it := range list {
			t.Rows = append(t.Rows, []string{
				it.ItemCode, it.SKU, it.Barcode, it.Brand, it.Model, it.Color, it.Description,
				it.CostPrice.StringFixed(2), it.RetailPrice.StringFixed(2), strconv.Itoa(it.Quantity),
				string(it.Status), it.StockValue().StringFixed(2), it.UpdatedAt.Format(tsLayout),
			})
		}
	case entity.ExportMovements:
		list, _, err := s.Movements.List(ctx, repository.MovementFilter{ItemID: f.ItemID, Type: f.Type, DateRange: dr})
		if err != nil {
			return t, err
		}
		t.Title = "Movimientos de stock"
		t.Headers = []string{"date", "item_id", "sku_id", "type", "quantity", "balance_after", "unit_cost", "total_cost", "reason", "user"}
		for _, m := range list {
			t.Rows = append(t.Rows, []string{
				m.CreatedAt.Format(tsLayout), m.ItemCode, m.ItemSKU, string(m.Type),
				strconv.Itoa(m.Quantity), strconv.Itoa(m.BalanceAfter),
				m.UnitCost.StringFixed(2), m.TotalCost.StringFixed(2), m.Reason, m.UserName,
			})
		}
	case entity.ExportDamaged:
		list, _, err := s.Damaged.List(ctx, repository.DamagedFilter{ItemID: f.ItemID, DateRange: dr})
		if err != nil {
			return t, err
		}
		t.Title = "Ítems dañados"
		t.Headers = []string{"date", "item_id", "sku_id", "quantity", "reason", "user"}
		for _, d := range list {
			t.Rows = append(t.Rows, []string{
				d.CreatedAt.Format(tsLayout), d.ItemCode, d.ItemSKU, strconv.Itoa(d.Quantity), d.Reason, d.UserName,
			})
		}
	case entity.ExportActivity:
		list, _, err := s.Activity.List(ctx, repository.ActivityFilter{Type: f.Type, ItemID: f.ItemID, DateRange: dr})
		if err != nil {
			return t, err
		}
		t.Title = "Log de actividad"
		t.Headers = []string{"date", "type", "description", "item_id", "user"}
		for _, a := range list {
			t.Rows = append(t.Rows, []string{
				a.CreatedAt.Format(tsLayout), a.Type, a.Description, a.ItemCode, a.UserName,
			})
		}
	default:
		return t, fmt.Errorf("tipo de exportación desconocido: %q", kind)
	}
	return t, nil
}

func subtitle(f dto.ExportFilters, now time.Time) string {
	s := "Generado " + now.Format(tsLayout)
	switch {
	case f.From != "" && f.To != "":
		s += " | " + f.From + " a " + f.To
	case f.From != "":
		s += " | desde " + f.From
	case f.To != "":
		s += " | hasta " + f.To
	}
	return s
}
