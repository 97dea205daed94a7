package inventory

import "github.com/jhoicas/inventory-admin/internal/domain/entity"

// LowStockThreshold por debajo de esta cantidad (y por encima de cero) el ítem está en low_stock.
const LowStockThreshold = 10

// DeriveStatus calcula el estado de stock a partir de la cantidad.
// Se aplica en cada alta o modificación de un ítem; el estado nunca se edita directamente.
func DeriveStatus(quantity int) entity.ItemStatus {
	switch {
	case quantity <= 0:
		return entity.StatusOutOfStock
	case quantity < LowStockThreshold:
		return entity.StatusLowStock
	default:
		return entity.StatusReadyStock
	}
}

// ApplyQuantity fija la cantidad del ítem y recalcula su estado.
func ApplyQuantity(item *entity.Item, quantity int) {
	item.Quantity = quantity
	item.Status = DeriveStatus(quantity)
}
