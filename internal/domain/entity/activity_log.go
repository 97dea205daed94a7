package entity

import (
	"encoding/json"
	"time"
)

// Tipos de actividad registrados.
const (
	ActivityItemCreated     = "item_created"
	ActivityItemUpdated     = "item_updated"
	ActivityItemDeleted     = "item_deleted"
	ActivityItemImage       = "item_image_updated"
	ActivityStockIn         = "stock_in"
	ActivityStockOut        = "stock_out"
	ActivityItemDamaged     = "item_damaged"
	ActivityItemsImported   = "items_imported"
	ActivityCatalogChanged  = "catalog_changed"
	ActivityUserCreated     = "user_created"
	ActivityUserUpdated     = "user_updated"
	ActivityUserDeleted     = "user_deleted"
	ActivityLogin           = "login"
	ActivityPasswordChanged = "password_changed"
	ActivityExportRequested = "export_requested"
)

// ActivityLog entrada genérica de auditoría.
type ActivityLog struct {
	ID          string
	Type        string
	Description string
	ItemID      string // vacío si no aplica
	Metadata    json.RawMessage
	UserID      string // vacío para acciones del sistema
	CreatedAt   time.Time

	// Solo lectura.
	UserName string
	ItemCode string
}

// NewActivity construye una entrada; metadata nil se guarda como objeto vacío.
func NewActivity(kind, description, itemID, userID string, metadata map[string]any) *ActivityLog {
	raw := json.RawMessage(`{}`)
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			raw = b
		}
	}
	return &ActivityLog{
		Type:        kind,
		Description: description,
		ItemID:      itemID,
		Metadata:    raw,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
}
