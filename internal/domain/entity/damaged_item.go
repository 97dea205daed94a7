package entity

import "time"

// DamagedItem registro de unidades dañadas, ligado al movimiento de salida que las descontó.
type DamagedItem struct {
	ID         string
	ItemID     string
	Quantity   int
	Reason     string
	MovementID string
	UserID     string
	CreatedAt  time.Time

	// Solo lectura.
	ItemCode string
	ItemSKU  string
	UserName string
}
