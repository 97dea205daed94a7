package entity

import "time"

// Estados de un trabajo de exportación.
const (
	ExportPending   = "pending"
	ExportCompleted = "completed"
	ExportFailed    = "failed"
)

// Tipos de datos exportables.
const (
	ExportItems     = "items"
	ExportMovements = "movements"
	ExportDamaged   = "damaged"
	ExportActivity  = "activity"
)

// Formatos de archivo.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// ExportNotification sigue el estado de una exportación asíncrona y hace de aviso al usuario.
type ExportNotification struct {
	ID           string
	UserID       string
	ExportType   string
	Format       string
	Filters      []byte // JSON con los filtros pedidos
	Status       string
	FileName     string
	FilePath     string
	FileSize     int64
	ErrorMessage string
	IsRead       bool
	CreatedAt    time.Time
	CompletedAt  *time.Time
}
