package dto

import (
	"time"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// ExportFilters filtros aplicados al generar el archivo; según el tipo se usan unos u otros.
type ExportFilters struct {
	Search string `json:"search,omitempty"`
	Status string `json:"status,omitempty"`
	Brand  string `json:"brand,omitempty"`
	Model  string `json:"model,omitempty"`
	Color  string `json:"color,omitempty"`
	ItemID string `json:"item_id,omitempty"`
	Type   string `json:"type,omitempty"` // tipo de movimiento o de actividad
	From   string `json:"from,omitempty"` // YYYY-MM-DD
	To     string `json:"to,omitempty"`   // YYYY-MM-DD
}

// Range devuelve el rango de fechas de los filtros.
func (f ExportFilters) Range() DateRangeQuery {
	return DateRangeQuery{From: f.From, To: f.To}
}

// ExportRequest body para POST /api/exports.
type ExportRequest struct {
	Type    string        `json:"type" validate:"required,oneof=items movements damaged activity"`
	Format  string        `json:"format" validate:"required,oneof=csv xlsx pdf"`
	Filters ExportFilters `json:"filters"`
}

// ExportNotificationResponse salida de un aviso de exportación.
type ExportNotificationResponse struct {
	ID           string     `json:"id"`
	ExportType   string     `json:"export_type"`
	Format       string     `json:"format"`
	Status       string     `json:"status"`
	FileName     string     `json:"file_name,omitempty"`
	FileSize     int64      `json:"file_size,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	IsRead       bool       `json:"is_read"`
	DownloadURL  string     `json:"download_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// NewExportNotificationResponse mapea la entidad; la URL de descarga solo existe si está completa.
func NewExportNotificationResponse(n *entity.ExportNotification) ExportNotificationResponse {
	r := ExportNotificationResponse{
		ID:           n.ID,
		ExportType:   n.ExportType,
		Format:       n.Format,
		Status:       n.Status,
		FileName:     n.FileName,
		FileSize:     n.FileSize,
		ErrorMessage: n.ErrorMessage,
		IsRead:       n.IsRead,
		CreatedAt:    n.CreatedAt,
		CompletedAt:  n.CompletedAt,
	}
	if n.Status == entity.ExportCompleted {
		r.DownloadURL = "/api/exports/" + n.ID + "/download"
	}
	return r
}

// ExportListResponse listado de avisos con contador de no leídos.
type ExportListResponse struct {
	ListResponse[ExportNotificationResponse]
	Unread int `json:"unread"`
}

// ImportRowError error de una fila del archivo importado (Row es 1-based, incluye cabecera).
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult resumen de POST /api/items/import.
type ImportResult struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Failed  int              `json:"failed"`
	Errors  []ImportRowError `json:"errors"`
}
