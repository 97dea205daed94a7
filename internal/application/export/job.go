// Package export genera archivos de exportación en segundo plano e importa ítems
// desde CSV o XLSX.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
)

// Job mensaje encolado por RequestExport y consumido por el Processor.
type Job struct {
	NotificationID string            `json:"notification_id"`
	UserID         string            `json:"user_id"`
	Type           string            `json:"type"`
	Format         string            `json:"format"`
	Filters        dto.ExportFilters `json:"filters"`
}

// Encode serializa el trabajo para la cola.
func (j Job) Encode() ([]byte, error) {
	return json.Marshal(j)
}

// DecodeJob lee un trabajo de la cola.
func DecodeJob(payload []byte) (Job, error) {
	var j Job
	if err := json.Unmarshal(payload, &j); err != nil {
		return Job{}, fmt.Errorf("decodificar trabajo: %w", err)
	}
	if j.NotificationID == "" {
		return Job{}, fmt.Errorf("decodificar trabajo: notification_id vacío")
	}
	return j, nil
}
