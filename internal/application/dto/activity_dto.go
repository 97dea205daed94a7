package dto

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// ActivityListQuery query string de GET /api/activity.
type ActivityListQuery struct {
	Type   string `query:"type"`
	ItemID string `query:"item_id"`
	UserID string `query:"user_id"`
	DateRangeQuery
	PageRequest
}

// ActivityResponse salida de una entrada del log.
type ActivityResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	ItemID      string          `json:"item_id,omitempty"`
	ItemCode    string          `json:"item_code,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
	UserID      string          `json:"user_id,omitempty"`
	UserName    string          `json:"user_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewActivityResponse mapea la entidad.
func NewActivityResponse(a *entity.ActivityLog) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		Type:        a.Type,
		Description: a.Description,
		ItemID:      a.ItemID,
		ItemCode:    a.ItemCode,
		Metadata:    a.Metadata,
		UserID:      a.UserID,
		UserName:    a.UserName,
		CreatedAt:   a.CreatedAt,
	}
}

// NewActivityResponses mapea un slice.
func NewActivityResponses(list []*entity.ActivityLog) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, NewActivityResponse(a))
	}
	return out
}
