package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

// ActivityLogRepository puerto del log de auditoría.
type ActivityLogRepository interface {
	Create(ctx context.Context, a *entity.ActivityLog) error
	List(ctx context.Context, f ActivityFilter) ([]*entity.ActivityLog, int, error)
}

// ExportNotificationRepository puerto de los avisos de exportación.
type ExportNotificationRepository interface {
	Create(ctx context.Context, n *entity.ExportNotification) error
	GetByID(ctx context.Context, id string) (*entity.ExportNotification, error)
	// Complete guarda estado final, archivo y error.
	Complete(ctx context.Context, n *entity.ExportNotification) error
	// FailPendingBefore pasa a failed los avisos pending creados antes de before.
	FailPendingBefore(ctx context.Context, before time.Time, message string) (int, error)
	// ListByUser devuelve primero los no leídos y luego por fecha descendente.
	ListByUser(ctx context.Context, userID string, p Page) ([]*entity.ExportNotification, int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, id, userID string) error
}
