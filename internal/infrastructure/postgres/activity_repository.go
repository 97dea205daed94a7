package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

var (
	_ repository.ActivityLogRepository        = (*ActivityLogRepo)(nil)
	_ repository.ExportNotificationRepository = (*ExportNotificationRepo)(nil)
)

// ActivityLogRepo log de auditoría; metadata se guarda como JSONB.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador.
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

func (r *ActivityLogRepo) Create(ctx context.Context, a *entity.ActivityLog) error {
	meta := []byte(a.Metadata)
	if len(meta) == 0 {
		meta = []byte(`{}`)
	}
	query := `
		INSERT INTO activity_logs (id, type, description, item_id, metadata, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Type, a.Description, nullable(a.ItemID), string(meta), nullable(a.UserID), a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

func (r *ActivityLogRepo) List(ctx context.Context, f repository.ActivityFilter) ([]*entity.ActivityLog, int, error) {
	var w where
	if f.Type != "" {
		w.add("a.type = ?", f.Type)
	}
	if f.ItemID != "" {
		w.add("a.item_id = ?", f.ItemID)
	}
	if f.UserID != "" {
		w.add("a.user_id = ?", f.UserID)
	}
	w.dateRange("a.created_at", f.DateRange)

	from := ` FROM activity_logs a
		LEFT JOIN items i ON i.id = a.item_id
		LEFT JOIN users u ON u.id = a.user_id`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+from+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activity: %w", err)
	}

	cond := w.sql()
	limit := w.page(f.Page)
	rows, err := r.q.Query(ctx, `
		SELECT a.id, a.type, a.description, COALESCE(a.item_id::text, ''), a.metadata::text,
			COALESCE(a.user_id::text, ''), a.created_at, COALESCE(i.item_code, ''),
			COALESCE(TRIM(u.first_name || ' ' || u.last_name), '')`+from+cond+
		` ORDER BY a.created_at DESC, a.id DESC`+limit, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var out []*entity.ActivityLog
	for rows.Next() {
		var (
			a    entity.ActivityLog
			meta string
		)
		if err := rows.Scan(&a.ID, &a.Type, &a.Description, &a.ItemID, &meta, &a.UserID, &a.CreatedAt,
			&a.ItemCode, &a.UserName); err != nil {
			return nil, 0, fmt.Errorf("scan activity: %w", err)
		}
		a.Metadata = []byte(meta)
		out = append(out, &a)
	}
	return out, total, rows.Err()
}

// ExportNotificationRepo avisos de exportación por usuario.
type ExportNotificationRepo struct {
	q Querier
}

// NewExportNotificationRepository construye el adaptador.
func NewExportNotificationRepository(q Querier) *ExportNotificationRepo {
	return &ExportNotificationRepo{q: q}
}

const exportColumns = `id, user_id, export_type, format, filters::text, status, file_name, file_path,
	file_size, error_message, is_read, created_at, completed_at`

func scanExport(row pgx.Row) (*entity.ExportNotification, error) {
	var (
		n       entity.ExportNotification
		filters string
	)
	err := row.Scan(&n.ID, &n.UserID, &n.ExportType, &n.Format, &filters, &n.Status, &n.FileName,
		&n.FilePath, &n.FileSize, &n.ErrorMessage, &n.IsRead, &n.CreatedAt, &n.CompletedAt)
	if err != nil {
		return nil, err
	}
	n.Filters = []byte(filters)
	return &n, nil
}

func (r *ExportNotificationRepo) Create(ctx context.Context, n *entity.ExportNotification) error {
	filters := string(n.Filters)
	if filters == "" {
		filters = `{}`
	}
	query := `
		INSERT INTO export_notifications (id, user_id, export_type, format, filters, status, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.UserID, n.ExportType, n.Format, filters, n.Status, n.IsRead, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert export notification: %w", err)
	}
	return nil
}

func (r *ExportNotificationRepo) GetByID(ctx context.Context, id string) (*entity.ExportNotification, error) {
	n, err := scanExport(r.q.QueryRow(ctx, `SELECT `+exportColumns+` FROM export_notifications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get export notification: %w", err)
	}
	return n, nil
}

func (r *ExportNotificationRepo) Complete(ctx context.Context, n *entity.ExportNotification) error {
	query := `
		UPDATE export_notifications
		SET status = $2, file_name = $3, file_path = $4, file_size = $5, error_message = $6, completed_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		n.ID, n.Status, n.FileName, n.FilePath, n.FileSize, n.ErrorMessage, n.CompletedAt)
	if err != nil {
		return fmt.Errorf("complete export notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FailPendingBefore cierra como failed los avisos que quedaron pending (trabajo perdido).
func (r *ExportNotificationRepo) FailPendingBefore(ctx context.Context, before time.Time, message string) (int, error) {
	query := `
		UPDATE export_notifications
		SET status = 'failed', error_message = $2, completed_at = now()
		WHERE status = 'pending' AND created_at < $1`
	tag, err := r.q.Exec(ctx, query, before, message)
	if err != nil {
		return 0, fmt.Errorf("fail stale export notifications: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *ExportNotificationRepo) ListByUser(ctx context.Context, userID string, p repository.Page) ([]*entity.ExportNotification, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM export_notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count export notifications: %w", err)
	}
	var w where
	w.add("user_id = ?", userID)
	cond := w.sql()
	limit := w.page(p)
	rows, err := r.q.Query(ctx, `SELECT `+exportColumns+` FROM export_notifications`+cond+
		` ORDER BY is_read ASC, created_at DESC, id`+limit, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list export notifications: %w", err)
	}
	defer rows.Close()
	var out []*entity.ExportNotification
	for rows.Next() {
		n, err := scanExport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan export notification: %w", err)
		}
		out = append(out, n)
	}
	return out, total, rows.Err()
}

func (r *ExportNotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM export_notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread exports: %w", err)
	}
	return n, nil
}

func (r *ExportNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE export_notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("mark export read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ExportNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE export_notifications SET is_read = true WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all exports read: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *ExportNotificationRepo) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM export_notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete export notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
