package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/application/ports"
	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

// MsgInterrupted mensaje de los avisos cuyo trabajo se perdió por un apagado del servidor.
const MsgInterrupted = "exportación interrumpida por reinicio del servidor; vuelve a solicitarla"

// ExportUseCase solicita exportaciones y administra los avisos del usuario.
type ExportUseCase struct {
	repo     repository.ExportNotificationRepository
	activity repository.ActivityLogRepository
	queue    ports.JobQueue
	files    ports.FileStore
}

// NewExportUseCase construye el caso de uso. files es el store de la carpeta de exportaciones.
func NewExportUseCase(repo repository.ExportNotificationRepository, activity repository.ActivityLogRepository, queue ports.JobQueue, files ports.FileStore) *ExportUseCase {
	return &ExportUseCase{repo: repo, activity: activity, queue: queue, files: files}
}

// RequestExport crea el aviso en estado pending y encola el trabajo.
func (uc *ExportUseCase) RequestExport(ctx context.Context, userID string, in dto.ExportRequest) (*dto.ExportNotificationResponse, error) {
	if !validType(in.Type) || !validFormat(in.Format) {
		return nil, domain.ErrInvalidInput
	}
	if _, _, err := in.Filters.Range().Bounds(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	filters, err := json.Marshal(in.Filters)
	if err != nil {
		return nil, err
	}
	n := &entity.ExportNotification{
		ID:         uuid.New().String(),
		UserID:     userID,
		ExportType: in.Type,
		Format:     in.Format,
		Filters:    filters,
		Status:     entity.ExportPending,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	a := entity.NewActivity(entity.ActivityExportRequested,
		fmt.Sprintf("Exportación solicitada: %s (%s)", in.Type, in.Format), "", userID,
		map[string]any{"export_id": n.ID, "type": in.Type, "format": in.Format})
	a.ID = uuid.New().String()
	if err := uc.activity.Create(ctx, a); err != nil {
		return nil, err
	}

	payload, err := Job{NotificationID: n.ID, UserID: userID, Type: in.Type, Format: in.Format, Filters: in.Filters}.Encode()
	if err != nil {
		return nil, err
	}
	if err := uc.queue.Enqueue(ctx, payload); err != nil {
		now := time.Now()
		n.Status = entity.ExportFailed
		n.ErrorMessage = "no se pudo encolar la exportación"
		n.CompletedAt = &now
		_ = uc.repo.Complete(ctx, n)
		return nil, fmt.Errorf("encolar exportación: %w", err)
	}
	res := dto.NewExportNotificationResponse(n)
	return &res, nil
}

// FailStale cierra como failed los avisos pending creados antes de before, cuyo trabajo
// ya no está en ninguna cola. Se llama al arrancar.
func (uc *ExportUseCase) FailStale(ctx context.Context, before time.Time) (int, error) {
	return uc.repo.FailPendingBefore(ctx, before, MsgInterrupted)
}

// List avisos del usuario: no leídos primero, luego más recientes.
func (uc *ExportUseCase) List(ctx context.Context, userID string, p dto.PageRequest) (*dto.ExportListResponse, error) {
	p.DefaultPage()
	list, total, err := uc.repo.ListByUser(ctx, userID, repository.Page{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		return nil, err
	}
	unread, err := uc.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExportNotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, dto.NewExportNotificationResponse(n))
	}
	return &dto.ExportListResponse{ListResponse: dto.NewList(items, p, total), Unread: unread}, nil
}

// MarkRead marca un aviso propio como leído.
func (uc *ExportUseCase) MarkRead(ctx context.Context, userID, id string) error {
	return uc.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead marca todos los avisos propios como leídos y devuelve cuántos cambiaron.
func (uc *ExportUseCase) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return uc.repo.MarkAllRead(ctx, userID)
}

// Download abre el archivo de una exportación completada del propio usuario.
// El llamador cierra el reader.
func (uc *ExportUseCase) Download(ctx context.Context, userID, id string) (io.ReadCloser, *entity.ExportNotification, error) {
	n, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	if n.Status != entity.ExportCompleted {
		return nil, nil, domain.ErrExportNotReady
	}
	rc, err := uc.files.Open(ctx, n.FilePath)
	if err != nil {
		return nil, nil, err
	}
	if !n.IsRead {
		_ = uc.repo.MarkRead(ctx, id, userID)
	}
	return rc, n, nil
}

// Delete borra el aviso y su archivo.
func (uc *ExportUseCase) Delete(ctx context.Context, userID, id string) error {
	n, err := uc.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if n.FilePath != "" {
		if err := uc.files.Remove(ctx, n.FilePath); err != nil {
			return fmt.Errorf("borrar archivo de exportación: %w", err)
		}
	}
	return uc.repo.Delete(ctx, id, userID)
}

// owned devuelve ErrNotFound también si el aviso es de otro usuario.
func (uc *ExportUseCase) owned(ctx context.Context, userID, id string) (*entity.ExportNotification, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil || n.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return n, nil
}

func validType(t string) bool {
	switch t {
	case entity.ExportItems, entity.ExportMovements, entity.ExportDamaged, entity.ExportActivity:
		return true
	}
	return false
}

func validFormat(f string) bool {
	switch f {
	case entity.FormatCSV, entity.FormatXLSX, entity.FormatPDF:
		return true
	}
	return false
}
