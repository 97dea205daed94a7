package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/domain"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

// ActivityUseCase consulta del log de actividad.
type ActivityUseCase struct {
	repo repository.ActivityLogRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityLogRepository) *ActivityUseCase {
	return &ActivityUseCase{repo: repo}
}

// List entradas filtradas, más recientes primero.
func (uc *ActivityUseCase) List(ctx context.Context, q dto.ActivityListQuery) (*dto.ListResponse[dto.ActivityResponse], error) {
	q.DefaultPage()
	from, to, err := q.Bounds()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	list, total, err := uc.repo.List(ctx, repository.ActivityFilter{
		Type:      q.Type,
		ItemID:    q.ItemID,
		UserID:    q.UserID,
		DateRange: repository.DateRange{From: from, To: to},
		Page:      repository.Page{Limit: q.Limit, Offset: q.Offset},
	})
	if err != nil {
		return nil, err
	}
	res := dto.NewList(dto.NewActivityResponses(list), q.PageRequest, total)
	return &res, nil
}

// record persiste una entrada de actividad con ID nuevo.
func record(ctx context.Context, repo repository.ActivityLogRepository, kind, description, itemID, userID string, metadata map[string]any) error {
	a := entity.NewActivity(kind, description, itemID, userID, metadata)
	a.ID = uuid.New().String()
	return repo.Create(ctx, a)
}
