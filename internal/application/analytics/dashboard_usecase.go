// Package analytics contiene los casos de uso del dashboard de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

const (
	dashboardLowStock  = 10 // ítems en el widget de stock bajo
	dashboardActivity  = 10 // entradas de actividad reciente
	dashboardTopBrands = 10
	defaultChartDays   = 30
	maxChartDays       = 90
)

// DashboardUseCase genera el resumen y los gráficos del dashboard.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) y el log de actividad.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	activityRepo  repository.ActivityLogRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, activityRepo repository.ActivityLogRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, activityRepo: activityRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Seis consultas en paralelo:
//  1. StockTotals            → ítems, unidades y valor del stock
//  2. CountByStatus          → ítems por estado
//  3. DamagedUnits(mes)      → unidades dañadas del mes en curso
//  4. MovementCount(hoy)     → movimientos de hoy
//  5. LowStock(10)           → ítems con stock bajo o agotados
//  6. Activity(10)           → actividad reciente
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type totalsResult struct {
		v   repository.StockTotals
		err error
	}
	type statusResult struct {
		v   map[entity.ItemStatus]int
		err error
	}
	type countResult struct {
		n   int
		err error
	}
	type itemsResult struct {
		v   []*entity.Item
		err error
	}
	type activityResult struct {
		v   []*entity.ActivityLog
		err error
	}

	totalsCh := make(chan totalsResult, 1)
	statusCh := make(chan statusResult, 1)
	damagedCh := make(chan countResult, 1)
	movesCh := make(chan countResult, 1)
	lowCh := make(chan itemsResult, 1)
	actCh := make(chan activityResult, 1)

	go func() {
		v, err := uc.analyticsRepo.StockTotals(ctx)
		totalsCh <- totalsResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.CountByStatus(ctx)
		statusCh <- statusResult{v, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.DamagedUnits(ctx, monthStart, todayEnd)
		damagedCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.MovementCount(ctx, todayStart, todayEnd)
		movesCh <- countResult{n, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.LowStock(ctx, dashboardLowStock)
		lowCh <- itemsResult{v, err}
	}()
	go func() {
		v, _, err := uc.activityRepo.List(ctx, repository.ActivityFilter{Page: repository.Page{Limit: dashboardActivity}})
		actCh <- activityResult{v, err}
	}()

	totals := <-totalsCh
	status := <-statusCh
	damaged := <-damagedCh
	moves := <-movesCh
	low := <-lowCh
	act := <-actCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales de stock: %w", totals.err)
	}
	if status.err != nil {
		return nil, fmt.Errorf("dashboard: ítems por estado: %w", status.err)
	}
	if damaged.err != nil {
		return nil, fmt.Errorf("dashboard: dañados del mes: %w", damaged.err)
	}
	if moves.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos de hoy: %w", moves.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if act.err != nil {
		return nil, fmt.Errorf("dashboard: actividad reciente: %w", act.err)
	}

	return &dto.DashboardSummaryDTO{
		TotalItems:       totals.v.TotalItems,
		TotalUnits:       totals.v.TotalUnits,
		StockValueCost:   totals.v.CostValue.Round(2),
		StockValueRetail: totals.v.RetailValue.Round(2),
		StatusCounts: dto.StatusCountsDTO{
			OutOfStock: status.v[entity.StatusOutOfStock],
			LowStock:   status.v[entity.StatusLowStock],
			ReadyStock: status.v[entity.StatusReadyStock],
		},
		DamagedUnitsMonth: damaged.n,
		MovementsToday:    moves.n,
		LowStock:          dto.NewItemResponses(low.v),
		RecentActivity:    dto.NewActivityResponses(act.v),
		DateLabel:         monthLabel(now),
	}, nil
}

// GetCharts devuelve las series del dashboard para los últimos days días (por defecto 30, máximo 90).
// Los días sin movimientos aparecen con cero.
func (uc *DashboardUseCase) GetCharts(ctx context.Context, days int) (*dto.DashboardChartsDTO, error) {
	if days <= 0 {
		days = defaultChartDays
	}
	if days > maxChartDays {
		days = maxChartDays
	}
	now := uc.now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -days)

	perDay, err := uc.analyticsRepo.MovementsPerDay(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("dashboard: movimientos por día: %w", err)
	}
	brands, err := uc.analyticsRepo.UnitsByBrand(ctx, dashboardTopBrands)
	if err != nil {
		return nil, fmt.Errorf("dashboard: unidades por marca: %w", err)
	}
	status, err := uc.analyticsRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: ítems por estado: %w", err)
	}

	byDay := make(map[string]repository.DailyMovement, len(perDay))
	for _, d := range perDay {
		byDay[d.Day.Format(dto.DateLayout)] = d
	}
	series := make([]dto.DailyMovementDTO, 0, days)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dto.DateLayout)
		m := byDay[key]
		series = append(series, dto.DailyMovementDTO{Date: key, In: m.In, Out: m.Out})
	}

	brandSeries := make([]dto.LabelValueDTO, 0, len(brands))
	for _, b := range brands {
		brandSeries = append(brandSeries, dto.LabelValueDTO{Label: b.Label, Value: b.Count})
	}
	statusSeries := []dto.LabelValueDTO{
		{Label: string(entity.StatusReadyStock), Value: status[entity.StatusReadyStock]},
		{Label: string(entity.StatusLowStock), Value: status[entity.StatusLowStock]},
		{Label: string(entity.StatusOutOfStock), Value: status[entity.StatusOutOfStock]},
	}

	return &dto.DashboardChartsDTO{
		Days:      days,
		Movements: series,
		Brands:    brandSeries,
		Status:    statusSeries,
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
