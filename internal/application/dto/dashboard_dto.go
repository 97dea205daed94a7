package dto

import "github.com/shopspring/decimal"

// StatusCountsDTO ítems por estado.
type StatusCountsDTO struct {
	OutOfStock int `json:"out_of_stock"`
	LowStock   int `json:"low_stock"`
	ReadyStock int `json:"ready_stock"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalItems        int                `json:"total_items"`
	TotalUnits        int                `json:"total_units"`
	StockValueCost    decimal.Decimal    `json:"stock_value_cost"`
	StockValueRetail  decimal.Decimal    `json:"stock_value_retail"`
	StatusCounts      StatusCountsDTO    `json:"status_counts"`
	DamagedUnitsMonth int                `json:"damaged_units_month"`
	MovementsToday    int                `json:"movements_today"`
	LowStock          []ItemResponse     `json:"low_stock"`
	RecentActivity    []ActivityResponse `json:"recent_activity"`
	DateLabel         string             `json:"date_label"` // ej: "Febrero 2026"
}

// DailyMovementDTO punto del gráfico de movimientos.
type DailyMovementDTO struct {
	Date string `json:"date"` // YYYY-MM-DD
	In   int    `json:"in"`
	Out  int    `json:"out"`
}

// LabelValueDTO punto de un gráfico de barras o torta.
type LabelValueDTO struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// DashboardChartsDTO respuesta de GET /api/dashboard/charts.
type DashboardChartsDTO struct {
	Days      int                `json:"days"`
	Movements []DailyMovementDTO `json:"movements"`
	Brands    []LabelValueDTO    `json:"brands"`
	Status    []LabelValueDTO    `json:"status"`
}
