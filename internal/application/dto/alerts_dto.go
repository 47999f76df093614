package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Alert entrada individual del dashboard: un hallazgo accionable.
type Alert struct {
	Type      string `json:"type"`
	ProductID string `json:"product_id,omitempty"`
	SKU       string `json:"sku,omitempty"`
	Message   string `json:"message"`
}

// AlertsSummary números generales del inventario en el momento del reporte.
type AlertsSummary struct {
	TotalProducts     int             `json:"total_products"`
	ProductsWithStock int             `json:"products_with_stock"`
	TotalStockValue   decimal.Decimal `json:"total_stock_value"`
	CriticalCount     int             `json:"critical_count"`
	WarningCount      int             `json:"warning_count"`
}

// AlertsMetrics métricas operativas que acompañan al dashboard.
type AlertsMetrics struct {
	OutOfStockCount  int             `json:"out_of_stock_count"`
	BelowMinStock    int             `json:"below_min_stock"`
	SalesLast30Days  decimal.Decimal `json:"sales_last_30_days"`
	AtRiskCount      int             `json:"at_risk_count"`
	SlowMovingCount  int             `json:"slow_moving_count"`
	DiscrepancyCount int             `json:"discrepancy_count"`
}

// HealthReport estado consolidado del inventario. Las cuatro colecciones
// siempre están presentes, vacías cuando no hay hallazgos.
type HealthReport struct {
	HealthScore     int           `json:"health_score"` // 0–100
	Status          string        `json:"status"`       // EXCELLENT, GOOD, FAIR, POOR
	Summary         AlertsSummary `json:"summary"`
	CriticalAlerts  []Alert       `json:"critical_alerts"`
	Warnings        []Alert       `json:"warnings"`
	Recommendations []Alert       `json:"recommendations"`
	Metrics         AlertsMetrics `json:"metrics"`
	GeneratedAt     time.Time     `json:"generated_at"`
}
