package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierScoreItem desempeño de un proveedor en el período.
type SupplierScoreItem struct {
	SupplierID       string          `json:"supplier_id"`
	Name             string          `json:"name"`
	ProductsSupplied int             `json:"products_supplied"`
	PurchaseSpend    decimal.Decimal `json:"purchase_spend"`
	RevenueGenerated decimal.Decimal `json:"revenue_generated"`
	AvgTurnoverRate  decimal.Decimal `json:"avg_turnover_rate"` // unidades/día promedio
	SlowMovingCount  int             `json:"slow_moving_count"`
	SlowMovingPct    decimal.Decimal `json:"slow_moving_pct"`
	Score            decimal.Decimal `json:"score"` // 0–100
	Rating           string          `json:"rating"` // Excellent, Good, Fair, Poor
}

// SupplierScoreReport proveedores ordenados según el criterio pedido.
type SupplierScoreReport struct {
	PeriodDays  int                 `json:"period_days"`
	SortBy      string              `json:"sort_by"`
	Suppliers   []SupplierScoreItem `json:"suppliers"`
	GeneratedAt time.Time           `json:"generated_at"`
}
