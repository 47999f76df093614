package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscrepancyItem producto cuyo stock físico no cuadra con su ledger.
type DiscrepancyItem struct {
	ProductID      string          `json:"product_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	ExpectedStock  decimal.Decimal `json:"expected_stock"`
	ActualStock    decimal.Decimal `json:"actual_stock"`
	Discrepancy    decimal.Decimal `json:"discrepancy"` // expected − actual
	DiscrepancyPct decimal.Decimal `json:"discrepancy_pct"`
	LossValue      decimal.Decimal `json:"loss_value"`
	MovementsCount int             `json:"movements_count"`
	Severity       string          `json:"severity"` // CRITICAL, HIGH, MEDIUM
}

// DiscrepancyReport discrepancias sobre la tolerancia, peores primero.
type DiscrepancyReport struct {
	TolerancePct     decimal.Decimal   `json:"tolerance_pct"`
	ProductsAnalyzed int               `json:"products_analyzed"`
	TotalLossValue   decimal.Decimal   `json:"total_loss_value"`
	Items            []DiscrepancyItem `json:"items"`
	GeneratedAt      time.Time         `json:"generated_at"`
}

// ExplicitLossItem pérdida registrada a propósito en el ledger (tipo LOSS).
type ExplicitLossItem struct {
	MovementID   string          `json:"movement_id"`
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Quantity     decimal.Decimal `json:"quantity"` // valor absoluto
	UnitCost     decimal.Decimal `json:"unit_cost"`
	LossValue    decimal.Decimal `json:"loss_value"`
	MovementDate time.Time       `json:"movement_date"`
	DaysAgo      int             `json:"days_ago"`
	Notes        string          `json:"notes"`
}

// ExplicitLossesReport pérdidas reconocidas del período, recientes primero.
type ExplicitLossesReport struct {
	PeriodDays     int                `json:"period_days"`
	TotalLossValue decimal.Decimal    `json:"total_loss_value"`
	Losses         []ExplicitLossItem `json:"losses"`
	GeneratedAt    time.Time          `json:"generated_at"`
}
