package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AvailabilityItem disponibilidad de un producto con demanda en el período.
type AvailabilityItem struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	Category           string          `json:"category"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	AvailabilityRate   decimal.Decimal `json:"availability_rate"` // % del período con stock
	DaysOutOfStock     decimal.Decimal `json:"days_out_of_stock"`
	StockoutEvents     int             `json:"stockout_events"`
	LostSalesCount     decimal.Decimal `json:"lost_sales_count"`     // unidades que se habrían vendido
	EstimatedLostSales decimal.Decimal `json:"estimated_lost_sales"` // esas unidades a precio de venta
	Severity           string          `json:"severity"`             // CRITICAL, HIGH, MEDIUM
}

// AvailabilityReport disponibilidad histórica del período.
type AvailabilityReport struct {
	PeriodDays       int                `json:"period_days"`
	ProductsAnalyzed int                `json:"products_analyzed"`
	TotalLostUnits   decimal.Decimal    `json:"total_lost_units"`
	TotalLostSales   decimal.Decimal    `json:"total_lost_sales"`
	Products         []AvailabilityItem `json:"products"`
	GeneratedAt      time.Time          `json:"generated_at"`
}

// DemandDropItem producto cuya venta reciente cayó frente a su historial,
// con reposición que confirma que no es falta de stock.
type DemandDropItem struct {
	ProductID            string          `json:"product_id"`
	SKU                  string          `json:"sku"`
	Name                 string          `json:"name"`
	Category             string          `json:"category"`
	HistoricalDailySales decimal.Decimal `json:"historical_daily_sales"`
	RecentDailySales     decimal.Decimal `json:"recent_daily_sales"`
	DropPct              decimal.Decimal `json:"drop_pct"`
	LastRestockDate      time.Time       `json:"last_restock_date"`
	EstimatedLostRevenue decimal.Decimal `json:"estimated_lost_revenue"`
	Severity             string          `json:"severity"` // CRITICAL, HIGH, MEDIUM
}

// DemandDropReport caídas operativas de demanda (producto disponible que dejó
// de venderse: visibilidad, precio, exhibición).
type DemandDropReport struct {
	HistoricalDays   int              `json:"historical_days"`
	RecentDays       int              `json:"recent_days"`
	DropThresholdPct decimal.Decimal  `json:"drop_threshold_pct"`
	ProductsFlagged  int              `json:"products_flagged"`
	Products         []DemandDropItem `json:"products"`
	GeneratedAt      time.Time        `json:"generated_at"`
}
