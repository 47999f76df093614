package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ABCItem producto clasificado por contribución acumulada a la métrica.
type ABCItem struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	MetricValue   decimal.Decimal `json:"metric_value"`
	Percentage    decimal.Decimal `json:"percentage"`
	CumulativePct decimal.Decimal `json:"cumulative_pct"`
	Class         string          `json:"class"` // A, B, C
}

// ABCClassSummary resumen de una clase ABC.
type ABCClassSummary struct {
	Class         string          `json:"class"`
	ProductCount  int             `json:"product_count"`
	PctOfProducts decimal.Decimal `json:"pct_of_products"`
	TotalValue    decimal.Decimal `json:"total_value"`
	PctOfValue    decimal.Decimal `json:"pct_of_value"`
}

// ABCReport clasificación de Pareto del catálogo.
type ABCReport struct {
	Metric          string            `json:"metric"` // revenue, profit, quantity
	Period          string            `json:"period"` // week, month, quarter, all
	TotalProducts   int               `json:"total_products"`
	Items           []ABCItem         `json:"items"`
	Summary         []ABCClassSummary `json:"summary"`
	Recommendations []string          `json:"recommendations"`
	GeneratedAt     time.Time         `json:"generated_at"`
}

// ProfitabilityItem rentabilidad de un producto en el período.
type ProfitabilityItem struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	UnitsSold     decimal.Decimal `json:"units_sold"`
	Revenue       decimal.Decimal `json:"revenue"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	ProfitMargin  decimal.Decimal `json:"profit_margin"` // % sobre revenue
	ProfitPerUnit decimal.Decimal `json:"profit_per_unit"`
	ROI           decimal.Decimal `json:"roi"` // % sobre costo
	Rating        string          `json:"rating"` // HIGH, MEDIUM, LOW, POOR
}

// ProfitabilityReport productos ordenados por utilidad bruta.
type ProfitabilityReport struct {
	Period        string              `json:"period"`
	TotalRevenue  decimal.Decimal     `json:"total_revenue"`
	TotalProfit   decimal.Decimal     `json:"total_profit"`
	OverallMargin decimal.Decimal     `json:"overall_margin"`
	Items         []ProfitabilityItem `json:"items"`
	GeneratedAt   time.Time           `json:"generated_at"`
}

// ProfitabilitySummary totales del período con mejores y peores productos.
type ProfitabilitySummary struct {
	Period        string              `json:"period"`
	TotalRevenue  decimal.Decimal     `json:"total_revenue"`
	TotalProfit   decimal.Decimal     `json:"total_profit"`
	OverallMargin decimal.Decimal     `json:"overall_margin"`
	TopProducts   []ProfitabilityItem `json:"top_products"`
	WorstProducts []ProfitabilityItem `json:"worst_products"`
	GeneratedAt   time.Time           `json:"generated_at"`
}

// TurnoverItem velocidad compra→venta de un producto.
type TurnoverItem struct {
	ProductID        string          `json:"product_id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	BatchesAnalyzed  int             `json:"batches_analyzed"`
	UnitsReceived    decimal.Decimal `json:"units_received"`
	MinDaysToSell    *int            `json:"min_days_to_sell"` // null si ningún lote vendió
	AvgDaysToSell    decimal.Decimal `json:"avg_days_to_sell"`
	MaxDaysToSell    *int            `json:"max_days_to_sell"`
	UnsoldBatches    int             `json:"unsold_batches"`
	Rating           string          `json:"rating"` // FAST, MEDIUM, SLOW
}

// TurnoverReport productos de venta más lenta primero.
type TurnoverReport struct {
	PeriodDays  int            `json:"period_days"`
	Items       []TurnoverItem `json:"items"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// AgeBracket tramo de antigüedad del inventario.
type AgeBracket struct {
	Range        string          `json:"range"` // "0-7", "8-14", "15-30", "31-60", "60+"
	ProductCount int             `json:"product_count"`
	StockValue   decimal.Decimal `json:"stock_value"`
	PctOfValue   decimal.Decimal `json:"pct_of_value"`
}

// OldestProduct producto con más días desde su última entrada PURCHASE.
type OldestProduct struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	AgeDays   int    `json:"age_days"`
}

// AgeDistributionReport distribución de antigüedad ponderada por valor.
type AgeDistributionReport struct {
	Brackets        []AgeBracket    `json:"brackets"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	AvgAgeDays      decimal.Decimal `json:"avg_age_days"`
	Oldest          *OldestProduct  `json:"oldest"` // null sin inventario con entradas
	GeneratedAt     time.Time       `json:"generated_at"`
}
