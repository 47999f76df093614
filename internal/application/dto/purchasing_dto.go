package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseSuggestion sugerencia de reposición para un producto.
type PurchaseSuggestion struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	AvgDailySales     decimal.Decimal `json:"avg_daily_sales"`
	DaysUntilStockout *int            `json:"days_until_stockout"` // null si no hay demanda diaria
	ForecastDemand    decimal.Decimal `json:"forecast_demand"`
	SuggestedQuantity decimal.Decimal `json:"suggested_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	OrderValue        decimal.Decimal `json:"order_value"`
	Priority          string          `json:"priority"` // HIGH, MEDIUM, LOW
	PendingQuantity   decimal.Decimal `json:"pending_quantity"`
	PendingSufficient bool            `json:"pending_sufficient"`
}

// PurchaseSuggestionsReport sugerencias ordenadas por prioridad y valor.
type PurchaseSuggestionsReport struct {
	ForecastDays    int                  `json:"forecast_days"`
	HistoryDays     int                  `json:"history_days"`
	MinOrderValue   decimal.Decimal      `json:"min_order_value"`
	TotalSuggested  int                  `json:"total_suggested"`
	TotalOrderValue decimal.Decimal      `json:"total_order_value"`
	Suggestions     []PurchaseSuggestion `json:"suggestions"`
	GeneratedAt     time.Time            `json:"generated_at"`
}

// SupplierOrderLine línea de una orden consolidada por proveedor.
type SupplierOrderLine struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	SuggestedQuantity decimal.Decimal `json:"suggested_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	OrderValue        decimal.Decimal `json:"order_value"`
	Priority          string          `json:"priority"`
}

// SupplierOrder sugerencias agrupadas bajo el último proveedor conocido.
type SupplierOrder struct {
	SupplierID   string              `json:"supplier_id"`
	SupplierName string              `json:"supplier_name"`
	ProductCount int                 `json:"product_count"`
	TotalValue   decimal.Decimal     `json:"total_value"`
	Items        []SupplierOrderLine `json:"items"`
}

// SupplierOrdersReport órdenes consolidadas, de mayor a menor valor.
type SupplierOrdersReport struct {
	TotalSuppliers int             `json:"total_suppliers"`
	TotalValue     decimal.Decimal `json:"total_value"`
	Orders         []SupplierOrder `json:"orders"`
	GeneratedAt    time.Time       `json:"generated_at"`
}
