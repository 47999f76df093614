package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingOrderDetail línea de orden pendiente tal como se reporta al cliente.
type PendingOrderDetail struct {
	OrderNumber string          `json:"order_number"`
	OrderDate   time.Time       `json:"order_date"`
	DaysPending int             `json:"days_pending"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// PendingOrderInfo estado de las órdenes en tránsito de un producto.
type PendingOrderInfo struct {
	OrdersCount   int                  `json:"orders_count"`
	TotalQuantity decimal.Decimal      `json:"total_quantity"`
	OldestDays    *int                 `json:"oldest_order_days"` // null sin órdenes pendientes
	IsDelayed     bool                 `json:"is_delayed"`
	IsSufficient  bool                 `json:"is_sufficient"`
	Orders        []PendingOrderDetail `json:"orders"`
}

// StockoutRiskItem producto con riesgo de quiebre dentro del horizonte.
type StockoutRiskItem struct {
	ProductID            string           `json:"product_id"`
	SKU                  string           `json:"sku"`
	Name                 string           `json:"name"`
	Category             string           `json:"category"`
	CurrentStock         decimal.Decimal  `json:"current_stock"`
	AvgDailySales        decimal.Decimal  `json:"avg_daily_sales"`
	DaysUntilStockout    decimal.Decimal  `json:"days_until_stockout"`
	ForecastDemand       decimal.Decimal  `json:"forecast_demand"`
	CoverageGap          decimal.Decimal  `json:"coverage_gap"`
	RiskLevel            string           `json:"risk_level"`
	PotentialLostRevenue decimal.Decimal  `json:"potential_lost_revenue"`
	PendingOrders        PendingOrderInfo `json:"pending_orders"`
	Recommendation       string           `json:"recommendation"`
}

// StockoutRiskReport reporte del pronóstico de quiebre de stock.
type StockoutRiskReport struct {
	ForecastDays     int                `json:"forecast_days"`
	MinDaysThreshold int                `json:"min_days_threshold"`
	HistoryDays      int                `json:"history_days"`
	TotalAtRisk      int                `json:"total_at_risk"`
	CriticalCount    int                `json:"critical_count"`
	HighCount        int                `json:"high_count"`
	Products         []StockoutRiskItem `json:"products"`
	GeneratedAt      time.Time          `json:"generated_at"`
}

// PendingOrderSummaryItem orden PENDING con sus líneas, para la vista de
// órdenes en tránsito.
type PendingOrderSummaryItem struct {
	OrderID      string             `json:"order_id"`
	OrderNumber  string             `json:"order_number"`
	SupplierName string             `json:"supplier_name"`
	OrderDate    time.Time          `json:"order_date"`
	DaysPending  int                `json:"days_pending"`
	IsDelayed    bool               `json:"is_delayed"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	Items        []PendingOrderLine `json:"items"`
}

// PendingOrderLine línea de producto dentro de una orden pendiente.
type PendingOrderLine struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// PendingOrderSummary resumen de todas las órdenes pendientes de recepción.
type PendingOrderSummary struct {
	TotalOrders  int                       `json:"total_orders"`
	DelayedCount int                       `json:"delayed_count"`
	Orders       []PendingOrderSummaryItem `json:"orders"`
}
