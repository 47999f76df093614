package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RuptureItem producto agotado con demanda comprobada en la ventana.
type RuptureItem struct {
	ProductID            string          `json:"product_id"`
	SKU                  string          `json:"sku"`
	Name                 string          `json:"name"`
	Category             string          `json:"category"`
	SalePrice            decimal.Decimal `json:"sale_price"`
	QuantitySold         decimal.Decimal `json:"quantity_sold"`
	SalesCount           int             `json:"sales_count"`
	DailyDemand          decimal.Decimal `json:"daily_demand"`
	DaysOutOfStock       *int            `json:"days_out_of_stock"` // null si el ledger no registra el agotamiento
	EstimatedLostRevenue decimal.Decimal `json:"estimated_lost_revenue"`
	LastSaleDate         time.Time       `json:"last_sale_date"`
}

// RuptureReport productos en quiebre de stock, ordenados por demanda.
type RuptureReport struct {
	LookbackDays     int             `json:"lookback_days"`
	TotalProducts    int             `json:"total_products"`
	TotalLostRevenue decimal.Decimal `json:"total_lost_revenue"`
	Products         []RuptureItem   `json:"products"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// SlowMovingItem producto con stock pero sin rotación reciente.
type SlowMovingItem struct {
	ProductID        string          `json:"product_id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	CurrentStock     decimal.Decimal `json:"current_stock"`
	StockValue       decimal.Decimal `json:"stock_value"`
	DaysWithoutSale  *int            `json:"days_without_sale"` // null si nunca ha vendido
	LastSaleDate     *time.Time      `json:"last_sale_date"`
	LastPurchaseDate *time.Time      `json:"last_purchase_date"`
	Action           string          `json:"action"` // URGENT, IMPORTANT, MONITOR
}

// SlowMovingReport capital inmovilizado en productos de lenta rotación.
type SlowMovingReport struct {
	ThresholdDays   int              `json:"threshold_days"`
	TotalProducts   int              `json:"total_products"`
	TotalStockValue decimal.Decimal  `json:"total_stock_value"`
	Products        []SlowMovingItem `json:"products"`
	GeneratedAt     time.Time        `json:"generated_at"`
}
