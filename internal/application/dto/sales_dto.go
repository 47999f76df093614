package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopSellerItem producto del ranking de ventas.
type TopSellerItem struct {
	Rank         int             `json:"rank"`
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Revenue      decimal.Decimal `json:"revenue"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	SalesCount   int             `json:"sales_count"`
	PctOfTotal   decimal.Decimal `json:"pct_of_total"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	StockStatus  string          `json:"stock_status"` // OK, LOW, OUT
}

// TopSellersReport ranking de productos por la métrica elegida.
type TopSellersReport struct {
	Period       string          `json:"period"`
	Metric       string          `json:"metric"` // revenue, quantity, frequency
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Items        []TopSellerItem `json:"items"`
	GeneratedAt  time.Time       `json:"generated_at"`
}
