package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummary demanda agregada de un producto en una ventana.
// Solo considera ventas PAID.
type SalesSummary struct {
	TotalSold  decimal.Decimal
	SalesCount int
	LastSale   *time.Time // nil si el producto nunca vendió en la ventana
}

// ProductSalesRow fila de ventas por producto para rankings y clasificación.
type ProductSalesRow struct {
	ProductID    string
	SKU          string
	Name         string
	Category     string
	Brand        string
	SalePrice    decimal.Decimal
	CostPrice    decimal.Decimal
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	Revenue      decimal.Decimal // Σ cantidad × precio unitario de venta
	Quantity     decimal.Decimal
	SalesCount   int
}

// RuptureCandidateRow producto sin stock que sí tuvo ventas PAID en la ventana.
type RuptureCandidateRow struct {
	ProductID    string
	SKU          string
	Name         string
	Category     string
	SalePrice    decimal.Decimal
	CurrentStock decimal.Decimal
	QuantitySold decimal.Decimal
	SalesCount   int
	LastSaleDate time.Time
}

// SalesRepository consultas de lectura sobre ventas pagadas.
type SalesRepository interface {
	// SummaryForProduct agrega las ventas PAID del producto desde la fecha dada.
	SummaryForProduct(ctx context.Context, productID string, since time.Time) (SalesSummary, error)

	// TotalSoldBetween suma la cantidad vendida (PAID) en [start, end).
	TotalSoldBetween(ctx context.Context, productID string, start, end time.Time) (decimal.Decimal, error)

	// RevenueByProduct devuelve una fila por producto con ventas PAID desde la
	// fecha dada. Productos sin ventas en la ventana no aparecen.
	RevenueByProduct(ctx context.Context, since time.Time) ([]ProductSalesRow, error)

	// RuptureCandidates devuelve productos con stock <= 0 y al menos una venta
	// PAID desde la fecha dada.
	RuptureCandidates(ctx context.Context, since time.Time) ([]RuptureCandidateRow, error)

	// TotalRevenueSince suma el revenue PAID de todos los productos.
	TotalRevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error)

	// ProductIDsWithSales devuelve los IDs con al menos una venta (cualquier
	// estado) desde la fecha dada. Define el universo del análisis de
	// disponibilidad: sin demanda no hay pérdida medible.
	ProductIDsWithSales(ctx context.Context, since time.Time) ([]string, error)

	// LastSaleDate fecha de la última venta PAID del producto, nil si nunca vendió.
	LastSaleDate(ctx context.Context, productID string) (*time.Time, error)

	// FirstSaleAfter fecha de la primera venta PAID del producto posterior al
	// instante dado, nil si aún no se vende.
	FirstSaleAfter(ctx context.Context, productID string, after time.Time) (*time.Time, error)
}
