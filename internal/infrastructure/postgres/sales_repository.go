package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-insights/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo consultas de solo lectura sobre ventas. Todas las agregaciones de
// demanda filtran por estado PAID: una venta pendiente o cancelada no es
// demanda confirmada.
type SalesRepo struct {
	pool *pgxpool.Pool
}

// NewSalesRepository construye el adaptador de ventas.
func NewSalesRepository(pool *pgxpool.Pool) *SalesRepo {
	return &SalesRepo{pool: pool}
}

// SummaryForProduct agrega las ventas PAID del producto desde la fecha dada.
// COALESCE devuelve ceros en períodos sin ventas.
func (r *SalesRepo) SummaryForProduct(ctx context.Context, productID string, since time.Time) (repository.SalesSummary, error) {
	const query = `
	SELECT
	    COALESCE(SUM(i.quantity), 0) AS total_sold,
	    COUNT(DISTINCT o.id)         AS sales_count,
	    MAX(o.sale_date)             AS last_sale
	FROM sale_order_items i
	JOIN sale_orders o ON o.id = i.sale_order_id
	WHERE i.product_id = $1
	  AND o.status = 'PAID'
	  AND o.sale_date >= $2`

	var s repository.SalesSummary
	err := r.pool.QueryRow(ctx, query, productID, since).Scan(&s.TotalSold, &s.SalesCount, &s.LastSale)
	if err != nil {
		return repository.SalesSummary{}, fmt.Errorf("sales.SummaryForProduct: %w", err)
	}
	return s, nil
}

// TotalSoldBetween suma la cantidad vendida (PAID) en [start, end).
func (r *SalesRepo) TotalSoldBetween(ctx context.Context, productID string, start, end time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(i.quantity), 0)
	FROM sale_order_items i
	JOIN sale_orders o ON o.id = i.sale_order_id
	WHERE i.product_id = $1
	  AND o.status = 'PAID'
	  AND o.sale_date >= $2
	  AND o.sale_date < $3`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, productID, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sales.TotalSoldBetween: %w", err)
	}
	return total, nil
}

// RevenueByProduct una fila por producto con ventas PAID desde la fecha dada.
func (r *SalesRepo) RevenueByProduct(ctx context.Context, since time.Time) ([]repository.ProductSalesRow, error) {
	const query = `
	SELECT
	    p.id,
	    p.sku,
	    p.name,
	    COALESCE(p.category, '')         AS category,
	    COALESCE(p.brand, '')            AS brand,
	    p.sale_price,
	    p.cost_price,
	    p.current_stock,
	    p.min_stock,
	    SUM(i.quantity * i.unit_price)   AS revenue,
	    SUM(i.quantity)                  AS quantity,
	    COUNT(DISTINCT o.id)             AS sales_count
	FROM sale_order_items i
	JOIN sale_orders o ON o.id = i.sale_order_id
	JOIN products    p ON p.id = i.product_id
	WHERE o.status = 'PAID'
	  AND o.sale_date >= $1
	GROUP BY p.id, p.sku, p.name, p.category, p.brand,
	         p.sale_price, p.cost_price, p.current_stock, p.min_stock
	ORDER BY revenue DESC`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("sales.RevenueByProduct: %w", err)
	}
	defer rows.Close()

	results := []repository.ProductSalesRow{}
	for rows.Next() {
		var row repository.ProductSalesRow
		if err := rows.Scan(
			&row.ProductID,
			&row.SKU,
			&row.Name,
			&row.Category,
			&row.Brand,
			&row.SalePrice,
			&row.CostPrice,
			&row.CurrentStock,
			&row.MinStock,
			&row.Revenue,
			&row.Quantity,
			&row.SalesCount,
		); err != nil {
			return nil, fmt.Errorf("sales.RevenueByProduct scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales.RevenueByProduct rows: %w", err)
	}
	return results, nil
}

// RuptureCandidates productos agotados con ventas PAID desde la fecha dada,
// ordenados por cantidad vendida descendente.
func (r *SalesRepo) RuptureCandidates(ctx context.Context, since time.Time) ([]repository.RuptureCandidateRow, error) {
	const query = `
	SELECT
	    p.id,
	    p.sku,
	    p.name,
	    COALESCE(p.category, '') AS category,
	    p.sale_price,
	    p.current_stock,
	    SUM(i.quantity)          AS quantity_sold,
	    COUNT(DISTINCT o.id)     AS sales_count,
	    MAX(o.sale_date)         AS last_sale_date
	FROM sale_order_items i
	JOIN sale_orders o ON o.id = i.sale_order_id
	JOIN products    p ON p.id = i.product_id
	WHERE o.status = 'PAID'
	  AND o.sale_date >= $1
	  AND p.current_stock <= 0
	GROUP BY p.id, p.sku, p.name, p.category, p.sale_price, p.current_stock
	ORDER BY quantity_sold DESC`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("sales.RuptureCandidates: %w", err)
	}
	defer rows.Close()

	results := []repository.RuptureCandidateRow{}
	for rows.Next() {
		var row repository.RuptureCandidateRow
		if err := rows.Scan(
			&row.ProductID,
			&row.SKU,
			&row.Name,
			&row.Category,
			&row.SalePrice,
			&row.CurrentStock,
			&row.QuantitySold,
			&row.SalesCount,
			&row.LastSaleDate,
		); err != nil {
			return nil, fmt.Errorf("sales.RuptureCandidates scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales.RuptureCandidates rows: %w", err)
	}
	return results, nil
}

// TotalRevenueSince revenue PAID acumulado de todos los productos.
func (r *SalesRepo) TotalRevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(i.quantity * i.unit_price), 0)
	FROM sale_order_items i
	JOIN sale_orders o ON o.id = i.sale_order_id
	WHERE o.status = 'PAID'
	  AND o.sale_date >= $1`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, since).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sales.TotalRevenueSince: %w", err)
	}
	return total, nil
}

// ProductIDsWithSales IDs con al menos una venta (cualquier estado) desde la
// fecha dada.
func (r *SalesRepo) ProductIDsWithSales(ctx context.Context, since time.Time) ([]string, error) {
	const query = `
	SELECT DISTINCT i.product_id
	FROM sale_order_items i
	JOIN sale_orders o ON o.id = i.sale_order_id
	WHERE o.sale_date >= $1
	ORDER BY i.product_id`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("sales.ProductIDsWithSales: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sales.ProductIDsWithSales scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales.ProductIDsWithSales rows: %w", err)
	}
	return ids, nil
}

// LastSaleDate fecha de la última venta PAID del producto, nil si nunca vendió.
func (r *SalesRepo) LastSaleDate(ctx context.Context, productID string) (*time.Time, error) {
	const query = `
	SELECT MAX(o.sale_date)
	FROM sale_order_items i
	JOIN sale_orders o ON o.id = i.sale_order_id
	WHERE i.product_id = $1
	  AND o.status = 'PAID'`

	var last *time.Time
	if err := r.pool.QueryRow(ctx, query, productID).Scan(&last); err != nil {
		return nil, fmt.Errorf("sales.LastSaleDate: %w", err)
	}
	return last, nil
}

// FirstSaleAfter primera venta PAID del producto posterior al instante dado.
func (r *SalesRepo) FirstSaleAfter(ctx context.Context, productID string, after time.Time) (*time.Time, error) {
	const query = `
	SELECT MIN(o.sale_date)
	FROM sale_order_items i
	JOIN sale_orders o ON o.id = i.sale_order_id
	WHERE i.product_id = $1
	  AND o.status = 'PAID'
	  AND o.sale_date > $2`

	var first *time.Time
	if err := r.pool.QueryRow(ctx, query, productID, after).Scan(&first); err != nil {
		return nil, fmt.Errorf("sales.FirstSaleAfter: %w", err)
	}
	return first, nil
}
