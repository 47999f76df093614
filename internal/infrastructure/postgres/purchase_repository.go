package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-insights/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo consultas de solo lectura sobre órdenes de compra.
type PurchaseRepo struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository construye el adaptador de compras.
func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepo {
	return &PurchaseRepo{pool: pool}
}

// PendingForProduct líneas PENDING del producto, órdenes más antiguas primero.
func (r *PurchaseRepo) PendingForProduct(ctx context.Context, productID string) ([]repository.PendingOrderRow, error) {
	const query = `
	SELECT o.id, o.order_number, o.order_date, i.quantity, i.unit_price
	FROM purchase_order_items i
	JOIN purchase_orders o ON o.id = i.purchase_order_id
	WHERE i.product_id = $1
	  AND o.status = 'PENDING'
	ORDER BY o.order_date`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("purchases.PendingForProduct: %w", err)
	}
	defer rows.Close()

	results := []repository.PendingOrderRow{}
	for rows.Next() {
		var row repository.PendingOrderRow
		if err := rows.Scan(&row.OrderID, &row.OrderNumber, &row.OrderDate, &row.Quantity, &row.UnitPrice); err != nil {
			return nil, fmt.Errorf("purchases.PendingForProduct scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("purchases.PendingForProduct rows: %w", err)
	}
	return results, nil
}

// AllPending órdenes PENDING con sus líneas, de la más antigua a la más
// reciente. Se arma en dos consultas para no duplicar cabeceras por línea.
func (r *PurchaseRepo) AllPending(ctx context.Context) ([]repository.PendingOrderHeader, error) {
	const headerQuery = `
	SELECT o.id, o.order_number, o.supplier_id, s.name, o.order_date, o.total_amount
	FROM purchase_orders o
	JOIN suppliers s ON s.id = o.supplier_id
	WHERE o.status = 'PENDING'
	ORDER BY o.order_date`

	rows, err := r.pool.Query(ctx, headerQuery)
	if err != nil {
		return nil, fmt.Errorf("purchases.AllPending: %w", err)
	}
	defer rows.Close()

	headers := []repository.PendingOrderHeader{}
	index := map[string]int{}
	for rows.Next() {
		var h repository.PendingOrderHeader
		if err := rows.Scan(&h.OrderID, &h.OrderNumber, &h.SupplierID, &h.SupplierName, &h.OrderDate, &h.TotalAmount); err != nil {
			return nil, fmt.Errorf("purchases.AllPending scan: %w", err)
		}
		h.Items = []repository.PendingOrderItemRow{}
		index[h.OrderID] = len(headers)
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("purchases.AllPending rows: %w", err)
	}
	if len(headers) == 0 {
		return headers, nil
	}

	const itemQuery = `
	SELECT i.purchase_order_id, i.product_id, p.sku, p.name, i.quantity, i.unit_price
	FROM purchase_order_items i
	JOIN purchase_orders o ON o.id = i.purchase_order_id
	JOIN products       p  ON p.id = i.product_id
	WHERE o.status = 'PENDING'
	ORDER BY o.order_date, p.name`

	itemRows, err := r.pool.Query(ctx, itemQuery)
	if err != nil {
		return nil, fmt.Errorf("purchases.AllPending items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var item repository.PendingOrderItemRow
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.SKU, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("purchases.AllPending items scan: %w", err)
		}
		if i, ok := index[orderID]; ok {
			headers[i].Items = append(headers[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("purchases.AllPending items rows: %w", err)
	}
	return headers, nil
}

// ReceivedForProduct líneas RECEIVED del producto desde la fecha dada, en
// orden cronológico de recepción.
func (r *PurchaseRepo) ReceivedForProduct(ctx context.Context, productID string, since time.Time) ([]repository.ReceivedPurchaseRow, error) {
	const query = `
	SELECT o.id, o.received_date, i.quantity, i.unit_price
	FROM purchase_order_items i
	JOIN purchase_orders o ON o.id = i.purchase_order_id
	WHERE i.product_id = $1
	  AND o.status = 'RECEIVED'
	  AND o.received_date >= $2
	ORDER BY o.received_date`

	rows, err := r.pool.Query(ctx, query, productID, since)
	if err != nil {
		return nil, fmt.Errorf("purchases.ReceivedForProduct: %w", err)
	}
	defer rows.Close()

	results := []repository.ReceivedPurchaseRow{}
	for rows.Next() {
		var row repository.ReceivedPurchaseRow
		if err := rows.Scan(&row.OrderID, &row.ReceivedDate, &row.Quantity, &row.UnitPrice); err != nil {
			return nil, fmt.Errorf("purchases.ReceivedForProduct scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("purchases.ReceivedForProduct rows: %w", err)
	}
	return results, nil
}

// ProductIDsWithReceivedOrders IDs con alguna línea RECEIVED desde la fecha.
func (r *PurchaseRepo) ProductIDsWithReceivedOrders(ctx context.Context, since time.Time) ([]string, error) {
	const query = `
	SELECT DISTINCT i.product_id
	FROM purchase_order_items i
	JOIN purchase_orders o ON o.id = i.purchase_order_id
	WHERE o.status = 'RECEIVED'
	  AND o.received_date >= $1
	ORDER BY i.product_id`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("purchases.ProductIDsWithReceivedOrders: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("purchases.ProductIDsWithReceivedOrders scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("purchases.ProductIDsWithReceivedOrders rows: %w", err)
	}
	return ids, nil
}

// LastSupplierForProduct proveedor de la orden más reciente que incluyó al
// producto, nil si nunca se compró.
func (r *PurchaseRepo) LastSupplierForProduct(ctx context.Context, productID string) (*repository.SupplierRef, error) {
	const query = `
	SELECT s.id, s.name
	FROM purchase_order_items i
	JOIN purchase_orders o ON o.id = i.purchase_order_id
	JOIN suppliers      s  ON s.id = o.supplier_id
	WHERE i.product_id = $1
	ORDER BY o.order_date DESC
	LIMIT 1`

	var ref repository.SupplierRef
	err := r.pool.QueryRow(ctx, query, productID).Scan(&ref.ID, &ref.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("purchases.LastSupplierForProduct: %w", err)
	}
	return &ref, nil
}

// ProductIDsSuppliedBy IDs de productos que el proveedor ha surtido.
func (r *PurchaseRepo) ProductIDsSuppliedBy(ctx context.Context, supplierID string) ([]string, error) {
	const query = `
	SELECT DISTINCT i.product_id
	FROM purchase_order_items i
	JOIN purchase_orders o ON o.id = i.purchase_order_id
	WHERE o.supplier_id = $1
	ORDER BY i.product_id`

	rows, err := r.pool.Query(ctx, query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("purchases.ProductIDsSuppliedBy: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("purchases.ProductIDsSuppliedBy scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("purchases.ProductIDsSuppliedBy rows: %w", err)
	}
	return ids, nil
}

// PurchaseSpendForSupplier total de órdenes RECEIVED del proveedor desde la
// fecha dada.
func (r *PurchaseRepo) PurchaseSpendForSupplier(ctx context.Context, supplierID string, since time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(total_amount), 0)
	FROM purchase_orders
	WHERE supplier_id = $1
	  AND status = 'RECEIVED'
	  AND received_date >= $2`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, supplierID, since).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("purchases.PurchaseSpendForSupplier: %w", err)
	}
	return total, nil
}
