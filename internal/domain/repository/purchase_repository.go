package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PendingOrderRow línea pendiente de recepción para un producto.
type PendingOrderRow struct {
	OrderID     string
	OrderNumber string
	OrderDate   time.Time
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// PendingOrderHeader orden de compra PENDING con sus líneas, para el resumen
// de órdenes en tránsito.
type PendingOrderHeader struct {
	OrderID      string
	OrderNumber  string
	SupplierID   string
	SupplierName string
	OrderDate    time.Time
	TotalAmount  decimal.Decimal
	Items        []PendingOrderItemRow
}

// PendingOrderItemRow línea de una orden pendiente con datos del producto.
type PendingOrderItemRow struct {
	ProductID   string
	SKU         string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// ReceivedPurchaseRow línea recibida de un producto, para medir rotación.
type ReceivedPurchaseRow struct {
	OrderID      string
	ReceivedDate time.Time
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
}

// SupplierRef referencia mínima a un proveedor.
type SupplierRef struct {
	ID   string
	Name string
}

// PurchaseRepository consultas de lectura sobre órdenes de compra.
type PurchaseRepository interface {
	// PendingForProduct devuelve las líneas PENDING del producto, de la orden
	// más antigua a la más reciente.
	PendingForProduct(ctx context.Context, productID string) ([]PendingOrderRow, error)

	// AllPending devuelve todas las órdenes PENDING con sus líneas, de la más
	// antigua a la más reciente.
	AllPending(ctx context.Context) ([]PendingOrderHeader, error)

	// ReceivedForProduct devuelve las líneas RECEIVED del producto con
	// received_date desde la fecha dada, en orden cronológico.
	ReceivedForProduct(ctx context.Context, productID string, since time.Time) ([]ReceivedPurchaseRow, error)

	// ProductIDsWithReceivedOrders IDs de productos con alguna línea RECEIVED
	// desde la fecha dada.
	ProductIDsWithReceivedOrders(ctx context.Context, since time.Time) ([]string, error)

	// LastSupplierForProduct proveedor de la orden de compra más reciente que
	// incluyó al producto (cualquier estado). nil si nunca se compró.
	LastSupplierForProduct(ctx context.Context, productID string) (*SupplierRef, error)

	// ProductIDsSuppliedBy devuelve los IDs de productos que el proveedor ha
	// surtido en alguna orden.
	ProductIDsSuppliedBy(ctx context.Context, supplierID string) ([]string, error)

	// PurchaseSpendForSupplier suma el total de órdenes RECEIVED del proveedor
	// desde la fecha dada.
	PurchaseSpendForSupplier(ctx context.Context, supplierID string, since time.Time) (decimal.Decimal, error)
}
