package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden de compra (variante cerrada).
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"   // creada, sin recibir
	OrderStatusReceived  OrderStatus = "RECEIVED"  // recibida: genera un movimiento PURCHASE por ítem
	OrderStatusCancelled OrderStatus = "CANCELLED" // terminal, sin efecto en stock
)

// Valid indica si el estado es uno de los tres conocidos.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusReceived, OrderStatusCancelled:
		return true
	}
	return false
}

// PurchaseOrder orden de compra a un proveedor.
// Ciclo de vida: PENDING → RECEIVED | CANCELLED. Los ítems pertenecen en
// exclusiva a la orden (se eliminan en cascada con ella).
type PurchaseOrder struct {
	ID           string
	OrderNumber  string
	SupplierID   string
	OrderDate    time.Time
	ReceivedDate *time.Time // nil mientras la orden esté PENDING o CANCELLED
	TotalAmount  decimal.Decimal
	Status       OrderStatus
	Notes        string
	Items        []PurchaseOrderItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PurchaseOrderItem línea de una orden de compra.
type PurchaseOrderItem struct {
	ID              string
	PurchaseOrderID string
	ProductID       string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
}

// Subtotal devuelve cantidad × precio unitario de la línea.
func (i PurchaseOrderItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}
