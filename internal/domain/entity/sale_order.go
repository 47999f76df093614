package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una venta (variante cerrada).
// Solo las ventas PAID cuentan como demanda para los pronósticos.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusPaid      SaleStatus = "PAID"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// Valid indica si el estado es uno de los tres conocidos.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusPending, SaleStatusPaid, SaleStatusCancelled:
		return true
	}
	return false
}

// SaleOrder venta a cliente final. Los ítems pertenecen en exclusiva a la venta.
type SaleOrder struct {
	ID          string
	OrderNumber string
	SaleDate    time.Time
	TotalAmount decimal.Decimal
	Status      SaleStatus
	Notes       string
	Items       []SaleOrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SaleOrderItem línea de una venta.
type SaleOrderItem struct {
	ID          string
	SaleOrderID string
	ProductID   string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Subtotal devuelve cantidad × precio unitario de la línea.
func (i SaleOrderItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}
