package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento del ledger (variante cerrada).
type MovementType string

const (
	MovementPurchase   MovementType = "PURCHASE"   // entrada por orden de compra recibida
	MovementSale       MovementType = "SALE"       // salida por venta
	MovementAdjustment MovementType = "ADJUSTMENT" // ajuste manual (conteo físico)
	MovementReturn     MovementType = "RETURN"     // devolución de cliente (entrada)
	MovementLoss       MovementType = "LOSS"       // pérdida reconocida (robo, daño, vencimiento)
)

// Valid indica si el tipo es uno de los cinco conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementPurchase, MovementSale, MovementAdjustment, MovementReturn, MovementLoss:
		return true
	}
	return false
}

// StockMovement registro del ledger de inventario: historia completa e
// inmutable (append-only) de cada cambio de stock.
//
// Es la fuente de verdad de todos los analizadores. Product.CurrentStock es
// apenas una proyección de la suma con signo de estos registros.
type StockMovement struct {
	ID           string
	ProductID    string
	Type         MovementType
	ReferenceID  string          // ID de la orden de compra o venta origen (opcional)
	Quantity     decimal.Decimal // positivo = entrada, negativo = salida
	UnitCost     decimal.Decimal
	StockBefore  decimal.Decimal
	StockAfter   decimal.Decimal
	MovementDate time.Time
	Notes        string
}

// Consistent verifica el invariante duro del ledger:
// stock_after = stock_before + quantity. Todo escritor debe sostenerlo.
func (m StockMovement) Consistent() bool {
	return m.StockAfter.Equal(m.StockBefore.Add(m.Quantity))
}

// Inbound indica si el movimiento suma stock (cantidad positiva).
func (m StockMovement) Inbound() bool {
	return m.Quantity.IsPositive()
}
