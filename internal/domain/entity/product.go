package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su precio y stock actual.
//
// CurrentStock es una proyección desnormalizada del ledger de movimientos:
// debe coincidir en todo momento con la suma con signo de los StockMovement
// del producto. El único escritor autorizado es el caso de uso de registro
// de movimientos, que actualiza ledger y proyección en la misma transacción.
// El detector de integridad existe precisamente para detectar desvíos.
type Product struct {
	ID           string
	SKU          string // código único
	GTIN         string // EAN / código de barras (opcional)
	Name         string
	Category     string
	Brand        string
	SalePrice    decimal.Decimal // precio de venta (2 decimales)
	CostPrice    decimal.Decimal // costo de compra (2 decimales)
	CurrentStock decimal.Decimal // puede ser fraccionario (hasta 3 decimales)
	MinStock     decimal.Decimal // umbral mínimo deseado
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockValue devuelve el capital inmovilizado en este producto (stock × costo).
func (p Product) StockValue() decimal.Decimal {
	return p.CurrentStock.Mul(p.CostPrice)
}

// CategoryOrDefault devuelve la categoría o "N/A" si no está asignada.
func (p Product) CategoryOrDefault() string {
	if p.Category == "" {
		return "N/A"
	}
	return p.Category
}
