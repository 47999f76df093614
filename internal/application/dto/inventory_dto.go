package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest alta de un movimiento en el ledger.
type RegisterMovementRequest struct {
	ProductID    string          `json:"product_id"`
	Type         string          `json:"type"`     // PURCHASE, SALE, ADJUSTMENT, RETURN, LOSS
	Quantity     decimal.Decimal `json:"quantity"` // con signo: positivo entra, negativo sale
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ReferenceID  string          `json:"reference_id,omitempty"`
	MovementDate *time.Time      `json:"movement_date,omitempty"` // default: ahora
	Notes        string          `json:"notes,omitempty"`
}

// MovementResponse movimiento registrado con la proyección de stock resultante.
type MovementResponse struct {
	MovementID   string          `json:"movement_id"`
	ProductID    string          `json:"product_id"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	StockBefore  decimal.Decimal `json:"stock_before"`
	StockAfter   decimal.Decimal `json:"stock_after"`
	MovementDate time.Time       `json:"movement_date"`
}

// ErrorResponse cuerpo uniforme de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
