package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-insights/internal/domain/entity"
)

// LossMovementRow movimiento LOSS con los datos del producto afectado.
type LossMovementRow struct {
	MovementID   string
	ProductID    string
	SKU          string
	ProductName  string
	Category     string
	Quantity     decimal.Decimal // negativa, como se registró en el ledger
	UnitCost     decimal.Decimal
	MovementDate time.Time
	Notes        string
}

// MovementRepository consultas de lectura sobre el ledger de movimientos.
type MovementRepository interface {
	// History devuelve el ledger completo del producto en orden cronológico
	// ascendente (movement_date, created_at).
	History(ctx context.Context, productID string) ([]entity.StockMovement, error)

	// LastZeroStockEvent último movimiento que dejó el stock en cero o menos.
	// nil si el producto nunca se agotó.
	LastZeroStockEvent(ctx context.Context, productID string) (*entity.StockMovement, error)

	// ZeroStockEvents movimientos con stock_after <= 0 desde la fecha dada, en
	// orden cronológico ascendente.
	ZeroStockEvents(ctx context.Context, productID string, since time.Time) ([]entity.StockMovement, error)

	// NextRestockAfter primer movimiento posterior a la fecha dada con
	// stock_after > 0. nil si el producto sigue agotado.
	NextRestockAfter(ctx context.Context, productID string, after time.Time) (*entity.StockMovement, error)

	// LastPurchaseMovement última entrada PURCHASE del producto, nil si no hay.
	LastPurchaseMovement(ctx context.Context, productID string) (*entity.StockMovement, error)

	// LastPurchaseSince última entrada PURCHASE desde la fecha dada, nil si no
	// hubo reposición en la ventana.
	LastPurchaseSince(ctx context.Context, productID string, since time.Time) (*entity.StockMovement, error)

	// ExplicitLosses movimientos LOSS desde la fecha dada, del más reciente al
	// más antiguo.
	ExplicitLosses(ctx context.Context, since time.Time) ([]LossMovementRow, error)
}
