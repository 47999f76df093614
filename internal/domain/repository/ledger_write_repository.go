package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-insights/internal/domain/entity"
)

// LedgerWriteRepository operaciones de escritura del ledger. Solo se usa
// dentro de una transacción: registrar un movimiento y proyectar el nuevo
// stock deben confirmar o abortar juntos.
type LedgerWriteRepository interface {
	// GetProductForUpdate carga el producto con bloqueo de fila
	// (SELECT ... FOR UPDATE) para serializar escrituras concurrentes.
	GetProductForUpdate(ctx context.Context, productID string) (*entity.Product, error)

	// InsertMovement agrega el movimiento al ledger. El registro es inmutable:
	// no existe update ni delete.
	InsertMovement(ctx context.Context, m *entity.StockMovement) error

	// UpdateProductStock proyecta el nuevo current_stock del producto.
	UpdateProductStock(ctx context.Context, productID string, newStock decimal.Decimal) error
}

// LedgerTxRunner ejecuta fn dentro de una transacción. Si fn devuelve error,
// se hace rollback; si no, commit.
type LedgerTxRunner interface {
	RunInTx(ctx context.Context, fn func(repo LedgerWriteRepository) error) error
}
