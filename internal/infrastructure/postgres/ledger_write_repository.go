package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-insights/internal/domain"
	"github.com/jhoicas/stock-insights/internal/domain/entity"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
)

var _ repository.LedgerWriteRepository = (*LedgerWriteRepo)(nil)

// LedgerWriteRepo escritura del ledger, siempre atado a una transacción.
type LedgerWriteRepo struct {
	tx pgx.Tx
}

// NewLedgerWriteRepository construye el repositorio de escritura sobre la tx.
func NewLedgerWriteRepository(tx pgx.Tx) *LedgerWriteRepo {
	return &LedgerWriteRepo{tx: tx}
}

// GetProductForUpdate carga el producto con bloqueo de fila para serializar
// escrituras concurrentes del mismo producto.
func (r *LedgerWriteRepo) GetProductForUpdate(ctx context.Context, productID string) (*entity.Product, error) {
	const query = `
	SELECT id, sku, COALESCE(gtin, ''), name, COALESCE(category, ''), COALESCE(brand, ''),
	       sale_price, cost_price, current_stock, min_stock, is_active, created_at, updated_at
	FROM products
	WHERE id = $1
	FOR UPDATE`

	var p entity.Product
	err := r.tx.QueryRow(ctx, query, productID).Scan(
		&p.ID,
		&p.SKU,
		&p.GTIN,
		&p.Name,
		&p.Category,
		&p.Brand,
		&p.SalePrice,
		&p.CostPrice,
		&p.CurrentStock,
		&p.MinStock,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ledger.GetProductForUpdate: %w", err)
	}
	return &p, nil
}

// InsertMovement agrega el movimiento al ledger. Append-only: no hay update
// ni delete sobre stock_movements.
func (r *LedgerWriteRepo) InsertMovement(ctx context.Context, m *entity.StockMovement) error {
	const query = `
	INSERT INTO stock_movements
	    (id, product_id, movement_type, reference_id, quantity, unit_cost,
	     stock_before, stock_after, movement_date, notes)
	VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10)`

	_, err := r.tx.Exec(ctx, query,
		m.ID,
		m.ProductID,
		string(m.Type),
		m.ReferenceID,
		m.Quantity,
		m.UnitCost,
		m.StockBefore,
		m.StockAfter,
		m.MovementDate,
		m.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ledger.InsertMovement: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("ledger.InsertMovement: %w", err)
	}
	return nil
}

// UpdateProductStock proyecta el nuevo current_stock del producto.
func (r *LedgerWriteRepo) UpdateProductStock(ctx context.Context, productID string, newStock decimal.Decimal) error {
	const query = `
	UPDATE products
	SET current_stock = $2, updated_at = NOW()
	WHERE id = $1`

	tag, err := r.tx.Exec(ctx, query, productID, newStock)
	if err != nil {
		return fmt.Errorf("ledger.UpdateProductStock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
