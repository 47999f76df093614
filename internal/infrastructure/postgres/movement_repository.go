package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-insights/internal/domain/entity"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// movementColumns columnas en el orden que espera scanMovement.
const movementColumns = `
	id, product_id, movement_type, COALESCE(reference_id, ''), quantity, unit_cost,
	stock_before, stock_after, movement_date, COALESCE(notes, '')`

// MovementRepo consultas de solo lectura sobre el ledger de movimientos.
type MovementRepo struct {
	pool *pgxpool.Pool
}

// NewMovementRepository construye el adaptador del ledger.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepo {
	return &MovementRepo{pool: pool}
}

func scanMovement(row pgx.Row) (entity.StockMovement, error) {
	var m entity.StockMovement
	var movType string
	err := row.Scan(
		&m.ID,
		&m.ProductID,
		&movType,
		&m.ReferenceID,
		&m.Quantity,
		&m.UnitCost,
		&m.StockBefore,
		&m.StockAfter,
		&m.MovementDate,
		&m.Notes,
	)
	m.Type = entity.MovementType(movType)
	return m, err
}

// History ledger completo del producto en orden cronológico ascendente.
func (r *MovementRepo) History(ctx context.Context, productID string) ([]entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
	FROM stock_movements
	WHERE product_id = $1
	ORDER BY movement_date, created_at`

	return r.list(ctx, query, "movements.History", productID)
}

// LastZeroStockEvent último movimiento que dejó el stock en cero o menos.
func (r *MovementRepo) LastZeroStockEvent(ctx context.Context, productID string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
	FROM stock_movements
	WHERE product_id = $1
	  AND stock_after <= 0
	ORDER BY movement_date DESC, created_at DESC
	LIMIT 1`

	return r.one(ctx, query, "movements.LastZeroStockEvent", productID)
}

// ZeroStockEvents movimientos con stock_after <= 0 desde la fecha dada.
func (r *MovementRepo) ZeroStockEvents(ctx context.Context, productID string, since time.Time) ([]entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
	FROM stock_movements
	WHERE product_id = $1
	  AND stock_after <= 0
	  AND movement_date >= $2
	ORDER BY movement_date, created_at`

	return r.list(ctx, query, "movements.ZeroStockEvents", productID, since)
}

// NextRestockAfter primer movimiento posterior con stock_after > 0.
func (r *MovementRepo) NextRestockAfter(ctx context.Context, productID string, after time.Time) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
	FROM stock_movements
	WHERE product_id = $1
	  AND stock_after > 0
	  AND movement_date > $2
	ORDER BY movement_date, created_at
	LIMIT 1`

	return r.one(ctx, query, "movements.NextRestockAfter", productID, after)
}

// LastPurchaseMovement última entrada PURCHASE del producto.
func (r *MovementRepo) LastPurchaseMovement(ctx context.Context, productID string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
	FROM stock_movements
	WHERE product_id = $1
	  AND movement_type = 'PURCHASE'
	ORDER BY movement_date DESC, created_at DESC
	LIMIT 1`

	return r.one(ctx, query, "movements.LastPurchaseMovement", productID)
}

// LastPurchaseSince última entrada PURCHASE desde la fecha dada.
func (r *MovementRepo) LastPurchaseSince(ctx context.Context, productID string, since time.Time) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
	FROM stock_movements
	WHERE product_id = $1
	  AND movement_type = 'PURCHASE'
	  AND movement_date >= $2
	ORDER BY movement_date DESC, created_at DESC
	LIMIT 1`

	return r.one(ctx, query, "movements.LastPurchaseSince", productID, since)
}

// ExplicitLosses movimientos LOSS desde la fecha dada, recientes primero.
func (r *MovementRepo) ExplicitLosses(ctx context.Context, since time.Time) ([]repository.LossMovementRow, error) {
	const query = `
	SELECT
	    m.id,
	    m.product_id,
	    p.sku,
	    p.name,
	    COALESCE(p.category, '') AS category,
	    m.quantity,
	    m.unit_cost,
	    m.movement_date,
	    COALESCE(m.notes, '')    AS notes
	FROM stock_movements m
	JOIN products p ON p.id = m.product_id
	WHERE m.movement_type = 'LOSS'
	  AND m.movement_date >= $1
	ORDER BY m.movement_date DESC`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("movements.ExplicitLosses: %w", err)
	}
	defer rows.Close()

	results := []repository.LossMovementRow{}
	for rows.Next() {
		var row repository.LossMovementRow
		if err := rows.Scan(
			&row.MovementID,
			&row.ProductID,
			&row.SKU,
			&row.ProductName,
			&row.Category,
			&row.Quantity,
			&row.UnitCost,
			&row.MovementDate,
			&row.Notes,
		); err != nil {
			return nil, fmt.Errorf("movements.ExplicitLosses scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("movements.ExplicitLosses rows: %w", err)
	}
	return results, nil
}

func (r *MovementRepo) list(ctx context.Context, query, op string, args ...any) ([]entity.StockMovement, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	results := []entity.StockMovement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return results, nil
}

func (r *MovementRepo) one(ctx context.Context, query, op string, args ...any) (*entity.StockMovement, error) {
	m, err := scanMovement(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}
