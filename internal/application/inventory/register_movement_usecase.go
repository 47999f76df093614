package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-insights/internal/application/dto"
	"github.com/jhoicas/stock-insights/internal/domain"
	"github.com/jhoicas/stock-insights/internal/domain/entity"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
	"github.com/jhoicas/stock-insights/pkg/logger"
)

// RegisterMovementUsecase único escritor del ledger. Inserta el movimiento y
// proyecta current_stock en la misma transacción: el invariante
// stock_after = stock_before + quantity que todos los analizadores asumen se
// sostiene aquí o no se sostiene en ninguna parte.
type RegisterMovementUsecase struct {
	tx  repository.LedgerTxRunner
	log *logger.Logger
}

// NewRegisterMovementUsecase construye el registrador de movimientos.
func NewRegisterMovementUsecase(tx repository.LedgerTxRunner, log *logger.Logger) *RegisterMovementUsecase {
	return &RegisterMovementUsecase{tx: tx, log: log}
}

// Register valida y persiste un movimiento de inventario.
func (u *RegisterMovementUsecase) Register(ctx context.Context, req dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	movType := entity.MovementType(req.Type)
	if !movType.Valid() {
		return nil, fmt.Errorf("tipo de movimiento %q: %w", req.Type, domain.ErrInvalidInput)
	}
	if req.ProductID == "" {
		return nil, fmt.Errorf("producto vacío: %w", domain.ErrInvalidInput)
	}
	if req.Quantity.IsZero() {
		return nil, fmt.Errorf("cantidad cero: %w", domain.ErrInvalidInput)
	}

	movementDate := time.Now()
	if req.MovementDate != nil {
		movementDate = *req.MovementDate
	}

	var resp *dto.MovementResponse
	err := u.tx.RunInTx(ctx, func(repo repository.LedgerWriteRepository) error {
		product, err := repo.GetProductForUpdate(ctx, req.ProductID)
		if err != nil {
			return fmt.Errorf("producto %s: %w", req.ProductID, err)
		}

		movement := entity.StockMovement{
			ID:           uuid.New().String(),
			ProductID:    product.ID,
			Type:         movType,
			ReferenceID:  req.ReferenceID,
			Quantity:     req.Quantity,
			UnitCost:     req.UnitCost,
			StockBefore:  product.CurrentStock,
			StockAfter:   product.CurrentStock.Add(req.Quantity),
			MovementDate: movementDate,
			Notes:        req.Notes,
		}
		if !movement.Consistent() {
			return domain.ErrLedgerBroken
		}

		if err := repo.InsertMovement(ctx, &movement); err != nil {
			return fmt.Errorf("insertar movimiento: %w", err)
		}
		if err := repo.UpdateProductStock(ctx, product.ID, movement.StockAfter); err != nil {
			return fmt.Errorf("proyectar stock: %w", err)
		}

		resp = &dto.MovementResponse{
			MovementID:   movement.ID,
			ProductID:    movement.ProductID,
			Type:         string(movement.Type),
			Quantity:     movement.Quantity,
			StockBefore:  movement.StockBefore,
			StockAfter:   movement.StockAfter,
			MovementDate: movement.MovementDate,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().
		Str("producto", resp.ProductID).
		Str("tipo", resp.Type).
		Str("cantidad", resp.Quantity.String()).
		Msg("movimiento registrado")

	return resp, nil
}
