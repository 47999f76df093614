package integrity

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-insights/internal/application/dto"
	"github.com/jhoicas/stock-insights/internal/domain"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
	"github.com/jhoicas/stock-insights/pkg/logger"
)

// ExplicitLossesUsecase pérdidas reconocidas en el ledger (movimientos LOSS).
// Se reportan aparte de la reconciliación: una pérdida bien registrada no
// genera discrepancia y aun así importa operativamente.
type ExplicitLossesUsecase struct {
	movements repository.MovementRepository
	log       *logger.Logger
}

// NewExplicitLossesUsecase construye el listado de pérdidas explícitas.
func NewExplicitLossesUsecase(movements repository.MovementRepository, log *logger.Logger) *ExplicitLossesUsecase {
	return &ExplicitLossesUsecase{movements: movements, log: log}
}

// List devuelve los movimientos LOSS del período, los más recientes primero,
// valorados a costo.
func (u *ExplicitLossesUsecase) List(ctx context.Context, periodDays int) (*dto.ExplicitLossesReport, error) {
	if periodDays <= 0 {
		return nil, fmt.Errorf("período de %d días: %w", periodDays, domain.ErrInvalidInput)
	}

	now := time.Now()
	rows, err := u.movements.ExplicitLosses(ctx, now.AddDate(0, 0, -periodDays))
	if err != nil {
		return nil, fmt.Errorf("pérdidas explícitas: %w", err)
	}

	totalLoss := decimal.Zero
	losses := make([]dto.ExplicitLossItem, 0, len(rows))
	for _, r := range rows {
		qty := r.Quantity.Abs()
		value := qty.Mul(r.UnitCost).Round(2)
		totalLoss = totalLoss.Add(value)
		losses = append(losses, dto.ExplicitLossItem{
			MovementID:   r.MovementID,
			ProductID:    r.ProductID,
			SKU:          r.SKU,
			Name:         r.ProductName,
			Category:     r.Category,
			Quantity:     qty,
			UnitCost:     r.UnitCost,
			LossValue:    value,
			MovementDate: r.MovementDate,
			DaysAgo:      int(now.Sub(r.MovementDate).Hours() / 24),
			Notes:        r.Notes,
		})
	}

	return &dto.ExplicitLossesReport{
		PeriodDays:     periodDays,
		TotalLossValue: totalLoss.Round(2),
		Losses:         losses,
		GeneratedAt:    now,
	}, nil
}
