package stock

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

// RuptureUsecase detecta quiebres de stock: productos agotados que seguían
// vendiendo. Es el detector reactivo; el pronóstico de riesgo actúa antes de
// llegar aquí y los dos nunca se solapan (stock <= 0 contra stock > 0).
type RuptureUsecase struct {
	sales     repository.SalesRepository
	movements repository.MovementRepository
	log       *logger.Logger
}

// NewRuptureUsecase construye el detector de quiebres.
func NewRuptureUsecase(sales repository.SalesRepository, movements repository.MovementRepository, log *logger.Logger) *RuptureUsecase {
	return &RuptureUsecase{sales: sales, movements: movements, log: log}
}

// DetectRuptures devuelve los productos con stock agotado y ventas PAID en la
// ventana, ordenados por cantidad vendida (urgencia económica) descendente.
func (u *RuptureUsecase) DetectRuptures(ctx context.Context, lookbackDays int) (*dto.RuptureReport, error) {
	if lookbackDays <= 0 {
		return nil, fmt.Errorf("ventana de %d días: %w", lookbackDays, domain.ErrInvalidInput)
	}

	now := time.Now()
	since := now.AddDate(0, 0, -lookbackDays)

	candidates, err := u.sales.RuptureCandidates(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("candidatos a quiebre: %w", err)
	}

	days := decimal.NewFromInt(int64(lookbackDays))
	totalLost := decimal.Zero
	items := make([]dto.RuptureItem, 0, len(candidates))
	for _, c := range candidates {
		dailyDemand := c.QuantitySold.Div(days).Round(3)

		var daysOut *int
		lost := decimal.Zero
		zeroEvent, err := u.movements.LastZeroStockEvent(ctx, c.ProductID)
		if err != nil {
			return nil, fmt.Errorf("último agotamiento de %s: %w", c.ProductID, err)
		}
		if zeroEvent != nil {
			d := int(now.Sub(zeroEvent.MovementDate).Hours() / 24)
			if d < 0 {
				d = 0
			}
			daysOut = &d
			lost = dailyDemand.
				Mul(decimal.NewFromInt(int64(d))).
				Mul(c.SalePrice).
				Round(2)
		}

		totalLost = totalLost.Add(lost)
		items = append(items, dto.RuptureItem{
			ProductID:            c.ProductID,
			SKU:                  c.SKU,
			Name:                 c.Name,
			Category:             c.Category,
			SalePrice:            c.SalePrice,
			QuantitySold:         c.QuantitySold,
			SalesCount:           c.SalesCount,
			DailyDemand:          dailyDemand,
			DaysOutOfStock:       daysOut,
			EstimatedLostRevenue: lost,
			LastSaleDate:         c.LastSaleDate,
		})
	}

	return &dto.RuptureReport{
		LookbackDays:     lookbackDays,
		TotalProducts:    len(items),
		TotalLostRevenue: totalLost.Round(2),
		Products:         items,
		GeneratedAt:      now,
	}, nil
}
