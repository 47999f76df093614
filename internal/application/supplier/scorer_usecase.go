package supplier

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-insights/internal/application/dto"
	"github.com/jhoicas/stock-insights/internal/domain"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
	"github.com/jhoicas/stock-insights/pkg/logger"
)

// Criterios de ordenamiento soportados.
const (
	SortByScore      = "score"
	SortByTurnover   = "turnover_rate"
	SortByRevenue    = "revenue"
	SortBySlowMoving = "slow_moving"
)

// slowMovingWindowDays días sin venta que marcan un producto surtido como de
// lenta rotación para efectos del puntaje.
const slowMovingWindowDays = 30

// ScorerUsecase califica proveedores por el desempeño comercial de los
// productos que surten: rotación (tope 50 puntos), revenue (tope 30) y
// penalización por lenta rotación (tope 20).
type ScorerUsecase struct {
	suppliers repository.SupplierRepository
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
	sales     repository.SalesRepository
	log       *logger.Logger
}

// NewScorerUsecase construye el calificador de proveedores.
func NewScorerUsecase(
	suppliers repository.SupplierRepository,
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	sales repository.SalesRepository,
	log *logger.Logger,
) *ScorerUsecase {
	return &ScorerUsecase{suppliers: suppliers, products: products, purchases: purchases, sales: sales, log: log}
}

// Score evalúa cada proveedor activo con al menos un producto surtido.
//
//	score = min(rotación_promedio × 10, 50)
//	      + min(revenue / 10000 × 30, 30)
//	      + max(20 − %lenta_rotación / 5, 0)
//
// Bandas: >= 75 Excellent, >= 60 Good, >= 40 Fair, resto Poor.
func (u *ScorerUsecase) Score(ctx context.Context, periodDays int, sortBy string) (*dto.SupplierScoreReport, error) {
	if periodDays <= 0 {
		return nil, fmt.Errorf("período de %d días: %w", periodDays, domain.ErrInvalidInput)
	}
	if sortBy == "" {
		sortBy = SortByScore
	}
	if sortBy != SortByScore && sortBy != SortByTurnover && sortBy != SortByRevenue && sortBy != SortBySlowMoving {
		return nil, fmt.Errorf("criterio %q: %w", sortBy, domain.ErrInvalidMetric)
	}

	now := time.Now()
	since := now.AddDate(0, 0, -periodDays)
	slowCutoff := now.AddDate(0, 0, -slowMovingWindowDays)

	supps, err := u.suppliers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("proveedores activos: %w", err)
	}

	// Una sola pasada por las ventas del período para todos los proveedores.
	salesRows, err := u.sales.RevenueByProduct(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("ventas por producto: %w", err)
	}
	salesByProduct := make(map[string]repository.ProductSalesRow, len(salesRows))
	for _, r := range salesRows {
		salesByProduct[r.ProductID] = r
	}

	period := decimal.NewFromInt(int64(periodDays))
	items := make([]dto.SupplierScoreItem, 0, len(supps))
	for _, s := range supps {
		ids, err := u.purchases.ProductIDsSuppliedBy(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("productos de %s: %w", s.ID, err)
		}
		if len(ids) == 0 {
			continue // sin historial de compras no hay qué calificar
		}

		spend, err := u.purchases.PurchaseSpendForSupplier(ctx, s.ID, since)
		if err != nil {
			return nil, fmt.Errorf("gasto con %s: %w", s.ID, err)
		}

		revenue := decimal.Zero
		turnoverSum := decimal.Zero
		withSales := 0
		slowCount := 0
		for _, id := range ids {
			if row, ok := salesByProduct[id]; ok && row.Quantity.IsPositive() {
				revenue = revenue.Add(row.Revenue)
				turnoverSum = turnoverSum.Add(row.Quantity.Div(period))
				withSales++
			}

			p, err := u.products.GetByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("producto %s: %w", id, err)
			}
			if !p.CurrentStock.IsPositive() {
				continue
			}
			lastSale, err := u.sales.LastSaleDate(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("última venta de %s: %w", id, err)
			}
			if lastSale == nil || lastSale.Before(slowCutoff) {
				slowCount++
			}
		}

		avgTurnover := decimal.Zero
		if withSales > 0 {
			avgTurnover = turnoverSum.Div(decimal.NewFromInt(int64(withSales)))
		}
		slowPct := decimal.NewFromInt(int64(slowCount)).
			Div(decimal.NewFromInt(int64(len(ids)))).
			Mul(decimal.NewFromInt(100))

		items = append(items, dto.SupplierScoreItem{
			SupplierID:       s.ID,
			Name:             s.Name,
			ProductsSupplied: len(ids),
			PurchaseSpend:    spend.Round(2),
			RevenueGenerated: revenue.Round(2),
			AvgTurnoverRate:  avgTurnover.Round(3),
			SlowMovingCount:  slowCount,
			SlowMovingPct:    slowPct.Round(1),
			Score:            compositeScore(avgTurnover, revenue, slowPct),
			Rating:           scoreRating(compositeScore(avgTurnover, revenue, slowPct)),
		})
	}

	sortItems(items, sortBy)

	return &dto.SupplierScoreReport{
		PeriodDays:  periodDays,
		SortBy:      sortBy,
		Suppliers:   items,
		GeneratedAt: now,
	}, nil
}

// compositeScore combina los tres componentes con sus topes 50/30/20.
func compositeScore(avgTurnover, revenue, slowPct decimal.Decimal) decimal.Decimal {
	turnoverPts := avgTurnover.Mul(decimal.NewFromInt(10))
	if turnoverPts.GreaterThan(decimal.NewFromInt(50)) {
		turnoverPts = decimal.NewFromInt(50)
	}

	revenuePts := revenue.Div(decimal.NewFromInt(10000)).Mul(decimal.NewFromInt(30))
	if revenuePts.GreaterThan(decimal.NewFromInt(30)) {
		revenuePts = decimal.NewFromInt(30)
	}

	slowPts := decimal.NewFromInt(20).Sub(slowPct.Div(decimal.NewFromInt(5)))
	if slowPts.IsNegative() {
		slowPts = decimal.Zero
	}

	return turnoverPts.Add(revenuePts).Add(slowPts).Round(1)
}

func scoreRating(score decimal.Decimal) string {
	switch {
	case score.GreaterThanOrEqual(decimal.NewFromInt(75)):
		return "Excellent"
	case score.GreaterThanOrEqual(decimal.NewFromInt(60)):
		return "Good"
	case score.GreaterThanOrEqual(decimal.NewFromInt(40)):
		return "Fair"
	default:
		return "Poor"
	}
}

func sortItems(items []dto.SupplierScoreItem, sortBy string) {
	sort.SliceStable(items, func(i, j int) bool {
		switch sortBy {
		case SortByTurnover:
			return items[i].AvgTurnoverRate.GreaterThan(items[j].AvgTurnoverRate)
		case SortByRevenue:
			return items[i].RevenueGenerated.GreaterThan(items[j].RevenueGenerated)
		case SortBySlowMoving:
			return items[i].SlowMovingPct.GreaterThan(items[j].SlowMovingPct)
		default:
			return items[i].Score.GreaterThan(items[j].Score)
		}
	})
}
