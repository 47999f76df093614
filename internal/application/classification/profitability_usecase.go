package classification

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-insights/internal/application/dto"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
	"github.com/jhoicas/stock-insights/pkg/logger"
)

// Calificaciones de rentabilidad por margen.
const (
	RatingHigh   = "HIGH"   // margen >= 40%
	RatingMedium = "MEDIUM" // >= 25%
	RatingLow    = "LOW"    // >= 10%
	RatingPoor   = "POOR"
)

// ProfitabilityUsecase rentabilidad por producto sobre las ventas del período.
type ProfitabilityUsecase struct {
	sales repository.SalesRepository
	log   *logger.Logger
}

// NewProfitabilityUsecase construye el análisis de rentabilidad.
func NewProfitabilityUsecase(sales repository.SalesRepository, log *logger.Logger) *ProfitabilityUsecase {
	return &ProfitabilityUsecase{sales: sales, log: log}
}

// Analyze calcula utilidad bruta, margen y ROI por producto, ordenados por
// utilidad descendente.
func (u *ProfitabilityUsecase) Analyze(ctx context.Context, period string) (*dto.ProfitabilityReport, error) {
	items, totals, err := u.analyze(ctx, period)
	if err != nil {
		return nil, err
	}
	return &dto.ProfitabilityReport{
		Period:        periodOrDefault(period),
		TotalRevenue:  totals.revenue.Round(2),
		TotalProfit:   totals.profit.Round(2),
		OverallMargin: totals.margin(),
		Items:         items,
		GeneratedAt:   time.Now(),
	}, nil
}

// Summary devuelve los totales del período con los cinco mejores y peores
// productos por utilidad.
func (u *ProfitabilityUsecase) Summary(ctx context.Context, period string) (*dto.ProfitabilitySummary, error) {
	items, totals, err := u.analyze(ctx, period)
	if err != nil {
		return nil, err
	}

	top := items
	if len(top) > 5 {
		top = top[:5]
	}
	worst := make([]dto.ProfitabilityItem, 0, 5)
	for i := len(items) - 1; i >= 0 && len(worst) < 5; i-- {
		worst = append(worst, items[i])
	}

	return &dto.ProfitabilitySummary{
		Period:        periodOrDefault(period),
		TotalRevenue:  totals.revenue.Round(2),
		TotalProfit:   totals.profit.Round(2),
		OverallMargin: totals.margin(),
		TopProducts:   top,
		WorstProducts: worst,
		GeneratedAt:   time.Now(),
	}, nil
}

type profitTotals struct {
	revenue decimal.Decimal
	profit  decimal.Decimal
}

func (t profitTotals) margin() decimal.Decimal {
	if !t.revenue.IsPositive() {
		return decimal.Zero
	}
	return t.profit.Div(t.revenue).Mul(decimal.NewFromInt(100)).Round(1)
}

func (u *ProfitabilityUsecase) analyze(ctx context.Context, period string) ([]dto.ProfitabilityItem, profitTotals, error) {
	since, err := parsePeriod(period)
	if err != nil {
		return nil, profitTotals{}, err
	}

	rows, err := u.sales.RevenueByProduct(ctx, since)
	if err != nil {
		return nil, profitTotals{}, fmt.Errorf("ventas por producto: %w", err)
	}

	hundred := decimal.NewFromInt(100)
	totals := profitTotals{revenue: decimal.Zero, profit: decimal.Zero}
	items := make([]dto.ProfitabilityItem, 0, len(rows))
	for _, r := range rows {
		cost := r.Quantity.Mul(r.CostPrice)
		profit := r.Revenue.Sub(cost)

		margin := decimal.Zero
		if r.Revenue.IsPositive() {
			margin = profit.Div(r.Revenue).Mul(hundred)
		}
		perUnit := decimal.Zero
		if r.Quantity.IsPositive() {
			perUnit = profit.Div(r.Quantity)
		}
		roi := decimal.Zero
		if cost.IsPositive() {
			roi = profit.Div(cost).Mul(hundred)
		}

		totals.revenue = totals.revenue.Add(r.Revenue)
		totals.profit = totals.profit.Add(profit)
		items = append(items, dto.ProfitabilityItem{
			ProductID:     r.ProductID,
			SKU:           r.SKU,
			Name:          r.Name,
			Category:      r.Category,
			UnitsSold:     r.Quantity,
			Revenue:       r.Revenue.Round(2),
			TotalCost:     cost.Round(2),
			GrossProfit:   profit.Round(2),
			ProfitMargin:  margin.Round(1),
			ProfitPerUnit: perUnit.Round(2),
			ROI:           roi.Round(1),
			Rating:        marginRating(margin),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].GrossProfit.GreaterThan(items[j].GrossProfit)
	})

	return items, totals, nil
}

func marginRating(margin decimal.Decimal) string {
	switch {
	case margin.GreaterThanOrEqual(decimal.NewFromInt(40)):
		return RatingHigh
	case margin.GreaterThanOrEqual(decimal.NewFromInt(25)):
		return RatingMedium
	case margin.GreaterThanOrEqual(decimal.NewFromInt(10)):
		return RatingLow
	default:
		return RatingPoor
	}
}
