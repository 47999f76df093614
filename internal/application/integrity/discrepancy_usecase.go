package integrity

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

// Severidades por porcentaje de discrepancia.
const (
	SeverityCritical = "CRITICAL" // > 20%
	SeverityHigh     = "HIGH"     // > 10%
	SeverityMedium   = "MEDIUM"
)

// DiscrepancyUsecase reconcilia el ledger contra el stock proyectado. Una
// discrepancia no es un error del sistema: es el hallazgo normal de este
// detector (pérdida no registrada, robo, error de captura).
type DiscrepancyUsecase struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	log       *logger.Logger
}

// NewDiscrepancyUsecase construye el detector de discrepancias.
func NewDiscrepancyUsecase(
	products repository.ProductRepository,
	movements repository.MovementRepository,
	log *logger.Logger,
) *DiscrepancyUsecase {
	return &DiscrepancyUsecase{products: products, movements: movements, log: log}
}

// Detect recorre el historial completo de cada producto activo sumando
// cantidades con signo y compara contra current_stock. Solo reporta
// discrepancias por encima de la tolerancia; un stock esperado de cero se
// salta (sin base porcentual). Peores primero.
func (u *DiscrepancyUsecase) Detect(ctx context.Context, tolerancePct decimal.Decimal) (*dto.DiscrepancyReport, error) {
	if tolerancePct.IsNegative() {
		return nil, fmt.Errorf("tolerancia %s: %w", tolerancePct, domain.ErrInvalidInput)
	}

	prods, err := u.products.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("productos activos: %w", err)
	}

	hundred := decimal.NewFromInt(100)
	totalLoss := decimal.Zero
	items := make([]dto.DiscrepancyItem, 0)
	for _, p := range prods {
		history, err := u.movements.History(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("historial de %s: %w", p.ID, err)
		}
		if len(history) == 0 {
			continue
		}

		expected := decimal.Zero
		for _, m := range history {
			expected = expected.Add(m.Quantity)
		}

		if expected.IsZero() {
			continue // sin base para calcular porcentaje
		}

		discrepancy := expected.Sub(p.CurrentStock)
		pct := discrepancy.Div(expected).Mul(hundred).Abs()
		if pct.LessThanOrEqual(tolerancePct) {
			continue
		}

		severity := SeverityMedium
		switch {
		case pct.GreaterThan(decimal.NewFromInt(20)):
			severity = SeverityCritical
		case pct.GreaterThan(decimal.NewFromInt(10)):
			severity = SeverityHigh
		}

		loss := discrepancy.Abs().Mul(p.CostPrice).Round(2)
		totalLoss = totalLoss.Add(loss)
		items = append(items, dto.DiscrepancyItem{
			ProductID:      p.ID,
			SKU:            p.SKU,
			Name:           p.Name,
			Category:       p.CategoryOrDefault(),
			ExpectedStock:  expected,
			ActualStock:    p.CurrentStock,
			Discrepancy:    discrepancy,
			DiscrepancyPct: pct.Round(1),
			LossValue:      loss,
			MovementsCount: len(history),
			Severity:       severity,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Severity != items[j].Severity {
			return severityRank(items[i].Severity) < severityRank(items[j].Severity)
		}
		return items[i].LossValue.GreaterThan(items[j].LossValue)
	})

	return &dto.DiscrepancyReport{
		TolerancePct:     tolerancePct,
		ProductsAnalyzed: len(prods),
		TotalLossValue:   totalLoss.Round(2),
		Items:            items,
		GeneratedAt:      time.Now(),
	}, nil
}

func severityRank(s string) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	default:
		return 2
	}
}
