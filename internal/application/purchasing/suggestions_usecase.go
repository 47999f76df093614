package purchasing

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

// Prioridades de compra.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// safetyBuffer colchón fijo del 20% sobre el faltante pronosticado.
var safetyBuffer = decimal.NewFromFloat(1.2)

// DemandEstimator velocidad de venta diaria de un producto.
type DemandEstimator interface {
	AverageDailySales(ctx context.Context, productID string, historyDays int) (decimal.Decimal, error)
}

// SuggestionsUsecase genera sugerencias de compra a partir del pronóstico de
// demanda, con cantidades redondeadas a tamaños de orden prácticos.
type SuggestionsUsecase struct {
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
	demand    DemandEstimator
	log       *logger.Logger
}

// NewSuggestionsUsecase construye el motor de sugerencias de compra.
func NewSuggestionsUsecase(
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	demand DemandEstimator,
	log *logger.Logger,
) *SuggestionsUsecase {
	return &SuggestionsUsecase{products: products, purchases: purchases, demand: demand, log: log}
}

// Suggest calcula qué comprar para cubrir la demanda del horizonte:
// faltante = pronóstico − stock, colchón del 20%, redondeo por tramos y
// descarte de órdenes por debajo del valor mínimo. Orden: prioridad y luego
// valor descendente.
func (u *SuggestionsUsecase) Suggest(ctx context.Context, forecastDays, historyDays int, minOrderValue decimal.Decimal) (*dto.PurchaseSuggestionsReport, error) {
	if forecastDays <= 0 || historyDays <= 0 {
		return nil, fmt.Errorf("ventanas %d/%d: %w", forecastDays, historyDays, domain.ErrInvalidInput)
	}

	prods, err := u.products.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("productos activos: %w", err)
	}

	totalValue := decimal.Zero
	suggestions := make([]dto.PurchaseSuggestion, 0)
	for _, p := range prods {
		rate, err := u.demand.AverageDailySales(ctx, p.ID, historyDays)
		if err != nil {
			return nil, fmt.Errorf("demanda de %s: %w", p.ID, err)
		}
		if !rate.IsPositive() {
			continue // sin historial de ventas no hay qué pronosticar
		}

		forecast := rate.Mul(decimal.NewFromInt(int64(forecastDays)))
		needed := forecast.Sub(p.CurrentStock)
		if !needed.IsPositive() {
			continue // stock suficiente para el horizonte
		}

		qty := roundToOrderSize(needed.Mul(safetyBuffer))
		orderValue := qty.Mul(p.CostPrice).Round(2)
		if orderValue.LessThan(minOrderValue) {
			continue // orden trivial
		}

		pendingQty, pendingSufficient, err := u.pendingCoverage(ctx, p.ID, needed)
		if err != nil {
			return nil, err
		}

		var daysUntil *int
		d := int(p.CurrentStock.Div(rate).IntPart())
		daysUntil = &d

		priority := PriorityLow
		if !pendingSufficient {
			switch {
			case d <= 7:
				priority = PriorityHigh
			case d <= 14:
				priority = PriorityMedium
			}
		}

		totalValue = totalValue.Add(orderValue)
		suggestions = append(suggestions, dto.PurchaseSuggestion{
			ProductID:         p.ID,
			SKU:               p.SKU,
			Name:              p.Name,
			Category:          p.CategoryOrDefault(),
			CurrentStock:      p.CurrentStock,
			AvgDailySales:     rate,
			DaysUntilStockout: daysUntil,
			ForecastDemand:    forecast.Round(3),
			SuggestedQuantity: qty,
			UnitCost:          p.CostPrice,
			OrderValue:        orderValue,
			Priority:          priority,
			PendingQuantity:   pendingQty,
			PendingSufficient: pendingSufficient,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Priority != suggestions[j].Priority {
			return priorityRank(suggestions[i].Priority) < priorityRank(suggestions[j].Priority)
		}
		return suggestions[i].OrderValue.GreaterThan(suggestions[j].OrderValue)
	})

	return &dto.PurchaseSuggestionsReport{
		ForecastDays:    forecastDays,
		HistoryDays:     historyDays,
		MinOrderValue:   minOrderValue,
		TotalSuggested:  len(suggestions),
		TotalOrderValue: totalValue.Round(2),
		Suggestions:     suggestions,
		GeneratedAt:     time.Now(),
	}, nil
}

func (u *SuggestionsUsecase) pendingCoverage(ctx context.Context, productID string, needed decimal.Decimal) (decimal.Decimal, bool, error) {
	rows, err := u.purchases.PendingForProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("órdenes pendientes de %s: %w", productID, err)
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Quantity)
	}
	return total, total.GreaterThanOrEqual(needed), nil
}

// roundToOrderSize redondea a cantidades cómodas de ordenar: a la unidad por
// debajo de 10, al múltiplo de 5 hasta 100, al de 10 por encima. Nunca menos
// de 1 unidad.
func roundToOrderSize(raw decimal.Decimal) decimal.Decimal {
	var qty decimal.Decimal
	switch {
	case raw.LessThan(decimal.NewFromInt(10)):
		qty = raw.Round(0)
	case raw.LessThanOrEqual(decimal.NewFromInt(100)):
		qty = raw.Div(decimal.NewFromInt(5)).Round(0).Mul(decimal.NewFromInt(5))
	default:
		qty = raw.Div(decimal.NewFromInt(10)).Round(0).Mul(decimal.NewFromInt(10))
	}
	if qty.LessThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return qty
}

func priorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}
