package availability

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

// Severidades de disponibilidad.
const (
	SeverityCritical = "CRITICAL"
	SeverityHigh     = "HIGH"
	SeverityMedium   = "MEDIUM"
)

// AvailabilityUsecase mide cuánto del período cada producto con demanda
// estuvo realmente disponible, reconstruyendo los huecos sin stock desde el
// ledger de movimientos.
type AvailabilityUsecase struct {
	products  repository.ProductRepository
	sales     repository.SalesRepository
	movements repository.MovementRepository
	log       *logger.Logger
}

// NewAvailabilityUsecase construye el análisis de disponibilidad.
func NewAvailabilityUsecase(
	products repository.ProductRepository,
	sales repository.SalesRepository,
	movements repository.MovementRepository,
	log *logger.Logger,
) *AvailabilityUsecase {
	return &AvailabilityUsecase{products: products, sales: sales, movements: movements, log: log}
}

// Analyze calcula la tasa de disponibilidad del período para cada producto
// con al menos una venta, y estima las unidades que se habrían vendido
// durante los huecos (velocidad con stock × días sin stock). Solo reporta
// productos con algún hueco; severidad <80% CRITICAL, <90% HIGH, resto
// MEDIUM. Orden: severidad y luego unidades perdidas.
func (u *AvailabilityUsecase) Analyze(ctx context.Context, periodDays int) (*dto.AvailabilityReport, error) {
	if periodDays <= 0 {
		return nil, fmt.Errorf("período de %d días: %w", periodDays, domain.ErrInvalidInput)
	}

	now := time.Now()
	since := now.AddDate(0, 0, -periodDays)

	ids, err := u.sales.ProductIDsWithSales(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("productos con ventas: %w", err)
	}

	period := decimal.NewFromInt(int64(periodDays))
	totalUnits := decimal.Zero
	totalLost := decimal.Zero
	items := make([]dto.AvailabilityItem, 0)
	for _, id := range ids {
		p, err := u.products.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("producto %s: %w", id, err)
		}

		daysOut, events, err := u.stockoutGaps(ctx, id, since, now)
		if err != nil {
			return nil, err
		}
		if events == 0 || !daysOut.IsPositive() {
			continue // disponible todo el período
		}
		if daysOut.GreaterThan(period) {
			daysOut = period
		}

		rate := period.Sub(daysOut).Div(period).Mul(decimal.NewFromInt(100)).Round(1)

		// Velocidad mientras hubo stock: lo vendido repartido en los días
		// que sí estuvo disponible.
		summary, err := u.sales.SummaryForProduct(ctx, id, since)
		if err != nil {
			return nil, fmt.Errorf("ventas de %s: %w", id, err)
		}
		inStockDays := period.Sub(daysOut)
		lostUnits := decimal.Zero
		lost := decimal.Zero
		if inStockDays.IsPositive() {
			velocity := summary.TotalSold.Div(inStockDays)
			lostUnits = velocity.Mul(daysOut).Round(2)
			lost = lostUnits.Mul(p.SalePrice).Round(2)
		}

		severity := SeverityMedium
		switch {
		case rate.LessThan(decimal.NewFromInt(80)):
			severity = SeverityCritical
		case rate.LessThan(decimal.NewFromInt(90)):
			severity = SeverityHigh
		}

		totalUnits = totalUnits.Add(lostUnits)
		totalLost = totalLost.Add(lost)
		items = append(items, dto.AvailabilityItem{
			ProductID:          p.ID,
			SKU:                p.SKU,
			Name:               p.Name,
			Category:           p.CategoryOrDefault(),
			CurrentStock:       p.CurrentStock,
			AvailabilityRate:   rate,
			DaysOutOfStock:     daysOut.Round(1),
			StockoutEvents:     events,
			LostSalesCount:     lostUnits,
			EstimatedLostSales: lost,
			Severity:           severity,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Severity != items[j].Severity {
			return severityRank(items[i].Severity) < severityRank(items[j].Severity)
		}
		return items[i].LostSalesCount.GreaterThan(items[j].LostSalesCount)
	})

	return &dto.AvailabilityReport{
		PeriodDays:       periodDays,
		ProductsAnalyzed: len(ids),
		TotalLostUnits:   totalUnits.Round(2),
		TotalLostSales:   totalLost.Round(2),
		Products:         items,
		GeneratedAt:      now,
	}, nil
}

// stockoutGaps suma los días sin stock del período: cada movimiento que dejó
// el stock en cero abre un hueco que cierra la siguiente entrada con
// stock_after > 0, o "ahora" si sigue agotado.
func (u *AvailabilityUsecase) stockoutGaps(ctx context.Context, productID string, since, now time.Time) (decimal.Decimal, int, error) {
	events, err := u.movements.ZeroStockEvents(ctx, productID, since)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("agotamientos de %s: %w", productID, err)
	}

	total := decimal.Zero
	count := 0
	cursor := since
	for _, ev := range events {
		if ev.MovementDate.Before(cursor) {
			continue // dentro de un hueco ya contado
		}
		gapEnd := now
		restock, err := u.movements.NextRestockAfter(ctx, productID, ev.MovementDate)
		if err != nil {
			return decimal.Zero, 0, fmt.Errorf("reposición de %s: %w", productID, err)
		}
		if restock != nil {
			gapEnd = restock.MovementDate
		}
		gap := gapEnd.Sub(ev.MovementDate).Hours() / 24
		if gap > 0 {
			total = total.Add(decimal.NewFromFloat(gap))
			count++
		}
		cursor = gapEnd
	}
	return total, count, nil
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
