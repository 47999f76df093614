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

// minHealthyDaily ventas diarias históricas mínimas para que la caída sea
// medible; por debajo el producto nunca tuvo rotación sana.
var minHealthyDaily = decimal.NewFromFloat(0.5)

// restockConfirmationDays ventana de reposición que descarta descontinuación:
// si no entró mercancía reciente, la caída es falta de stock, no de venta.
const restockConfirmationDays = 30

// DemandDropUsecase detecta el modo de falla opuesto al quiebre: producto
// surtido que dejó de venderse (visibilidad, precio, exhibición).
type DemandDropUsecase struct {
	products  repository.ProductRepository
	sales     repository.SalesRepository
	movements repository.MovementRepository
	log       *logger.Logger
}

// NewDemandDropUsecase construye el detector de caídas de demanda.
func NewDemandDropUsecase(
	products repository.ProductRepository,
	sales repository.SalesRepository,
	movements repository.MovementRepository,
	log *logger.Logger,
) *DemandDropUsecase {
	return &DemandDropUsecase{products: products, sales: sales, movements: movements, log: log}
}

// Detect compara la venta diaria histórica (ventana que termina hace
// recentDays) contra la reciente; marca caídas >= dropThresholdPct en
// productos con reposición dentro de los últimos 30 días. Severidad
// >=90% CRITICAL, >=80% HIGH, resto MEDIUM; orden por severidad y
// revenue perdido.
func (u *DemandDropUsecase) Detect(ctx context.Context, historicalDays, recentDays int, dropThresholdPct decimal.Decimal) (*dto.DemandDropReport, error) {
	if historicalDays <= 0 || recentDays <= 0 {
		return nil, fmt.Errorf("ventanas %d/%d: %w", historicalDays, recentDays, domain.ErrInvalidInput)
	}

	now := time.Now()
	histEnd := now.AddDate(0, 0, -recentDays)
	histStart := histEnd.AddDate(0, 0, -historicalDays)

	prods, err := u.products.ListActiveWithStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("productos activos con stock: %w", err)
	}

	items := make([]dto.DemandDropItem, 0)
	for _, p := range prods {
		histQty, err := u.sales.TotalSoldBetween(ctx, p.ID, histStart, histEnd)
		if err != nil {
			return nil, fmt.Errorf("ventas históricas de %s: %w", p.ID, err)
		}
		histDaily := histQty.Div(decimal.NewFromInt(int64(historicalDays)))
		if histDaily.LessThan(minHealthyDaily) {
			continue // sin historial sano que comparar
		}

		recentQty, err := u.sales.TotalSoldBetween(ctx, p.ID, histEnd, now)
		if err != nil {
			return nil, fmt.Errorf("ventas recientes de %s: %w", p.ID, err)
		}
		recentDaily := recentQty.Div(decimal.NewFromInt(int64(recentDays)))

		drop := histDaily.Sub(recentDaily).Div(histDaily).Mul(decimal.NewFromInt(100))
		if drop.LessThan(dropThresholdPct) {
			continue
		}

		restock, err := u.movements.LastPurchaseSince(ctx, p.ID, now.AddDate(0, 0, -restockConfirmationDays))
		if err != nil {
			return nil, fmt.Errorf("reposición de %s: %w", p.ID, err)
		}
		if restock == nil {
			continue // sin entrada reciente: puede estar descontinuado
		}

		lost := histDaily.Sub(recentDaily).
			Mul(decimal.NewFromInt(int64(recentDays))).
			Mul(p.SalePrice).
			Round(2)

		severity := SeverityMedium
		switch {
		case drop.GreaterThanOrEqual(decimal.NewFromInt(90)):
			severity = SeverityCritical
		case drop.GreaterThanOrEqual(decimal.NewFromInt(80)):
			severity = SeverityHigh
		}

		items = append(items, dto.DemandDropItem{
			ProductID:            p.ID,
			SKU:                  p.SKU,
			Name:                 p.Name,
			Category:             p.CategoryOrDefault(),
			HistoricalDailySales: histDaily.Round(3),
			RecentDailySales:     recentDaily.Round(3),
			DropPct:              drop.Round(1),
			LastRestockDate:      restock.MovementDate,
			EstimatedLostRevenue: lost,
			Severity:             severity,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Severity != items[j].Severity {
			return severityRank(items[i].Severity) < severityRank(items[j].Severity)
		}
		return items[i].EstimatedLostRevenue.GreaterThan(items[j].EstimatedLostRevenue)
	})

	return &dto.DemandDropReport{
		HistoricalDays:   historicalDays,
		RecentDays:       recentDays,
		DropThresholdPct: dropThresholdPct,
		ProductsFlagged:  len(items),
		Products:         items,
		GeneratedAt:      now,
	}, nil
}
