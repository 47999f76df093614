package sales

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

// Métricas de ranking soportadas.
const (
	MetricRevenue   = "revenue"
	MetricQuantity  = "quantity"
	MetricFrequency = "frequency"
)

// TopSellersUsecase ranking de productos más vendidos.
type TopSellersUsecase struct {
	sales repository.SalesRepository
	log   *logger.Logger
}

// NewTopSellersUsecase construye el caso de uso de ranking de ventas.
func NewTopSellersUsecase(sales repository.SalesRepository, log *logger.Logger) *TopSellersUsecase {
	return &TopSellersUsecase{sales: sales, log: log}
}

// TopSellers devuelve los productos líderes del período según la métrica
// elegida, con su participación sobre el total.
func (u *TopSellersUsecase) TopSellers(ctx context.Context, period, metric string, limit int) (*dto.TopSellersReport, error) {
	if metric == "" {
		metric = MetricRevenue
	}
	if metric != MetricRevenue && metric != MetricQuantity && metric != MetricFrequency {
		return nil, fmt.Errorf("métrica %q: %w", metric, domain.ErrInvalidMetric)
	}
	if limit <= 0 {
		limit = 10
	}

	since, err := parsePeriod(period)
	if err != nil {
		return nil, err
	}

	rows, err := u.sales.RevenueByProduct(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("ventas por producto: %w", err)
	}

	metricOf := func(r repository.ProductSalesRow) decimal.Decimal {
		switch metric {
		case MetricQuantity:
			return r.Quantity
		case MetricFrequency:
			return decimal.NewFromInt(int64(r.SalesCount))
		default:
			return r.Revenue
		}
	}

	totalMetric := decimal.Zero
	totalRevenue := decimal.Zero
	for _, r := range rows {
		totalMetric = totalMetric.Add(metricOf(r))
		totalRevenue = totalRevenue.Add(r.Revenue)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return metricOf(rows[i]).GreaterThan(metricOf(rows[j]))
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}

	items := make([]dto.TopSellerItem, 0, len(rows))
	for i, r := range rows {
		pct := decimal.Zero
		if totalMetric.IsPositive() {
			pct = metricOf(r).Div(totalMetric).Mul(decimal.NewFromInt(100)).Round(1)
		}
		items = append(items, dto.TopSellerItem{
			Rank:         i + 1,
			ProductID:    r.ProductID,
			SKU:          r.SKU,
			Name:         r.Name,
			Category:     r.Category,
			Revenue:      r.Revenue.Round(2),
			QuantitySold: r.Quantity,
			SalesCount:   r.SalesCount,
			PctOfTotal:   pct,
			CurrentStock: r.CurrentStock,
			StockStatus:  stockStatus(r.CurrentStock, r.MinStock),
		})
	}

	return &dto.TopSellersReport{
		Period:       periodOrDefault(period),
		Metric:       metric,
		TotalRevenue: totalRevenue.Round(2),
		Items:        items,
		GeneratedAt:  time.Now(),
	}, nil
}

func periodOrDefault(period string) string {
	if period == "" {
		return "month"
	}
	return period
}

func stockStatus(current, min decimal.Decimal) string {
	switch {
	case !current.IsPositive():
		return "OUT"
	case min.IsPositive() && current.LessThan(min):
		return "LOW"
	default:
		return "OK"
	}
}
