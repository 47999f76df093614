package classification

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

// Métricas de clasificación soportadas.
const (
	MetricRevenue  = "revenue"
	MetricProfit   = "profit"
	MetricQuantity = "quantity"
)

// Cortes acumulados del Pareto.
var (
	classACutoff = decimal.NewFromInt(80)
	classBCutoff = decimal.NewFromInt(95)
)

// ABCUsecase clasificación de Pareto del catálogo por contribución acumulada.
type ABCUsecase struct {
	sales repository.SalesRepository
	log   *logger.Logger
}

// NewABCUsecase construye el clasificador ABC.
func NewABCUsecase(sales repository.SalesRepository, log *logger.Logger) *ABCUsecase {
	return &ABCUsecase{sales: sales, log: log}
}

// Classify ordena los productos con ventas del período por la métrica elegida
// y asigna clase recorriendo el acumulado: A hasta el 80%, B hasta el 95%,
// C el resto. Es un umbral sobre el total acumulado, no un corte top-N:
// cambiar de métrica puede mover productos de clase cerca de los bordes y
// esa sensibilidad es intencional.
func (u *ABCUsecase) Classify(ctx context.Context, period, metric string) (*dto.ABCReport, error) {
	if metric == "" {
		metric = MetricRevenue
	}
	if metric != MetricRevenue && metric != MetricProfit && metric != MetricQuantity {
		return nil, fmt.Errorf("métrica %q: %w", metric, domain.ErrInvalidMetric)
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
		case MetricProfit:
			return r.Revenue.Sub(r.Quantity.Mul(r.CostPrice))
		case MetricQuantity:
			return r.Quantity
		default:
			return r.Revenue
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return metricOf(rows[i]).GreaterThan(metricOf(rows[j]))
	})

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(metricOf(r))
	}

	hundred := decimal.NewFromInt(100)
	cumulative := decimal.Zero
	items := make([]dto.ABCItem, 0, len(rows))
	classTotals := map[string]*dto.ABCClassSummary{}
	for i, r := range rows {
		value := metricOf(r)
		pct := decimal.Zero
		if total.IsPositive() {
			pct = value.Div(total).Mul(hundred)
		}
		cumulative = cumulative.Add(pct)

		class := "C"
		switch {
		case i == 0 || cumulative.LessThanOrEqual(classACutoff):
			class = "A"
		case cumulative.LessThanOrEqual(classBCutoff):
			class = "B"
		}

		items = append(items, dto.ABCItem{
			ProductID:     r.ProductID,
			SKU:           r.SKU,
			Name:          r.Name,
			Category:      r.Category,
			MetricValue:   value.Round(2),
			Percentage:    pct.Round(2),
			CumulativePct: cumulative.Round(2),
			Class:         class,
		})

		cs, ok := classTotals[class]
		if !ok {
			cs = &dto.ABCClassSummary{Class: class, TotalValue: decimal.Zero}
			classTotals[class] = cs
		}
		cs.ProductCount++
		cs.TotalValue = cs.TotalValue.Add(value)
	}

	summary := make([]dto.ABCClassSummary, 0, 3)
	for _, class := range []string{"A", "B", "C"} {
		cs, ok := classTotals[class]
		if !ok {
			continue
		}
		if len(items) > 0 {
			cs.PctOfProducts = decimal.NewFromInt(int64(cs.ProductCount)).
				Div(decimal.NewFromInt(int64(len(items)))).Mul(hundred).Round(1)
		}
		if total.IsPositive() {
			cs.PctOfValue = cs.TotalValue.Div(total).Mul(hundred).Round(1)
		}
		cs.TotalValue = cs.TotalValue.Round(2)
		summary = append(summary, *cs)
	}

	return &dto.ABCReport{
		Metric:          metric,
		Period:          periodOrDefault(period),
		TotalProducts:   len(items),
		Items:           items,
		Summary:         summary,
		Recommendations: abcRecommendations(classTotals),
		GeneratedAt:     time.Now(),
	}, nil
}

func abcRecommendations(classTotals map[string]*dto.ABCClassSummary) []string {
	recs := make([]string, 0, 3)
	if cs, ok := classTotals["A"]; ok {
		recs = append(recs, fmt.Sprintf(
			"Clase A (%d productos): nunca permitir quiebre de stock, revisar cobertura a diario", cs.ProductCount))
	}
	if cs, ok := classTotals["B"]; ok {
		recs = append(recs, fmt.Sprintf(
			"Clase B (%d productos): reposición quincenal con stock de seguridad moderado", cs.ProductCount))
	}
	if cs, ok := classTotals["C"]; ok {
		recs = append(recs, fmt.Sprintf(
			"Clase C (%d productos): comprar bajo pedido y evaluar descontinuar los de menor aporte", cs.ProductCount))
	}
	return recs
}
