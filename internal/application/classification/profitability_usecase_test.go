package classification_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-insights/internal/application/classification"
	"github.com/jhoicas/stock-insights/internal/domain"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
	"github.com/jhoicas/stock-insights/pkg/logger"
)

func conMargen(id string, revenue, qty, cost float64) repository.ProductSalesRow {
	return repository.ProductSalesRow{
		ProductID: id, SKU: "SKU-" + id, Name: "Producto " + id,
		Revenue:   decimal.NewFromFloat(revenue),
		Quantity:  decimal.NewFromFloat(qty),
		CostPrice: decimal.NewFromFloat(cost),
	}
}

func TestAnalyze_CalculaMargenYROI(t *testing.T) {
	// Revenue 1000, costo 10 × 60 = 600: utilidad 400, margen 40%, ROI 66.7%.
	repo := &fakeClassSales{rows: []repository.ProductSalesRow{conMargen("p1", 1000, 60, 10)}}
	uc := classification.NewProfitabilityUsecase(repo, logger.NewNop())

	report, err := uc.Analyze(context.Background(), "month")

	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	item := report.Items[0]
	assert.Equal(t, "400", item.GrossProfit.String())
	assert.Equal(t, "40", item.ProfitMargin.String())
	assert.Equal(t, "66.7", item.ROI.String())
	assert.Equal(t, classification.RatingHigh, item.Rating, "margen del 40% es la frontera de HIGH")
	assert.Equal(t, "40", report.OverallMargin.String())
}

func TestAnalyze_EscaleraDeCalificaciones(t *testing.T) {
	repo := &fakeClassSales{rows: []repository.ProductSalesRow{
		conMargen("alto", 1000, 50, 10),    // margen 50%
		conMargen("medio", 1000, 100, 7),   // margen 30%
		conMargen("bajo", 1000, 100, 8.5),  // margen 15%
		conMargen("pobre", 1000, 100, 9.5), // margen 5%
	}}
	uc := classification.NewProfitabilityUsecase(repo, logger.NewNop())

	report, err := uc.Analyze(context.Background(), "month")

	require.NoError(t, err)
	ratings := map[string]string{}
	for _, it := range report.Items {
		ratings[it.ProductID] = it.Rating
	}
	assert.Equal(t, classification.RatingHigh, ratings["alto"])
	assert.Equal(t, classification.RatingMedium, ratings["medio"])
	assert.Equal(t, classification.RatingLow, ratings["bajo"])
	assert.Equal(t, classification.RatingPoor, ratings["pobre"])
}

func TestAnalyze_OrdenaPorUtilidadDescendente(t *testing.T) {
	repo := &fakeClassSales{rows: []repository.ProductSalesRow{
		conMargen("menor", 500, 40, 10),   // utilidad 100
		conMargen("mayor", 2000, 100, 10), // utilidad 1000
	}}
	uc := classification.NewProfitabilityUsecase(repo, logger.NewNop())

	report, err := uc.Analyze(context.Background(), "month")

	require.NoError(t, err)
	require.Len(t, report.Items, 2)
	assert.Equal(t, "mayor", report.Items[0].ProductID)
}

func TestSummary_CincoMejoresYPeores(t *testing.T) {
	rows := make([]repository.ProductSalesRow, 0, 8)
	for i, profit := range []float64{800, 700, 600, 500, 400, 300, 200, 100} {
		// costo cero: utilidad = revenue
		rows = append(rows, conMargen(string(rune('a'+i)), profit, 1, 0))
	}
	uc := classification.NewProfitabilityUsecase(&fakeClassSales{rows: rows}, logger.NewNop())

	summary, err := uc.Summary(context.Background(), "month")

	require.NoError(t, err)
	require.Len(t, summary.TopProducts, 5)
	require.Len(t, summary.WorstProducts, 5)
	assert.Equal(t, "800", summary.TopProducts[0].GrossProfit.String())
	assert.Equal(t, "100", summary.WorstProducts[0].GrossProfit.String(), "los peores van del menor hacia arriba")
}

func TestAnalyze_PeriodoInvalido(t *testing.T) {
	uc := classification.NewProfitabilityUsecase(&fakeClassSales{}, logger.NewNop())

	_, err := uc.Analyze(context.Background(), "yesterday")

	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}
