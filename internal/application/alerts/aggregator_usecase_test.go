package alerts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-insights/internal/application/alerts"
	"github.com/jhoicas/stock-insights/internal/application/dto"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
	"github.com/jhoicas/stock-insights/pkg/logger"
)

// fakeDetectors implementa los seis detectores del dashboard con reportes
// preparados. Si failWith está seteado, todos fallan con ese error.
type fakeDetectors struct {
	risk        *dto.StockoutRiskReport
	ruptures    *dto.RuptureReport
	slow        *dto.SlowMovingReport
	disc        *dto.DiscrepancyReport
	suggestions *dto.PurchaseSuggestionsReport
	losses      *dto.ExplicitLossesReport
	failWith    error
}

func (f *fakeDetectors) Forecast(_ context.Context, _, _, _ int) (*dto.StockoutRiskReport, error) {
	return f.risk, f.failWith
}

func (f *fakeDetectors) DetectRuptures(_ context.Context, _ int) (*dto.RuptureReport, error) {
	return f.ruptures, f.failWith
}

func (f *fakeDetectors) Detect(_ context.Context, _ int) (*dto.SlowMovingReport, error) {
	return f.slow, f.failWith
}

func (f *fakeDetectors) Suggest(_ context.Context, _, _ int, _ decimal.Decimal) (*dto.PurchaseSuggestionsReport, error) {
	return f.suggestions, f.failWith
}

func (f *fakeDetectors) List(_ context.Context, _ int) (*dto.ExplicitLossesReport, error) {
	return f.losses, f.failWith
}

// discrepancyFake separa la reconciliación del ledger: su Detect choca de
// firma con el de lenta rotación y no pueden vivir en el mismo fake.
type discrepancyFake struct{ d *fakeDetectors }

func (f discrepancyFake) Detect(_ context.Context, _ decimal.Decimal) (*dto.DiscrepancyReport, error) {
	return f.d.disc, f.d.failWith
}

type fakeAlertProducts struct {
	repository.ProductRepository
}

func (f *fakeAlertProducts) CountActive(_ context.Context) (int, error)          { return 40, nil }
func (f *fakeAlertProducts) CountActiveWithStock(_ context.Context) (int, error) { return 35, nil }
func (f *fakeAlertProducts) CountBelowMinStock(_ context.Context) (int, error)   { return 4, nil }
func (f *fakeAlertProducts) TotalStockValue(_ context.Context) (decimal.Decimal, error) {
	return decimal.NewFromInt(120000), nil
}

type fakeAlertSales struct {
	repository.SalesRepository
}

func (f *fakeAlertSales) TotalRevenueSince(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return decimal.NewFromInt(30000), nil
}

func sinHallazgos() *fakeDetectors {
	return &fakeDetectors{
		risk:        &dto.StockoutRiskReport{},
		ruptures:    &dto.RuptureReport{},
		slow:        &dto.SlowMovingReport{},
		disc:        &dto.DiscrepancyReport{},
		suggestions: &dto.PurchaseSuggestionsReport{},
		losses:      &dto.ExplicitLossesReport{},
	}
}

func newAggregator(d *fakeDetectors) *alerts.AggregatorUsecase {
	return alerts.NewAggregatorUsecase(d, d, d, discrepancyFake{d}, d, d, &fakeAlertProducts{}, &fakeAlertSales{}, logger.NewNop())
}

func riesgo(id, nivel string) dto.StockoutRiskItem {
	return dto.StockoutRiskItem{
		ProductID: id, SKU: "SKU-" + id, Name: "Producto " + id,
		RiskLevel:         nivel,
		DaysUntilStockout: decimal.NewFromInt(2),
	}
}

func TestHealth_InventarioSanoPuntuaCien(t *testing.T) {
	uc := newAggregator(sinHallazgos())

	report, err := uc.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 100, report.HealthScore)
	assert.Equal(t, "EXCELLENT", report.Status)
	assert.NotNil(t, report.CriticalAlerts, "las colecciones van vacías, nunca null")
	assert.NotNil(t, report.Warnings)
	assert.NotNil(t, report.Recommendations)
	assert.Empty(t, report.CriticalAlerts)
	assert.Equal(t, 40, report.Summary.TotalProducts)
	assert.Equal(t, 5, report.Metrics.OutOfStockCount, "activos menos activos con stock")
	assert.Equal(t, "30000", report.Metrics.SalesLast30Days.String())
}

func TestHealth_PonderaCriticasYAdvertencias(t *testing.T) {
	// Dos críticas (−30) y una advertencia (−5): 65 puntos, banda GOOD.
	d := sinHallazgos()
	d.risk = &dto.StockoutRiskReport{Products: []dto.StockoutRiskItem{riesgo("p1", "CRITICAL")}}
	d.ruptures = &dto.RuptureReport{Products: []dto.RuptureItem{{ProductID: "p2", Name: "Producto p2"}}}
	d.slow = &dto.SlowMovingReport{Products: []dto.SlowMovingItem{{ProductID: "p3", Name: "Producto p3", Action: "URGENT"}}}
	uc := newAggregator(d)

	report, err := uc.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 65, report.HealthScore)
	assert.Equal(t, "GOOD", report.Status)
	require.Len(t, report.CriticalAlerts, 2)
	assert.Equal(t, "stockout_risk", report.CriticalAlerts[0].Type)
	assert.Equal(t, "stock_rupture", report.CriticalAlerts[1].Type)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "slow_moving", report.Warnings[0].Type)
	assert.Equal(t, 2, report.Summary.CriticalCount)
	assert.Equal(t, 1, report.Summary.WarningCount)
}

func TestHealth_TopesPorFuente(t *testing.T) {
	// Ocho riesgos HIGH y cinco coberturas MEDIUM: entran 5 críticas y 3
	// advertencias como máximo por fuente.
	d := sinHallazgos()
	items := make([]dto.StockoutRiskItem, 0, 13)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		items = append(items, riesgo(id, "HIGH"))
	}
	for _, id := range []string{"m1", "m2", "m3", "m4", "m5"} {
		items = append(items, riesgo(id, "MEDIUM"))
	}
	d.risk = &dto.StockoutRiskReport{Products: items}
	uc := newAggregator(d)

	report, err := uc.Health(context.Background())

	require.NoError(t, err)
	assert.Len(t, report.CriticalAlerts, 5)
	assert.Len(t, report.Warnings, 3)
	// 100 − 15×5 − 5×3 = 10.
	assert.Equal(t, 10, report.HealthScore)
	assert.Equal(t, "POOR", report.Status)
}

func TestHealth_PerdidasYComprasSugeridas(t *testing.T) {
	d := sinHallazgos()
	d.losses = &dto.ExplicitLossesReport{
		TotalLossValue: decimal.NewFromInt(800),
		Losses:         []dto.ExplicitLossItem{{MovementID: "m1"}, {MovementID: "m2"}},
	}
	d.suggestions = &dto.PurchaseSuggestionsReport{Suggestions: []dto.PurchaseSuggestion{
		{ProductID: "p1", Name: "Producto p1", Priority: "HIGH",
			SuggestedQuantity: decimal.NewFromInt(40), OrderValue: decimal.NewFromInt(400)},
		{ProductID: "p2", Name: "Producto p2", Priority: "LOW"},
	}}
	uc := newAggregator(d)

	report, err := uc.Health(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "explicit_losses", report.Warnings[0].Type)
	require.Len(t, report.Recommendations, 1, "solo las sugerencias HIGH se recomiendan")
	assert.Equal(t, "purchase_suggestion", report.Recommendations[0].Type)
	assert.Equal(t, 95, report.HealthScore)
}

func TestHealth_FallaDeUnDetectorSePropaga(t *testing.T) {
	d := sinHallazgos()
	d.failWith = errors.New("conexión perdida")
	uc := newAggregator(d)

	_, err := uc.Health(context.Background())

	require.Error(t, err)
	assert.ErrorContains(t, err, "conexión perdida")
}
