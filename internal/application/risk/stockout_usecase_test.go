package risk_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-insights/internal/application/risk"
	"github.com/jhoicas/stock-insights/internal/domain"
	"github.com/jhoicas/stock-insights/internal/domain/entity"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
	"github.com/jhoicas/stock-insights/pkg/logger"
)

type fakeRiskProducts struct {
	repository.ProductRepository
	prods []entity.Product
}

func (f *fakeRiskProducts) ListActiveWithStock(_ context.Context) ([]entity.Product, error) {
	return f.prods, nil
}

type fakeRiskPurchases struct {
	repository.PurchaseRepository
	pending map[string][]repository.PendingOrderRow
}

func (f *fakeRiskPurchases) PendingForProduct(_ context.Context, productID string) ([]repository.PendingOrderRow, error) {
	return f.pending[productID], nil
}

type fakeDemand struct {
	rates map[string]decimal.Decimal
}

func (f *fakeDemand) AverageDailySales(_ context.Context, productID string, _ int) (decimal.Decimal, error) {
	return f.rates[productID], nil
}

func producto(id string, stockUnits int64) entity.Product {
	return entity.Product{
		ID: id, SKU: "SKU-" + id, Name: "Producto " + id,
		CurrentStock: decimal.NewFromInt(stockUnits),
		SalePrice:    decimal.NewFromInt(100),
	}
}

// ── Escalera de riesgo ────────────────────────────────────────────────────────

func TestForecast_CoberturaCortaSinPendientesEsCritical(t *testing.T) {
	products := &fakeRiskProducts{prods: []entity.Product{producto("p1", 4)}}
	purchases := &fakeRiskPurchases{pending: map[string][]repository.PendingOrderRow{}}
	demand := &fakeDemand{rates: map[string]decimal.Decimal{"p1": decimal.NewFromInt(2)}}
	uc := risk.NewStockoutRiskUsecase(products, purchases, demand, logger.NewNop())

	report, err := uc.Forecast(context.Background(), 30, 30, 7)

	require.NoError(t, err)
	require.Len(t, report.Products, 1)
	item := report.Products[0]
	assert.Equal(t, "2", item.DaysUntilStockout.String(), "4 unidades a 2/día")
	assert.Equal(t, risk.RiskCritical, item.RiskLevel)
	assert.Equal(t, 1, report.CriticalCount)
	// 2/día × $100 × (30−2) días en riesgo
	assert.Equal(t, "5600", item.PotentialLostRevenue.String())
}

func TestForecast_CoberturaCortaConPendientesSuficientesEsHigh(t *testing.T) {
	products := &fakeRiskProducts{prods: []entity.Product{producto("p1", 4)}}
	purchases := &fakeRiskPurchases{pending: map[string][]repository.PendingOrderRow{
		"p1": {{OrderNumber: "OC-1", OrderDate: time.Now().AddDate(0, 0, -2), Quantity: decimal.NewFromInt(100)}},
	}}
	demand := &fakeDemand{rates: map[string]decimal.Decimal{"p1": decimal.NewFromInt(2)}}
	uc := risk.NewStockoutRiskUsecase(products, purchases, demand, logger.NewNop())

	report, err := uc.Forecast(context.Background(), 30, 30, 7)

	require.NoError(t, err)
	require.Len(t, report.Products, 1)
	item := report.Products[0]
	assert.Equal(t, risk.RiskHigh, item.RiskLevel, "la cobertura corta no baja de HIGH aunque la reposición alcance")
	assert.True(t, item.PendingOrders.IsSufficient)
	assert.True(t, item.CoverageGap.IsZero(), "100 pendientes cubren el faltante de 56")
}

func TestForecast_PendientesDemoradasInsuficientesEsHigh(t *testing.T) {
	products := &fakeRiskProducts{prods: []entity.Product{producto("p1", 10)}}
	purchases := &fakeRiskPurchases{pending: map[string][]repository.PendingOrderRow{
		"p1": {{OrderNumber: "OC-1", OrderDate: time.Now().AddDate(0, 0, -12), Quantity: decimal.NewFromInt(5)}},
	}}
	demand := &fakeDemand{rates: map[string]decimal.Decimal{"p1": decimal.NewFromInt(2)}}
	uc := risk.NewStockoutRiskUsecase(products, purchases, demand, logger.NewNop())

	report, err := uc.Forecast(context.Background(), 30, 30, 7)

	require.NoError(t, err)
	require.Len(t, report.Products, 1)
	item := report.Products[0]
	assert.Equal(t, "5", item.DaysUntilStockout.String())
	assert.True(t, item.PendingOrders.IsDelayed, "12 días pendiente supera los 7 de gracia")
	assert.Equal(t, risk.RiskHigh, item.RiskLevel)
}

func TestForecast_PendientesInsuficientesSinDemoraEsMedium(t *testing.T) {
	products := &fakeRiskProducts{prods: []entity.Product{producto("p1", 10)}}
	purchases := &fakeRiskPurchases{pending: map[string][]repository.PendingOrderRow{
		"p1": {{OrderNumber: "OC-1", OrderDate: time.Now().AddDate(0, 0, -2), Quantity: decimal.NewFromInt(5)}},
	}}
	demand := &fakeDemand{rates: map[string]decimal.Decimal{"p1": decimal.NewFromInt(2)}}
	uc := risk.NewStockoutRiskUsecase(products, purchases, demand, logger.NewNop())

	report, err := uc.Forecast(context.Background(), 30, 30, 7)

	require.NoError(t, err)
	require.Len(t, report.Products, 1)
	assert.Equal(t, risk.RiskMedium, report.Products[0].RiskLevel)
}

func TestForecast_PendientesSuficientesEsLow(t *testing.T) {
	products := &fakeRiskProducts{prods: []entity.Product{producto("p1", 10)}}
	purchases := &fakeRiskPurchases{pending: map[string][]repository.PendingOrderRow{
		"p1": {{OrderNumber: "OC-1", OrderDate: time.Now().AddDate(0, 0, -2), Quantity: decimal.NewFromInt(60)}},
	}}
	demand := &fakeDemand{rates: map[string]decimal.Decimal{"p1": decimal.NewFromInt(2)}}
	uc := risk.NewStockoutRiskUsecase(products, purchases, demand, logger.NewNop())

	report, err := uc.Forecast(context.Background(), 30, 30, 7)

	require.NoError(t, err)
	require.Len(t, report.Products, 1)
	assert.Equal(t, risk.RiskLow, report.Products[0].RiskLevel)
	assert.Equal(t, 0, report.CriticalCount)
	assert.Equal(t, 0, report.HighCount)
}

func TestForecast_CoberturaFraccionariaNoSeTrunca(t *testing.T) {
	// 3.9 días de cobertura no es <= 3: la banda se decide con la fracción.
	products := &fakeRiskProducts{prods: []entity.Product{{
		ID: "p1", SKU: "SKU-p1", Name: "Producto p1",
		CurrentStock: decimal.RequireFromString("3.9"),
		SalePrice:    decimal.NewFromInt(100),
	}}}
	purchases := &fakeRiskPurchases{pending: map[string][]repository.PendingOrderRow{}}
	demand := &fakeDemand{rates: map[string]decimal.Decimal{"p1": decimal.NewFromInt(1)}}
	uc := risk.NewStockoutRiskUsecase(products, purchases, demand, logger.NewNop())

	report, err := uc.Forecast(context.Background(), 30, 30, 7)

	require.NoError(t, err)
	require.Len(t, report.Products, 1)
	item := report.Products[0]
	assert.Equal(t, "3.9", item.DaysUntilStockout.String())
	assert.Equal(t, risk.RiskMedium, item.RiskLevel)
	// 1/día × $100 × (30−3.9) días en riesgo.
	assert.Equal(t, "2610", item.PotentialLostRevenue.String())
}

func TestForecast_SinPendientesNuncaEsSuficiente(t *testing.T) {
	// Con umbral mayor al horizonte el faltante proyectado sale negativo; sin
	// órdenes en camino eso no puede leerse como cobertura suficiente.
	products := &fakeRiskProducts{prods: []entity.Product{producto("p1", 8)}}
	purchases := &fakeRiskPurchases{pending: map[string][]repository.PendingOrderRow{}}
	demand := &fakeDemand{rates: map[string]decimal.Decimal{"p1": decimal.NewFromInt(1)}}
	uc := risk.NewStockoutRiskUsecase(products, purchases, demand, logger.NewNop())

	report, err := uc.Forecast(context.Background(), 5, 30, 10)

	require.NoError(t, err)
	require.Len(t, report.Products, 1)
	item := report.Products[0]
	assert.False(t, item.PendingOrders.IsSufficient)
	assert.Equal(t, risk.RiskMedium, item.RiskLevel)
}

// ── Filtro y orden ────────────────────────────────────────────────────────────

func TestForecast_SoloReportaBajoElUmbral(t *testing.T) {
	justoEncima := producto("justo-encima", 0)
	justoEncima.CurrentStock = decimal.RequireFromString("15.8") // 7.9 días a 2/día
	products := &fakeRiskProducts{prods: []entity.Product{
		producto("corto", 4),   // 2 días de cobertura
		producto("largo", 100), // 50 días, fuera del umbral
		justoEncima,            // 7.9 > 7: la fracción también excluye
	}}
	purchases := &fakeRiskPurchases{pending: map[string][]repository.PendingOrderRow{}}
	demand := &fakeDemand{rates: map[string]decimal.Decimal{
		"corto":        decimal.NewFromInt(2),
		"largo":        decimal.NewFromInt(2),
		"justo-encima": decimal.NewFromInt(2),
	}}
	uc := risk.NewStockoutRiskUsecase(products, purchases, demand, logger.NewNop())

	report, err := uc.Forecast(context.Background(), 30, 30, 7)

	require.NoError(t, err)
	require.Len(t, report.Products, 1)
	assert.Equal(t, "corto", report.Products[0].ProductID)
	assert.Equal(t, 1, report.TotalAtRisk)
}

func TestForecast_IgnoraProductosSinDemanda(t *testing.T) {
	products := &fakeRiskProducts{prods: []entity.Product{producto("p1", 4)}}
	purchases := &fakeRiskPurchases{pending: map[string][]repository.PendingOrderRow{}}
	demand := &fakeDemand{rates: map[string]decimal.Decimal{"p1": decimal.Zero}}
	uc := risk.NewStockoutRiskUsecase(products, purchases, demand, logger.NewNop())

	report, err := uc.Forecast(context.Background(), 30, 30, 7)

	require.NoError(t, err)
	assert.Empty(t, report.Products, "sin velocidad de venta no hay pronóstico posible")
}

func TestForecast_OrdenaPorRiesgoYLuegoCobertura(t *testing.T) {
	products := &fakeRiskProducts{prods: []entity.Product{
		producto("medium", 10),
		producto("critical-2d", 4),
		producto("critical-1d", 2),
	}}
	purchases := &fakeRiskPurchases{pending: map[string][]repository.PendingOrderRow{
		"medium": {{OrderNumber: "OC-1", OrderDate: time.Now().AddDate(0, 0, -1), Quantity: decimal.NewFromInt(5)}},
	}}
	demand := &fakeDemand{rates: map[string]decimal.Decimal{
		"medium":      decimal.NewFromInt(2),
		"critical-2d": decimal.NewFromInt(2),
		"critical-1d": decimal.NewFromInt(2),
	}}
	uc := risk.NewStockoutRiskUsecase(products, purchases, demand, logger.NewNop())

	report, err := uc.Forecast(context.Background(), 30, 30, 7)

	require.NoError(t, err)
	require.Len(t, report.Products, 3)
	assert.Equal(t, "critical-1d", report.Products[0].ProductID)
	assert.Equal(t, "critical-2d", report.Products[1].ProductID)
	assert.Equal(t, "medium", report.Products[2].ProductID)
}

func TestForecast_ParametrosInvalidos(t *testing.T) {
	uc := risk.NewStockoutRiskUsecase(&fakeRiskProducts{}, &fakeRiskPurchases{}, &fakeDemand{}, logger.NewNop())

	_, err := uc.Forecast(context.Background(), 0, 30, 7)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
