package classification_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-insights/internal/application/classification"
	"github.com/jhoicas/stock-insights/internal/domain"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
	"github.com/jhoicas/stock-insights/pkg/logger"
)

type fakeClassSales struct {
	repository.SalesRepository
	rows []repository.ProductSalesRow
}

func (f *fakeClassSales) RevenueByProduct(_ context.Context, _ time.Time) ([]repository.ProductSalesRow, error) {
	return f.rows, nil
}

func ventas(id string, revenue float64) repository.ProductSalesRow {
	return repository.ProductSalesRow{
		ProductID: id, SKU: "SKU-" + id, Name: "Producto " + id,
		Revenue:  decimal.NewFromFloat(revenue),
		Quantity: decimal.NewFromInt(1),
	}
}

func TestClassify_CortesDelPareto(t *testing.T) {
	// 82% / 10% / 8%: el primero entra en A (82 > 80 pero acumulado arranca en
	// él), el segundo queda en B (92 <= 95) y el tercero en C.
	repo := &fakeClassSales{rows: []repository.ProductSalesRow{
		ventas("estrella", 820),
		ventas("medio", 100),
		ventas("cola", 80),
	}}
	uc := classification.NewABCUsecase(repo, logger.NewNop())

	report, err := uc.Classify(context.Background(), "month", "revenue")

	require.NoError(t, err)
	require.Len(t, report.Items, 3)
	assert.Equal(t, "A", report.Items[0].Class)
	assert.Equal(t, "B", report.Items[1].Class)
	assert.Equal(t, "C", report.Items[2].Class)
	assert.Equal(t, "82", report.Items[0].CumulativePct.String())
	assert.Equal(t, "92", report.Items[1].CumulativePct.String())
	assert.Equal(t, "100", report.Items[2].CumulativePct.String())
}

func TestClassify_ElPrimeroSiempreEsA(t *testing.T) {
	// Un producto que concentra el 90% superaría el corte de clase A; aun así
	// el líder del ranking jamás puede quedar fuera de A.
	repo := &fakeClassSales{rows: []repository.ProductSalesRow{
		ventas("dominante", 900),
		ventas("resto", 100),
	}}
	uc := classification.NewABCUsecase(repo, logger.NewNop())

	report, err := uc.Classify(context.Background(), "month", "revenue")

	require.NoError(t, err)
	assert.Equal(t, "A", report.Items[0].Class)
	assert.Equal(t, "C", report.Items[1].Class, "el acumulado llega a 100 y cae directo en C")
}

func TestClassify_TodoProductoQuedaClasificado(t *testing.T) {
	rows := []repository.ProductSalesRow{}
	for _, r := range []float64{500, 300, 100, 50, 30, 20} {
		rows = append(rows, ventas("p", r))
	}
	uc := classification.NewABCUsecase(&fakeClassSales{rows: rows}, logger.NewNop())

	report, err := uc.Classify(context.Background(), "quarter", "revenue")

	require.NoError(t, err)
	assert.Equal(t, len(rows), report.TotalProducts)

	classified := 0
	for _, cs := range report.Summary {
		classified += cs.ProductCount
	}
	assert.Equal(t, len(rows), classified, "las clases deben particionar el catálogo completo")
}

func TestClassify_MetricaUtilidadReordena(t *testing.T) {
	// Mucho revenue con margen nulo contra poco revenue con todo margen.
	rows := []repository.ProductSalesRow{
		{ProductID: "volumen", Revenue: decimal.NewFromInt(1000),
			Quantity: decimal.NewFromInt(100), CostPrice: decimal.NewFromInt(10)},
		{ProductID: "margen", Revenue: decimal.NewFromInt(500),
			Quantity: decimal.NewFromInt(10), CostPrice: decimal.Zero},
	}
	uc := classification.NewABCUsecase(&fakeClassSales{rows: rows}, logger.NewNop())

	report, err := uc.Classify(context.Background(), "month", "profit")

	require.NoError(t, err)
	assert.Equal(t, "margen", report.Items[0].ProductID, "por utilidad lidera el de margen completo")
	assert.Equal(t, "500", report.Items[0].MetricValue.String())
	assert.Equal(t, "0", report.Items[1].MetricValue.String())
}

func TestClassify_MetricaDesconocida(t *testing.T) {
	uc := classification.NewABCUsecase(&fakeClassSales{}, logger.NewNop())

	_, err := uc.Classify(context.Background(), "month", "velocity")

	assert.ErrorIs(t, err, domain.ErrInvalidMetric)
}

func TestClassify_SinVentasReporteVacio(t *testing.T) {
	uc := classification.NewABCUsecase(&fakeClassSales{rows: nil}, logger.NewNop())

	report, err := uc.Classify(context.Background(), "month", "")

	require.NoError(t, err)
	assert.Empty(t, report.Items)
	assert.Empty(t, report.Summary)
	assert.Equal(t, "revenue", report.Metric, "métrica vacía usa revenue por defecto")
}
