package integrity_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-insights/internal/application/integrity"
	"github.com/jhoicas/stock-insights/internal/domain"
	"github.com/jhoicas/stock-insights/internal/domain/entity"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
	"github.com/jhoicas/stock-insights/pkg/logger"
)

type fakeIntProducts struct {
	repository.ProductRepository
	prods []entity.Product
}

func (f *fakeIntProducts) ListActive(_ context.Context) ([]entity.Product, error) {
	return f.prods, nil
}

type fakeIntMovements struct {
	repository.MovementRepository
	history map[string][]entity.StockMovement
}

func (f *fakeIntMovements) History(_ context.Context, productID string) ([]entity.StockMovement, error) {
	return f.history[productID], nil
}

func mov(qty int64) entity.StockMovement {
	return entity.StockMovement{Quantity: decimal.NewFromInt(qty), MovementDate: time.Now()}
}

func TestDetect_LedgerLimpioNoReportaNada(t *testing.T) {
	products := &fakeIntProducts{prods: []entity.Product{{
		ID: "p1", CurrentStock: decimal.NewFromInt(70), CostPrice: decimal.NewFromInt(10),
	}}}
	movements := &fakeIntMovements{history: map[string][]entity.StockMovement{
		"p1": {mov(100), mov(-30)}, // suma 70, igual al stock físico
	}}
	uc := integrity.NewDiscrepancyUsecase(products, movements, logger.NewNop())

	report, err := uc.Detect(context.Background(), decimal.NewFromInt(5))

	require.NoError(t, err)
	assert.Empty(t, report.Items)
	assert.True(t, report.TotalLossValue.IsZero())
	assert.Equal(t, 1, report.ProductsAnalyzed)
}

func TestDetect_DiscrepanciaSobreToleranciaConValoresExactos(t *testing.T) {
	// El ledger espera 100 y hay 85: 15 unidades de desvío, 15%, $150 a costo.
	products := &fakeIntProducts{prods: []entity.Product{{
		ID: "p1", SKU: "SKU-1", Name: "Aceite",
		CurrentStock: decimal.NewFromInt(85), CostPrice: decimal.NewFromInt(10),
	}}}
	movements := &fakeIntMovements{history: map[string][]entity.StockMovement{
		"p1": {mov(120), mov(-20)},
	}}
	uc := integrity.NewDiscrepancyUsecase(products, movements, logger.NewNop())

	report, err := uc.Detect(context.Background(), decimal.NewFromInt(5))

	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	item := report.Items[0]
	assert.Equal(t, "100", item.ExpectedStock.String())
	assert.Equal(t, "85", item.ActualStock.String())
	assert.Equal(t, "15", item.Discrepancy.String())
	assert.Equal(t, "15", item.DiscrepancyPct.String())
	assert.Equal(t, integrity.SeverityHigh, item.Severity, "15% está entre 10 y 20")
	assert.Equal(t, "150", item.LossValue.String())
	assert.Equal(t, "150", report.TotalLossValue.String())
}

func TestDetect_DentroDeToleranciaSeIgnora(t *testing.T) {
	// 3% de desvío con tolerancia del 5%.
	products := &fakeIntProducts{prods: []entity.Product{{
		ID: "p1", CurrentStock: decimal.NewFromInt(97), CostPrice: decimal.NewFromInt(10),
	}}}
	movements := &fakeIntMovements{history: map[string][]entity.StockMovement{
		"p1": {mov(100)},
	}}
	uc := integrity.NewDiscrepancyUsecase(products, movements, logger.NewNop())

	report, err := uc.Detect(context.Background(), decimal.NewFromInt(5))

	require.NoError(t, err)
	assert.Empty(t, report.Items)
}

func TestDetect_SaltaExpectativaCero(t *testing.T) {
	// Entradas y salidas se cancelan: no hay base porcentual.
	products := &fakeIntProducts{prods: []entity.Product{{
		ID: "p1", CurrentStock: decimal.NewFromInt(4), CostPrice: decimal.NewFromInt(10),
	}}}
	movements := &fakeIntMovements{history: map[string][]entity.StockMovement{
		"p1": {mov(50), mov(-50)},
	}}
	uc := integrity.NewDiscrepancyUsecase(products, movements, logger.NewNop())

	report, err := uc.Detect(context.Background(), decimal.NewFromInt(5))

	require.NoError(t, err)
	assert.Empty(t, report.Items, "con expectativa cero el porcentaje no está definido")
}

func TestDetect_OrdenaPorSeveridadYPerdida(t *testing.T) {
	products := &fakeIntProducts{prods: []entity.Product{
		{ID: "leve", CurrentStock: decimal.NewFromInt(92), CostPrice: decimal.NewFromInt(10)},   // 8%
		{ID: "grave", CurrentStock: decimal.NewFromInt(60), CostPrice: decimal.NewFromInt(10)},  // 40%
		{ID: "medio", CurrentStock: decimal.NewFromInt(85), CostPrice: decimal.NewFromInt(100)}, // 15%
	}}
	movements := &fakeIntMovements{history: map[string][]entity.StockMovement{
		"leve":  {mov(100)},
		"grave": {mov(100)},
		"medio": {mov(100)},
	}}
	uc := integrity.NewDiscrepancyUsecase(products, movements, logger.NewNop())

	report, err := uc.Detect(context.Background(), decimal.NewFromInt(5))

	require.NoError(t, err)
	require.Len(t, report.Items, 3)
	assert.Equal(t, "grave", report.Items[0].ProductID, "CRITICAL antes que HIGH y MEDIUM")
	assert.Equal(t, "medio", report.Items[1].ProductID)
	assert.Equal(t, "leve", report.Items[2].ProductID)
}

func TestDetect_ToleranciaNegativa(t *testing.T) {
	uc := integrity.NewDiscrepancyUsecase(&fakeIntProducts{}, &fakeIntMovements{}, logger.NewNop())

	_, err := uc.Detect(context.Background(), decimal.NewFromInt(-1))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
