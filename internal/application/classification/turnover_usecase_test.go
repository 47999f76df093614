package classification_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-insights/internal/application/classification"
	"github.com/jhoicas/stock-insights/internal/domain/entity"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
	"github.com/jhoicas/stock-insights/pkg/logger"
)

type fakeTurnProducts struct {
	repository.ProductRepository
	byID      map[string]*entity.Product
	withStock []entity.Product
}

func (f *fakeTurnProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.byID[id], nil
}

func (f *fakeTurnProducts) ListWithStock(_ context.Context) ([]entity.Product, error) {
	return f.withStock, nil
}

type fakeTurnSales struct {
	repository.SalesRepository
	firstSale map[string]*time.Time
}

func (f *fakeTurnSales) FirstSaleAfter(_ context.Context, productID string, _ time.Time) (*time.Time, error) {
	return f.firstSale[productID], nil
}

type fakeTurnPurchases struct {
	repository.PurchaseRepository
	ids     []string
	batches map[string][]repository.ReceivedPurchaseRow
}

func (f *fakeTurnPurchases) ProductIDsWithReceivedOrders(_ context.Context, _ time.Time) ([]string, error) {
	return f.ids, nil
}

func (f *fakeTurnPurchases) ReceivedForProduct(_ context.Context, productID string, _ time.Time) ([]repository.ReceivedPurchaseRow, error) {
	return f.batches[productID], nil
}

type fakeTurnMovements struct {
	repository.MovementRepository
	lastPurchase map[string]*entity.StockMovement
}

func (f *fakeTurnMovements) LastPurchaseMovement(_ context.Context, productID string) (*entity.StockMovement, error) {
	return f.lastPurchase[productID], nil
}

func TestAnalyzeTurnover_BrechaCompraVenta(t *testing.T) {
	now := time.Now()
	recibido := now.AddDate(0, 0, -20)
	vendido := recibido.AddDate(0, 0, 5)

	products := &fakeTurnProducts{byID: map[string]*entity.Product{
		"p1": {ID: "p1", SKU: "SKU-1", Name: "Harina"},
	}}
	salesRepo := &fakeTurnSales{firstSale: map[string]*time.Time{"p1": &vendido}}
	purchases := &fakeTurnPurchases{
		ids: []string{"p1"},
		batches: map[string][]repository.ReceivedPurchaseRow{
			"p1": {{OrderID: "oc1", ReceivedDate: recibido, Quantity: decimal.NewFromInt(50)}},
		},
	}
	uc := classification.NewTurnoverUsecase(products, salesRepo, purchases, &fakeTurnMovements{}, logger.NewNop())

	report, err := uc.Analyze(context.Background(), 90)

	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	item := report.Items[0]
	assert.Equal(t, "5", item.AvgDaysToSell.String())
	require.NotNil(t, item.MinDaysToSell)
	assert.Equal(t, 5, *item.MinDaysToSell)
	assert.Equal(t, classification.TurnoverFast, item.Rating, "5 días promedio es rotación rápida")
	assert.Equal(t, 0, item.UnsoldBatches)
}

func TestAnalyzeTurnover_LoteSinVentaCuentaAparte(t *testing.T) {
	now := time.Now()
	products := &fakeTurnProducts{byID: map[string]*entity.Product{
		"p1": {ID: "p1", SKU: "SKU-1", Name: "Harina"},
	}}
	salesRepo := &fakeTurnSales{firstSale: map[string]*time.Time{}}
	purchases := &fakeTurnPurchases{
		ids: []string{"p1"},
		batches: map[string][]repository.ReceivedPurchaseRow{
			"p1": {{OrderID: "oc1", ReceivedDate: now.AddDate(0, 0, -10), Quantity: decimal.NewFromInt(30)}},
		},
	}
	uc := classification.NewTurnoverUsecase(products, salesRepo, purchases, &fakeTurnMovements{}, logger.NewNop())

	report, err := uc.Analyze(context.Background(), 90)

	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	item := report.Items[0]
	assert.Equal(t, 1, item.UnsoldBatches)
	assert.Nil(t, item.MinDaysToSell)
	assert.Equal(t, classification.TurnoverSlow, item.Rating, "sin ventas medidas la rotación es lenta")
}

func TestAgeDistribution_TramosPonderadosPorValor(t *testing.T) {
	now := time.Now()
	products := &fakeTurnProducts{withStock: []entity.Product{
		{ID: "nuevo", SKU: "SKU-N", Name: "Nuevo",
			CurrentStock: decimal.NewFromInt(10), CostPrice: decimal.NewFromInt(10)}, // $100
		{ID: "viejo", SKU: "SKU-V", Name: "Viejo",
			CurrentStock: decimal.NewFromInt(10), CostPrice: decimal.NewFromInt(30)}, // $300
	}}
	movements := &fakeTurnMovements{lastPurchase: map[string]*entity.StockMovement{
		"nuevo": {MovementDate: now.AddDate(0, 0, -5)},
		"viejo": {MovementDate: now.AddDate(0, 0, -90)},
	}}
	uc := classification.NewTurnoverUsecase(products, &fakeTurnSales{}, &fakeTurnPurchases{}, movements, logger.NewNop())

	report, err := uc.AgeDistribution(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Brackets, 5)
	assert.Equal(t, 1, report.Brackets[0].ProductCount, "5 días cae en 0-7")
	assert.Equal(t, 1, report.Brackets[4].ProductCount, "90 días cae en 60+")
	assert.Equal(t, "400", report.TotalStockValue.String())
	// (100×5 + 300×90) / 400 = 68.75 -> 68.8 ponderado por valor
	assert.Equal(t, "68.8", report.AvgAgeDays.String())
	require.NotNil(t, report.Oldest)
	assert.Equal(t, "viejo", report.Oldest.ProductID)
	assert.Equal(t, "75", report.Brackets[4].PctOfValue.String(), "300 de 400 es el 75%")
}

func TestAgeDistribution_SinEntradasNoHayEdad(t *testing.T) {
	products := &fakeTurnProducts{withStock: []entity.Product{
		{ID: "p1", CurrentStock: decimal.NewFromInt(3), CostPrice: decimal.NewFromInt(10)},
	}}
	movements := &fakeTurnMovements{lastPurchase: map[string]*entity.StockMovement{}}
	uc := classification.NewTurnoverUsecase(products, &fakeTurnSales{}, &fakeTurnPurchases{}, movements, logger.NewNop())

	report, err := uc.AgeDistribution(context.Background())

	require.NoError(t, err)
	assert.True(t, report.TotalStockValue.IsZero())
	assert.Nil(t, report.Oldest)
}
