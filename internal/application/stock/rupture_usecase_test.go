package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-insights/internal/application/stock"
	"github.com/jhoicas/stock-insights/internal/domain"
	"github.com/jhoicas/stock-insights/internal/domain/entity"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
	"github.com/jhoicas/stock-insights/pkg/logger"
)

type fakeRuptureSales struct {
	repository.SalesRepository
	candidates []repository.RuptureCandidateRow
}

func (f *fakeRuptureSales) RuptureCandidates(_ context.Context, _ time.Time) ([]repository.RuptureCandidateRow, error) {
	return f.candidates, nil
}

type fakeRuptureMovements struct {
	repository.MovementRepository
	zeroEvents map[string]*entity.StockMovement
}

func (f *fakeRuptureMovements) LastZeroStockEvent(_ context.Context, productID string) (*entity.StockMovement, error) {
	return f.zeroEvents[productID], nil
}

func TestDetectRuptures_CalculaDemandaYPerdida(t *testing.T) {
	now := time.Now()
	salesRepo := &fakeRuptureSales{candidates: []repository.RuptureCandidateRow{{
		ProductID: "p1", SKU: "SKU-1", Name: "Leche 1L",
		SalePrice:    decimal.NewFromInt(50),
		QuantitySold: decimal.NewFromInt(10),
		SalesCount:   4,
		LastSaleDate: now.AddDate(0, 0, -1),
	}}}
	movRepo := &fakeRuptureMovements{zeroEvents: map[string]*entity.StockMovement{
		"p1": {MovementDate: now.AddDate(0, 0, -5)},
	}}
	uc := stock.NewRuptureUsecase(salesRepo, movRepo, logger.NewNop())

	report, err := uc.DetectRuptures(context.Background(), 14)

	require.NoError(t, err)
	require.Len(t, report.Products, 1)
	item := report.Products[0]
	assert.Equal(t, "0.714", item.DailyDemand.String(), "10 unidades en 14 días")
	require.NotNil(t, item.DaysOutOfStock)
	assert.Equal(t, 5, *item.DaysOutOfStock)
	// 0.714/día × 5 días × $50 = $178.50
	assert.Equal(t, "178.5", item.EstimatedLostRevenue.String())
	assert.Equal(t, "178.5", report.TotalLostRevenue.String())
}

func TestDetectRuptures_SinEventoDeAgotamiento(t *testing.T) {
	salesRepo := &fakeRuptureSales{candidates: []repository.RuptureCandidateRow{{
		ProductID: "p1", SKU: "SKU-1", Name: "Leche 1L",
		SalePrice:    decimal.NewFromInt(50),
		QuantitySold: decimal.NewFromInt(7),
		SalesCount:   2,
	}}}
	movRepo := &fakeRuptureMovements{zeroEvents: map[string]*entity.StockMovement{}}
	uc := stock.NewRuptureUsecase(salesRepo, movRepo, logger.NewNop())

	report, err := uc.DetectRuptures(context.Background(), 14)

	require.NoError(t, err)
	require.Len(t, report.Products, 1)
	assert.Nil(t, report.Products[0].DaysOutOfStock, "sin evento en el ledger no se conoce la antigüedad")
	assert.True(t, report.Products[0].EstimatedLostRevenue.IsZero(), "sin días medibles no se estima pérdida")
}

func TestDetectRuptures_ConservaElOrdenDelRepositorio(t *testing.T) {
	// El repositorio entrega por cantidad vendida descendente; el caso de uso
	// no debe reordenar.
	salesRepo := &fakeRuptureSales{candidates: []repository.RuptureCandidateRow{
		{ProductID: "p1", QuantitySold: decimal.NewFromInt(30), SalePrice: decimal.NewFromInt(10)},
		{ProductID: "p2", QuantitySold: decimal.NewFromInt(20), SalePrice: decimal.NewFromInt(10)},
	}}
	movRepo := &fakeRuptureMovements{zeroEvents: map[string]*entity.StockMovement{}}
	uc := stock.NewRuptureUsecase(salesRepo, movRepo, logger.NewNop())

	report, err := uc.DetectRuptures(context.Background(), 14)

	require.NoError(t, err)
	require.Len(t, report.Products, 2)
	assert.Equal(t, "p1", report.Products[0].ProductID)
	assert.Equal(t, "p2", report.Products[1].ProductID)
}

func TestDetectRuptures_VentanaInvalida(t *testing.T) {
	uc := stock.NewRuptureUsecase(&fakeRuptureSales{}, &fakeRuptureMovements{}, logger.NewNop())

	_, err := uc.DetectRuptures(context.Background(), 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
