package availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-insights/internal/application/availability"
	"github.com/jhoicas/stock-insights/internal/domain/entity"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
	"github.com/jhoicas/stock-insights/pkg/logger"
)

type fakeDropProducts struct {
	repository.ProductRepository
	prods []entity.Product
}

func (f *fakeDropProducts) ListActiveWithStock(_ context.Context) ([]entity.Product, error) {
	return f.prods, nil
}

type fakeDropSales struct {
	repository.SalesRepository
	hist   map[string]decimal.Decimal
	recent map[string]decimal.Decimal
	pivot  time.Time // fin de la ventana histórica
}

func (f *fakeDropSales) TotalSoldBetween(_ context.Context, productID string, _, end time.Time) (decimal.Decimal, error) {
	// La ventana histórica termina en el pivote; la reciente termina en "ahora".
	if end.Sub(f.pivot).Abs() < time.Minute {
		return f.hist[productID], nil
	}
	return f.recent[productID], nil
}

type fakeDropMovements struct {
	repository.MovementRepository
	restock map[string]*entity.StockMovement
}

func (f *fakeDropMovements) LastPurchaseSince(_ context.Context, productID string, _ time.Time) (*entity.StockMovement, error) {
	return f.restock[productID], nil
}

func surtido(id string) entity.Product {
	return entity.Product{
		ID: id, SKU: "SKU-" + id, Name: "Producto " + id,
		CurrentStock: decimal.NewFromInt(50),
		SalePrice:    decimal.NewFromInt(20),
		IsActive:     true,
	}
}

func TestDetectDrop_CaidaTotalConReposicionReciente(t *testing.T) {
	now := time.Now()
	salesRepo := &fakeDropSales{
		hist:   map[string]decimal.Decimal{"p1": decimal.NewFromInt(60)}, // 2/día en 30 días
		recent: map[string]decimal.Decimal{"p1": decimal.Zero},
		pivot:  now.AddDate(0, 0, -7),
	}
	movements := &fakeDropMovements{restock: map[string]*entity.StockMovement{
		"p1": {MovementDate: now.AddDate(0, 0, -5), Type: entity.MovementPurchase},
	}}
	uc := availability.NewDemandDropUsecase(&fakeDropProducts{prods: []entity.Product{surtido("p1")}}, salesRepo, movements, logger.NewNop())

	report, err := uc.Detect(context.Background(), 30, 7, decimal.NewFromInt(70))

	require.NoError(t, err)
	require.Len(t, report.Products, 1)
	item := report.Products[0]
	assert.Equal(t, "2", item.HistoricalDailySales.String())
	assert.Equal(t, "100", item.DropPct.String())
	assert.Equal(t, availability.SeverityCritical, item.Severity)
	// 2/día × 7 días × $20 que dejaron de venderse.
	assert.Equal(t, "280", item.EstimatedLostRevenue.String())
}

func TestDetectDrop_SinReposicionRecienteSeDescarta(t *testing.T) {
	// La caída existe pero no entró mercancía en 30 días: puede estar
	// descontinuado y no es un problema operativo de venta.
	now := time.Now()
	salesRepo := &fakeDropSales{
		hist:   map[string]decimal.Decimal{"p1": decimal.NewFromInt(60)},
		recent: map[string]decimal.Decimal{"p1": decimal.Zero},
		pivot:  now.AddDate(0, 0, -7),
	}
	movements := &fakeDropMovements{restock: map[string]*entity.StockMovement{}}
	uc := availability.NewDemandDropUsecase(&fakeDropProducts{prods: []entity.Product{surtido("p1")}}, salesRepo, movements, logger.NewNop())

	report, err := uc.Detect(context.Background(), 30, 7, decimal.NewFromInt(70))

	require.NoError(t, err)
	assert.Empty(t, report.Products)
}

func TestDetectDrop_HistorialDebilNoEsMedible(t *testing.T) {
	// 0.3/día histórico está bajo el mínimo sano de 0.5: nunca hubo rotación
	// que pudiera caer.
	now := time.Now()
	salesRepo := &fakeDropSales{
		hist:   map[string]decimal.Decimal{"p1": decimal.NewFromInt(9)}, // 0.3/día
		recent: map[string]decimal.Decimal{"p1": decimal.Zero},
		pivot:  now.AddDate(0, 0, -7),
	}
	movements := &fakeDropMovements{restock: map[string]*entity.StockMovement{
		"p1": {MovementDate: now.AddDate(0, 0, -2)},
	}}
	uc := availability.NewDemandDropUsecase(&fakeDropProducts{prods: []entity.Product{surtido("p1")}}, salesRepo, movements, logger.NewNop())

	report, err := uc.Detect(context.Background(), 30, 7, decimal.NewFromInt(70))

	require.NoError(t, err)
	assert.Empty(t, report.Products)
}

func TestDetectDrop_CaidaBajoElUmbralNoSeReporta(t *testing.T) {
	// De 2/día a 1/día es una caída del 50%, bajo el umbral del 70%.
	now := time.Now()
	salesRepo := &fakeDropSales{
		hist:   map[string]decimal.Decimal{"p1": decimal.NewFromInt(60)},
		recent: map[string]decimal.Decimal{"p1": decimal.NewFromInt(7)},
		pivot:  now.AddDate(0, 0, -7),
	}
	movements := &fakeDropMovements{restock: map[string]*entity.StockMovement{
		"p1": {MovementDate: now.AddDate(0, 0, -2)},
	}}
	uc := availability.NewDemandDropUsecase(&fakeDropProducts{prods: []entity.Product{surtido("p1")}}, salesRepo, movements, logger.NewNop())

	report, err := uc.Detect(context.Background(), 30, 7, decimal.NewFromInt(70))

	require.NoError(t, err)
	assert.Empty(t, report.Products)
}
