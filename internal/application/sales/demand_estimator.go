package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-insights/internal/domain"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
)

// DemandEstimator calcula la velocidad de venta histórica de un producto.
// Es la base de todos los pronósticos: media plana, sin suavizado ni
// estacionalidad.
type DemandEstimator struct {
	sales repository.SalesRepository
}

// NewDemandEstimator construye el estimador de demanda.
func NewDemandEstimator(sales repository.SalesRepository) *DemandEstimator {
	return &DemandEstimator{sales: sales}
}

// AverageDailySales promedio diario de unidades vendidas (solo PAID) en los
// últimos historyDays días, con 3 decimales. Cero significa "sin demanda
// pronosticable": el que llama debe saltar el producto, nunca dividir.
func (e *DemandEstimator) AverageDailySales(ctx context.Context, productID string, historyDays int) (decimal.Decimal, error) {
	if historyDays <= 0 {
		return decimal.Zero, fmt.Errorf("ventana de historia %d: %w", historyDays, domain.ErrInvalidInput)
	}

	since := time.Now().AddDate(0, 0, -historyDays)
	summary, err := e.sales.SummaryForProduct(ctx, productID, since)
	if err != nil {
		return decimal.Zero, fmt.Errorf("resumen de ventas del producto %s: %w", productID, err)
	}

	return summary.TotalSold.Div(decimal.NewFromInt(int64(historyDays))).Round(3), nil
}
