package stock

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

// Acciones recomendadas por antigüedad sin venta.
const (
	ActionUrgent    = "URGENT"    // > 90 días o nunca vendido
	ActionImportant = "IMPORTANT" // 60–90 días
	ActionMonitor   = "MONITOR"
)

// SlowMovingUsecase detecta capital inmovilizado: productos con stock que no
// registran ventas recientes.
type SlowMovingUsecase struct {
	products  repository.ProductRepository
	sales     repository.SalesRepository
	movements repository.MovementRepository
	log       *logger.Logger
}

// NewSlowMovingUsecase construye el detector de lenta rotación.
func NewSlowMovingUsecase(
	products repository.ProductRepository,
	sales repository.SalesRepository,
	movements repository.MovementRepository,
	log *logger.Logger,
) *SlowMovingUsecase {
	return &SlowMovingUsecase{products: products, sales: sales, movements: movements, log: log}
}

// Detect devuelve los productos con stock y sin venta PAID en los últimos
// thresholdDays días, del mayor valor inmovilizado al menor. Un producto que
// nunca vendió se trata como antigüedad sin cota: acción URGENT y
// days_without_sale nulo.
func (u *SlowMovingUsecase) Detect(ctx context.Context, thresholdDays int) (*dto.SlowMovingReport, error) {
	if thresholdDays <= 0 {
		return nil, fmt.Errorf("umbral de %d días: %w", thresholdDays, domain.ErrInvalidInput)
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, -thresholdDays)

	prods, err := u.products.ListWithStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("productos con stock: %w", err)
	}

	totalValue := decimal.Zero
	items := make([]dto.SlowMovingItem, 0)
	for _, p := range prods {
		lastSale, err := u.sales.LastSaleDate(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("última venta de %s: %w", p.ID, err)
		}
		if lastSale != nil && lastSale.After(cutoff) {
			continue // rotación sana
		}

		var daysWithout *int
		action := ActionUrgent
		if lastSale != nil {
			d := int(now.Sub(*lastSale).Hours() / 24)
			daysWithout = &d
			switch {
			case d > 90:
				action = ActionUrgent
			case d > 60:
				action = ActionImportant
			default:
				action = ActionMonitor
			}
		}

		var lastPurchase *time.Time
		pm, err := u.movements.LastPurchaseMovement(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("última compra de %s: %w", p.ID, err)
		}
		if pm != nil {
			t := pm.MovementDate
			lastPurchase = &t
		}

		value := p.StockValue().Round(2)
		totalValue = totalValue.Add(value)
		items = append(items, dto.SlowMovingItem{
			ProductID:        p.ID,
			SKU:              p.SKU,
			Name:             p.Name,
			Category:         p.CategoryOrDefault(),
			CurrentStock:     p.CurrentStock,
			StockValue:       value,
			DaysWithoutSale:  daysWithout,
			LastSaleDate:     lastSale,
			LastPurchaseDate: lastPurchase,
			Action:           action,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StockValue.GreaterThan(items[j].StockValue)
	})

	return &dto.SlowMovingReport{
		ThresholdDays:   thresholdDays,
		TotalProducts:   len(items),
		TotalStockValue: totalValue.Round(2),
		Products:        items,
		GeneratedAt:     now,
	}, nil
}
