package classification

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

// Calificaciones de rotación por días promedio compra -> venta.
const (
	TurnoverFast   = "FAST"   // <= 7 días
	TurnoverMedium = "MEDIUM" // <= 21 días
	TurnoverSlow   = "SLOW"
)

// Tramos fijos de antigüedad del inventario, en días.
var ageBrackets = []struct {
	label string
	max   int // -1 = sin tope
}{
	{"0-7", 7},
	{"8-14", 14},
	{"15-30", 30},
	{"31-60", 60},
	{"60+", -1},
}

// TurnoverUsecase mide cuánto tarda la mercancía recibida en empezar a
// venderse, y la antigüedad del inventario actual.
type TurnoverUsecase struct {
	products  repository.ProductRepository
	sales     repository.SalesRepository
	purchases repository.PurchaseRepository
	movements repository.MovementRepository
	log       *logger.Logger
}

// NewTurnoverUsecase construye el análisis de rotación.
func NewTurnoverUsecase(
	products repository.ProductRepository,
	sales repository.SalesRepository,
	purchases repository.PurchaseRepository,
	movements repository.MovementRepository,
	log *logger.Logger,
) *TurnoverUsecase {
	return &TurnoverUsecase{products: products, sales: sales, purchases: purchases, movements: movements, log: log}
}

// Analyze para cada compra RECEIVED del período busca la primera venta PAID
// posterior y mide la brecha en días; agrega mínimo, promedio y máximo por
// producto. Los lotes aún sin venta cuentan aparte. Más lento primero.
func (u *TurnoverUsecase) Analyze(ctx context.Context, periodDays int) (*dto.TurnoverReport, error) {
	if periodDays <= 0 {
		return nil, fmt.Errorf("período de %d días: %w", periodDays, domain.ErrInvalidInput)
	}

	now := time.Now()
	since := now.AddDate(0, 0, -periodDays)

	ids, err := u.purchases.ProductIDsWithReceivedOrders(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("productos con compras recibidas: %w", err)
	}

	items := make([]dto.TurnoverItem, 0, len(ids))
	for _, id := range ids {
		p, err := u.products.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("producto %s: %w", id, err)
		}

		batches, err := u.purchases.ReceivedForProduct(ctx, id, since)
		if err != nil {
			return nil, fmt.Errorf("compras recibidas de %s: %w", id, err)
		}
		if len(batches) == 0 {
			continue
		}

		var minDays, maxDays *int
		sum, sold, unsold := 0, 0, 0
		units := decimal.Zero
		for _, b := range batches {
			units = units.Add(b.Quantity)
			firstSale, err := u.sales.FirstSaleAfter(ctx, id, b.ReceivedDate)
			if err != nil {
				return nil, fmt.Errorf("primera venta de %s: %w", id, err)
			}
			if firstSale == nil {
				unsold++
				continue
			}
			gap := int(firstSale.Sub(b.ReceivedDate).Hours() / 24)
			if gap < 0 {
				gap = 0
			}
			sold++
			sum += gap
			if minDays == nil || gap < *minDays {
				g := gap
				minDays = &g
			}
			if maxDays == nil || gap > *maxDays {
				g := gap
				maxDays = &g
			}
		}

		avg := decimal.Zero
		if sold > 0 {
			avg = decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(sold))).Round(1)
		}

		rating := TurnoverSlow
		if sold > 0 {
			switch {
			case avg.LessThanOrEqual(decimal.NewFromInt(7)):
				rating = TurnoverFast
			case avg.LessThanOrEqual(decimal.NewFromInt(21)):
				rating = TurnoverMedium
			}
		}

		items = append(items, dto.TurnoverItem{
			ProductID:       p.ID,
			SKU:             p.SKU,
			Name:            p.Name,
			Category:        p.CategoryOrDefault(),
			BatchesAnalyzed: len(batches),
			UnitsReceived:   units,
			MinDaysToSell:   minDays,
			AvgDaysToSell:   avg,
			MaxDaysToSell:   maxDays,
			UnsoldBatches:   unsold,
			Rating:          rating,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AvgDaysToSell.GreaterThan(items[j].AvgDaysToSell)
	})

	return &dto.TurnoverReport{
		PeriodDays:  periodDays,
		Items:       items,
		GeneratedAt: now,
	}, nil
}

// AgeDistribution agrupa el inventario con stock por días desde su última
// entrada PURCHASE, ponderado por valor de stock.
func (u *TurnoverUsecase) AgeDistribution(ctx context.Context) (*dto.AgeDistributionReport, error) {
	now := time.Now()
	prods, err := u.products.ListWithStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("productos con stock: %w", err)
	}

	brackets := make([]dto.AgeBracket, len(ageBrackets))
	for i, b := range ageBrackets {
		brackets[i] = dto.AgeBracket{Range: b.label, StockValue: decimal.Zero}
	}

	totalValue := decimal.Zero
	weightedAge := decimal.Zero
	var oldest *dto.OldestProduct
	for _, p := range prods {
		pm, err := u.movements.LastPurchaseMovement(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("última compra de %s: %w", p.ID, err)
		}
		if pm == nil {
			continue // sin entradas registradas no hay edad que medir
		}

		age := int(now.Sub(pm.MovementDate).Hours() / 24)
		if age < 0 {
			age = 0
		}
		value := p.StockValue()

		idx := len(brackets) - 1
		for i, b := range ageBrackets {
			if b.max >= 0 && age <= b.max {
				idx = i
				break
			}
		}
		brackets[idx].ProductCount++
		brackets[idx].StockValue = brackets[idx].StockValue.Add(value)

		totalValue = totalValue.Add(value)
		weightedAge = weightedAge.Add(value.Mul(decimal.NewFromInt(int64(age))))

		if oldest == nil || age > oldest.AgeDays {
			oldest = &dto.OldestProduct{ProductID: p.ID, SKU: p.SKU, Name: p.Name, AgeDays: age}
		}
	}

	hundred := decimal.NewFromInt(100)
	for i := range brackets {
		if totalValue.IsPositive() {
			brackets[i].PctOfValue = brackets[i].StockValue.Div(totalValue).Mul(hundred).Round(1)
		}
		brackets[i].StockValue = brackets[i].StockValue.Round(2)
	}

	avgAge := decimal.Zero
	if totalValue.IsPositive() {
		avgAge = weightedAge.Div(totalValue).Round(1)
	}

	return &dto.AgeDistributionReport{
		Brackets:        brackets,
		TotalStockValue: totalValue.Round(2),
		AvgAgeDays:      avgAge,
		Oldest:          oldest,
		GeneratedAt:     now,
	}, nil
}
