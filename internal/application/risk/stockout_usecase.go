package risk

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

// Niveles de riesgo de quiebre, del más urgente al más leve.
const (
	RiskCritical = "CRITICAL"
	RiskHigh     = "HIGH"
	RiskMedium   = "MEDIUM"
	RiskLow      = "LOW"
)

// delayedOrderDays edad a partir de la cual una orden pendiente se considera
// demorada.
const delayedOrderDays = 7

// DemandEstimator velocidad de venta diaria de un producto.
type DemandEstimator interface {
	AverageDailySales(ctx context.Context, productID string, historyDays int) (decimal.Decimal, error)
}

// StockoutRiskUsecase pronostica quiebres de stock antes de que ocurran.
// Contraparte preventiva del detector de rupturas: este opera sobre
// stock > 0, aquél sobre stock <= 0, nunca sobre el mismo producto.
type StockoutRiskUsecase struct {
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
	demand    DemandEstimator
	log       *logger.Logger
}

// NewStockoutRiskUsecase construye el pronosticador de riesgo.
func NewStockoutRiskUsecase(
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	demand DemandEstimator,
	log *logger.Logger,
) *StockoutRiskUsecase {
	return &StockoutRiskUsecase{products: products, purchases: purchases, demand: demand, log: log}
}

// Forecast proyecta días de cobertura por producto y clasifica el riesgo.
// Solo reporta productos con cobertura <= minDaysThreshold (es un filtro,
// no un clasificador). La escalera de riesgo evalúa en orden y gana la
// primera condición:
//
//	<= 3 días y pendientes insuficientes  -> CRITICAL
//	<= 3 días, o demoradas e insuficientes -> HIGH
//	pendientes insuficientes               -> MEDIUM
//	resto                                  -> LOW
func (u *StockoutRiskUsecase) Forecast(ctx context.Context, forecastDays, historyDays, minDaysThreshold int) (*dto.StockoutRiskReport, error) {
	if forecastDays <= 0 || historyDays <= 0 || minDaysThreshold <= 0 {
		return nil, fmt.Errorf("parámetros %d/%d/%d: %w", forecastDays, historyDays, minDaysThreshold, domain.ErrInvalidInput)
	}

	now := time.Now()
	prods, err := u.products.ListActiveWithStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("productos activos con stock: %w", err)
	}

	items := make([]dto.StockoutRiskItem, 0)
	critical, high := 0, 0
	for _, p := range prods {
		rate, err := u.demand.AverageDailySales(ctx, p.ID, historyDays)
		if err != nil {
			return nil, fmt.Errorf("demanda de %s: %w", p.ID, err)
		}
		if !rate.IsPositive() {
			continue // sin demanda pronosticable
		}

		// La cobertura se compara fraccionaria: truncarla movería productos
		// de banda (3.9 días no es <= 3) y colaría coberturas de 7.9 bajo un
		// umbral de 7.
		daysUntil := p.CurrentStock.Div(rate)
		if daysUntil.GreaterThan(decimal.NewFromInt(int64(minDaysThreshold))) {
			continue
		}

		forecast := rate.Mul(decimal.NewFromInt(int64(forecastDays)))
		pending, err := u.pendingInfo(ctx, p.ID, forecast.Sub(p.CurrentStock), now)
		if err != nil {
			return nil, err
		}

		level := classify(daysUntil, pending)
		switch level {
		case RiskCritical:
			critical++
		case RiskHigh:
			high++
		}

		gap := forecast.Sub(p.CurrentStock.Add(pending.TotalQuantity))
		if gap.IsNegative() {
			gap = decimal.Zero
		}

		// Revenue en riesgo: lo que se vendería entre el quiebre y el fin
		// del horizonte.
		lostDays := decimal.NewFromInt(int64(forecastDays)).Sub(daysUntil)
		lost := decimal.Zero
		if lostDays.IsPositive() {
			lost = rate.Mul(p.SalePrice).Mul(lostDays).Round(2)
		}

		items = append(items, dto.StockoutRiskItem{
			ProductID:            p.ID,
			SKU:                  p.SKU,
			Name:                 p.Name,
			Category:             p.CategoryOrDefault(),
			CurrentStock:         p.CurrentStock,
			AvgDailySales:        rate,
			DaysUntilStockout:    daysUntil.Round(1),
			ForecastDemand:       forecast.Round(3),
			CoverageGap:          gap.Round(3),
			RiskLevel:            level,
			PotentialLostRevenue: lost,
			PendingOrders:        pending,
			Recommendation:       recommendation(level, pending),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].RiskLevel != items[j].RiskLevel {
			return riskRank(items[i].RiskLevel) < riskRank(items[j].RiskLevel)
		}
		return items[i].DaysUntilStockout.LessThan(items[j].DaysUntilStockout)
	})

	return &dto.StockoutRiskReport{
		ForecastDays:     forecastDays,
		MinDaysThreshold: minDaysThreshold,
		HistoryDays:      historyDays,
		TotalAtRisk:      len(items),
		CriticalCount:    critical,
		HighCount:        high,
		Products:         items,
		GeneratedAt:      now,
	}, nil
}

// pendingInfo resuelve las órdenes PENDING del producto y si alcanzan a
// cubrir el faltante pronosticado.
func (u *StockoutRiskUsecase) pendingInfo(ctx context.Context, productID string, needed decimal.Decimal, now time.Time) (dto.PendingOrderInfo, error) {
	rows, err := u.purchases.PendingForProduct(ctx, productID)
	if err != nil {
		return dto.PendingOrderInfo{}, fmt.Errorf("órdenes pendientes de %s: %w", productID, err)
	}

	info := dto.PendingOrderInfo{
		TotalQuantity: decimal.Zero,
		Orders:        make([]dto.PendingOrderDetail, 0, len(rows)),
	}
	for _, r := range rows {
		days := int(now.Sub(r.OrderDate).Hours() / 24)
		if info.OldestDays == nil || days > *info.OldestDays {
			d := days
			info.OldestDays = &d
		}
		info.TotalQuantity = info.TotalQuantity.Add(r.Quantity)
		info.Orders = append(info.Orders, dto.PendingOrderDetail{
			OrderNumber: r.OrderNumber,
			OrderDate:   r.OrderDate,
			DaysPending: days,
			Quantity:    r.Quantity,
		})
	}
	info.OrdersCount = len(rows)
	info.IsDelayed = info.OldestDays != nil && *info.OldestDays > delayedOrderDays
	// Sin órdenes en camino no hay nada "suficiente", aunque el faltante
	// proyectado sea cero o negativo.
	info.IsSufficient = len(rows) > 0 && info.TotalQuantity.GreaterThanOrEqual(needed)
	return info, nil
}

func classify(daysUntil decimal.Decimal, pending dto.PendingOrderInfo) string {
	short := daysUntil.LessThanOrEqual(decimal.NewFromInt(3))
	switch {
	case short && !pending.IsSufficient:
		return RiskCritical
	case short || (pending.IsDelayed && !pending.IsSufficient):
		return RiskHigh
	case !pending.IsSufficient:
		return RiskMedium
	default:
		return RiskLow
	}
}

func recommendation(level string, pending dto.PendingOrderInfo) string {
	switch level {
	case RiskCritical:
		return "Ordenar de inmediato: el stock se agota antes de cualquier reposición en camino"
	case RiskHigh:
		if pending.IsDelayed {
			return "Hacer seguimiento a las órdenes demoradas y evaluar una compra de refuerzo"
		}
		return "Programar la compra esta semana"
	case RiskMedium:
		return "Las órdenes en camino no cubren la demanda proyectada: ampliar la próxima compra"
	default:
		return "Cobertura suficiente con las órdenes en camino"
	}
}

func riskRank(level string) int {
	switch level {
	case RiskCritical:
		return 0
	case RiskHigh:
		return 1
	case RiskMedium:
		return 2
	default:
		return 3
	}
}
