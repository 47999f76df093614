package purchasing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-insights/internal/application/dto"
)

// GroupBySupplier consolida las sugerencias bajo el último proveedor conocido
// de cada producto, una orden por proveedor, de mayor a menor valor.
// Productos sin compra previa quedan fuera: no hay proveedor a quién
// asignarlos.
func (u *SuggestionsUsecase) GroupBySupplier(ctx context.Context, forecastDays, historyDays int, minOrderValue decimal.Decimal) (*dto.SupplierOrdersReport, error) {
	report, err := u.Suggest(ctx, forecastDays, historyDays, minOrderValue)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*dto.SupplierOrder)
	for _, s := range report.Suggestions {
		ref, err := u.purchases.LastSupplierForProduct(ctx, s.ProductID)
		if err != nil {
			return nil, fmt.Errorf("proveedor de %s: %w", s.ProductID, err)
		}
		if ref == nil {
			continue // nunca comprado
		}

		order, ok := byID[ref.ID]
		if !ok {
			order = &dto.SupplierOrder{
				SupplierID:   ref.ID,
				SupplierName: ref.Name,
				TotalValue:   decimal.Zero,
				Items:        make([]dto.SupplierOrderLine, 0, 4),
			}
			byID[ref.ID] = order
		}
		order.Items = append(order.Items, dto.SupplierOrderLine{
			ProductID:         s.ProductID,
			SKU:               s.SKU,
			Name:              s.Name,
			SuggestedQuantity: s.SuggestedQuantity,
			UnitCost:          s.UnitCost,
			OrderValue:        s.OrderValue,
			Priority:          s.Priority,
		})
		order.TotalValue = order.TotalValue.Add(s.OrderValue)
	}

	total := decimal.Zero
	orders := make([]dto.SupplierOrder, 0, len(byID))
	for _, o := range byID {
		o.ProductCount = len(o.Items)
		o.TotalValue = o.TotalValue.Round(2)
		total = total.Add(o.TotalValue)
		orders = append(orders, *o)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].TotalValue.GreaterThan(orders[j].TotalValue)
	})

	return &dto.SupplierOrdersReport{
		TotalSuppliers: len(orders),
		TotalValue:     total.Round(2),
		Orders:         orders,
		GeneratedAt:    time.Now(),
	}, nil
}
