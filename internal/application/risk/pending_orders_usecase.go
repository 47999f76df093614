package risk

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stock-insights/internal/application/dto"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
	"github.com/jhoicas/stock-insights/pkg/logger"
)

// PendingOrdersUsecase vista de las órdenes de compra en tránsito.
type PendingOrdersUsecase struct {
	purchases repository.PurchaseRepository
	log       *logger.Logger
}

// NewPendingOrdersUsecase construye el resumen de órdenes pendientes.
func NewPendingOrdersUsecase(purchases repository.PurchaseRepository, log *logger.Logger) *PendingOrdersUsecase {
	return &PendingOrdersUsecase{purchases: purchases, log: log}
}

// Summary devuelve las órdenes PENDING con sus líneas, las más demoradas
// primero. Con productID no vacío solo entran las órdenes que incluyen ese
// producto, reducidas a sus líneas.
func (u *PendingOrdersUsecase) Summary(ctx context.Context, productID string) (*dto.PendingOrderSummary, error) {
	now := time.Now()
	headers, err := u.purchases.AllPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("órdenes pendientes: %w", err)
	}

	orders := make([]dto.PendingOrderSummaryItem, 0, len(headers))
	delayed := 0
	for _, h := range headers {
		lines := make([]dto.PendingOrderLine, 0, len(h.Items))
		for _, it := range h.Items {
			if productID != "" && it.ProductID != productID {
				continue
			}
			lines = append(lines, dto.PendingOrderLine{
				ProductID:   it.ProductID,
				SKU:         it.SKU,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
			})
		}
		if productID != "" && len(lines) == 0 {
			continue
		}

		days := int(now.Sub(h.OrderDate).Hours() / 24)
		isDelayed := days > delayedOrderDays
		if isDelayed {
			delayed++
		}

		orders = append(orders, dto.PendingOrderSummaryItem{
			OrderID:      h.OrderID,
			OrderNumber:  h.OrderNumber,
			SupplierName: h.SupplierName,
			OrderDate:    h.OrderDate,
			DaysPending:  days,
			IsDelayed:    isDelayed,
			TotalAmount:  h.TotalAmount,
			Items:        lines,
		})
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].DaysPending > orders[j].DaysPending
	})

	return &dto.PendingOrderSummary{
		TotalOrders:  len(orders),
		DelayedCount: delayed,
		Orders:       orders,
	}, nil
}
