package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-insights/internal/domain/entity"
)

// ProductRepository consultas de lectura sobre el catálogo de productos.
// Las implementaciones son read-only: ningún analizador escribe.
type ProductRepository interface {
	// GetByID devuelve el producto o domain.ErrProductNotFound.
	GetByID(ctx context.Context, id string) (*entity.Product, error)

	// ListActive devuelve todos los productos activos.
	ListActive(ctx context.Context) ([]entity.Product, error)

	// ListActiveWithStock devuelve los productos activos con current_stock > 0.
	ListActiveWithStock(ctx context.Context) ([]entity.Product, error)

	// ListWithStock devuelve todos los productos con current_stock > 0,
	// incluyendo inactivos (el capital inmovilizado no distingue estados).
	ListWithStock(ctx context.Context) ([]entity.Product, error)

	// ── Métricas agregadas para el dashboard de alertas ──────────────────────

	CountActive(ctx context.Context) (int, error)
	CountActiveWithStock(ctx context.Context) (int, error)

	// CountBelowMinStock cuenta productos activos con stock bajo su mínimo
	// configurado (min_stock > 0).
	CountBelowMinStock(ctx context.Context) (int, error)

	// TotalStockValue devuelve Σ(current_stock × cost_price) de los activos.
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)
}
