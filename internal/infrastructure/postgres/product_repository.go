package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-insights/internal/domain"
	"github.com/jhoicas/stock-insights/internal/domain/entity"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productColumns columnas en el orden que espera scanProduct.
const productColumns = `
	id, sku, COALESCE(gtin, ''), name, COALESCE(category, ''), COALESCE(brand, ''),
	sale_price, cost_price, current_stock, min_stock, is_active, created_at, updated_at`

// ProductRepo consultas de solo lectura sobre el catálogo.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository construye el adaptador de productos.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

func scanProduct(row pgx.Row) (entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID,
		&p.SKU,
		&p.GTIN,
		&p.Name,
		&p.Category,
		&p.Brand,
		&p.SalePrice,
		&p.CostPrice,
		&p.CurrentStock,
		&p.MinStock,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// GetByID devuelve el producto o domain.ErrProductNotFound.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("products.GetByID: %w", err)
	}
	return &p, nil
}

// ListActive devuelve los productos activos ordenados por nombre.
func (r *ProductRepo) ListActive(ctx context.Context) ([]entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active ORDER BY name`
	return r.list(ctx, query, "products.ListActive")
}

// ListActiveWithStock devuelve los productos activos con stock positivo.
func (r *ProductRepo) ListActiveWithStock(ctx context.Context) ([]entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active AND current_stock > 0 ORDER BY name`
	return r.list(ctx, query, "products.ListActiveWithStock")
}

// ListWithStock devuelve todos los productos con stock positivo, incluyendo
// inactivos.
func (r *ProductRepo) ListWithStock(ctx context.Context) ([]entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE current_stock > 0 ORDER BY name`
	return r.list(ctx, query, "products.ListWithStock")
}

func (r *ProductRepo) list(ctx context.Context, query, op string) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	results := []entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return results, nil
}

// CountActive cuenta los productos activos.
func (r *ProductRepo) CountActive(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products WHERE is_active`, "products.CountActive")
}

// CountActiveWithStock cuenta los productos activos con stock positivo.
func (r *ProductRepo) CountActiveWithStock(ctx context.Context) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM products WHERE is_active AND current_stock > 0`,
		"products.CountActiveWithStock")
}

// CountBelowMinStock cuenta los activos por debajo de su mínimo configurado.
func (r *ProductRepo) CountBelowMinStock(ctx context.Context) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM products WHERE is_active AND min_stock > 0 AND current_stock < min_stock`,
		"products.CountBelowMinStock")
}

func (r *ProductRepo) count(ctx context.Context, query, op string) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// TotalStockValue valor del inventario activo a costo.
// COALESCE devuelve cero con el catálogo vacío.
func (r *ProductRepo) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(current_stock * cost_price), 0)
	FROM products
	WHERE is_active`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("products.TotalStockValue: %w", err)
	}
	return total, nil
}
