package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-insights/internal/domain"
	"github.com/jhoicas/stock-insights/internal/domain/entity"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `
	id, name, tax_id, COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(address, ''), COALESCE(city, ''), COALESCE(state, ''), is_active, created_at`

// SupplierRepo consultas de solo lectura sobre proveedores.
type SupplierRepo struct {
	pool *pgxpool.Pool
}

// NewSupplierRepository construye el adaptador de proveedores.
func NewSupplierRepository(pool *pgxpool.Pool) *SupplierRepo {
	return &SupplierRepo{pool: pool}
}

func scanSupplier(row pgx.Row) (entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.TaxID,
		&s.Email,
		&s.Phone,
		&s.Address,
		&s.City,
		&s.State,
		&s.IsActive,
		&s.CreatedAt,
	)
	return s, err
}

// GetByID devuelve el proveedor o domain.ErrNotFound.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`

	s, err := scanSupplier(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("suppliers.GetByID: %w", err)
	}
	return &s, nil
}

// ListActive proveedores activos ordenados por nombre.
func (r *SupplierRepo) ListActive(ctx context.Context) ([]entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE is_active ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("suppliers.ListActive: %w", err)
	}
	defer rows.Close()

	results := []entity.Supplier{}
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("suppliers.ListActive scan: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("suppliers.ListActive rows: %w", err)
	}
	return results, nil
}
