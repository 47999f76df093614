package repository

import (
	"context"

	"github.com/jhoicas/stock-insights/internal/domain/entity"
)

// SupplierRepository consultas de lectura sobre proveedores.
type SupplierRepository interface {
	// GetByID devuelve el proveedor o domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)

	// ListActive devuelve los proveedores activos ordenados por nombre.
	ListActive(ctx context.Context) ([]entity.Supplier, error)
}
