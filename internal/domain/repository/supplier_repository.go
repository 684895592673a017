package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string, includeDeleted bool) (*entity.Supplier, error)
	GetByNIT(ctx context.Context, nit string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	List(ctx context.Context, f SupplierFilter) ([]*entity.Supplier, int, error)
	SoftDelete(ctx context.Context, id, by string) error
	Restore(ctx context.Context, id, by string) error
	HardDelete(ctx context.Context, id string) error
}
