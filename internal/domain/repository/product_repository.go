package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los listados y Get excluyen soft-deleted salvo que el filtro pida lo contrario.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string, includeDeleted bool) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	SoftDelete(ctx context.Context, id, by string) error
	Restore(ctx context.Context, id, by string) error
	HardDelete(ctx context.Context, id string) error
}
