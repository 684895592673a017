package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string, includeDeleted bool) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, f CategoryFilter) ([]*entity.Category, int, error)
	SoftDelete(ctx context.Context, id, by string) error
	Restore(ctx context.Context, id, by string) error
	HardDelete(ctx context.Context, id string) error
}
