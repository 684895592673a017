package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra (DIP).
// GetByID y List cargan los renglones; GetForUpdate bloquea la cabecera
// (SELECT FOR UPDATE) para serializar recepciones concurrentes de la misma orden.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string, includeDeleted bool) (*entity.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, f OrderFilter) ([]*entity.PurchaseOrder, int, error)
	// UpdateHeader actualiza cabecera y reemplaza renglones (solo órdenes DRAFT).
	UpdateHeader(ctx context.Context, order *entity.PurchaseOrder) error
	UpdateStatus(ctx context.Context, id, status, by string) error
	UpdateItemReceived(ctx context.Context, itemID string, received decimal.Decimal) error
	SoftDelete(ctx context.Context, id, by string) error
	Restore(ctx context.Context, id, by string) error
	HardDelete(ctx context.Context, id string) error
}
