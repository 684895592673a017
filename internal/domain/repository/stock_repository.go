package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockItem fila de listado de stock con los datos del producto ya unidos.
type StockItem struct {
	Stock       entity.Stock
	SKU         string
	ProductName string
}

// LowStockItem resultado crudo del reporte de reposición para un producto bajo reorden.
type LowStockItem struct {
	ProductID    string
	SKU          string
	ProductName  string
	Available    decimal.Decimal
	ReorderPoint decimal.Decimal
	UnitCost     decimal.Decimal
}

// StockRepository define el puerto de persistencia del stock por producto (DIP).
//
// ApplyDelta es la única vía de cambio de cantidades: un solo UPDATE condicional
// que suma los deltas a disponible/reservado/total con guardas de no-negatividad.
// Devuelve ErrInsufficientStock (sin tocar la fila) si alguna guarda falla.
type StockRepository interface {
	Get(ctx context.Context, productID string) (*entity.Stock, error)
	// Ensure crea la fila de stock en ceros si no existe (idempotente).
	Ensure(ctx context.Context, productID string) error
	ApplyDelta(ctx context.Context, productID string, dAvailable, dReserved decimal.Decimal) (*entity.Stock, error)
	SetReorderPoint(ctx context.Context, productID string, point decimal.Decimal) error
	List(ctx context.Context, f StockFilter) ([]StockItem, int, error)
	// ListBelowReorder devuelve los productos con disponible bajo el punto de
	// reorden, ordenados por mayor déficit primero.
	ListBelowReorder(ctx context.Context) ([]LowStockItem, error)
}

// StockTransactionRepository define el puerto del libro de transacciones de stock (DIP).
// El libro es de solo inserción; nunca se actualiza ni borra una entrada.
type StockTransactionRepository interface {
	Create(ctx context.Context, tx *entity.StockTransaction) error
	List(ctx context.Context, f TransactionFilter) ([]*entity.StockTransaction, int, error)
}
