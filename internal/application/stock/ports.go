package stock

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de base de datos, con los
// repositorios atados a esa transacción. Commit si fn devuelve nil; Rollback
// en caso contrario. Lo comparten stock y purchasing.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockTransactionRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// ReportCache caché opcional para reportes costosos (Redis en producción).
// Una implementación nil-safe permite operar sin caché configurada.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
