package stock

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/textutil"
)

const (
	lowStockCacheKey = "reports:stock:low"
	lowStockCacheTTL = 60 * time.Second
)

// UseCase operaciones sobre el stock de productos. Cada operación aplica los
// deltas con un único UPDATE condicional y escribe la entrada del libro en la
// misma transacción; nunca lee-modifica-escribe cantidades.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	ledgerRepo  repository.StockTransactionRepository
	cache       ReportCache // puede ser nil (sin caché)
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	ledgerRepo repository.StockTransactionRepository,
	cache ReportCache,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		ledgerRepo:  ledgerRepo,
		cache:       cache,
	}
}

// Receive registra una entrada (IN): +disponible, +total. UnitCost es obligatorio.
func (uc *UseCase) Receive(ctx context.Context, productID, userID string, in dto.StockOperationRequest) (*dto.StockResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost == nil || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	return uc.apply(ctx, productID, userID, entity.TransactionTypeIN,
		in.Quantity, in.Quantity, decimal.Zero, *in.UnitCost, in.Reference, in.Note)
}

// Issue registra una salida (OUT): -disponible, -total. Falla con
// ErrInsufficientStock si el disponible no alcanza.
func (uc *UseCase) Issue(ctx context.Context, productID, userID string, in dto.StockOperationRequest) (*dto.StockResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	return uc.apply(ctx, productID, userID, entity.TransactionTypeOUT,
		in.Quantity.Neg(), in.Quantity.Neg(), decimal.Zero, decimal.Zero, in.Reference, in.Note)
}

// Adjust registra un ajuste por conteo: Quantity lleva el signo del delta
// sobre el disponible. No toca lo reservado.
func (uc *UseCase) Adjust(ctx context.Context, productID, userID string, in dto.StockOperationRequest) (*dto.StockResponse, error) {
	if in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	return uc.apply(ctx, productID, userID, entity.TransactionTypeADJUSTMENT,
		in.Quantity, in.Quantity, decimal.Zero, decimal.Zero, in.Reference, in.Note)
}

// Reserve aparta cantidad contra un pedido: disponible -> reservado, total intacto.
func (uc *UseCase) Reserve(ctx context.Context, productID, userID string, in dto.StockOperationRequest) (*dto.StockResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	return uc.apply(ctx, productID, userID, entity.TransactionTypeRESERVED,
		in.Quantity.Neg(), in.Quantity.Neg(), in.Quantity, decimal.Zero, in.Reference, in.Note)
}

// Release devuelve cantidad reservada al disponible, total intacto.
func (uc *UseCase) Release(ctx context.Context, productID, userID string, in dto.StockOperationRequest) (*dto.StockResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	return uc.apply(ctx, productID, userID, entity.TransactionTypeRELEASED,
		in.Quantity, in.Quantity, in.Quantity.Neg(), decimal.Zero, in.Reference, in.Note)
}

// apply valida el producto y ejecuta delta + libro dentro de una transacción.
// ledgerQty es la cantidad con signo que queda en el libro; dAvailable/dReserved
// son los deltas que aplica el UPDATE condicional.
func (uc *UseCase) apply(
	ctx context.Context,
	productID, userID, txType string,
	ledgerQty, dAvailable, dReserved, unitCost decimal.Decimal,
	reference, note string,
) (*dto.StockResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID, false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var result *entity.Stock
	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockTransactionRepository,
		_ repository.PurchaseOrderRepository,
	) error {
		if err := stockRepo.Ensure(ctx, productID); err != nil {
			return err
		}
		updated, err := stockRepo.ApplyDelta(ctx, productID, dAvailable, dReserved)
		if err != nil {
			return err
		}
		result = updated
		return ledgerRepo.Create(ctx, &entity.StockTransaction{
			ID:        uuid.New().String(),
			ProductID: productID,
			Type:      txType,
			Quantity:  ledgerQty,
			UnitCost:  unitCost,
			Reference: reference,
			Note:      note,
			Date:      now,
			CreatedAt: now,
			CreatedBy: userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return toStockResponse(result, product.SKU, product.Name), nil
}

// Get devuelve los niveles actuales de un producto (ceros si aún no hay fila).
func (uc *UseCase) Get(ctx context.Context, productID string) (*dto.StockResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID, false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	s, err := uc.stockRepo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toStockResponse(s, product.SKU, product.Name), nil
}

// SetReorderPoint fija el punto de reorden del producto.
func (uc *UseCase) SetReorderPoint(ctx context.Context, productID, userID string, in dto.ReorderPointRequest) error {
	if in.ReorderPoint.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, productID, false)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.stockRepo.Ensure(ctx, productID); err != nil {
		return err
	}
	return uc.stockRepo.SetReorderPoint(ctx, productID, in.ReorderPoint)
}

// List lista el stock con datos de producto.
func (uc *UseCase) List(ctx context.Context, in dto.ListStockRequest) (*dto.StockListResponse, error) {
	in.Normalize()
	f := repository.StockFilter{
		ListParams: repository.ListParams{
			Limit:     in.Limit,
			Offset:    in.Offset(),
			SortBy:    "updated_at",
			SortOrder: in.SortOrder,
			Search:    textutil.Fold(in.Search),
		},
		BelowReorder: in.BelowReorder,
	}
	items, total, err := uc.stockRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toStockResponse(&it.Stock, it.SKU, it.ProductName))
	}
	return &dto.StockListResponse{
		Items: out,
		Page:  dto.NewPageResponse(in.Page, in.Limit, total),
	}, nil
}

// Transactions devuelve el libro de movimientos de un producto.
func (uc *UseCase) Transactions(ctx context.Context, productID string, in dto.ListTransactionsRequest) (*dto.TransactionListResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	in.Normalize()
	f := repository.TransactionFilter{
		ListParams: repository.ListParams{
			Limit:     in.Limit,
			Offset:    in.Offset(),
			SortBy:    "created_at",
			SortOrder: in.SortOrder,
		},
		ProductID: productID,
		Type:      in.Type,
		From:      in.From,
		To:        in.To,
	}
	list, total, err := uc.ledgerRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockTransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.StockTransactionResponse{
			ID:        t.ID,
			ProductID: t.ProductID,
			Type:      t.Type,
			Quantity:  t.Quantity,
			UnitCost:  t.UnitCost,
			Reference: t.Reference,
			Note:      t.Note,
			Date:      t.Date,
			CreatedAt: t.CreatedAt,
			CreatedBy: t.CreatedBy,
		})
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.NewPageResponse(in.Page, in.Limit, total),
	}, nil
}

// LowStockReport devuelve los productos bajo punto de reorden con cantidad
// sugerida de pedido. Se cachea en Redis con TTL corto cuando hay caché.
func (uc *UseCase) LowStockReport(ctx context.Context) (*dto.LowStockReportResponse, error) {
	if uc.cache != nil {
		if raw, ok, err := uc.cache.Get(ctx, lowStockCacheKey); err == nil && ok {
			var cached dto.LowStockReportResponse
			if json.Unmarshal(raw, &cached) == nil {
				cached.FromCache = true
				return &cached, nil
			}
		}
	}

	rawItems, err := uc.stockRepo.ListBelowReorder(ctx)
	if err != nil {
		return nil, err
	}

	// Stock ideal = 1.5x el punto de reorden; se sugiere pedir la diferencia.
	factor := decimal.NewFromFloat(1.5)
	items := make([]dto.LowStockItemResponse, 0, len(rawItems))
	for _, it := range rawItems {
		suggested := it.ReorderPoint.Mul(factor).Sub(it.Available)
		if suggested.LessThanOrEqual(decimal.Zero) {
			suggested = decimal.Zero
		}
		items = append(items, dto.LowStockItemResponse{
			ProductID:     it.ProductID,
			SKU:           it.SKU,
			ProductName:   it.ProductName,
			Available:     it.Available,
			ReorderPoint:  it.ReorderPoint,
			SuggestedQty:  suggested,
			EstimatedCost: suggested.Mul(it.UnitCost),
		})
	}
	report := &dto.LowStockReportResponse{Items: items, GeneratedAt: time.Now()}

	if uc.cache != nil {
		if raw, err := json.Marshal(report); err == nil {
			_ = uc.cache.Set(ctx, lowStockCacheKey, raw, lowStockCacheTTL)
		}
	}
	return report, nil
}

func toStockResponse(s *entity.Stock, sku, name string) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ProductID:    s.ProductID,
		SKU:          sku,
		ProductName:  name,
		Available:    s.Available,
		Reserved:     s.Reserved,
		Total:        s.Total,
		ReorderPoint: s.ReorderPoint,
		UpdatedAt:    s.UpdatedAt,
	}
}
