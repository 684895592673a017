package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	rows     map[string]*entity.Stock
	lowItems []repository.LowStockItem
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: make(map[string]*entity.Stock)}
}

func (f *fakeStockRepo) Get(_ context.Context, productID string) (*entity.Stock, error) {
	if s, ok := f.rows[productID]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID}, nil
}

func (f *fakeStockRepo) Ensure(_ context.Context, productID string) error {
	if _, ok := f.rows[productID]; !ok {
		f.rows[productID] = &entity.Stock{ProductID: productID}
	}
	return nil
}

// ApplyDelta replica las guardas del UPDATE condicional: si el disponible o el
// reservado quedarían negativos, no toca la fila y devuelve ErrInsufficientStock.
func (f *fakeStockRepo) ApplyDelta(_ context.Context, productID string, dAvailable, dReserved decimal.Decimal) (*entity.Stock, error) {
	s, ok := f.rows[productID]
	if !ok {
		return nil, domain.ErrInsufficientStock
	}
	newAvail := s.Available.Add(dAvailable)
	newRes := s.Reserved.Add(dReserved)
	if newAvail.IsNegative() || newRes.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}
	s.Available = newAvail
	s.Reserved = newRes
	s.Total = s.Total.Add(dAvailable).Add(dReserved)
	s.UpdatedAt = time.Now()
	cp := *s
	return &cp, nil
}

func (f *fakeStockRepo) SetReorderPoint(_ context.Context, productID string, point decimal.Decimal) error {
	s, ok := f.rows[productID]
	if !ok {
		return domain.ErrNotFound
	}
	s.ReorderPoint = point
	return nil
}

func (f *fakeStockRepo) List(_ context.Context, _ repository.StockFilter) ([]repository.StockItem, int, error) {
	items := make([]repository.StockItem, 0, len(f.rows))
	for _, s := range f.rows {
		items = append(items, repository.StockItem{Stock: *s})
	}
	return items, len(items), nil
}

func (f *fakeStockRepo) ListBelowReorder(_ context.Context) ([]repository.LowStockItem, error) {
	return f.lowItems, nil
}

type fakeLedgerRepo struct {
	entries []*entity.StockTransaction
}

func (f *fakeLedgerRepo) Create(_ context.Context, tx *entity.StockTransaction) error {
	f.entries = append(f.entries, tx)
	return nil
}

func (f *fakeLedgerRepo) List(_ context.Context, _ repository.TransactionFilter) ([]*entity.StockTransaction, int, error) {
	return f.entries, len(f.entries), nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string, includeDeleted bool) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok || (!includeDeleted && p.IsDeleted()) {
		return nil, nil
	}
	return p, nil
}

func (f *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku && !p.IsDeleted() {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Barcode == barcode && !p.IsDeleted() {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) CountByCategory(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func (f *fakeProductRepo) SoftDelete(_ context.Context, id, by string) error {
	if p, ok := f.products[id]; ok {
		p.MarkDeleted(by, time.Now())
	}
	return nil
}

func (f *fakeProductRepo) Restore(_ context.Context, id, by string) error {
	if p, ok := f.products[id]; ok {
		p.Audit.Restore(by, time.Now())
	}
	return nil
}

func (f *fakeProductRepo) HardDelete(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

// fakeTxRunner ejecuta el callback directamente con los fakes (sin transacción real).
type fakeTxRunner struct {
	stockRepo  repository.StockRepository
	ledgerRepo repository.StockTransactionRepository
	orderRepo  repository.PurchaseOrderRepository
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	repository.StockRepository,
	repository.StockTransactionRepository,
	repository.PurchaseOrderRepository,
) error) error {
	return fn(f.stockRepo, f.ledgerRepo, f.orderRepo)
}

type fakeCache struct {
	store map[string][]byte
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := f.store[key]
	return v, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.store[key] = value
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID = "11111111-1111-1111-1111-111111111111"
	testUserID    = "22222222-2222-2222-2222-222222222222"
)

func newTestUseCase(t *testing.T) (*stock.UseCase, *fakeStockRepo, *fakeLedgerRepo) {
	t.Helper()
	stockRepo := newFakeStockRepo()
	ledgerRepo := &fakeLedgerRepo{}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		testProductID: {
			ID:     testProductID,
			SKU:    "CAF-001",
			Name:   "Café molido 500g",
			Status: entity.ProductStatusActive,
		},
	}}
	runner := &fakeTxRunner{stockRepo: stockRepo, ledgerRepo: ledgerRepo}
	uc := stock.NewUseCase(runner, productRepo, stockRepo, ledgerRepo, nil)
	return uc, stockRepo, ledgerRepo
}

func qty(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_ActualizaStockYEscribeLibro(t *testing.T) {
	uc, stockRepo, ledger := newTestUseCase(t)
	cost := qty("2.50")

	out, err := uc.Receive(context.Background(), testProductID, testUserID, dto.StockOperationRequest{
		Quantity:  qty("10"),
		UnitCost:  &cost,
		Reference: "OC-20260815-ABCDEF12",
	})
	require.NoError(t, err)
	assert.True(t, out.Available.Equal(qty("10")))
	assert.True(t, out.Reserved.IsZero())
	assert.True(t, out.Total.Equal(qty("10")))

	s := stockRepo.rows[testProductID]
	assert.True(t, s.Total.Equal(s.Available.Add(s.Reserved)), "total = disponible + reservado")

	require.Len(t, ledger.entries, 1)
	entry := ledger.entries[0]
	assert.Equal(t, entity.TransactionTypeIN, entry.Type)
	assert.True(t, entry.Quantity.Equal(qty("10")), "la entrada queda positiva en el libro")
	assert.True(t, entry.UnitCost.Equal(cost))
	assert.Equal(t, "OC-20260815-ABCDEF12", entry.Reference)
	assert.Equal(t, testUserID, entry.CreatedBy)
}

func TestReceive_SinCostoUnitarioFalla(t *testing.T) {
	uc, _, ledger := newTestUseCase(t)

	_, err := uc.Receive(context.Background(), testProductID, testUserID, dto.StockOperationRequest{
		Quantity: qty("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, ledger.entries)
}

func TestReceive_ProductoInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	cost := qty("1")

	_, err := uc.Receive(context.Background(), "99999999-9999-9999-9999-999999999999", testUserID, dto.StockOperationRequest{
		Quantity: qty("5"),
		UnitCost: &cost,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssue_DescuentaDisponible(t *testing.T) {
	uc, _, ledger := newTestUseCase(t)
	cost := qty("1")
	_, err := uc.Receive(context.Background(), testProductID, testUserID, dto.StockOperationRequest{Quantity: qty("10"), UnitCost: &cost})
	require.NoError(t, err)

	out, err := uc.Issue(context.Background(), testProductID, testUserID, dto.StockOperationRequest{
		Quantity:  qty("4"),
		Reference: "VENTA-001",
	})
	require.NoError(t, err)
	assert.True(t, out.Available.Equal(qty("6")))
	assert.True(t, out.Total.Equal(qty("6")))

	require.Len(t, ledger.entries, 2)
	assert.Equal(t, entity.TransactionTypeOUT, ledger.entries[1].Type)
	assert.True(t, ledger.entries[1].Quantity.Equal(qty("-4")), "la salida queda negativa en el libro")
}

func TestIssue_StockInsuficiente(t *testing.T) {
	uc, _, ledger := newTestUseCase(t)
	cost := qty("1")
	_, err := uc.Receive(context.Background(), testProductID, testUserID, dto.StockOperationRequest{Quantity: qty("5"), UnitCost: &cost})
	require.NoError(t, err)

	_, err = uc.Issue(context.Background(), testProductID, testUserID, dto.StockOperationRequest{Quantity: qty("10")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	// La operación fallida no deja asiento en el libro
	assert.Len(t, ledger.entries, 1)
}

func TestReserve_MueveDisponibleAReservado(t *testing.T) {
	uc, stockRepo, ledger := newTestUseCase(t)
	cost := qty("1")
	_, err := uc.Receive(context.Background(), testProductID, testUserID, dto.StockOperationRequest{Quantity: qty("10"), UnitCost: &cost})
	require.NoError(t, err)

	out, err := uc.Reserve(context.Background(), testProductID, testUserID, dto.StockOperationRequest{Quantity: qty("3")})
	require.NoError(t, err)
	assert.True(t, out.Available.Equal(qty("7")))
	assert.True(t, out.Reserved.Equal(qty("3")))
	assert.True(t, out.Total.Equal(qty("10")), "reservar no cambia el total")

	s := stockRepo.rows[testProductID]
	assert.True(t, s.InvariantOK())

	assert.Equal(t, entity.TransactionTypeRESERVED, ledger.entries[1].Type)
	assert.True(t, ledger.entries[1].Quantity.Equal(qty("-3")))
}

func TestReserve_DisponibleInsuficiente(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	cost := qty("1")
	_, err := uc.Receive(context.Background(), testProductID, testUserID, dto.StockOperationRequest{Quantity: qty("2"), UnitCost: &cost})
	require.NoError(t, err)

	_, err = uc.Reserve(context.Background(), testProductID, testUserID, dto.StockOperationRequest{Quantity: qty("5")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestRelease_DevuelveReservadoADisponible(t *testing.T) {
	uc, _, ledger := newTestUseCase(t)
	cost := qty("1")
	_, err := uc.Receive(context.Background(), testProductID, testUserID, dto.StockOperationRequest{Quantity: qty("10"), UnitCost: &cost})
	require.NoError(t, err)
	_, err = uc.Reserve(context.Background(), testProductID, testUserID, dto.StockOperationRequest{Quantity: qty("4")})
	require.NoError(t, err)

	out, err := uc.Release(context.Background(), testProductID, testUserID, dto.StockOperationRequest{Quantity: qty("4")})
	require.NoError(t, err)
	assert.True(t, out.Available.Equal(qty("10")))
	assert.True(t, out.Reserved.IsZero())
	assert.True(t, out.Total.Equal(qty("10")))

	assert.Equal(t, entity.TransactionTypeRELEASED, ledger.entries[2].Type)
	assert.True(t, ledger.entries[2].Quantity.Equal(qty("4")), "la liberación queda positiva en el libro")
}

func TestRelease_MasDeLoReservadoFalla(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	cost := qty("1")
	_, err := uc.Receive(context.Background(), testProductID, testUserID, dto.StockOperationRequest{Quantity: qty("10"), UnitCost: &cost})
	require.NoError(t, err)
	_, err = uc.Reserve(context.Background(), testProductID, testUserID, dto.StockOperationRequest{Quantity: qty("2")})
	require.NoError(t, err)

	_, err = uc.Release(context.Background(), testProductID, testUserID, dto.StockOperationRequest{Quantity: qty("5")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestAdjust_ConSigno(t *testing.T) {
	uc, _, ledger := newTestUseCase(t)
	cost := qty("1")
	_, err := uc.Receive(context.Background(), testProductID, testUserID, dto.StockOperationRequest{Quantity: qty("10"), UnitCost: &cost})
	require.NoError(t, err)

	out, err := uc.Adjust(context.Background(), testProductID, testUserID, dto.StockOperationRequest{
		Quantity: qty("-3"),
		Note:     "conteo físico agosto",
	})
	require.NoError(t, err)
	assert.True(t, out.Available.Equal(qty("7")))

	assert.Equal(t, entity.TransactionTypeADJUSTMENT, ledger.entries[1].Type)
	assert.True(t, ledger.entries[1].Quantity.Equal(qty("-3")))
	assert.Equal(t, "conteo físico agosto", ledger.entries[1].Note)
}

func TestAdjust_CeroFalla(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Adjust(context.Background(), testProductID, testUserID, dto.StockOperationRequest{Quantity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte de reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockReport_SugiereCantidadYCosto(t *testing.T) {
	uc, stockRepo, _ := newTestUseCase(t)
	stockRepo.lowItems = []repository.LowStockItem{
		{
			ProductID:    testProductID,
			SKU:          "CAF-001",
			ProductName:  "Café molido 500g",
			Available:    qty("4"),
			ReorderPoint: qty("10"),
			UnitCost:     qty("2"),
		},
	}

	report, err := uc.LowStockReport(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	// Sugerido = 10 * 1.5 - 4 = 11; costo estimado = 11 * 2 = 22
	assert.True(t, report.Items[0].SuggestedQty.Equal(qty("11")))
	assert.True(t, report.Items[0].EstimatedCost.Equal(qty("22")))
	assert.False(t, report.FromCache)
}

func TestLowStockReport_SegundaLecturaVieneDeCache(t *testing.T) {
	stockRepo := newFakeStockRepo()
	stockRepo.lowItems = []repository.LowStockItem{
		{ProductID: testProductID, SKU: "CAF-001", Available: qty("1"), ReorderPoint: qty("5"), UnitCost: qty("3")},
	}
	ledger := &fakeLedgerRepo{}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{}}
	runner := &fakeTxRunner{stockRepo: stockRepo, ledgerRepo: ledger}
	cache := &fakeCache{store: make(map[string][]byte)}
	uc := stock.NewUseCase(runner, productRepo, stockRepo, ledger, cache)

	first, err := uc.LowStockReport(context.Background())
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := uc.LowStockReport(context.Background())
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	require.Len(t, second.Items, 1)
	assert.True(t, second.Items[0].SuggestedQty.Equal(first.Items[0].SuggestedQty))
}

// ──────────────────────────────────────────────────────────────────────────────
// Punto de reorden
// ──────────────────────────────────────────────────────────────────────────────

func TestSetReorderPoint_CreaFilaSiNoExiste(t *testing.T) {
	uc, stockRepo, _ := newTestUseCase(t)

	err := uc.SetReorderPoint(context.Background(), testProductID, testUserID, dto.ReorderPointRequest{ReorderPoint: qty("15")})
	require.NoError(t, err)
	assert.True(t, stockRepo.rows[testProductID].ReorderPoint.Equal(qty("15")))
}

func TestSetReorderPoint_NegativoFalla(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	err := uc.SetReorderPoint(context.Background(), testProductID, testUserID, dto.ReorderPointRequest{ReorderPoint: qty("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
