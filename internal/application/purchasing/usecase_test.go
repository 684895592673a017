package purchasing_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/purchasing"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders map[string]*entity.PurchaseOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.PurchaseOrder)}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string, includeDeleted bool) (*entity.PurchaseOrder, error) {
	o, ok := f.orders[id]
	if !ok || (!includeDeleted && o.IsDeleted()) {
		return nil, nil
	}
	return o, nil
}

func (f *fakeOrderRepo) GetForUpdate(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	o, ok := f.orders[id]
	if !ok || o.IsDeleted() {
		return nil, nil
	}
	return o, nil
}

func (f *fakeOrderRepo) List(_ context.Context, _ repository.OrderFilter) ([]*entity.PurchaseOrder, int, error) {
	out := make([]*entity.PurchaseOrder, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, len(out), nil
}

func (f *fakeOrderRepo) UpdateHeader(_ context.Context, o *entity.PurchaseOrder) error {
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id, status, by string) error {
	o, ok := f.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.Touch(by, time.Now())
	return nil
}

func (f *fakeOrderRepo) UpdateItemReceived(_ context.Context, itemID string, received decimal.Decimal) error {
	for _, o := range f.orders {
		for i := range o.Items {
			if o.Items[i].ID == itemID {
				o.Items[i].QuantityReceived = received
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (f *fakeOrderRepo) SoftDelete(_ context.Context, id, by string) error {
	if o, ok := f.orders[id]; ok {
		o.MarkDeleted(by, time.Now())
	}
	return nil
}

func (f *fakeOrderRepo) Restore(_ context.Context, id, by string) error {
	if o, ok := f.orders[id]; ok {
		o.Audit.Restore(by, time.Now())
	}
	return nil
}

func (f *fakeOrderRepo) HardDelete(_ context.Context, id string) error {
	delete(f.orders, id)
	return nil
}

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (f *fakeSupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	f.suppliers[s.ID] = s
	return nil
}

func (f *fakeSupplierRepo) GetByID(_ context.Context, id string, _ bool) (*entity.Supplier, error) {
	return f.suppliers[id], nil
}

func (f *fakeSupplierRepo) GetByNIT(_ context.Context, _ string) (*entity.Supplier, error) {
	return nil, nil
}

func (f *fakeSupplierRepo) Update(_ context.Context, s *entity.Supplier) error { return nil }

func (f *fakeSupplierRepo) List(_ context.Context, _ repository.SupplierFilter) ([]*entity.Supplier, int, error) {
	return nil, 0, nil
}

func (f *fakeSupplierRepo) SoftDelete(_ context.Context, _, _ string) error { return nil }
func (f *fakeSupplierRepo) Restore(_ context.Context, _, _ string) error    { return nil }
func (f *fakeSupplierRepo) HardDelete(_ context.Context, _ string) error    { return nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error { return nil }

func (f *fakeProductRepo) GetByID(_ context.Context, id string, _ bool) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) GetBySKU(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) GetByBarcode(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }

func (f *fakeProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) CountByCategory(_ context.Context, _ string) (int, error) { return 0, nil }
func (f *fakeProductRepo) SoftDelete(_ context.Context, _, _ string) error          { return nil }
func (f *fakeProductRepo) Restore(_ context.Context, _, _ string) error             { return nil }
func (f *fakeProductRepo) HardDelete(_ context.Context, _ string) error             { return nil }

type fakeStockRepo struct {
	rows map[string]*entity.Stock
}

func (f *fakeStockRepo) Get(_ context.Context, productID string) (*entity.Stock, error) {
	if s, ok := f.rows[productID]; ok {
		return s, nil
	}
	return &entity.Stock{ProductID: productID}, nil
}

func (f *fakeStockRepo) Ensure(_ context.Context, productID string) error {
	if _, ok := f.rows[productID]; !ok {
		f.rows[productID] = &entity.Stock{ProductID: productID}
	}
	return nil
}

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
	return s, nil
}

func (f *fakeStockRepo) SetReorderPoint(_ context.Context, _ string, _ decimal.Decimal) error {
	return nil
}

func (f *fakeStockRepo) List(_ context.Context, _ repository.StockFilter) ([]repository.StockItem, int, error) {
	return nil, 0, nil
}

func (f *fakeStockRepo) ListBelowReorder(_ context.Context) ([]repository.LowStockItem, error) {
	return nil, nil
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

type fakePDFGenerator struct{}

func (fakePDFGenerator) GenerateOrderPDF(_ context.Context, _ *entity.PurchaseOrder, _ *entity.Supplier, _ []purchasing.OrderLineForPDF) ([]byte, error) {
	return []byte("%PDF-1.7 fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSupplierID = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	testProductA   = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	testProductB   = "cccccccc-cccc-cccc-cccc-cccccccccccc"
	testUserID     = "dddddddd-dddd-dddd-dddd-dddddddddddd"
)

type testEnv struct {
	uc     *purchasing.UseCase
	orders *fakeOrderRepo
	stocks *fakeStockRepo
	ledger *fakeLedgerRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	orders := newFakeOrderRepo()
	stocks := &fakeStockRepo{rows: make(map[string]*entity.Stock)}
	ledger := &fakeLedgerRepo{}
	suppliers := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		testSupplierID: {ID: testSupplierID, NIT: "900123456-7", Name: "Distribuidora El Sol"},
	}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		testProductA: {ID: testProductA, SKU: "ARR-001", Name: "Arroz 1kg"},
		testProductB: {ID: testProductB, SKU: "AZU-001", Name: "Azúcar 1kg"},
	}}
	runner := &fakeTxRunner{stockRepo: stocks, ledgerRepo: ledger, orderRepo: orders}
	uc := purchasing.NewUseCase(runner, orders, suppliers, products, fakePDFGenerator{})
	return &testEnv{uc: uc, orders: orders, stocks: stocks, ledger: ledger}
}

func qty(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// createOrdered crea una orden y la aprueba (DRAFT -> ORDERED).
func createOrdered(t *testing.T, env *testEnv) *dto.PurchaseOrderResponse {
	t.Helper()
	out, err := env.uc.Create(context.Background(), testUserID, dto.CreatePurchaseOrderRequest{
		SupplierID: testSupplierID,
		Items: []dto.OrderItemRequest{
			{ProductID: testProductA, Quantity: qty("10"), UnitCost: qty("2.00")},
			{ProductID: testProductB, Quantity: qty("5"), UnitCost: qty("3.00")},
		},
	})
	require.NoError(t, err)
	approved, err := env.uc.Approve(context.Background(), out.ID, testUserID)
	require.NoError(t, err)
	return approved
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación y máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_OrdenDraftConTotales(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.uc.Create(context.Background(), testUserID, dto.CreatePurchaseOrderRequest{
		SupplierID: testSupplierID,
		Items: []dto.OrderItemRequest{
			{ProductID: testProductA, Quantity: qty("10"), UnitCost: qty("2.00")},
			{ProductID: testProductB, Quantity: qty("5"), UnitCost: qty("3.00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDraft, out.Status)
	assert.True(t, strings.HasPrefix(out.Number, "OC-"), "número con prefijo OC-")
	// 10*2.00 + 5*3.00 = 35.00
	assert.True(t, out.TotalCost.Equal(qty("35.00")))
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].TotalCost.Equal(qty("20.00")))
}

func TestCreate_ProveedorInexistente(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Create(context.Background(), testUserID, dto.CreatePurchaseOrderRequest{
		SupplierID: "no-existe",
		Items:      []dto.OrderItemRequest{{ProductID: testProductA, Quantity: qty("1"), UnitCost: qty("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ProductoRepetidoEnRenglones(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Create(context.Background(), testUserID, dto.CreatePurchaseOrderRequest{
		SupplierID: testSupplierID,
		Items: []dto.OrderItemRequest{
			{ProductID: testProductA, Quantity: qty("1"), UnitCost: qty("1")},
			{ProductID: testProductA, Quantity: qty("2"), UnitCost: qty("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApprove_DraftAOrdered(t *testing.T) {
	env := newTestEnv(t)
	ordered := createOrdered(t, env)
	assert.Equal(t, entity.OrderStatusOrdered, ordered.Status)
}

func TestApprove_DobleFalla(t *testing.T) {
	env := newTestEnv(t)
	ordered := createOrdered(t, env)

	_, err := env.uc.Approve(context.Background(), ordered.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdate_SoloDraft(t *testing.T) {
	env := newTestEnv(t)
	ordered := createOrdered(t, env)

	notes := "urgente"
	_, err := env.uc.Update(context.Background(), ordered.ID, testUserID, dto.UpdatePurchaseOrderRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepción
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_ParcialDejaPartiallyReceived(t *testing.T) {
	env := newTestEnv(t)
	ordered := createOrdered(t, env)

	out, err := env.uc.Receive(context.Background(), ordered.ID, testUserID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: ordered.Items[0].ID, Quantity: qty("4")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPartiallyReceived, out.Status)
	assert.True(t, out.Items[0].QuantityReceived.Equal(qty("4")))

	// El stock entró y el libro registró el IN con la orden como referencia
	s := env.stocks.rows[testProductA]
	require.NotNil(t, s)
	assert.True(t, s.Available.Equal(qty("4")))
	require.Len(t, env.ledger.entries, 1)
	assert.Equal(t, entity.TransactionTypeIN, env.ledger.entries[0].Type)
	assert.Equal(t, ordered.Number, env.ledger.entries[0].Reference)
	assert.True(t, env.ledger.entries[0].UnitCost.Equal(qty("2.00")), "el asiento lleva el costo del renglón")
}

func TestReceive_TotalDejaReceived(t *testing.T) {
	env := newTestEnv(t)
	ordered := createOrdered(t, env)

	out, err := env.uc.Receive(context.Background(), ordered.ID, testUserID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: ordered.Items[0].ID, Quantity: qty("10")},
			{ItemID: ordered.Items[1].ID, Quantity: qty("5")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReceived, out.Status)
	assert.True(t, env.stocks.rows[testProductA].Available.Equal(qty("10")))
	assert.True(t, env.stocks.rows[testProductB].Available.Equal(qty("5")))
	assert.Len(t, env.ledger.entries, 2)
}

func TestReceive_EnDosPasosAcumula(t *testing.T) {
	env := newTestEnv(t)
	ordered := createOrdered(t, env)

	_, err := env.uc.Receive(context.Background(), ordered.ID, testUserID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: ordered.Items[0].ID, Quantity: qty("6")}},
	})
	require.NoError(t, err)

	out, err := env.uc.Receive(context.Background(), ordered.ID, testUserID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: ordered.Items[0].ID, Quantity: qty("4")},
			{ItemID: ordered.Items[1].ID, Quantity: qty("5")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReceived, out.Status)
	assert.True(t, out.Items[0].QuantityReceived.Equal(qty("10")))
	assert.True(t, env.stocks.rows[testProductA].Available.Equal(qty("10")))
}

func TestReceive_ExcedePendienteFalla(t *testing.T) {
	env := newTestEnv(t)
	ordered := createOrdered(t, env)

	_, err := env.uc.Receive(context.Background(), ordered.ID, testUserID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: ordered.Items[0].ID, Quantity: qty("11")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceive_EnDraftFalla(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.uc.Create(context.Background(), testUserID, dto.CreatePurchaseOrderRequest{
		SupplierID: testSupplierID,
		Items:      []dto.OrderItemRequest{{ProductID: testProductA, Quantity: qty("1"), UnitCost: qty("1")}},
	})
	require.NoError(t, err)

	_, err = env.uc.Receive(context.Background(), out.ID, testUserID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: out.Items[0].ID, Quantity: qty("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_OrderedSinRecepciones(t *testing.T) {
	env := newTestEnv(t)
	ordered := createOrdered(t, env)

	out, err := env.uc.Cancel(context.Background(), ordered.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, out.Status)
}

func TestCancel_ConRecepcionesFalla(t *testing.T) {
	env := newTestEnv(t)
	ordered := createOrdered(t, env)

	_, err := env.uc.Receive(context.Background(), ordered.ID, testUserID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: ordered.Items[0].ID, Quantity: qty("2")}},
	})
	require.NoError(t, err)

	_, err = env.uc.Cancel(context.Background(), ordered.ID, testUserID)
	assert.Error(t, err, "una orden con recepciones no se cancela")
}

func TestHardDelete_SoloDraftOCancelled(t *testing.T) {
	env := newTestEnv(t)
	ordered := createOrdered(t, env)

	err := env.uc.HardDelete(context.Background(), ordered.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	cancelled, err := env.uc.Cancel(context.Background(), ordered.ID, testUserID)
	require.NoError(t, err)
	require.NoError(t, env.uc.HardDelete(context.Background(), cancelled.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestPDF_NombreDeArchivoConNumero(t *testing.T) {
	env := newTestEnv(t)
	ordered := createOrdered(t, env)

	raw, filename, err := env.uc.PDF(context.Background(), ordered.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.Equal(t, ordered.Number+".pdf", filename)
}
