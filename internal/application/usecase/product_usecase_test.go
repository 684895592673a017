package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const testUserID = "dddddddd-dddd-dddd-dddd-dddddddddddd"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (compartidos por los tests de producto y categoría)
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
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
		if strings.EqualFold(p.SKU, sku) && !p.IsDeleted() {
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
	out := make([]*entity.Product, 0, len(f.products))
	for _, p := range f.products {
		if !p.IsDeleted() {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (f *fakeProductRepo) CountByCategory(_ context.Context, categoryID string) (int, error) {
	n := 0
	for _, p := range f.products {
		if p.CategoryID == categoryID && !p.IsDeleted() {
			n++
		}
	}
	return n, nil
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

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string, includeDeleted bool) (*entity.Category, error) {
	c, ok := f.categories[id]
	if !ok || (!includeDeleted && c.IsDeleted()) {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	for _, c := range f.categories {
		if strings.EqualFold(c.Name, name) && !c.IsDeleted() {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) List(_ context.Context, _ repository.CategoryFilter) ([]*entity.Category, int, error) {
	out := make([]*entity.Category, 0, len(f.categories))
	for _, c := range f.categories {
		if !c.IsDeleted() {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (f *fakeCategoryRepo) SoftDelete(_ context.Context, id, by string) error {
	if c, ok := f.categories[id]; ok {
		c.MarkDeleted(by, time.Now())
	}
	return nil
}

func (f *fakeCategoryRepo) Restore(_ context.Context, id, by string) error {
	if c, ok := f.categories[id]; ok {
		c.Audit.Restore(by, time.Now())
	}
	return nil
}

func (f *fakeCategoryRepo) HardDelete(_ context.Context, id string) error {
	delete(f.categories, id)
	return nil
}

func seedCategory(repo *fakeCategoryRepo, name, parentID string) *entity.Category {
	c := &entity.Category{
		ID:       uuid.New().String(),
		ParentID: parentID,
		Name:     name,
		Status:   entity.CategoryStatusActive,
	}
	repo.categories[c.ID] = c
	return c
}

func price(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_AsignaDefaults(t *testing.T) {
	products := newFakeProductRepo()
	uc := usecase.NewProductUseCase(products, newFakeCategoryRepo())

	out, err := uc.Create(context.Background(), testUserID, dto.CreateProductRequest{
		SKU:   "ARR-001",
		Name:  "Arroz 1kg",
		Price: price("3.50"),
		Cost:  price("2.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusActive, out.Status)
	assert.Equal(t, "unidad", out.UnitMeasure, "unidad de medida por defecto")
	assert.NotEmpty(t, out.ID)
}

func TestProductCreate_SKUDuplicadoFalla(t *testing.T) {
	products := newFakeProductRepo()
	uc := usecase.NewProductUseCase(products, newFakeCategoryRepo())

	_, err := uc.Create(context.Background(), testUserID, dto.CreateProductRequest{SKU: "ARR-001", Name: "Arroz"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), testUserID, dto.CreateProductRequest{SKU: "arr-001", Name: "Otro arroz"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el SKU se compara sin distinguir mayúsculas")
}

func TestProductCreate_BarcodeDuplicadoFalla(t *testing.T) {
	products := newFakeProductRepo()
	uc := usecase.NewProductUseCase(products, newFakeCategoryRepo())

	_, err := uc.Create(context.Background(), testUserID, dto.CreateProductRequest{SKU: "ARR-001", Name: "Arroz", Barcode: "7701234567890"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), testUserID, dto.CreateProductRequest{SKU: "AZU-001", Name: "Azúcar", Barcode: "7701234567890"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_CategoriaInexistenteFalla(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo(), newFakeCategoryRepo())

	_, err := uc.Create(context.Background(), testUserID, dto.CreateProductRequest{
		SKU:        "ARR-001",
		Name:       "Arroz",
		CategoryID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_CambioDeBarcodeAOtroExistenteFalla(t *testing.T) {
	products := newFakeProductRepo()
	uc := usecase.NewProductUseCase(products, newFakeCategoryRepo())

	_, err := uc.Create(context.Background(), testUserID, dto.CreateProductRequest{SKU: "ARR-001", Name: "Arroz", Barcode: "111"})
	require.NoError(t, err)
	otro, err := uc.Create(context.Background(), testUserID, dto.CreateProductRequest{SKU: "AZU-001", Name: "Azúcar", Barcode: "222"})
	require.NoError(t, err)

	dup := "111"
	_, err = uc.Update(context.Background(), otro.ID, testUserID, dto.UpdateProductRequest{Barcode: &dup})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUpdate_Inexistente(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo(), newFakeCategoryRepo())

	name := "Nuevo"
	out, err := uc.Update(context.Background(), uuid.New().String(), testUserID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, out, "producto inexistente devuelve nil para que el handler responda 404")
}

func TestProductSoftDelete_DobleBorradoFalla(t *testing.T) {
	products := newFakeProductRepo()
	uc := usecase.NewProductUseCase(products, newFakeCategoryRepo())

	out, err := uc.Create(context.Background(), testUserID, dto.CreateProductRequest{SKU: "ARR-001", Name: "Arroz"})
	require.NoError(t, err)

	require.NoError(t, uc.SoftDelete(context.Background(), out.ID, testUserID))
	assert.ErrorIs(t, uc.SoftDelete(context.Background(), out.ID, testUserID), domain.ErrAlreadyDeleted)
}

func TestProductRestore_SoloSobreBorrados(t *testing.T) {
	products := newFakeProductRepo()
	uc := usecase.NewProductUseCase(products, newFakeCategoryRepo())

	out, err := uc.Create(context.Background(), testUserID, dto.CreateProductRequest{SKU: "ARR-001", Name: "Arroz"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Restore(context.Background(), out.ID, testUserID), domain.ErrNotDeleted)

	require.NoError(t, uc.SoftDelete(context.Background(), out.ID, testUserID))
	require.NoError(t, uc.Restore(context.Background(), out.ID, testUserID))

	restored, err := uc.GetByID(context.Background(), out.ID, false)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Nil(t, restored.DeletedAt)
}

func TestProductGetByID_BorradoSoloConIncludeDeleted(t *testing.T) {
	products := newFakeProductRepo()
	uc := usecase.NewProductUseCase(products, newFakeCategoryRepo())

	out, err := uc.Create(context.Background(), testUserID, dto.CreateProductRequest{SKU: "ARR-001", Name: "Arroz"})
	require.NoError(t, err)
	require.NoError(t, uc.SoftDelete(context.Background(), out.ID, testUserID))

	hidden, err := uc.GetByID(context.Background(), out.ID, false)
	require.NoError(t, err)
	assert.Nil(t, hidden)

	visible, err := uc.GetByID(context.Background(), out.ID, true)
	require.NoError(t, err)
	require.NotNil(t, visible)
	assert.NotNil(t, visible.DeletedAt)
}
