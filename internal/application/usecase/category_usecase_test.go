package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func TestCategoryCreate_NombreDuplicadoFalla(t *testing.T) {
	categories := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(categories, newFakeProductRepo())

	_, err := uc.Create(context.Background(), testUserID, dto.CreateCategoryRequest{Name: "Granos"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), testUserID, dto.CreateCategoryRequest{Name: "granos"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el nombre se compara sin distinguir mayúsculas")
}

func TestCategoryCreate_PadreConPadreFalla(t *testing.T) {
	categories := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(categories, newFakeProductRepo())

	root := seedCategory(categories, "Alimentos", "")
	child := seedCategory(categories, "Granos", root.ID)

	// Solo se permite un nivel de jerarquía.
	_, err := uc.Create(context.Background(), testUserID, dto.CreateCategoryRequest{Name: "Arroces", ParentID: child.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Create(context.Background(), testUserID, dto.CreateCategoryRequest{Name: "Arroces", ParentID: root.ID})
	require.NoError(t, err)
	assert.Equal(t, root.ID, out.ParentID)
}

func TestCategoryCreate_PadreInexistenteFalla(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo(), newFakeProductRepo())

	_, err := uc.Create(context.Background(), testUserID, dto.CreateCategoryRequest{Name: "Granos", ParentID: uuid.New().String()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryUpdate_NoPuedeSerSuPropioPadre(t *testing.T) {
	categories := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(categories, newFakeProductRepo())

	c := seedCategory(categories, "Granos", "")

	self := c.ID
	_, err := uc.Update(context.Background(), c.ID, testUserID, dto.UpdateCategoryRequest{ParentID: &self})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategorySoftDelete_ConProductosFalla(t *testing.T) {
	categories := newFakeCategoryRepo()
	products := newFakeProductRepo()
	uc := usecase.NewCategoryUseCase(categories, products)

	c := seedCategory(categories, "Granos", "")
	products.products["p1"] = &entity.Product{ID: "p1", SKU: "ARR-001", Name: "Arroz", CategoryID: c.ID}

	assert.ErrorIs(t, uc.SoftDelete(context.Background(), c.ID, testUserID), domain.ErrConflict)

	// Sin productos asociados el borrado procede.
	delete(products.products, "p1")
	require.NoError(t, uc.SoftDelete(context.Background(), c.ID, testUserID))
}

func TestCategoryHardDelete_ConProductosFalla(t *testing.T) {
	categories := newFakeCategoryRepo()
	products := newFakeProductRepo()
	uc := usecase.NewCategoryUseCase(categories, products)

	c := seedCategory(categories, "Granos", "")
	products.products["p1"] = &entity.Product{ID: "p1", SKU: "ARR-001", Name: "Arroz", CategoryID: c.ID}

	assert.ErrorIs(t, uc.HardDelete(context.Background(), c.ID), domain.ErrConflict)
}

func TestCategoryRestore_SoloSobreBorradas(t *testing.T) {
	categories := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(categories, newFakeProductRepo())

	c := seedCategory(categories, "Granos", "")
	assert.ErrorIs(t, uc.Restore(context.Background(), c.ID, testUserID), domain.ErrNotDeleted)

	require.NoError(t, uc.SoftDelete(context.Background(), c.ID, testUserID))
	require.NoError(t, uc.Restore(context.Background(), c.ID, testUserID))
}
