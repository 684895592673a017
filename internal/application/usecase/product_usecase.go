package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/textutil"
)

// Columnas permitidas para ordenar productos.
var productSortColumns = map[string]string{
	"name":       "name",
	"sku":        "sku",
	"price":      "price",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía transacciones.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un nuevo producto. SKU y barcode deben ser únicos.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if existing, _ := uc.repo.GetBySKU(ctx, in.SKU); existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Barcode != "" {
		if existing, _ := uc.repo.GetByBarcode(ctx, in.Barcode); existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if in.CategoryID != "" {
		cat, err := uc.categoryRepo.GetByID(ctx, in.CategoryID, false)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = "unidad"
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Barcode:     in.Barcode,
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Cost:        in.Cost,
		UnitMeasure: in.UnitMeasure,
		Status:      entity.ProductStatusActive,
		Audit: entity.Audit{
			CreatedBy: userID,
			CreatedAt: now,
			UpdatedBy: userID,
			UpdatedAt: now,
		},
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. includeDeleted permite ver soft-deleted.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string, includeDeleted bool) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza solo los campos presentes y refresca updated_at/updated_by.
func (uc *ProductUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Barcode != nil && *in.Barcode != product.Barcode {
		if *in.Barcode != "" {
			if existing, _ := uc.repo.GetByBarcode(ctx, *in.Barcode); existing != nil && existing.ID != id {
				return nil, domain.ErrDuplicate
			}
		}
		product.Barcode = *in.Barcode
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		if *in.CategoryID != "" {
			cat, err := uc.categoryRepo.GetByID(ctx, *in.CategoryID, false)
			if err != nil {
				return nil, err
			}
			if cat == nil {
				return nil, domain.ErrInvalidInput
			}
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.Status != nil {
		product.Status = *in.Status
	}
	product.Touch(userID, time.Now())
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros, búsqueda sin tildes y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ListProductsRequest) (*dto.ProductListResponse, error) {
	in.Normalize()
	f := repository.ProductFilter{
		ListParams: repository.ListParams{
			Limit:          in.Limit,
			Offset:         in.Offset(),
			SortBy:         sortColumn(productSortColumns, in.SortBy, "created_at"),
			SortOrder:      in.SortOrder,
			Search:         textutil.Fold(in.Search),
			IncludeDeleted: in.IncludeDeleted,
		},
		CategoryID: in.CategoryID,
		Status:     in.Status,
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.NewPageResponse(in.Page, in.Limit, total),
	}, nil
}

// SoftDelete marca el producto como eliminado; sale de los listados por defecto.
func (uc *ProductUseCase) SoftDelete(ctx context.Context, id, userID string) error {
	product, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.IsDeleted() {
		return domain.ErrAlreadyDeleted
	}
	return uc.repo.SoftDelete(ctx, id, userID)
}

// Restore revierte el soft delete.
func (uc *ProductUseCase) Restore(ctx context.Context, id, userID string) error {
	product, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if !product.IsDeleted() {
		return domain.ErrNotDeleted
	}
	return uc.repo.Restore(ctx, id, userID)
}

// HardDelete elimina definitivamente el producto.
func (uc *ProductUseCase) HardDelete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.HardDelete(ctx, id)
}

// sortColumn valida sortBy contra la whitelist del recurso; si no está, usa def.
func sortColumn(allowed map[string]string, requested, def string) string {
	if col, ok := allowed[requested]; ok {
		return col
	}
	return def
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Barcode:     p.Barcode,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Price:       p.Price,
		Cost:        p.Cost,
		UnitMeasure: p.UnitMeasure,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		DeletedAt:   p.DeletedAt,
	}
}
