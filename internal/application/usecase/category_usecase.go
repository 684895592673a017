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

var categorySortColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, productRepo: productRepo}
}

// Create crea una categoría. El nombre es único en el catálogo.
func (uc *CategoryUseCase) Create(ctx context.Context, userID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if existing, _ := uc.repo.GetByName(ctx, in.Name); existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.ParentID != "" {
		parent, err := uc.repo.GetByID(ctx, in.ParentID, false)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrInvalidInput
		}
		// Un solo nivel de jerarquía: el padre no puede tener padre.
		if parent.ParentID != "" {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		ParentID:    in.ParentID,
		Name:        in.Name,
		Description: in.Description,
		Status:      entity.CategoryStatusActive,
		Audit: entity.Audit{
			CreatedBy: userID,
			CreatedAt: now,
			UpdatedBy: userID,
			UpdatedAt: now,
		},
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string, includeDeleted bool) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return toCategoryResponse(category), nil
}

// Update actualiza los campos presentes.
func (uc *CategoryUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if in.Name != nil && *in.Name != category.Name {
		if existing, _ := uc.repo.GetByName(ctx, *in.Name); existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.ParentID != nil {
		if *in.ParentID == id {
			return nil, domain.ErrInvalidInput
		}
		if *in.ParentID != "" {
			parent, err := uc.repo.GetByID(ctx, *in.ParentID, false)
			if err != nil {
				return nil, err
			}
			if parent == nil || parent.ParentID != "" {
				return nil, domain.ErrInvalidInput
			}
		}
		category.ParentID = *in.ParentID
	}
	if in.Status != nil {
		category.Status = *in.Status
	}
	category.Touch(userID, time.Now())
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List lista categorías con filtros y paginación.
func (uc *CategoryUseCase) List(ctx context.Context, in dto.ListCategoriesRequest) (*dto.CategoryListResponse, error) {
	in.Normalize()
	f := repository.CategoryFilter{
		ListParams: repository.ListParams{
			Limit:          in.Limit,
			Offset:         in.Offset(),
			SortBy:         sortColumn(categorySortColumns, in.SortBy, "name"),
			SortOrder:      in.SortOrder,
			Search:         textutil.Fold(in.Search),
			IncludeDeleted: in.IncludeDeleted,
		},
		ParentID: in.ParentID,
		Status:   in.Status,
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{
		Items: items,
		Page:  dto.NewPageResponse(in.Page, in.Limit, total),
	}, nil
}

// SoftDelete elimina lógicamente la categoría. Rechaza si tiene productos asociados.
func (uc *CategoryUseCase) SoftDelete(ctx context.Context, id, userID string) error {
	category, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	if category.IsDeleted() {
		return domain.ErrAlreadyDeleted
	}
	count, err := uc.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.repo.SoftDelete(ctx, id, userID)
}

// Restore revierte el soft delete.
func (uc *CategoryUseCase) Restore(ctx context.Context, id, userID string) error {
	category, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	if !category.IsDeleted() {
		return domain.ErrNotDeleted
	}
	return uc.repo.Restore(ctx, id, userID)
}

// HardDelete elimina definitivamente la categoría (mismo guard de productos).
func (uc *CategoryUseCase) HardDelete(ctx context.Context, id string) error {
	category, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	count, err := uc.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.repo.HardDelete(ctx, id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		DeletedAt:   c.DeletedAt,
	}
}
