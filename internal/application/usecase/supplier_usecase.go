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

var supplierSortColumns = map[string]string{
	"name":       "name",
	"nit":        "nit",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor. El NIT es único.
func (uc *SupplierUseCase) Create(ctx context.Context, userID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if existing, _ := uc.repo.GetByNIT(ctx, in.NIT); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:          uuid.New().String(),
		NIT:         in.NIT,
		Name:        in.Name,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		Status:      entity.SupplierStatusActive,
		Audit: entity.Audit{
			CreatedBy: userID,
			CreatedAt: now,
			UpdatedBy: userID,
			UpdatedAt: now,
		},
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string, includeDeleted bool) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	return toSupplierResponse(supplier), nil
}

// Update actualiza los campos presentes. El NIT no se modifica.
func (uc *SupplierUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.ContactName != nil {
		supplier.ContactName = *in.ContactName
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	if in.Status != nil {
		supplier.Status = *in.Status
	}
	supplier.Touch(userID, time.Now())
	if err := uc.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista proveedores con filtros y paginación.
func (uc *SupplierUseCase) List(ctx context.Context, in dto.ListSuppliersRequest) (*dto.SupplierListResponse, error) {
	in.Normalize()
	f := repository.SupplierFilter{
		ListParams: repository.ListParams{
			Limit:          in.Limit,
			Offset:         in.Offset(),
			SortBy:         sortColumn(supplierSortColumns, in.SortBy, "name"),
			SortOrder:      in.SortOrder,
			Search:         textutil.Fold(in.Search),
			IncludeDeleted: in.IncludeDeleted,
		},
		Status: in.Status,
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.NewPageResponse(in.Page, in.Limit, total),
	}, nil
}

// SoftDelete elimina lógicamente el proveedor.
func (uc *SupplierUseCase) SoftDelete(ctx context.Context, id, userID string) error {
	supplier, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	if supplier.IsDeleted() {
		return domain.ErrAlreadyDeleted
	}
	return uc.repo.SoftDelete(ctx, id, userID)
}

// Restore revierte el soft delete.
func (uc *SupplierUseCase) Restore(ctx context.Context, id, userID string) error {
	supplier, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	if !supplier.IsDeleted() {
		return domain.ErrNotDeleted
	}
	return uc.repo.Restore(ctx, id, userID)
}

// HardDelete elimina definitivamente el proveedor.
func (uc *SupplierUseCase) HardDelete(ctx context.Context, id string) error {
	supplier, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	return uc.repo.HardDelete(ctx, id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:          s.ID,
		NIT:         s.NIT,
		Name:        s.Name,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		DeletedAt:   s.DeletedAt,
	}
}
