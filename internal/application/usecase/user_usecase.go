package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/textutil"
)

var userSortColumns = map[string]string{
	"email":      "email",
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// UserUseCase administración de registros de usuario. El login/registro vive
// en el proveedor de identidad externo; aquí solo se gestionan los registros.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crea un usuario: hashea el password con bcrypt y persiste.
func (uc *UserUseCase) Create(ctx context.Context, adminID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if existing, _ := uc.repo.GetByEmail(ctx, in.Email); existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		Audit: entity.Audit{
			CreatedBy: adminID,
			CreatedAt: now,
			UpdatedBy: adminID,
			UpdatedAt: now,
		},
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string, includeDeleted bool) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return toUserResponse(user), nil
}

// Update actualiza nombre, rol y estado. El email y el password no cambian aquí.
func (uc *UserUseCase) Update(ctx context.Context, id, adminID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Status != nil {
		user.Status = *in.Status
	}
	user.Touch(adminID, time.Now())
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista usuarios con filtros y paginación.
func (uc *UserUseCase) List(ctx context.Context, in dto.ListUsersRequest) (*dto.UserListResponse, error) {
	in.Normalize()
	f := repository.UserFilter{
		ListParams: repository.ListParams{
			Limit:          in.Limit,
			Offset:         in.Offset(),
			SortBy:         sortColumn(userSortColumns, in.SortBy, "created_at"),
			SortOrder:      in.SortOrder,
			Search:         textutil.Fold(in.Search),
			IncludeDeleted: in.IncludeDeleted,
		},
		Role:   in.Role,
		Status: in.Status,
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.NewPageResponse(in.Page, in.Limit, total),
	}, nil
}

// SoftDelete elimina lógicamente el usuario.
func (uc *UserUseCase) SoftDelete(ctx context.Context, id, adminID string) error {
	user, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.IsDeleted() {
		return domain.ErrAlreadyDeleted
	}
	return uc.repo.SoftDelete(ctx, id, adminID)
}

// Restore revierte el soft delete.
func (uc *UserUseCase) Restore(ctx context.Context, id, adminID string) error {
	user, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if !user.IsDeleted() {
		return domain.ErrNotDeleted
	}
	return uc.repo.Restore(ctx, id, adminID)
}

// HardDelete elimina definitivamente el usuario.
func (uc *UserUseCase) HardDelete(ctx context.Context, id string) error {
	user, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.repo.HardDelete(ctx, id)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
	}
}
