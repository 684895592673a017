package dto

import "time"

// CreateUserRequest entrada para crear un usuario.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	Role     string `json:"role" validate:"omitempty,oneof=admin bodeguero vendedor"`
}

// UpdateUserRequest entrada para actualizar un usuario. No cambia el password
// (eso es flujo del proveedor de identidad).
type UpdateUserRequest struct {
	Name   *string `json:"name" validate:"omitempty,max=200"`
	Role   *string `json:"role" validate:"omitempty,oneof=admin bodeguero vendedor"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ListUsersRequest filtros del listado de usuarios.
type ListUsersRequest struct {
	PageRequest
	Search         string `query:"search"`
	Role           string `query:"role" validate:"omitempty,oneof=admin bodeguero vendedor"`
	Status         string `query:"status" validate:"omitempty,oneof=active inactive"`
	IncludeDeleted bool   `query:"includeDeleted"`
}

// UserResponse salida de un usuario (nunca incluye el hash).
type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
