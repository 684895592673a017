package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description"`
	ParentID    string `json:"parent_id" validate:"omitempty,uuid4"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid4"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ListCategoriesRequest filtros del listado de categorías.
type ListCategoriesRequest struct {
	PageRequest
	Search         string `query:"search"`
	ParentID       string `query:"parentId"`
	Status         string `query:"status" validate:"omitempty,oneof=active inactive"`
	IncludeDeleted bool   `query:"includeDeleted"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ParentID    string     `json:"parent_id,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
