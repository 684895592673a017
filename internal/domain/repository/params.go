package repository

import "time"

// ListParams parámetros comunes de listado: paginación, orden y búsqueda.
// Search llega ya normalizado (minúsculas, sin tildes) por la capa de aplicación.
type ListParams struct {
	Limit          int
	Offset         int
	SortBy         string // columna validada contra la whitelist del recurso
	SortOrder      string // asc | desc
	Search         string
	IncludeDeleted bool
}

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	ListParams
	CategoryID string
	Status     string
}

// CategoryFilter filtros de listado de categorías.
type CategoryFilter struct {
	ListParams
	ParentID string
	Status   string
}

// SupplierFilter filtros de listado de proveedores.
type SupplierFilter struct {
	ListParams
	Status string
}

// UserFilter filtros de listado de usuarios.
type UserFilter struct {
	ListParams
	Role   string
	Status string
}

// OrderFilter filtros de listado de órdenes de compra.
type OrderFilter struct {
	ListParams
	SupplierID string
	Status     string
}

// TransactionFilter filtros del libro de transacciones de stock.
type TransactionFilter struct {
	ListParams
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
}

// StockFilter filtros de listado de stock.
type StockFilter struct {
	ListParams
	BelowReorder bool
}
