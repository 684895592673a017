package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest renglón de una orden de compra (crear/actualizar).
type OrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest entrada para crear una orden en estado DRAFT.
type CreatePurchaseOrderRequest struct {
	SupplierID   string             `json:"supplier_id" validate:"required"`
	ExpectedDate *time.Time         `json:"expected_date"`
	Notes        string             `json:"notes" validate:"omitempty,max=1000"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdatePurchaseOrderRequest entrada para modificar una orden DRAFT.
// Los renglones se reemplazan completos si vienen en la petición.
type UpdatePurchaseOrderRequest struct {
	SupplierID   *string            `json:"supplier_id"`
	ExpectedDate *time.Time         `json:"expected_date"`
	Notes        *string            `json:"notes" validate:"omitempty,max=1000"`
	Items        []OrderItemRequest `json:"items" validate:"omitempty,min=1,dive"`
}

// ReceiveItemRequest cantidad recibida de un renglón en una recepción.
type ReceiveItemRequest struct {
	ItemID   string          `json:"item_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ReceivePurchaseOrderRequest entrada de la recepción (parcial o total).
type ReceivePurchaseOrderRequest struct {
	Items []ReceiveItemRequest `json:"items" validate:"required,min=1,dive"`
	Note  string               `json:"note" validate:"omitempty,max=500"`
}

// ListPurchaseOrdersRequest filtros del listado de órdenes.
type ListPurchaseOrdersRequest struct {
	PageRequest
	SupplierID     string `query:"supplierId"`
	Status         string `query:"status" validate:"omitempty,oneof=DRAFT ORDERED PARTIALLY_RECEIVED RECEIVED CANCELLED"`
	IncludeDeleted bool   `query:"includeDeleted"`
}

// OrderItemResponse renglón en respuestas.
type OrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	SupplierID   string              `json:"supplier_id"`
	Status       string              `json:"status"`
	ExpectedDate *time.Time          `json:"expected_date,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	TotalCost    decimal.Decimal     `json:"total_cost"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	DeletedAt    *time.Time          `json:"deleted_at,omitempty"`
}

// PurchaseOrderListResponse lista paginada de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
