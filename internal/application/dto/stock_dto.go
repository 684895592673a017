package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockOperationRequest entrada para las operaciones de stock
// (receive, issue, adjust, reserve, release). Quantity es positiva salvo
// en adjust, donde lleva el signo del ajuste.
type StockOperationRequest struct {
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost"` // solo entradas (receive)
	Reference string           `json:"reference"`
	Note      string           `json:"note" validate:"omitempty,max=500"`
}

// ReorderPointRequest entrada para fijar el punto de reorden de un producto.
type ReorderPointRequest struct {
	ReorderPoint decimal.Decimal `json:"reorder_point"`
}

// ListStockRequest filtros del listado de stock.
type ListStockRequest struct {
	PageRequest
	Search       string `query:"search"`
	BelowReorder bool   `query:"belowReorder"`
}

// ListTransactionsRequest filtros del libro de transacciones de un producto.
type ListTransactionsRequest struct {
	PageRequest
	Type string     `query:"type" validate:"omitempty,oneof=IN OUT ADJUSTMENT RESERVED RELEASED"`
	From *time.Time `query:"from"`
	To   *time.Time `query:"to"`
}

// StockResponse niveles actuales de un producto.
type StockResponse struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku,omitempty"`
	ProductName  string          `json:"product_name,omitempty"`
	Available    decimal.Decimal `json:"quantity_available"`
	Reserved     decimal.Decimal `json:"quantity_reserved"`
	Total        decimal.Decimal `json:"quantity_total"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockListResponse lista paginada de stock.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// StockTransactionResponse una entrada del libro de movimientos.
type StockTransactionResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Reference string          `json:"reference,omitempty"`
	Note      string          `json:"note,omitempty"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
	CreatedBy string          `json:"created_by"`
}

// TransactionListResponse libro paginado.
type TransactionListResponse struct {
	Items []StockTransactionResponse `json:"items"`
	Page  PageResponse               `json:"page"`
}

// LowStockItemResponse renglón del reporte de reposición.
type LowStockItemResponse struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	ProductName   string          `json:"product_name"`
	Available     decimal.Decimal `json:"quantity_available"`
	ReorderPoint  decimal.Decimal `json:"reorder_point"`
	SuggestedQty  decimal.Decimal `json:"suggested_qty"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

// LowStockReportResponse reporte de productos bajo punto de reorden.
type LowStockReportResponse struct {
	Items       []LowStockItemResponse `json:"items"`
	GeneratedAt time.Time              `json:"generated_at"`
	FromCache   bool                   `json:"from_cache"`
}
