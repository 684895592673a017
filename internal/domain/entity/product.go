package entity

import (
	"github.com/shopspring/decimal"
)

// Estados de producto.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product representa un producto o SKU del catálogo.
// El stock no vive aquí: se maneja en Stock con su libro de transacciones.
type Product struct {
	ID          string
	SKU         string // código único en el catálogo
	Barcode     string // EAN/UPC opcional, único si no es vacío
	Name        string
	Description string
	CategoryID  string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo unitario de referencia
	UnitMeasure string
	Status      string
	Audit
}
