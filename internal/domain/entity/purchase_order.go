package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	OrderStatusDraft             = "DRAFT"
	OrderStatusOrdered           = "ORDERED"
	OrderStatusPartiallyReceived = "PARTIALLY_RECEIVED"
	OrderStatusReceived          = "RECEIVED"
	OrderStatusCancelled         = "CANCELLED"
)

// orderTransitions define la máquina de estados de la orden.
var orderTransitions = map[string][]string{
	OrderStatusDraft:             {OrderStatusOrdered, OrderStatusCancelled},
	OrderStatusOrdered:           {OrderStatusPartiallyReceived, OrderStatusReceived, OrderStatusCancelled},
	OrderStatusPartiallyReceived: {OrderStatusPartiallyReceived, OrderStatusReceived},
}

// CanTransition indica si el cambio de estado from -> to está permitido.
func CanTransition(from, to string) bool {
	for _, t := range orderTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// PurchaseOrder orden de compra a un proveedor.
type PurchaseOrder struct {
	ID           string
	Number       string // consecutivo legible, único
	SupplierID   string
	Status       string
	ExpectedDate *time.Time
	Notes        string
	TotalCost    decimal.Decimal
	Items        []PurchaseOrderItem
	Audit
}

// PurchaseOrderItem renglón de una orden de compra.
type PurchaseOrderItem struct {
	ID               string
	OrderID          string
	ProductID        string
	QuantityOrdered  decimal.Decimal
	QuantityReceived decimal.Decimal
	UnitCost         decimal.Decimal
	TotalCost        decimal.Decimal // QuantityOrdered * UnitCost
}

// Outstanding devuelve la cantidad pendiente por recibir del renglón.
func (i PurchaseOrderItem) Outstanding() decimal.Decimal {
	return i.QuantityOrdered.Sub(i.QuantityReceived)
}

// FullyReceived indica si todos los renglones de la orden ya se recibieron completos.
func (o *PurchaseOrder) FullyReceived() bool {
	for _, it := range o.Items {
		if it.Outstanding().GreaterThan(decimal.Zero) {
			return false
		}
	}
	return len(o.Items) > 0
}

// AnyReceived indica si algún renglón tiene cantidad recibida.
func (o *PurchaseOrder) AnyReceived() bool {
	for _, it := range o.Items {
		if it.QuantityReceived.GreaterThan(decimal.Zero) {
			return true
		}
	}
	return false
}

// RecomputeTotal recalcula los totales de renglón y el total de la orden.
func (o *PurchaseOrder) RecomputeTotal() {
	total := decimal.Zero
	for idx := range o.Items {
		o.Items[idx].TotalCost = o.Items[idx].QuantityOrdered.Mul(o.Items[idx].UnitCost)
		total = total.Add(o.Items[idx].TotalCost)
	}
	o.TotalCost = total
}
