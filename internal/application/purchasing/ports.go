package purchasing

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// OrderLineForPDF renglón enriquecido con datos de producto para el documento.
type OrderLineForPDF struct {
	SKU         string
	ProductName string
	Item        entity.PurchaseOrderItem
}

// OrderPDFGenerator puerto de salida para generar el documento imprimible
// de una orden de compra. La implementación concreta usa Maroto.
type OrderPDFGenerator interface {
	GenerateOrderPDF(
		ctx context.Context,
		order *entity.PurchaseOrder,
		supplier *entity.Supplier,
		lines []OrderLineForPDF,
	) ([]byte, error)
}
