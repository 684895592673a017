// Package pdf implementa el documento imprimible de la orden de compra.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + N° de orden  │  Estado + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Nombre + NIT + contacto                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Pedido | Recibido | C.Unit | Total  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: TOTAL DE LA ORDEN                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/almacen-api/internal/application/purchasing"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

var _ purchasing.OrderPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// estados legibles para el documento impreso
var statusLabels = map[string]string{
	entity.OrderStatusDraft:             "BORRADOR",
	entity.OrderStatusOrdered:           "ORDENADA",
	entity.OrderStatusPartiallyReceived: "RECIBIDA PARCIAL",
	entity.OrderStatusReceived:          "RECIBIDA",
	entity.OrderStatusCancelled:         "ANULADA",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa purchasing.OrderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateOrderPDF genera el PDF de la orden y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOrderPDF(
	_ context.Context,
	order *entity.PurchaseOrder,
	supplier *entity.Supplier,
	lines []purchasing.OrderLineForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Compra "+order.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	if order.Notes != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(notesRow(order))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + número (izq) y estado + fechas (der).
func headerRow(order *entity.PurchaseOrder) core.Row {
	fecha := order.CreatedAt.Format("02/01/2006")
	estado := statusLabels[order.Status]
	if estado == "" {
		estado = order.Status
	}

	rightCol := col.New(5).Add(
		text.New("Estado: "+estado, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Color: colorPrimary,
		}),
		text.New("Fecha de emisión: "+fecha, props.Text{
			Size: 8, Align: align.Right, Top: 8, Color: colorGray,
		}),
	)
	if order.ExpectedDate != nil {
		rightCol.Add(text.New("Entrega esperada: "+order.ExpectedDate.Format("02/01/2006"), props.Text{
			Size: 8, Align: align.Right, Top: 13, Color: colorGray,
		}))
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(order.Number, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 9,
			}),
		),
		rightCol,
	)
}

// supplierRow: datos del proveedor.
func supplierRow(supplier *entity.Supplier) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   NIT: %s", supplier.Name, supplier.NIT), props.Text{
				Size: 9, Top: 6,
			}),
			text.New(fmt.Sprintf("Contacto: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(supplier.ContactName, "—"),
				nonEmpty(supplier.Phone, "—"),
				nonEmpty(supplier.Email, "—"),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de renglones.
func tableHeaderRow() core.Row {
	h := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	hRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right}
	return row.New(7).Add(
		col.New(2).Add(text.New("SKU", h)),
		col.New(4).Add(text.New("Producto", h)),
		col.New(1).Add(text.New("Pedido", hRight)),
		col.New(1).Add(text.New("Recibido", hRight)),
		col.New(2).Add(text.New("Costo unit.", hRight)),
		col.New(2).Add(text.New("Total", hRight)),
	)
}

// tableLineRows: un row por renglón de la orden.
func tableLineRows(lines []purchasing.OrderLineForPDF) []core.Row {
	cell := props.Text{Size: 8, Top: 1}
	cellRight := props.Text{Size: 8, Top: 1, Align: align.Right}
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(l.SKU, cell)),
			col.New(4).Add(text.New(l.ProductName, cell)),
			col.New(1).Add(text.New(l.Item.QuantityOrdered.String(), cellRight)),
			col.New(1).Add(text.New(l.Item.QuantityReceived.String(), cellRight)),
			col.New(2).Add(text.New("$ "+l.Item.UnitCost.StringFixed(2), cellRight)),
			col.New(2).Add(text.New("$ "+l.Item.TotalCost.StringFixed(2), cellRight)),
		))
	}
	return rows
}

// totalsRow: total de la orden.
func totalsRow(order *entity.PurchaseOrder) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(4).Add(
			text.New("TOTAL DE LA ORDEN", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("$ "+order.TotalCost.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 5,
			}),
		),
	)
}

// notesRow: observaciones de la orden.
func notesRow(order *entity.PurchaseOrder) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("NOTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.Notes, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
