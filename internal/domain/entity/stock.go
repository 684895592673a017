package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa las existencias de un producto.
// Invariante: Total = Available + Reserved. Las tres columnas se actualizan
// en el mismo UPDATE condicional, nunca con lectura-modificación-escritura.
type Stock struct {
	ProductID    string
	Available    decimal.Decimal // disponible para venta
	Reserved     decimal.Decimal // apartado contra pedidos pendientes
	Total        decimal.Decimal
	ReorderPoint decimal.Decimal
	UpdatedAt    time.Time
}

// InvariantOK verifica Total = Available + Reserved.
func (s *Stock) InvariantOK() bool {
	return s.Total.Equal(s.Available.Add(s.Reserved))
}

// BelowReorder indica si el disponible cayó bajo el punto de reorden.
func (s *Stock) BelowReorder() bool {
	return s.ReorderPoint.GreaterThan(decimal.Zero) && s.Available.LessThan(s.ReorderPoint)
}
