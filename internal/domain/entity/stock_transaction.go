package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de stock (libro mayor).
const (
	TransactionTypeIN         = "IN"         // entrada (compra, recepción de orden)
	TransactionTypeOUT        = "OUT"        // salida (venta, consumo)
	TransactionTypeADJUSTMENT = "ADJUSTMENT" // ajuste por conteo físico
	TransactionTypeRESERVED   = "RESERVED"   // disponible -> reservado
	TransactionTypeRELEASED   = "RELEASED"   // reservado -> disponible
)

// ValidTransactionType verifica que el tipo pertenezca al conjunto permitido.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeIN, TransactionTypeOUT, TransactionTypeADJUSTMENT,
		TransactionTypeRESERVED, TransactionTypeRELEASED:
		return true
	}
	return false
}

// StockTransaction es una entrada del libro de movimientos de stock.
// Quantity lleva el signo del efecto sobre el disponible: positivo en IN/RELEASED
// y ajustes al alza, negativo en OUT/RESERVED y ajustes a la baja.
type StockTransaction struct {
	ID        string
	ProductID string
	Type      string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal // costo unitario en entradas; cero en el resto
	Reference string          // ID de la orden de compra u otro documento origen
	Note      string
	Date      time.Time
	CreatedAt time.Time
	CreatedBy string
}
