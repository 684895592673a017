package entity

// Estados de proveedor.
const (
	SupplierStatusActive   = "active"
	SupplierStatusInactive = "inactive"
)

// Supplier representa un proveedor al que se le emiten órdenes de compra.
type Supplier struct {
	ID          string
	NIT         string // identificación tributaria, única
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Status      string
	Audit
}
