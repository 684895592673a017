package entity

// Estados de categoría.
const (
	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"
)

// Category representa una categoría de productos (jerárquica opcional, un nivel).
type Category struct {
	ID          string
	ParentID    string // vacío si es raíz
	Name        string // único en el catálogo
	Description string
	Status      string
	Audit
}
