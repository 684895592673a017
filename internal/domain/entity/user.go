package entity

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User registro de usuario administrado por la API.
// El login vive en el proveedor de identidad externo; aquí solo se guarda
// el hash bcrypt para que ese proveedor pueda verificarlo.
type User struct {
	ID           string
	Email        string // único
	PasswordHash string
	Name         string
	Role         string
	Status       string
	Audit
}
