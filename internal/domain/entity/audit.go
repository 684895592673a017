package entity

import "time"

// Audit columnas de auditoría comunes a todas las tablas de negocio.
// DeletedAt distinto de nil marca el borrado lógico (soft delete).
type Audit struct {
	CreatedBy string
	CreatedAt time.Time
	UpdatedBy string
	UpdatedAt time.Time
	DeletedBy string
	DeletedAt *time.Time
}

// IsDeleted indica si el registro está eliminado lógicamente.
func (a Audit) IsDeleted() bool { return a.DeletedAt != nil }

// Touch actualiza UpdatedBy/UpdatedAt.
func (a *Audit) Touch(by string, now time.Time) {
	a.UpdatedBy = by
	a.UpdatedAt = now
}

// MarkDeleted aplica el borrado lógico.
func (a *Audit) MarkDeleted(by string, now time.Time) {
	a.DeletedBy = by
	a.DeletedAt = &now
	a.Touch(by, now)
}

// Restore revierte el borrado lógico.
func (a *Audit) Restore(by string, now time.Time) {
	a.DeletedBy = ""
	a.DeletedAt = nil
	a.Touch(by, now)
}
