package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyDeleted    = errors.New("el recurso ya está eliminado")
	ErrNotDeleted        = errors.New("el recurso no está eliminado")
	ErrInvalidTransition = errors.New("transición de estado inválida")
	ErrAIUnavailable     = errors.New("servicio de IA no configurado")
)
