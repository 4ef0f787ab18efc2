package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Ledger y órdenes.
	ErrInvalidQuantity        = errors.New("cantidad inválida")
	ErrEmptyOrder             = errors.New("la orden no tiene renglones")
	ErrInvalidTransition      = errors.New("transición de estado inválida")
	ErrConcurrentModification = errors.New("el estado cambió entre lectura y escritura")
	ErrBOMCycle               = errors.New("la arista crearía un ciclo en la lista de materiales")

	// ErrIndeterminate: timeout o falla de conexión con resultado de escritura desconocido.
	// El caller debe releer el estado antes de reintentar, no reintentar a ciegas.
	ErrIndeterminate = errors.New("resultado de la operación indeterminado")
)
