package repository

import "github.com/amortiplus/consola-api/internal/domain/entity"

// OrderRepository puerto de persistencia para órdenes de venta.
type OrderRepository interface {
	// Create persiste la orden con sus renglones.
	Create(order *entity.Order) error
	// GetByID devuelve la orden con renglones, o nil si no existe.
	GetByID(id string) (*entity.Order, error)
	List(status string, limit, offset int) ([]*entity.Order, error)
	// UpdateStatusCAS actualiza el estado solo si el estado actual es expected
	// (compare-and-set). Devuelve false si ninguna fila coincidió: el estado
	// cambió entre lectura y escritura.
	UpdateStatusCAS(orderID, expected, next string) (bool, error)
}
