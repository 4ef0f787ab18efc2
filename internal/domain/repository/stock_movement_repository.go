package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amortiplus/consola-api/internal/domain/entity"
)

// ActiveReservation es una fila del reporte de reservas activas: demanda
// comprometida (RESERVED) de órdenes aún no despachadas ni canceladas.
type ActiveReservation struct {
	ProductID  string
	SKU        string
	Reserved   decimal.Decimal
	OrderCount int
}

// StockMovementRepository puerto de persistencia para el ledger de inventario.
// El ledger es append-only: no hay update ni delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// ListByReference devuelve los movimientos ligados a una orden (historial).
	ListByReference(referenceID string) ([]*entity.StockMovement, error)
	// ListReservedByReference devuelve solo las entradas RESERVED de una orden.
	ListReservedByReference(referenceID string) ([]*entity.StockMovement, error)
	// ActiveReservations suma RESERVED por producto para órdenes en estado
	// pending/paid/producing (las canceladas y despachadas quedan fuera).
	ActiveReservations() ([]*ActiveReservation, error)
}
