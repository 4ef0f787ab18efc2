package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Quantity debe ser > 0 para IN/OUT; ADJUSTMENT admite signo (positivo suma,
// negativo resta) pero nunca cero.
type RegisterMovementRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Kind      string          `json:"kind" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity  decimal.Decimal `json:"quantity"`
	Notes     string          `json:"notes"`
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Kind        string          `json:"kind"`
	Quantity    decimal.Decimal `json:"quantity"`
	Origin      string          `json:"origin"`
	ReferenceID string          `json:"reference_id,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CreatedBy   string          `json:"created_by,omitempty"`
}

// RegisterMovementResponse incluye el nuevo balance tras aplicar el movimiento.
// NewOnHand puede ser negativo: la sobreventa se reporta, no se previene.
type RegisterMovementResponse struct {
	Movement  MovementResponse `json:"movement"`
	NewOnHand decimal.Decimal  `json:"new_on_hand"`
}

// ActiveReservationDTO fila del reporte de reservas activas.
type ActiveReservationDTO struct {
	ProductID  string          `json:"product_id"`
	SKU        string          `json:"sku"`
	Reserved   decimal.Decimal `json:"reserved"`
	OrderCount int             `json:"order_count"`
}
