package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger de inventario.
// IN y OUT son físicos: son los únicos que mutan OnHand.
// RESERVED es un compromiso contra cumplimiento futuro: nunca toca OnHand.
// ADJUSTMENT es una corrección manual física (cantidad con signo).
const (
	MovementKindIN         = "IN"
	MovementKindOUT        = "OUT"
	MovementKindRESERVED   = "RESERVED"
	MovementKindADJUSTMENT = "ADJUSTMENT"
)

// Orígenes conocidos de movimientos.
const (
	OriginManual       = "manual"        // movimiento capturado por un operador
	OriginOrder        = "order"         // reserva al crear una orden
	OriginOrderShipped = "order-shipped" // descuento físico al despachar
)

// StockMovement es una entrada del ledger de inventario, inmutable una vez escrita.
// Quantity es positiva para IN/OUT/RESERVED; para ADJUSTMENT conserva el signo
// capturado por el operador. ReferenceID enlaza con la orden que originó el movimiento.
type StockMovement struct {
	ID          string
	ProductID   string
	Kind        string // IN, OUT, RESERVED, ADJUSTMENT
	Quantity    decimal.Decimal
	Origin      string
	ReferenceID string // opcional: ID de la orden
	Notes       string
	CreatedAt   time.Time
	CreatedBy   string // UserID del actor
}

// IsPhysical indica si el movimiento afecta la existencia (OnHand).
func (m *StockMovement) IsPhysical() bool {
	return m.Kind == MovementKindIN || m.Kind == MovementKindOUT || m.Kind == MovementKindADJUSTMENT
}

// BalanceDelta devuelve el efecto del movimiento sobre OnHand:
// +Quantity para IN, -Quantity para OUT, Quantity con su signo para ADJUSTMENT
// y cero para RESERVED.
func (m *StockMovement) BalanceDelta() decimal.Decimal {
	switch m.Kind {
	case MovementKindIN:
		return m.Quantity
	case MovementKindOUT:
		return m.Quantity.Neg()
	case MovementKindADJUSTMENT:
		return m.Quantity
	}
	return decimal.Zero
}
