package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order es una orden de venta. Status avanza de forma monótona por la ruta
// pending → paid → producing → shipped → delivered; cancelled es alcanzable
// desde cualquier estado no terminal (ver domain/order).
type Order struct {
	ID        string
	Channel   string // mostrador, web, whatsapp, ...
	Status    string
	Total     decimal.Decimal
	Lines     []OrderLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderLine es un renglón de la orden.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal // > 0
	UnitPrice decimal.Decimal
}

// LineTotal devuelve el subtotal del renglón.
func (l *OrderLine) LineTotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}
