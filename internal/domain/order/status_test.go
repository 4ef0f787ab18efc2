package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amortiplus/consola-api/internal/domain/order"
)

func TestCanTransition_RutaHaciaAdelante(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{order.StatusPending, order.StatusPaid, true},
		{order.StatusPaid, order.StatusProducing, true},
		{order.StatusProducing, order.StatusShipped, true},
		{order.StatusShipped, order.StatusDelivered, true},

		// Saltos de estado no permitidos
		{order.StatusPending, order.StatusProducing, false},
		{order.StatusPending, order.StatusShipped, false},
		{order.StatusPaid, order.StatusShipped, false},
		{order.StatusProducing, order.StatusDelivered, false},

		// Retrocesos no permitidos
		{order.StatusPaid, order.StatusPending, false},
		{order.StatusShipped, order.StatusProducing, false},
		{order.StatusDelivered, order.StatusShipped, false},

		// Auto-transición no permitida
		{order.StatusPending, order.StatusPending, false},
		{order.StatusShipped, order.StatusShipped, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, order.CanTransition(tc.from, tc.to),
			"%s → %s", tc.from, tc.to)
	}
}

func TestCanTransition_CancelledDesdeNoTerminales(t *testing.T) {
	for _, from := range []string{order.StatusPending, order.StatusPaid, order.StatusProducing, order.StatusShipped} {
		assert.True(t, order.CanTransition(from, order.StatusCancelled), "%s → cancelled", from)
	}
	// Los terminales no se cancelan ni se reabren
	assert.False(t, order.CanTransition(order.StatusDelivered, order.StatusCancelled))
	assert.False(t, order.CanTransition(order.StatusCancelled, order.StatusCancelled))
	assert.False(t, order.CanTransition(order.StatusCancelled, order.StatusPending))
	assert.False(t, order.CanTransition(order.StatusDelivered, order.StatusPaid))
}

func TestCanTransition_EstadosDesconocidos(t *testing.T) {
	assert.False(t, order.CanTransition("draft", order.StatusPaid))
	assert.False(t, order.CanTransition(order.StatusPending, "archived"))
	assert.False(t, order.CanTransition("", ""))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, order.IsTerminal(order.StatusDelivered))
	assert.True(t, order.IsTerminal(order.StatusCancelled))
	assert.False(t, order.IsTerminal(order.StatusPending))
	assert.False(t, order.IsTerminal(order.StatusShipped))
}

func TestTriggersDeduction_SoloEntradaAShipped(t *testing.T) {
	assert.True(t, order.TriggersDeduction(order.StatusProducing, order.StatusShipped))

	// Cualquier otra arista no descuenta
	assert.False(t, order.TriggersDeduction(order.StatusPending, order.StatusPaid))
	assert.False(t, order.TriggersDeduction(order.StatusShipped, order.StatusDelivered))
	assert.False(t, order.TriggersDeduction(order.StatusProducing, order.StatusCancelled))
	// Reentrada a shipped tampoco (idempotencia del descuento)
	assert.False(t, order.TriggersDeduction(order.StatusShipped, order.StatusShipped))
}
