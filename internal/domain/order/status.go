package order

// Estados del ciclo de vida de una orden (enum cerrado, no string libre).
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusProducing = "producing"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// forward define las aristas hacia adelante de la máquina de estados.
// cancelled se maneja aparte: es alcanzable desde cualquier estado no terminal.
var forward = map[string]string{
	StatusPending:   StatusPaid,
	StatusPaid:      StatusProducing,
	StatusProducing: StatusShipped,
	StatusShipped:   StatusDelivered,
}

// IsValid indica si s es un estado conocido.
func IsValid(s string) bool {
	switch s {
	case StatusPending, StatusPaid, StatusProducing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal indica si s es un estado terminal (delivered o cancelled).
func IsTerminal(s string) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition valida la arista from → to: solo el siguiente estado de la ruta
// hacia adelante, o cancelled desde cualquier estado no terminal.
func CanTransition(from, to string) bool {
	if !IsValid(from) || !IsValid(to) {
		return false
	}
	if to == StatusCancelled {
		return !IsTerminal(from)
	}
	return forward[from] == to
}

// TriggersDeduction indica si la arista from → to debe convertir las reservas
// de la orden en salidas físicas (entrada a shipped desde un estado previo que
// no es shipped ni delivered; con la tabla de aristas eso equivale a producing → shipped).
func TriggersDeduction(from, to string) bool {
	if to != StatusShipped {
		return false
	}
	return from != StatusShipped && from != StatusDelivered
}
