package sales

import (
	"context"

	"github.com/amortiplus/consola-api/internal/domain/entity"
	"github.com/amortiplus/consola-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de ventas atados a esa tx. La creación de la orden con sus
// reservas, y la conversión reserva → salida al despachar, son multi-fila:
// o entran completas o no entra nada (sin reservas parciales).
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		bomRepo repository.BOMRepository,
	) error) error
}

// DispatchNoteGenerator genera el documento de despacho (remisión) de una orden.
type DispatchNoteGenerator interface {
	Generate(order *entity.Order, products map[string]*entity.Product) ([]byte, error)
}
