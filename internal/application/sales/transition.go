package sales

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/amortiplus/consola-api/internal/application/inventory"
	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
	domorder "github.com/amortiplus/consola-api/internal/domain/order"
	"github.com/amortiplus/consola-api/internal/domain/repository"
)

// TransitionOrderUseCase avanza el estado de una orden. Es el único iniciador
// del descuento físico: al entrar a shipped convierte cada reserva de la orden
// en una salida OUT y decrementa el balance, en la misma transacción que el
// cambio de estado. El cambio de estado es compare-and-set sobre el estado
// leído, de modo que dos despachos concurrentes no puedan descontar dos veces.
type TransitionOrderUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
}

// NewTransitionOrderUseCase construye el caso de uso.
func NewTransitionOrderUseCase(txRunner TxRunner, orderRepo repository.OrderRepository) *TransitionOrderUseCase {
	return &TransitionOrderUseCase{txRunner: txRunner, orderRepo: orderRepo}
}

// Transition valida la arista de estado y la aplica. Una transición ilegal
// falla con ErrInvalidTransition antes de escribir nada; si el estado cambió
// entre la lectura y el CAS, falla con ErrConcurrentModification y el caller
// debe releer antes de reintentar.
//
// Cancelar no emite entradas compensatorias: las reservas de órdenes canceladas
// quedan en el ledger y se excluyen del reporte de reservas activas por estado.
func (uc *TransitionOrderUseCase) Transition(ctx context.Context, orderID, newStatus, userID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !domorder.CanTransition(order.Status, newStatus) {
		return nil, domain.ErrInvalidTransition
	}

	from := order.Status
	now := time.Now()

	err = uc.txRunner.RunSales(ctx, func(
		orderRepo repository.OrderRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.BOMRepository,
	) error {
		ok, err := orderRepo.UpdateStatusCAS(orderID, from, newStatus)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConcurrentModification
		}
		if !domorder.TriggersDeduction(from, newStatus) {
			return nil
		}
		// Conversión reserva → salida física, exactamente una vez por despacho
		reserved, err := movRepo.ListReservedByReference(orderID)
		if err != nil {
			return err
		}
		for _, res := range reserved {
			out := &entity.StockMovement{
				ProductID:   res.ProductID,
				Kind:        entity.MovementKindOUT,
				Quantity:    res.Quantity,
				Origin:      entity.OriginOrderShipped,
				ReferenceID: orderID,
				CreatedAt:   now,
				CreatedBy:   userID,
			}
			newOnHand, err := inventory.ApplyPhysicalInTx(movRepo, productRepo, out)
			if err != nil {
				return err
			}
			if newOnHand.IsNegative() {
				log.Warn().
					Str("product_id", res.ProductID).
					Str("order_id", orderID).
					Str("on_hand", newOnHand.String()).
					Msg("balance negativo tras despacho")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = newStatus
	order.UpdatedAt = now
	return order, nil
}
