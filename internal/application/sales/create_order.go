package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appbom "github.com/amortiplus/consola-api/internal/application/bom"
	"github.com/amortiplus/consola-api/internal/application/inventory"
	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
	domorder "github.com/amortiplus/consola-api/internal/domain/order"
	"github.com/amortiplus/consola-api/internal/domain/repository"
)

// CreateOrderUseCase crea órdenes de venta y compromete inventario: por cada
// renglón explota la lista de materiales (un nivel) y agrega una entrada
// RESERVED por componente, todo en una sola transacción. Las reservas no tocan
// el balance: solo representan demanda retenida contra cumplimiento futuro.
type CreateOrderUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *CreateOrderUseCase {
	return &CreateOrderUseCase{txRunner: txRunner, productRepo: productRepo}
}

// LineInput renglón de entrada para CreateOrder.
type LineInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CreateOrderInput entrada para CreateOrder. InitialStatus vacío = pending.
type CreateOrderInput struct {
	UserID        string
	Channel       string
	InitialStatus string
	Lines         []LineInput
}

// CreateOrder valida (sin escribir nada), persiste la orden con sus renglones y
// agrega las reservas de componentes en la misma transacción.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*entity.Order, error) {
	if len(input.Lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	status := input.InitialStatus
	if status == "" {
		status = domorder.StatusPending
	}
	// Solo estados previos al despacho tienen sentido como estado inicial
	switch status {
	case domorder.StatusPending, domorder.StatusPaid, domorder.StatusProducing:
	default:
		return nil, domain.ErrInvalidInput
	}

	// Validación previa a cualquier escritura: cantidades y existencia de productos
	products := make(map[string]*entity.Product, len(input.Lines))
	for _, line := range input.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidQuantity
		}
		if line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := products[line.ProductID]; ok {
			continue
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		products[line.ProductID] = product
	}

	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		Channel:   input.Channel,
		Status:    status,
		Total:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, line := range input.Lines {
		ol := entity.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		order.Lines = append(order.Lines, ol)
		order.Total = order.Total.Add(ol.LineTotal())
	}

	// Orden + renglones + reservas en una sola transacción: una falla en
	// cualquier renglón revierte todo (sin reservas parciales)
	err := uc.txRunner.RunSales(ctx, func(
		orderRepo repository.OrderRepository,
		movRepo repository.StockMovementRepository,
		_ repository.ProductRepository,
		bomRepo repository.BOMRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, line := range order.Lines {
			if products[line.ProductID].IsService() {
				// Los servicios se facturan pero nunca tocan el ledger
				continue
			}
			reqs, err := appbom.ExplodeWith(bomRepo, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			for _, req := range reqs {
				mov := &entity.StockMovement{
					ProductID:   req.ProductID,
					Kind:        entity.MovementKindRESERVED,
					Quantity:    req.Quantity,
					Origin:      entity.OriginOrder,
					ReferenceID: order.ID,
					CreatedAt:   now,
					CreatedBy:   input.UserID,
				}
				if err := inventory.AppendReservedInTx(movRepo, mov); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
