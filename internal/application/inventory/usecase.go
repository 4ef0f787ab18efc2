package inventory

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
	"github.com/amortiplus/consola-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos manuales del ledger (IN, OUT,
// ADJUSTMENT capturados por un operador) de forma transaccional: append de la
// entrada y aplicación del delta al balance en la misma transacción.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, productRepo: productRepo}
}

// MovementInputDTO entrada para registrar un movimiento manual.
// Quantity > 0 para IN/OUT; ADJUSTMENT admite signo pero no cero.
type MovementInputDTO struct {
	UserID    string
	ProductID string
	Kind      string
	Quantity  decimal.Decimal
	Notes     string
}

// RegisterMovement valida, inicia una transacción, agrega la entrada al ledger
// y aplica el delta físico al balance. Devuelve el movimiento y el nuevo OnHand.
// El balance puede quedar negativo: la sobreventa se reporta, no se previene.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.StockMovement, decimal.Decimal, error) {
	switch input.Kind {
	case entity.MovementKindIN, entity.MovementKindOUT:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return nil, decimal.Zero, domain.ErrInvalidQuantity
		}
	case entity.MovementKindADJUSTMENT:
		if input.Quantity.IsZero() {
			return nil, decimal.Zero, domain.ErrInvalidQuantity
		}
	default:
		return nil, decimal.Zero, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if product == nil {
		return nil, decimal.Zero, domain.ErrProductNotFound
	}
	if product.IsService() {
		// Los servicios nunca manejan stock
		return nil, decimal.Zero, domain.ErrInvalidInput
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ProductID: input.ProductID,
		Kind:      input.Kind,
		Quantity:  input.Quantity,
		Origin:    entity.OriginManual,
		Notes:     input.Notes,
		CreatedAt: now,
		CreatedBy: input.UserID,
	}

	var newOnHand decimal.Decimal
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var txErr error
		newOnHand, txErr = ApplyPhysicalInTx(movRepo, productRepo, mov)
		return txErr
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	if newOnHand.IsNegative() {
		log.Warn().
			Str("sku", product.SKU).
			Str("product_id", product.ID).
			Str("on_hand", newOnHand.String()).
			Msg("balance negativo tras movimiento manual")
	}
	return mov, newOnHand, nil
}

// ApplyPhysicalInTx agrega un movimiento físico (IN/OUT/ADJUSTMENT) al ledger y
// aplica su delta al balance del producto usando los repositorios de la transacción
// del caller. Devuelve el nuevo OnHand (puede ser negativo, no se recorta a cero).
func ApplyPhysicalInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	mov *entity.StockMovement,
) (decimal.Decimal, error) {
	if !mov.IsPhysical() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if err := movRepo.Create(mov); err != nil {
		return decimal.Zero, err
	}
	return productRepo.AdjustOnHand(mov.ProductID, mov.BalanceDelta())
}

// AppendReservedInTx agrega una entrada RESERVED (compromiso) al ledger dentro de
// la transacción del caller. No toca el balance: la reserva representa demanda
// retenida, no stock movido.
func AppendReservedInTx(
	movRepo repository.StockMovementRepository,
	mov *entity.StockMovement,
) error {
	if mov.Kind != entity.MovementKindRESERVED {
		return domain.ErrInvalidInput
	}
	if !mov.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidQuantity
	}
	return movRepo.Create(mov)
}
