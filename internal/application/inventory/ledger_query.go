package inventory

import (
	"time"

	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
	"github.com/amortiplus/consola-api/internal/domain/repository"
)

// LedgerQueryUseCase consultas de solo lectura sobre el ledger: historial por
// producto y reporte de reservas activas.
type LedgerQueryUseCase struct {
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewLedgerQueryUseCase construye el caso de uso de consultas.
func NewLedgerQueryUseCase(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) *LedgerQueryUseCase {
	return &LedgerQueryUseCase{movRepo: movRepo, productRepo: productRepo}
}

// MovementsByProduct lista los movimientos de un producto en un rango de fechas.
func (uc *LedgerQueryUseCase) MovementsByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return uc.movRepo.ListByProduct(productID, from, to, limit, offset)
}

// ActiveReservations devuelve la demanda comprometida por producto: suma de
// entradas RESERVED de órdenes que siguen en pending/paid/producing. Las órdenes
// canceladas no liberan sus reservas en el ledger; quedan fuera por el join de estado.
func (uc *LedgerQueryUseCase) ActiveReservations() ([]*repository.ActiveReservation, error) {
	return uc.movRepo.ActiveReservations()
}
