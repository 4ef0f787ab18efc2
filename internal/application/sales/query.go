package sales

import (
	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
	"github.com/amortiplus/consola-api/internal/domain/repository"
)

// OrderQueryUseCase consultas de solo lectura sobre órdenes y su historial.
type OrderQueryUseCase struct {
	orderRepo   repository.OrderRepository
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
	pdfGen      DispatchNoteGenerator
}

// NewOrderQueryUseCase construye el caso de uso de consultas de ventas.
func NewOrderQueryUseCase(
	orderRepo repository.OrderRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	pdfGen DispatchNoteGenerator,
) *OrderQueryUseCase {
	return &OrderQueryUseCase{orderRepo: orderRepo, movRepo: movRepo, productRepo: productRepo, pdfGen: pdfGen}
}

// GetOrder devuelve la orden con sus renglones.
func (uc *OrderQueryUseCase) GetOrder(orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List lista órdenes, opcionalmente filtradas por estado.
func (uc *OrderQueryUseCase) List(status string, limit, offset int) ([]*entity.Order, error) {
	return uc.orderRepo.List(status, limit, offset)
}

// History devuelve la orden junto con todos los movimientos del ledger que la
// referencian (reservas y salidas).
func (uc *OrderQueryUseCase) History(orderID string) (*entity.Order, []*entity.StockMovement, error) {
	order, err := uc.GetOrder(orderID)
	if err != nil {
		return nil, nil, err
	}
	movements, err := uc.movRepo.ListByReference(orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, movements, nil
}

// DispatchNote genera el PDF de remisión de una orden (documento de despacho
// para el taller: renglones con SKU, nombre y cantidad).
func (uc *OrderQueryUseCase) DispatchNote(orderID string) ([]byte, error) {
	order, err := uc.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	products := make(map[string]*entity.Product, len(order.Lines))
	for _, line := range order.Lines {
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
	return uc.pdfGen.Generate(order, products)
}
