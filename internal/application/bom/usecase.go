package bom

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amortiplus/consola-api/internal/domain"
	dombom "github.com/amortiplus/consola-api/internal/domain/bom"
	"github.com/amortiplus/consola-api/internal/domain/entity"
	"github.com/amortiplus/consola-api/internal/domain/repository"
)

// UseCase administra las aristas de la lista de materiales y resuelve la
// explosión de un producto a cantidades de componentes.
type UseCase struct {
	bomRepo     repository.BOMRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso de BOM.
func NewUseCase(bomRepo repository.BOMRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{bomRepo: bomRepo, productRepo: productRepo}
}

// CreateEdge crea la arista parent → component con su cantidad por unidad.
// Rechaza cantidades no positivas, productos inexistentes, componentes de tipo
// servicio y aristas que formen un ciclo directo o transitivo.
func (uc *UseCase) CreateEdge(parentID, componentID string, quantityPerUnit decimal.Decimal) (*entity.BillOfMaterial, error) {
	if !quantityPerUnit.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	parent, err := uc.productRepo.GetByID(parentID)
	if err != nil {
		return nil, err
	}
	component, err := uc.productRepo.GetByID(componentID)
	if err != nil {
		return nil, err
	}
	if parent == nil || component == nil {
		return nil, domain.ErrProductNotFound
	}
	if component.IsService() {
		return nil, domain.ErrInvalidInput
	}

	edges, err := uc.bomRepo.ListAll()
	if err != nil {
		return nil, err
	}
	adjacency := make(map[string][]string, len(edges))
	for _, e := range edges {
		adjacency[e.ParentID] = append(adjacency[e.ParentID], e.ComponentID)
	}
	if dombom.WouldCycle(parentID, componentID, adjacency) {
		return nil, domain.ErrBOMCycle
	}

	edge := &entity.BillOfMaterial{
		ID:              uuid.New().String(),
		ParentID:        parentID,
		ComponentID:     componentID,
		QuantityPerUnit: quantityPerUnit,
		CreatedAt:       time.Now(),
	}
	if err := uc.bomRepo.Create(edge); err != nil {
		return nil, err
	}
	return edge, nil
}

// DeleteEdge elimina una arista por ID.
func (uc *UseCase) DeleteEdge(id string) error {
	edge, err := uc.bomRepo.GetByID(id)
	if err != nil {
		return err
	}
	if edge == nil {
		return domain.ErrNotFound
	}
	return uc.bomRepo.Delete(id)
}

// ListByParent devuelve las aristas de un producto padre.
func (uc *UseCase) ListByParent(parentID string) ([]*entity.BillOfMaterial, error) {
	product, err := uc.productRepo.GetByID(parentID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return uc.bomRepo.ListByParent(parentID)
}

// Explode expande un producto a las cantidades de componentes requeridas para
// qty unidades. Se resuelve un solo nivel; un producto sin aristas es atómico
// y se devuelve a sí mismo como su único componente.
func (uc *UseCase) Explode(productID string, qty decimal.Decimal) ([]dombom.Requirement, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	edges, err := uc.bomRepo.ListByParent(productID)
	if err != nil {
		return nil, err
	}
	return dombom.Explode(productID, qty, edges), nil
}

// ExplodeWith es la variante usada dentro de una transacción: el caller aporta
// el repositorio BOM atado a su tx y el producto ya validado.
func ExplodeWith(bomRepo repository.BOMRepository, productID string, qty decimal.Decimal) ([]dombom.Requirement, error) {
	edges, err := bomRepo.ListByParent(productID)
	if err != nil {
		return nil, err
	}
	return dombom.Explode(productID, qty, edges), nil
}
