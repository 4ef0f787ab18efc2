package repository

import "github.com/amortiplus/consola-api/internal/domain/entity"

// BOMRepository puerto de persistencia para aristas de lista de materiales.
type BOMRepository interface {
	Create(edge *entity.BillOfMaterial) error
	Delete(id string) error
	GetByID(id string) (*entity.BillOfMaterial, error)
	// ListByParent devuelve las aristas cuyo padre es parentID (un nivel).
	ListByParent(parentID string) ([]*entity.BillOfMaterial, error)
	// ListAll devuelve todas las aristas (para la validación de ciclos).
	ListAll() ([]*entity.BillOfMaterial, error)
}
