package repository

import (
	"github.com/shopspring/decimal"

	"github.com/amortiplus/consola-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// OnHand solo se escribe por AdjustOnHand (movimientos físicos del ledger)
// o por UpsertBySKU (importación masiva, sobrescritura autoritativa).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// Update actualiza los campos editables del catálogo; nunca toca OnHand.
	Update(product *entity.Product) error
	// Delete elimina un producto. Falla con ErrConflict si está referenciado
	// por movimientos del ledger o aristas BOM.
	Delete(id string) error
	List(limit, offset int) ([]*entity.Product, error)
	// UpsertBySKU inserta o sobrescribe por SKU (pipeline de importación).
	// El OnHand importado es autoritativo, no un delta.
	UpsertBySKU(product *entity.Product) error
	// AdjustOnHand aplica un delta atómico a OnHand y devuelve el nuevo balance.
	// Puede dejar el balance negativo (sobreventa representable).
	AdjustOnHand(productID string, delta decimal.Decimal) (decimal.Decimal, error)
	// ListBelowMinStock devuelve los productos con OnHand <= MinStock (alertas).
	ListBelowMinStock() ([]*entity.Product, error)
}
