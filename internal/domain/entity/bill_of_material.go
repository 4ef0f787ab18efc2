package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillOfMaterial es una arista de la lista de materiales: el producto padre
// consume QuantityPerUnit del componente por cada unidad vendida/fabricada.
// Un producto no puede ser su propio componente, directa ni transitivamente
// (el caso de uso valida ciclos antes de crear la arista).
type BillOfMaterial struct {
	ID              string
	ParentID        string
	ComponentID     string
	QuantityPerUnit decimal.Decimal // > 0
	CreatedAt       time.Time
}
