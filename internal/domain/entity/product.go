package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductKindFinishedGood = "finished_good" // producto terminado (puede tener BOM)
	ProductKindRawMaterial  = "raw_material"  // materia prima / componente
	ProductKindService      = "service"       // servicio, nunca maneja stock
)

// Product representa un producto o SKU del catálogo.
// OnHand es la existencia actual (cache de balance); solo la mutan los movimientos
// físicos del ledger (IN/OUT/ADJUSTMENT), nunca las reservas ni la edición del catálogo.
// MinStock es el punto de reorden, solo para alertas: no se aplica como restricción dura.
type Product struct {
	ID          string
	SKU         string // código único de negocio
	Name        string
	Description string
	Kind        string          // finished_good, raw_material, service
	Unit        string          // unidad de medida (pieza, par, litro, kg, gramo)
	Price       decimal.Decimal // precio de venta
	OnHand      decimal.Decimal // existencia actual (puede ser negativa: sobreventa)
	MinStock    decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsService indica si el producto es un servicio (no maneja stock).
func (p *Product) IsService() bool {
	return p.Kind == ProductKindService
}
