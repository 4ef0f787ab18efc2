package bom

import (
	"github.com/shopspring/decimal"

	"github.com/amortiplus/consola-api/internal/domain/entity"
)

// Requirement es la cantidad requerida de un componente para cumplir una orden.
type Requirement struct {
	ProductID string
	Quantity  decimal.Decimal
}

// Explode expande un producto a las cantidades de componentes que consume
// (servicio de dominio puro; el caso de uso aporta las aristas ya leídas).
// Se resuelve UN solo nivel: si el producto tiene aristas BOM devuelve
// (componente, cantidadPorUnidad * qty) por cada una; si no tiene, el producto
// es atómico y se devuelve a sí mismo como su único "componente".
func Explode(productID string, qty decimal.Decimal, edges []*entity.BillOfMaterial) []Requirement {
	if len(edges) == 0 {
		return []Requirement{{ProductID: productID, Quantity: qty}}
	}
	reqs := make([]Requirement, 0, len(edges))
	for _, e := range edges {
		reqs = append(reqs, Requirement{
			ProductID: e.ComponentID,
			Quantity:  e.QuantityPerUnit.Mul(qty),
		})
	}
	return reqs
}

// WouldCycle verifica si agregar la arista parent → component crearía un ciclo,
// directo o transitivo, sobre la adyacencia existente (mapa padre → componentes).
// Un ciclo existe si desde component se puede alcanzar a parent siguiendo aristas.
func WouldCycle(parentID, componentID string, adjacency map[string][]string) bool {
	if parentID == componentID {
		return true
	}
	seen := map[string]bool{componentID: true}
	queue := []string{componentID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[current] {
			if next == parentID {
				return true
			}
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}
