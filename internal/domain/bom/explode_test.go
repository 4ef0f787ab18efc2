package bom_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amortiplus/consola-api/internal/domain/bom"
	"github.com/amortiplus/consola-api/internal/domain/entity"
)

func edge(parent, component string, qty string) *entity.BillOfMaterial {
	return &entity.BillOfMaterial{
		ParentID:        parent,
		ComponentID:     component,
		QuantityPerUnit: decimal.RequireFromString(qty),
	}
}

// Kit de amortiguación: 4 resortes y 2.5 L de aceite por unidad.
func TestExplode_ConAristas(t *testing.T) {
	edges := []*entity.BillOfMaterial{
		edge("kit", "resorte", "4"),
		edge("kit", "aceite", "2.5"),
	}

	reqs := bom.Explode("kit", decimal.NewFromInt(2), edges)
	require.Len(t, reqs, 2)

	assert.Equal(t, "resorte", reqs[0].ProductID)
	assert.True(t, reqs[0].Quantity.Equal(decimal.NewFromInt(8)), "4 * 2 resortes")
	assert.Equal(t, "aceite", reqs[1].ProductID)
	assert.True(t, reqs[1].Quantity.Equal(decimal.RequireFromString("5")), "2.5 * 2 L de aceite")
}

func TestExplode_CantidadFraccionaria(t *testing.T) {
	edges := []*entity.BillOfMaterial{edge("kit", "aceite", "2.5")}

	reqs := bom.Explode("kit", decimal.RequireFromString("0.5"), edges)
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].Quantity.Equal(decimal.RequireFromString("1.25")))
}

// Un producto sin BOM es atómico: se reserva él mismo.
func TestExplode_SinAristasDevuelveElProducto(t *testing.T) {
	reqs := bom.Explode("llanta", decimal.NewFromInt(3), nil)
	require.Len(t, reqs, 1)
	assert.Equal(t, "llanta", reqs[0].ProductID)
	assert.True(t, reqs[0].Quantity.Equal(decimal.NewFromInt(3)))
}

func TestWouldCycle(t *testing.T) {
	// a → b → c existente
	adjacency := map[string][]string{
		"a": {"b"},
		"b": {"c"},
	}

	// Auto-arista
	assert.True(t, bom.WouldCycle("a", "a", adjacency))
	// Ciclo directo: b → a cuando ya existe a → b
	assert.True(t, bom.WouldCycle("b", "a", adjacency))
	// Ciclo transitivo: c → a cerraría a → b → c → a
	assert.True(t, bom.WouldCycle("c", "a", adjacency))

	// Aristas seguras
	assert.False(t, bom.WouldCycle("a", "c", adjacency))
	assert.False(t, bom.WouldCycle("a", "d", adjacency))
	assert.False(t, bom.WouldCycle("d", "a", adjacency))
}
