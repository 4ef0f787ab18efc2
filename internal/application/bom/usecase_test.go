package bom_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbom "github.com/amortiplus/consola-api/internal/application/bom"
	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
)

type stubProductRepo struct {
	products map[string]*entity.Product
}

func (r *stubProductRepo) Create(p *entity.Product) error                     { return nil }
func (r *stubProductRepo) GetByID(id string) (*entity.Product, error)         { return r.products[id], nil }
func (r *stubProductRepo) GetBySKU(sku string) (*entity.Product, error)       { return nil, nil }
func (r *stubProductRepo) Update(p *entity.Product) error                     { return nil }
func (r *stubProductRepo) Delete(id string) error                             { return nil }
func (r *stubProductRepo) List(limit, offset int) ([]*entity.Product, error)  { return nil, nil }
func (r *stubProductRepo) UpsertBySKU(p *entity.Product) error                { return nil }
func (r *stubProductRepo) ListBelowMinStock() ([]*entity.Product, error)      { return nil, nil }
func (r *stubProductRepo) AdjustOnHand(id string, d decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type stubBOMRepo struct {
	edges []*entity.BillOfMaterial
}

func (r *stubBOMRepo) Create(e *entity.BillOfMaterial) error { r.edges = append(r.edges, e); return nil }
func (r *stubBOMRepo) Delete(id string) error                { return nil }

func (r *stubBOMRepo) GetByID(id string) (*entity.BillOfMaterial, error) {
	for _, e := range r.edges {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *stubBOMRepo) ListByParent(parentID string) ([]*entity.BillOfMaterial, error) {
	var out []*entity.BillOfMaterial
	for _, e := range r.edges {
		if e.ParentID == parentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubBOMRepo) ListAll() ([]*entity.BillOfMaterial, error) { return r.edges, nil }

func newBOMFixture() (*appbom.UseCase, *stubBOMRepo, *stubProductRepo) {
	productRepo := &stubProductRepo{products: map[string]*entity.Product{
		"kit":         {ID: "kit", Kind: "finished_good"},
		"resorte":     {ID: "resorte", Kind: "raw_material"},
		"aceite":      {ID: "aceite", Kind: "raw_material"},
		"instalacion": {ID: "instalacion", Kind: "service"},
	}}
	bomRepo := &stubBOMRepo{}
	return appbom.NewUseCase(bomRepo, productRepo), bomRepo, productRepo
}

func TestCreateEdge_OK(t *testing.T) {
	uc, bomRepo, _ := newBOMFixture()

	edge, err := uc.CreateEdge("kit", "resorte", decimal.NewFromInt(4))
	require.NoError(t, err)
	assert.NotEmpty(t, edge.ID)
	assert.Equal(t, "kit", edge.ParentID)
	assert.Equal(t, "resorte", edge.ComponentID)
	require.Len(t, bomRepo.edges, 1)
}

func TestCreateEdge_CantidadNoPositiva(t *testing.T) {
	uc, _, _ := newBOMFixture()

	_, err := uc.CreateEdge("kit", "resorte", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.CreateEdge("kit", "resorte", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCreateEdge_ProductoInexistente(t *testing.T) {
	uc, _, _ := newBOMFixture()

	_, err := uc.CreateEdge("kit", "nope", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = uc.CreateEdge("nope", "resorte", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// Un servicio no puede ser componente: no existe en el inventario físico.
func TestCreateEdge_ComponenteServicioRechazado(t *testing.T) {
	uc, _, _ := newBOMFixture()

	_, err := uc.CreateEdge("kit", "instalacion", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateEdge_RechazaCiclos(t *testing.T) {
	uc, _, _ := newBOMFixture()

	// Auto-arista
	_, err := uc.CreateEdge("kit", "kit", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrBOMCycle)

	// kit → resorte existente; resorte → kit cerraría el ciclo
	_, err = uc.CreateEdge("kit", "resorte", decimal.NewFromInt(4))
	require.NoError(t, err)
	_, err = uc.CreateEdge("resorte", "kit", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrBOMCycle)

	// Ciclo transitivo: resorte → aceite y luego aceite → kit
	_, err = uc.CreateEdge("resorte", "aceite", decimal.NewFromInt(2))
	require.NoError(t, err)
	_, err = uc.CreateEdge("aceite", "kit", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrBOMCycle)
}

func TestDeleteEdge_Inexistente(t *testing.T) {
	uc, _, _ := newBOMFixture()

	err := uc.DeleteEdge("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExplode_ProductoInexistente(t *testing.T) {
	uc, _, _ := newBOMFixture()

	_, err := uc.Explode("nope", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestExplode_UnSoloNivel(t *testing.T) {
	uc, _, _ := newBOMFixture()

	_, err := uc.CreateEdge("kit", "resorte", decimal.NewFromInt(4))
	require.NoError(t, err)
	_, err = uc.CreateEdge("kit", "aceite", decimal.RequireFromString("2.5"))
	require.NoError(t, err)

	reqs, err := uc.Explode("kit", decimal.NewFromInt(2))
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.True(t, reqs[0].Quantity.Equal(decimal.NewFromInt(8)))
	assert.True(t, reqs[1].Quantity.Equal(decimal.NewFromInt(5)))
}
