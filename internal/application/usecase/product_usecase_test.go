package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amortiplus/consola-api/internal/application/dto"
	"github.com/amortiplus/consola-api/internal/application/usecase"
	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
)

type stubProductRepo struct {
	bySKU    map[string]*entity.Product
	byID     map[string]*entity.Product
	lowStock []*entity.Product
	upserts  int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{bySKU: map[string]*entity.Product{}, byID: map[string]*entity.Product{}}
}

func (r *stubProductRepo) Create(p *entity.Product) error {
	if _, ok := r.bySKU[p.SKU]; ok {
		return domain.ErrDuplicate
	}
	r.bySKU[p.SKU] = p
	r.byID[p.ID] = p
	return nil
}

func (r *stubProductRepo) GetByID(id string) (*entity.Product, error)   { return r.byID[id], nil }
func (r *stubProductRepo) GetBySKU(sku string) (*entity.Product, error) { return r.bySKU[sku], nil }
func (r *stubProductRepo) Update(p *entity.Product) error               { return nil }
func (r *stubProductRepo) Delete(id string) error                       { return nil }

func (r *stubProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

func (r *stubProductRepo) UpsertBySKU(p *entity.Product) error {
	r.bySKU[p.SKU] = p
	r.upserts++
	return nil
}

func (r *stubProductRepo) AdjustOnHand(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *stubProductRepo) ListBelowMinStock() ([]*entity.Product, error) { return r.lowStock, nil }

func TestCreate_OnHandIniciaEnCero(t *testing.T) {
	repo := newStubProductRepo()
	uc := usecase.NewProductUseCase(repo)

	p, err := uc.Create(dto.CreateProductRequest{
		SKU:  "RES-01",
		Name: "Resorte trasero",
		Kind: "raw_material",
		Unit: "pieza",
	})
	require.NoError(t, err)
	assert.True(t, p.OnHand.IsZero(), "la existencia inicial siempre es cero; entra por el ledger")
	assert.NotEmpty(t, p.ID)
}

func TestCreate_Validaciones(t *testing.T) {
	repo := newStubProductRepo()
	uc := usecase.NewProductUseCase(repo)

	cases := []dto.CreateProductRequest{
		{Name: "sin sku", Kind: "raw_material", Unit: "pieza"},
		{SKU: "X", Kind: "raw_material", Unit: "pieza"},
		{SKU: "X", Name: "sin unidad", Kind: "raw_material"},
		{SKU: "X", Name: "kind inválido", Kind: "gadget", Unit: "pieza"},
	}
	for i, in := range cases {
		_, err := uc.Create(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d", i)
	}
}

func TestCreate_SKUDuplicado(t *testing.T) {
	repo := newStubProductRepo()
	uc := usecase.NewProductUseCase(repo)

	in := dto.CreateProductRequest{SKU: "RES-01", Name: "Resorte", Kind: "raw_material", Unit: "pieza"}
	_, err := uc.Create(in)
	require.NoError(t, err)
	_, err = uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestImport_UpsertPorSKU(t *testing.T) {
	repo := newStubProductRepo()
	uc := usecase.NewProductUseCase(repo)

	applied, err := uc.Import([]dto.ImportProductRow{
		{SKU: "RES-01", Name: "Resorte", Kind: "raw_material", Unit: "pieza", OnHand: decimal.NewFromInt(40)},
		{SKU: "ACE-01", Name: "Aceite", Unit: "litro", OnHand: decimal.RequireFromString("12.5")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.Equal(t, 2, repo.upserts)

	// La importación sobrescribe OnHand tal cual (autoritativa, no delta)
	assert.True(t, repo.bySKU["ACE-01"].OnHand.Equal(decimal.RequireFromString("12.5")))
	// Kind vacío cae a raw_material
	assert.Equal(t, "raw_material", repo.bySKU["ACE-01"].Kind)
}

func TestImport_FilasInvalidas(t *testing.T) {
	repo := newStubProductRepo()
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Import(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Import([]dto.ImportProductRow{{Name: "sin sku"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLowStockList_CalculaFaltante(t *testing.T) {
	repo := newStubProductRepo()
	repo.lowStock = []*entity.Product{
		{ID: "p1", SKU: "RES-01", Name: "Resorte", OnHand: decimal.NewFromInt(2), MinStock: decimal.NewFromInt(10)},
		{ID: "p2", SKU: "ACE-01", Name: "Aceite", OnHand: decimal.RequireFromString("-3"), MinStock: decimal.NewFromInt(5)},
	}
	uc := usecase.NewProductUseCase(repo)

	items, err := uc.LowStockList()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Missing.Equal(decimal.NewFromInt(8)), "10 - 2")
	assert.True(t, items[1].Missing.Equal(decimal.NewFromInt(8)), "5 - (-3)")
}

func TestGetByID_Inexistente(t *testing.T) {
	uc := usecase.NewProductUseCase(newStubProductRepo())

	_, err := uc.GetByID("nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
