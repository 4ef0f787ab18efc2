package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amortiplus/consola-api/internal/application/inventory"
	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
	"github.com/amortiplus/consola-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Update(p *entity.Product) error               { return nil }
func (r *memProductRepo) Delete(id string) error                       { return nil }

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) UpsertBySKU(p *entity.Product) error               { return nil }
func (r *memProductRepo) ListBelowMinStock() ([]*entity.Product, error)     { return nil, nil }

func (r *memProductRepo) AdjustOnHand(productID string, delta decimal.Decimal) (decimal.Decimal, error) {
	p, ok := r.products[productID]
	if !ok {
		return decimal.Zero, domain.ErrProductNotFound
	}
	p.OnHand = p.OnHand.Add(delta)
	return p.OnHand, nil
}

type memMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.StockMovement, error) { return nil, nil }

func (r *memMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *memMovementRepo) ListByReference(referenceID string) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *memMovementRepo) ListReservedByReference(referenceID string) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *memMovementRepo) ActiveReservations() ([]*repository.ActiveReservation, error) {
	return nil, nil
}

// memTxRunner ejecuta la función directamente con los repos en memoria.
type memTxRunner struct {
	movs     *memMovementRepo
	products *memProductRepo
}

func (tx *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(tx.movs, tx.products)
}

func fixture(products ...*entity.Product) (*inventory.RegisterMovementUseCase, *memMovementRepo, *memProductRepo) {
	productRepo := &memProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		productRepo.products[p.ID] = p
	}
	movRepo := &memMovementRepo{}
	uc := inventory.NewRegisterMovementUseCase(&memTxRunner{movs: movRepo, products: productRepo}, productRepo)
	return uc, movRepo, productRepo
}

func testProduct(id, kind, onHand string) *entity.Product {
	return &entity.Product{ID: id, SKU: id, Kind: kind, OnHand: decimal.RequireFromString(onHand)}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaSumaAlBalance(t *testing.T) {
	uc, movs, products := fixture(testProduct("resorte", "raw_material", "10"))

	mov, newOnHand, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		UserID:    "op-1",
		ProductID: "resorte",
		Kind:      entity.MovementKindIN,
		Quantity:  dec("5"),
		Notes:     "compra proveedor",
	})
	require.NoError(t, err)
	assert.True(t, newOnHand.Equal(dec("15")))
	assert.Equal(t, entity.OriginManual, mov.Origin)
	assert.Equal(t, "op-1", mov.CreatedBy)

	require.Len(t, movs.movements, 1)
	p, _ := products.GetByID("resorte")
	assert.True(t, p.OnHand.Equal(dec("15")))
}

func TestRegisterMovement_SalidaPuedeDejarNegativo(t *testing.T) {
	uc, _, _ := fixture(testProduct("resorte", "raw_material", "2"))

	_, newOnHand, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		UserID:    "op-1",
		ProductID: "resorte",
		Kind:      entity.MovementKindOUT,
		Quantity:  dec("5"),
	})
	require.NoError(t, err, "la sobreventa se reporta, no se previene")
	assert.True(t, newOnHand.Equal(dec("-3")))
}

func TestRegisterMovement_AjusteConSigno(t *testing.T) {
	uc, _, _ := fixture(testProduct("resorte", "raw_material", "10"))

	_, newOnHand, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		UserID:    "op-1",
		ProductID: "resorte",
		Kind:      entity.MovementKindADJUSTMENT,
		Quantity:  dec("-2.5"),
		Notes:     "conteo físico",
	})
	require.NoError(t, err)
	assert.True(t, newOnHand.Equal(dec("7.5")))
}

func TestRegisterMovement_CantidadesInvalidas(t *testing.T) {
	uc, movs, _ := fixture(testProduct("resorte", "raw_material", "10"))

	cases := []struct {
		kind string
		qty  string
	}{
		{entity.MovementKindIN, "0"},
		{entity.MovementKindIN, "-1"},
		{entity.MovementKindOUT, "0"},
		{entity.MovementKindOUT, "-3"},
		{entity.MovementKindADJUSTMENT, "0"},
	}
	for _, tc := range cases {
		_, _, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
			UserID:    "op-1",
			ProductID: "resorte",
			Kind:      tc.kind,
			Quantity:  dec(tc.qty),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "%s qty=%s", tc.kind, tc.qty)
	}
	assert.Empty(t, movs.movements)
}

func TestRegisterMovement_TipoDesconocido(t *testing.T) {
	uc, _, _ := fixture(testProduct("resorte", "raw_material", "10"))

	_, _, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		UserID:    "op-1",
		ProductID: "resorte",
		Kind:      "TRANSFER",
		Quantity:  dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// RESERVED no es capturable manualmente: solo lo emite la creación de órdenes.
func TestRegisterMovement_ReservedManualRechazado(t *testing.T) {
	uc, _, _ := fixture(testProduct("resorte", "raw_material", "10"))

	_, _, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		UserID:    "op-1",
		ProductID: "resorte",
		Kind:      entity.MovementKindRESERVED,
		Quantity:  dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	uc, _, _ := fixture()

	_, _, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		UserID:    "op-1",
		ProductID: "nope",
		Kind:      entity.MovementKindIN,
		Quantity:  dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestRegisterMovement_ServicioRechazado(t *testing.T) {
	uc, movs, _ := fixture(testProduct("instalacion", "service", "0"))

	_, _, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		UserID:    "op-1",
		ProductID: "instalacion",
		Kind:      entity.MovementKindIN,
		Quantity:  dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, movs.movements)
}

// ApplyPhysicalInTx rechaza movimientos no físicos: una RESERVED jamás debe
// tocar el balance.
func TestApplyPhysicalInTx_RechazaReserved(t *testing.T) {
	productRepo := &memProductRepo{products: map[string]*entity.Product{
		"resorte": testProduct("resorte", "raw_material", "10"),
	}}
	movRepo := &memMovementRepo{}

	_, err := inventory.ApplyPhysicalInTx(movRepo, productRepo, &entity.StockMovement{
		ProductID: "resorte",
		Kind:      entity.MovementKindRESERVED,
		Quantity:  dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, movRepo.movements)
}

func TestAppendReservedInTx_ValidaTipoYCantidad(t *testing.T) {
	movRepo := &memMovementRepo{}

	err := inventory.AppendReservedInTx(movRepo, &entity.StockMovement{
		ProductID: "resorte",
		Kind:      entity.MovementKindIN,
		Quantity:  dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = inventory.AppendReservedInTx(movRepo, &entity.StockMovement{
		ProductID: "resorte",
		Kind:      entity.MovementKindRESERVED,
		Quantity:  dec("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	err = inventory.AppendReservedInTx(movRepo, &entity.StockMovement{
		ProductID: "resorte",
		Kind:      entity.MovementKindRESERVED,
		Quantity:  dec("4"),
	})
	require.NoError(t, err)
	require.Len(t, movRepo.movements, 1)
}
