package sales_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amortiplus/consola-api/internal/application/sales"
	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
	"github.com/amortiplus/consola-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }
func (r *fakeProductRepo) Delete(id string) error         { return nil }

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) UpsertBySKU(p *entity.Product) error               { return nil }
func (r *fakeProductRepo) ListBelowMinStock() ([]*entity.Product, error)     { return nil, nil }

func (r *fakeProductRepo) AdjustOnHand(productID string, delta decimal.Decimal) (decimal.Decimal, error) {
	p, ok := r.products[productID]
	if !ok {
		return decimal.Zero, domain.ErrProductNotFound
	}
	p.OnHand = p.OnHand.Add(delta)
	return p.OnHand, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
	nextID    int
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		r.nextID++
		m.ID = fmt.Sprintf("mov-%d", r.nextID)
	}
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByReference(referenceID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ReferenceID == referenceID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListReservedByReference(referenceID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ReferenceID == referenceID && m.Kind == entity.MovementKindRESERVED {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ActiveReservations() ([]*repository.ActiveReservation, error) {
	return nil, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
	// casOverride fuerza el resultado del CAS para simular carreras.
	casOverride *bool
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[string]*entity.Order{}}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) List(status string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatusCAS(orderID, expected, next string) (bool, error) {
	if r.casOverride != nil {
		return *r.casOverride, nil
	}
	o, ok := r.orders[orderID]
	if !ok || o.Status != expected {
		return false, nil
	}
	o.Status = next
	return true, nil
}

type fakeBOMRepo struct {
	edges []*entity.BillOfMaterial
	// failParent hace fallar ListByParent solo para ese padre (simula una
	// caída a mitad de la transacción).
	failParent string
}

func (r *fakeBOMRepo) Create(e *entity.BillOfMaterial) error { r.edges = append(r.edges, e); return nil }
func (r *fakeBOMRepo) Delete(id string) error                { return nil }

func (r *fakeBOMRepo) GetByID(id string) (*entity.BillOfMaterial, error) { return nil, nil }

func (r *fakeBOMRepo) ListByParent(parentID string) ([]*entity.BillOfMaterial, error) {
	if r.failParent != "" && parentID == r.failParent {
		return nil, domain.ErrIndeterminate
	}
	var out []*entity.BillOfMaterial
	for _, e := range r.edges {
		if e.ParentID == parentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeBOMRepo) ListAll() ([]*entity.BillOfMaterial, error) { return r.edges, nil }

// fakeTxRunner ejecuta la función con los repos en memoria. Si la función
// falla restaura el estado previo de movimientos y órdenes, imitando el
// rollback de la transacción real.
type fakeTxRunner struct {
	orders   *fakeOrderRepo
	movs     *fakeMovementRepo
	products *fakeProductRepo
	boms     *fakeBOMRepo
}

var _ sales.TxRunner = (*fakeTxRunner)(nil)

func (tx *fakeTxRunner) RunSales(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	bomRepo repository.BOMRepository,
) error) error {
	movSnapshot := append([]*entity.StockMovement(nil), tx.movs.movements...)
	orderSnapshot := make(map[string]*entity.Order, len(tx.orders.orders))
	for id, o := range tx.orders.orders {
		copied := *o
		orderSnapshot[id] = &copied
	}
	balanceSnapshot := make(map[string]decimal.Decimal, len(tx.products.products))
	for id, p := range tx.products.products {
		balanceSnapshot[id] = p.OnHand
	}

	if err := fn(tx.orders, tx.movs, tx.products, tx.boms); err != nil {
		tx.movs.movements = movSnapshot
		tx.orders.orders = orderSnapshot
		for id, onHand := range balanceSnapshot {
			tx.products.products[id].OnHand = onHand
		}
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructores de datos de prueba
// ──────────────────────────────────────────────────────────────────────────────

func product(id, sku, kind string, onHand string) *entity.Product {
	return &entity.Product{
		ID:     id,
		SKU:    sku,
		Name:   sku,
		Kind:   kind,
		Unit:   "unidad",
		OnHand: decimal.RequireFromString(onHand),
	}
}

func bomEdge(parent, component, qtyPerUnit string) *entity.BillOfMaterial {
	return &entity.BillOfMaterial{
		ID:              parent + "->" + component,
		ParentID:        parent,
		ComponentID:     component,
		QuantityPerUnit: decimal.RequireFromString(qtyPerUnit),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
