package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amortiplus/consola-api/internal/application/inventory"
	"github.com/amortiplus/consola-api/internal/application/sales"
	"github.com/amortiplus/consola-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner y sales.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del ledger atados a la tx
// y hace Commit o Rollback. Usado por los movimientos manuales de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapIndeterminate(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockMovementRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapIndeterminate(err)
	}
	return nil
}

// RunSales inicia una transacción con los repos de ventas (crear orden con
// reservas, o despachar: CAS de estado + conversión reserva → salida).
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	bomRepo repository.BOMRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapIndeterminate(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewOrderRepository(tx),
		NewStockMovementRepository(tx),
		NewProductRepository(tx),
		NewBOMRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapIndeterminate(err)
	}
	return nil
}
