package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/amortiplus/consola-api/internal/domain/entity"
	"github.com/amortiplus/consola-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la orden y sus renglones.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, channel, status, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Channel, order.Status, order.Total, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", mapIndeterminate(err))
	}
	lineQuery := `
		INSERT INTO order_lines (id, order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	for _, line := range order.Lines {
		_, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, line.OrderID, line.ProductID, line.Quantity, line.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", mapIndeterminate(err))
		}
	}
	return nil
}

// GetByID devuelve la orden con sus renglones, o nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT id, channel, status, total, created_at, updated_at FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Channel, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", mapIndeterminate(err))
	}
	lines, err := r.linesByOrder(id)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

// List lista órdenes, opcionalmente filtradas por estado, sin renglones.
func (r *OrderRepo) List(status string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT id, channel, status, total, created_at, updated_at FROM orders`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", mapIndeterminate(err))
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.Channel, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// UpdateStatusCAS actualiza el estado solo si el estado actual coincide con
// expected (compare-and-set). Cero filas afectadas significa que otro caller
// ganó la carrera: el guard de idempotencia del despacho no puede descontar dos veces.
func (r *OrderRepo) UpdateStatusCAS(orderID, expected, next string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		orderID, expected, next,
	)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", mapIndeterminate(err))
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *OrderRepo) linesByOrder(orderID string) ([]entity.OrderLine, error) {
	query := `SELECT id, order_id, product_id, quantity, unit_price FROM order_lines WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", mapIndeterminate(err))
	}
	defer rows.Close()
	var lines []entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
