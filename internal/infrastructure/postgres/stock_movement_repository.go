package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
	"github.com/amortiplus/consola-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// La tabla stock_movements es append-only: este adaptador no expone update ni delete.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, kind, quantity, origin, reference_id, notes, created_at, created_by`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var referenceID, notes, createdBy *string
	err := row.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.Origin,
		&referenceID, &notes, &m.CreatedAt, &createdBy)
	if err != nil {
		return nil, err
	}
	if referenceID != nil {
		m.ReferenceID = *referenceID
	}
	if notes != nil {
		m.Notes = *notes
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create persiste una entrada del ledger. Inserción pura: sin merge ni
// deduplicación, y sin efecto sobre el balance (eso es un paso aparte y explícito).
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, kind, quantity, origin, reference_id, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Kind, movement.Quantity, movement.Origin,
		nullable(movement.ReferenceID), nullable(movement.Notes), movement.CreatedAt, nullable(movement.CreatedBy),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("create stock movement: %w", mapIndeterminate(err))
	}
	return nil
}

// GetByID obtiene una entrada por ID, o nil si no existe.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", mapIndeterminate(err))
	}
	return m, nil
}

// ListByProduct lista movimientos de un producto en un rango de fechas.
func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	return r.list(query, args...)
}

// ListByReference lista todos los movimientos ligados a una orden, en orden de inserción.
func (r *StockMovementRepo) ListByReference(referenceID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE reference_id = $1 ORDER BY created_at ASC, id ASC`
	return r.list(query, referenceID)
}

// ListReservedByReference lista solo las entradas RESERVED de una orden.
func (r *StockMovementRepo) ListReservedByReference(referenceID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE reference_id = $1 AND kind = 'RESERVED' ORDER BY created_at ASC, id ASC`
	return r.list(query, referenceID)
}

// ActiveReservations suma RESERVED por producto para órdenes aún no despachadas
// ni canceladas. Cancelar no libera reservas en el ledger; el join por estado
// las excluye del reporte.
func (r *StockMovementRepo) ActiveReservations() ([]*repository.ActiveReservation, error) {
	query := `
		SELECT m.product_id, p.sku, SUM(m.quantity) AS reserved, COUNT(DISTINCT m.reference_id) AS order_count
		FROM stock_movements m
		JOIN orders o ON o.id = m.reference_id
		JOIN products p ON p.id = m.product_id
		WHERE m.kind = 'RESERVED' AND o.status IN ('pending', 'paid', 'producing')
		GROUP BY m.product_id, p.sku
		ORDER BY reserved DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("active reservations: %w", mapIndeterminate(err))
	}
	defer rows.Close()
	var list []*repository.ActiveReservation
	for rows.Next() {
		var a repository.ActiveReservation
		if err := rows.Scan(&a.ProductID, &a.SKU, &a.Reserved, &a.OrderCount); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *StockMovementRepo) list(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", mapIndeterminate(err))
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
