package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
	"github.com/amortiplus/consola-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación de BOMRepository sobre PostgreSQL (usable con pool o tx).
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador de aristas BOM. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

const bomColumns = `id, parent_id, component_id, quantity_per_unit, created_at`

func scanEdge(row pgx.Row) (*entity.BillOfMaterial, error) {
	var e entity.BillOfMaterial
	if err := row.Scan(&e.ID, &e.ParentID, &e.ComponentID, &e.QuantityPerUnit, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste una arista. El par (parent_id, component_id) es único.
func (r *BOMRepo) Create(edge *entity.BillOfMaterial) error {
	query := `
		INSERT INTO bill_of_materials (id, parent_id, component_id, quantity_per_unit, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		edge.ID, edge.ParentID, edge.ComponentID, edge.QuantityPerUnit, edge.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("insert bom edge: %w", mapIndeterminate(err))
	}
	return nil
}

// Delete elimina una arista por ID.
func (r *BOMRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM bill_of_materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bom edge: %w", mapIndeterminate(err))
	}
	return nil
}

// GetByID obtiene una arista por ID, o nil si no existe.
func (r *BOMRepo) GetByID(id string) (*entity.BillOfMaterial, error) {
	query := `SELECT ` + bomColumns + ` FROM bill_of_materials WHERE id = $1`
	e, err := scanEdge(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom edge: %w", mapIndeterminate(err))
	}
	return e, nil
}

// ListByParent devuelve las aristas de un producto padre (un nivel).
func (r *BOMRepo) ListByParent(parentID string) ([]*entity.BillOfMaterial, error) {
	query := `SELECT ` + bomColumns + ` FROM bill_of_materials WHERE parent_id = $1 ORDER BY created_at ASC`
	return r.list(query, parentID)
}

// ListAll devuelve todas las aristas (validación de ciclos).
func (r *BOMRepo) ListAll() ([]*entity.BillOfMaterial, error) {
	query := `SELECT ` + bomColumns + ` FROM bill_of_materials`
	return r.list(query)
}

func (r *BOMRepo) list(query string, args ...any) ([]*entity.BillOfMaterial, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bom edges: %w", mapIndeterminate(err))
	}
	defer rows.Close()
	var list []*entity.BillOfMaterial
	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bom edge: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
