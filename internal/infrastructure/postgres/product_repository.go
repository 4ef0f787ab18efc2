package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
	"github.com/amortiplus/consola-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, description, kind, unit, price, stock_on_hand, min_stock, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Kind, &p.Unit,
		&p.Price, &p.OnHand, &p.MinStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. OnHand inicia en 0.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, kind, unit, price, stock_on_hand, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.Kind,
		product.Unit, product.Price, product.OnHand, product.MinStock,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", mapIndeterminate(err))
	}
	return nil
}

// GetByID obtiene un producto por ID, o nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", mapIndeterminate(err))
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU, o nil si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", mapIndeterminate(err))
	}
	return p, nil
}

// Update actualiza los campos editables del catálogo. No toca stock_on_hand:
// el balance solo lo mutan AdjustOnHand y la importación masiva.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, kind = $4, unit = $5, price = $6, min_stock = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Kind, product.Unit,
		product.Price, product.MinStock, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", mapIndeterminate(err))
	}
	return nil
}

// Delete elimina un producto por ID. Las FKs de stock_movements, bill_of_materials
// y order_lines son RESTRICT: un producto referenciado devuelve ErrConflict.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", mapIndeterminate(err))
	}
	return nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", mapIndeterminate(err))
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpsertBySKU inserta o sobrescribe un producto por SKU (pipeline de importación).
// stock_on_hand se sobrescribe tal cual: la importación es autoritativa, no pasa
// por el ledger.
func (r *ProductRepo) UpsertBySKU(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, kind, unit, price, stock_on_hand, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name, kind = EXCLUDED.kind, unit = EXCLUDED.unit,
			price = EXCLUDED.price, stock_on_hand = EXCLUDED.stock_on_hand,
			min_stock = EXCLUDED.min_stock, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.Kind,
		product.Unit, product.Price, product.OnHand, product.MinStock,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert product by sku: %w", mapIndeterminate(err))
	}
	return nil
}

// AdjustOnHand aplica un delta atómico al balance y devuelve el nuevo valor.
// El incremento es a nivel de store (una sola sentencia): no necesita SELECT FOR
// UPDATE y puede dejar el balance negativo (la sobreventa se reporta, no se previene).
func (r *ProductRepo) AdjustOnHand(productID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var newOnHand decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`UPDATE products SET stock_on_hand = stock_on_hand + $2, updated_at = now()
		 WHERE id = $1 RETURNING stock_on_hand`,
		productID, delta,
	).Scan(&newOnHand)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrProductNotFound
		}
		return decimal.Zero, fmt.Errorf("adjust on hand: %w", mapIndeterminate(err))
	}
	return newOnHand, nil
}

// ListBelowMinStock devuelve los productos con balance en o bajo su punto de
// reorden (solo alertas; excluye servicios).
func (r *ProductRepo) ListBelowMinStock() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE kind <> 'service' AND stock_on_hand <= min_stock
		ORDER BY stock_on_hand - min_stock ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list below min stock: %w", mapIndeterminate(err))
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
