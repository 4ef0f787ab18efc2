package inventory

import (
	"context"

	"github.com/amortiplus/consola-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que el append al ledger y la mutación del balance
// se apliquen juntos (misma transacción lógica) o no se apliquen.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
