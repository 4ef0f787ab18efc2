package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amortiplus/consola-api/internal/application/dto"
	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
	"github.com/amortiplus/consola-api/internal/domain/repository"
)

// ProductUseCase CRUD de catálogo. OnHand nunca se edita por aquí: solo lo
// mutan los movimientos físicos del ledger o la importación masiva por SKU.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create crea un producto con OnHand en cero. SKU duplicado → ErrDuplicate.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*entity.Product, error) {
	if in.SKU == "" || in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Kind {
	case entity.ProductKindFinishedGood, entity.ProductKindRawMaterial, entity.ProductKindService:
	default:
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Kind:        in.Kind,
		Unit:        in.Unit,
		Price:       in.Price,
		OnHand:      decimal.Zero,
		MinStock:    in.MinStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID devuelve un producto o ErrProductNotFound.
func (uc *ProductUseCase) GetByID(id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// Update aplica los campos presentes del request. No toca OnHand.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Kind != nil {
		switch *in.Kind {
		case entity.ProductKindFinishedGood, entity.ProductKindRawMaterial, entity.ProductKindService:
			product.Kind = *in.Kind
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete elimina un producto. Si está referenciado por el ledger o por aristas
// BOM, la restricción de FK lo rechaza con ErrConflict (nunca borrado en cascada
// silencioso de historial).
func (uc *ProductUseCase) Delete(id string) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.productRepo.Delete(id)
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(limit, offset)
}

// Import aplica filas del pipeline de importación: upsert por SKU con
// sobrescritura autoritativa de OnHand (no pasa por el ledger, por diseño).
// Devuelve cuántas filas se aplicaron.
func (uc *ProductUseCase) Import(rows []dto.ImportProductRow) (int, error) {
	if len(rows) == 0 {
		return 0, domain.ErrInvalidInput
	}
	applied := 0
	now := time.Now()
	for _, row := range rows {
		if row.SKU == "" || row.Name == "" {
			return applied, domain.ErrInvalidInput
		}
		kind := row.Kind
		if kind == "" {
			kind = entity.ProductKindRawMaterial
		}
		product := &entity.Product{
			ID:        uuid.New().String(),
			SKU:       row.SKU,
			Name:      row.Name,
			Kind:      kind,
			Unit:      row.Unit,
			Price:     row.Price,
			OnHand:    row.OnHand,
			MinStock:  row.MinStock,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.productRepo.UpsertBySKU(product); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

// LowStockList devuelve los SKUs con OnHand <= MinStock (alerta de reposición;
// MinStock nunca se aplica como restricción dura sobre los movimientos).
func (uc *ProductUseCase) LowStockList() ([]dto.LowStockItemDTO, error) {
	products, err := uc.productRepo.ListBelowMinStock()
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItemDTO, 0, len(products))
	for _, p := range products {
		items = append(items, dto.LowStockItemDTO{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			OnHand:    p.OnHand,
			MinStock:  p.MinStock,
			Missing:   p.MinStock.Sub(p.OnHand),
		})
	}
	return items, nil
}
