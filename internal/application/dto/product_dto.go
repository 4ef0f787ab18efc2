package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Kind        string          `json:"kind" validate:"required,oneof=finished_good raw_material service"`
	Unit        string          `json:"unit" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// UpdateProductRequest entrada para actualizar un producto (sin OnHand: eso es del ledger).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Kind        *string          `json:"kind" validate:"omitempty,oneof=finished_good raw_material service"`
	Unit        *string          `json:"unit"`
	Price       *decimal.Decimal `json:"price"`
	MinStock    *decimal.Decimal `json:"min_stock"`
}

// ImportProductRow fila del pipeline de importación (upsert por SKU).
// OnHand se sobrescribe tal cual: la importación es autoritativa, no un delta.
type ImportProductRow struct {
	SKU      string          `json:"sku" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Kind     string          `json:"kind"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
	OnHand   decimal.Decimal `json:"on_hand"`
	MinStock decimal.Decimal `json:"min_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Kind        string          `json:"kind"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	OnHand      decimal.Decimal `json:"on_hand"`
	MinStock    decimal.Decimal `json:"min_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// LowStockItemDTO producto por debajo de su punto de reorden (solo alerta).
type LowStockItemDTO struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	OnHand    decimal.Decimal `json:"on_hand"`
	MinStock  decimal.Decimal `json:"min_stock"`
	Missing   decimal.Decimal `json:"missing"` // MinStock - OnHand
}
