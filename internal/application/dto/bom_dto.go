package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBOMEdgeRequest entrada para crear una arista de lista de materiales.
type CreateBOMEdgeRequest struct {
	ParentID        string          `json:"parent_id" validate:"required,uuid"`
	ComponentID     string          `json:"component_id" validate:"required,uuid"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
}

// BOMEdgeResponse salida de una arista BOM.
type BOMEdgeResponse struct {
	ID              string          `json:"id"`
	ParentID        string          `json:"parent_id"`
	ComponentID     string          `json:"component_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
	CreatedAt       time.Time       `json:"created_at"`
}

// RequirementDTO componente y cantidad requerida tras la explosión.
type RequirementDTO struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}
