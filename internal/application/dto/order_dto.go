package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest renglón de una orden nueva.
type OrderLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest entrada para crear una orden. InitialStatus vacío = pending.
type CreateOrderRequest struct {
	Channel       string             `json:"channel" validate:"omitempty,max=50"`
	InitialStatus string             `json:"initial_status" validate:"omitempty,oneof=pending paid producing"`
	Lines         []OrderLineRequest `json:"lines" validate:"required"`
}

// TransitionRequest entrada para avanzar el estado de una orden.
type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid producing shipped delivered cancelled"`
}

// OrderLineResponse renglón de la orden en respuestas.
type OrderLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID        string              `json:"id"`
	Channel   string              `json:"channel"`
	Status    string              `json:"status"`
	Total     decimal.Decimal     `json:"total"`
	Lines     []OrderLineResponse `json:"lines"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// OrderHistoryResponse orden con su historial de movimientos del ledger.
type OrderHistoryResponse struct {
	Order     OrderResponse      `json:"order"`
	Movements []MovementResponse `json:"movements"`
}
