package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/amortiplus/consola-api/internal/application/dto"
	"github.com/amortiplus/consola-api/internal/application/inventory"
	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
)

// InventoryHandler maneja movimientos manuales y consultas del ledger (protegido).
type InventoryHandler struct {
	uc      *inventory.RegisterMovementUseCase
	queries *inventory.LedgerQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, queries *inventory.LedgerQueryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, queries: queries}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		Origin:      m.Origin,
		ReferenceID: m.ReferenceID,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual de inventario
// @Description  IN/OUT con cantidad positiva, ADJUSTMENT con signo. El append al
// @Description  ledger y el delta al balance se aplican en la misma transacción.
// @Description  El balance resultante puede ser negativo (sobreventa reportada).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, kind, quantity, notes"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, newOnHand, err := h.uc.RegisterMovement(c.Context(), inventory.MovementInputDTO{
		UserID:    userID,
		ProductID: in.ProductID,
		Kind:      in.Kind,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		case errors.Is(err, domain.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		case errors.Is(err, domain.ErrIndeterminate):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "INDETERMINATE", Message: "resultado desconocido: releer estado antes de reintentar"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterMovementResponse{
		Movement:  toMovementResponse(mov),
		NewOnHand: newOnHand,
	})
}

// ListByProduct godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        from    query  string  false  "fecha inicial (RFC3339)"
// @Param        to      query  string  false  "fecha final (RFC3339)"
// @Param        limit   query  int     false  "máx. por página (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ListByProduct(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from inválido"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to inválido"})
		}
		to = &t
	}

	movements, err := h.queries.MovementsByProduct(c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		if err == domain.ErrProductNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, toMovementResponse(m))
	}
	return c.JSON(items)
}

// ActiveReservations godoc
// @Summary      Reporte de reservas activas
// @Description  Demanda comprometida (RESERVED) por producto para órdenes que
// @Description  siguen en pending/paid/producing.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ActiveReservationDTO
// @Router       /api/inventory/reservations [get]
func (h *InventoryHandler) ActiveReservations(c *fiber.Ctx) error {
	reservations, err := h.queries.ActiveReservations()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.ActiveReservationDTO, 0, len(reservations))
	for _, r := range reservations {
		items = append(items, dto.ActiveReservationDTO{
			ProductID:  r.ProductID,
			SKU:        r.SKU,
			Reserved:   r.Reserved,
			OrderCount: r.OrderCount,
		})
	}
	return c.JSON(fiber.Map{"total": len(items), "reservations": items})
}
