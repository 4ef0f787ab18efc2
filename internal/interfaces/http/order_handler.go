package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/amortiplus/consola-api/internal/application/dto"
	"github.com/amortiplus/consola-api/internal/application/sales"
	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
)

// OrderHandler maneja el ciclo de vida de órdenes de venta (protegido).
type OrderHandler struct {
	createUC     *sales.CreateOrderUseCase
	transitionUC *sales.TransitionOrderUseCase
	queryUC      *sales.OrderQueryUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(
	createUC *sales.CreateOrderUseCase,
	transitionUC *sales.TransitionOrderUseCase,
	queryUC *sales.OrderQueryUseCase,
) *OrderHandler {
	return &OrderHandler{createUC: createUC, transitionUC: transitionUC, queryUC: queryUC}
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.LineTotal(),
		})
	}
	return dto.OrderResponse{
		ID:        o.ID,
		Channel:   o.Channel,
		Status:    o.Status,
		Total:     o.Total,
		Lines:     lines,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crear orden de venta
// @Description  Crea la orden con sus renglones y reserva componentes (explosión
// @Description  BOM de un nivel) en una sola transacción. Las reservas no tocan
// @Description  la existencia.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "channel, initial_status, lines"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := sales.CreateOrderInput{
		UserID:        userID,
		Channel:       in.Channel,
		InitialStatus: in.InitialStatus,
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, sales.LineInput{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	order, err := h.createUC.CreateOrder(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyOrder):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_ORDER", Message: "la orden no tiene renglones"})
		case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		case errors.Is(err, domain.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		case errors.Is(err, domain.ErrIndeterminate):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "INDETERMINATE", Message: "resultado desconocido: releer estado antes de reintentar"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// Transition godoc
// @Summary      Avanzar estado de una orden
// @Description  Aristas válidas: pending→paid→producing→shipped→delivered, y
// @Description  cancelled desde cualquier estado no terminal. Al entrar a shipped
// @Description  convierte las reservas en salidas OUT y descuenta existencia,
// @Description  exactamente una vez.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.TransitionRequest  true  "status destino"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/transition [post]
func (h *OrderHandler) Transition(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.transitionUC.Transition(c.Context(), c.Params("id"), in.Status, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		case errors.Is(err, domain.ErrInvalidTransition):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado inválida"})
		case errors.Is(err, domain.ErrConcurrentModification):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT", Message: "el estado cambió: releer la orden y reintentar"})
		case errors.Is(err, domain.ErrIndeterminate):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "INDETERMINATE", Message: "resultado desconocido: releer estado antes de reintentar"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toOrderResponse(order))
}

// GetByID godoc
// @Summary      Obtener orden con historial del ledger
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, movements, err := h.queryUC.History(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	movs := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		movs = append(movs, toMovementResponse(m))
	}
	return c.JSON(dto.OrderHistoryResponse{Order: toOrderResponse(order), Movements: movs})
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "filtrar por estado"
// @Param        limit   query  int     false  "máx. por página (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	orders, err := h.queryUC.List(c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderResponse(o))
	}
	return c.JSON(dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	})
}

// DispatchNote godoc
// @Summary      PDF de remisión de despacho
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/dispatch-note [get]
func (h *OrderHandler) DispatchNote(c *fiber.Ctx) error {
	pdfBytes, err := h.queryUC.DispatchNote(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound || err == domain.ErrProductNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="remision.pdf"`)
	return c.Send(pdfBytes)
}
