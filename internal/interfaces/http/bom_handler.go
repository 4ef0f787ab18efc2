package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	appbom "github.com/amortiplus/consola-api/internal/application/bom"
	"github.com/amortiplus/consola-api/internal/application/dto"
	"github.com/amortiplus/consola-api/internal/domain"
	"github.com/amortiplus/consola-api/internal/domain/entity"
)

// BOMHandler maneja las aristas de lista de materiales y la explosión (protegido).
type BOMHandler struct {
	uc *appbom.UseCase
}

// NewBOMHandler construye el handler.
func NewBOMHandler(uc *appbom.UseCase) *BOMHandler {
	return &BOMHandler{uc: uc}
}

func toEdgeResponse(e *entity.BillOfMaterial) dto.BOMEdgeResponse {
	return dto.BOMEdgeResponse{
		ID:              e.ID,
		ParentID:        e.ParentID,
		ComponentID:     e.ComponentID,
		QuantityPerUnit: e.QuantityPerUnit,
		CreatedAt:       e.CreatedAt,
	}
}

// CreateEdge godoc
// @Summary      Crear arista BOM
// @Description  Rechaza con 409 aristas que formen un ciclo directo o transitivo.
// @Tags         bom
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMEdgeRequest  true  "parent_id, component_id, quantity_per_unit"
// @Success      201   {object}  dto.BOMEdgeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bom [post]
func (h *BOMHandler) CreateEdge(c *fiber.Ctx) error {
	var in dto.CreateBOMEdgeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	edge, err := h.uc.CreateEdge(in.ParentID, in.ComponentID, in.QuantityPerUnit)
	if err != nil {
		switch err {
		case domain.ErrInvalidQuantity, domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		case domain.ErrProductNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		case domain.ErrBOMCycle:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BOM_CYCLE", Message: "la arista crearía un ciclo"})
		case domain.ErrDuplicate:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_EDGE", Message: "la arista ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toEdgeResponse(edge))
}

// DeleteEdge godoc
// @Summary      Eliminar arista BOM
// @Tags         bom
// @Security     Bearer
// @Param        id  path  string  true  "ID de la arista"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bom/{id} [delete]
func (h *BOMHandler) DeleteEdge(c *fiber.Ctx) error {
	if err := h.uc.DeleteEdge(c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "arista no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByParent godoc
// @Summary      Listar aristas BOM de un producto padre
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto padre"
// @Success      200  {array}  dto.BOMEdgeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/bom [get]
func (h *BOMHandler) ListByParent(c *fiber.Ctx) error {
	edges, err := h.uc.ListByParent(c.Params("id"))
	if err != nil {
		if err == domain.ErrProductNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.BOMEdgeResponse, 0, len(edges))
	for _, e := range edges {
		items = append(items, toEdgeResponse(e))
	}
	return c.JSON(items)
}

// Explode godoc
// @Summary      Explosión de un producto
// @Description  Devuelve los componentes y cantidades requeridas para qty unidades
// @Description  (un nivel; un producto sin BOM se devuelve a sí mismo).
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        id   path   string  true   "ID del producto"
// @Param        qty  query  string  true   "cantidad a expandir"
// @Success      200  {array}  dto.RequirementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/explode [get]
func (h *BOMHandler) Explode(c *fiber.Ctx) error {
	qty, err := decimal.NewFromString(c.Query("qty", "1"))
	if err != nil || !qty.GreaterThan(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "qty inválida"})
	}
	reqs, err := h.uc.Explode(c.Params("id"), qty)
	if err != nil {
		if err == domain.ErrProductNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.RequirementDTO, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, dto.RequirementDTO{ProductID: r.ProductID, Quantity: r.Quantity})
	}
	return c.JSON(items)
}
