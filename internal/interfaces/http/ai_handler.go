package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// AIHandler maneja las utilidades de texto asistidas por IA (protegido).
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// DescribeProduct godoc
// @Summary      Generar descripción de producto con IA
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DescribeProductRequest  true  "Nombre y palabras clave"
// @Success      200   {object}  dto.Envelope{data=dto.DescribeProductResponse}
// @Failure      503   {object}  dto.Envelope  "servicio de IA no configurado"
// @Router       /api/ai/describe-product [post]
func (h *AIHandler) DescribeProduct(c *fiber.Ctx) error {
	var in dto.DescribeProductRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.DescribeProduct(c.UserContext(), in)
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, "descripción generada", out)
}

// SuggestCategory godoc
// @Summary      Sugerir categoría del catálogo con IA
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SuggestCategoryRequest  true  "Producto y categorías disponibles"
// @Success      200   {object}  dto.Envelope{data=dto.SuggestCategoryResponse}
// @Failure      503   {object}  dto.Envelope  "servicio de IA no configurado"
// @Router       /api/ai/suggest-category [post]
func (h *AIHandler) SuggestCategory(c *fiber.Ctx) error {
	var in dto.SuggestCategoryRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.SuggestCategory(c.UserContext(), in)
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, "categoría sugerida", out)
}
