package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// CategoryHandler maneja las peticiones HTTP para Category (protegido).
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.Envelope{data=dto.CategoryResponse}
// @Failure      409   {object}  dto.Envelope
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fromError(c, err)
	}
	return created(c, "categoría creada", out)
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Envelope{data=dto.CategoryResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"), c.QueryBool("includeDeleted"))
	if err != nil {
		return fromError(c, err)
	}
	if out == nil {
		return fail(c, fiber.StatusNotFound, "categoría no encontrada")
	}
	return ok(c, "categoría", out)
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.CategoryListResponse}
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	var in dto.ListCategoriesRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, "categorías", out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope{data=dto.CategoryResponse}
// @Router       /api/categories/{id} [patch]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return fromError(c, err)
	}
	if out == nil {
		return fail(c, fiber.StatusNotFound, "categoría no encontrada")
	}
	return ok(c, "categoría actualizada", out)
}

// Delete godoc
// @Summary      Eliminar categoría (soft delete; rechaza si tiene productos)
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return fromError(c, err)
	}
	return ok(c, "categoría eliminada", nil)
}

// Restore godoc
// @Summary      Restaurar categoría eliminada
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Envelope
// @Router       /api/categories/{id}/restore [post]
func (h *CategoryHandler) Restore(c *fiber.Ctx) error {
	if err := h.uc.Restore(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return fromError(c, err)
	}
	return ok(c, "categoría restaurada", nil)
}

// HardDelete godoc
// @Summary      Eliminar categoría definitivamente (solo admin)
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Envelope
// @Router       /api/categories/{id}/hard [delete]
func (h *CategoryHandler) HardDelete(c *fiber.Ctx) error {
	if err := h.uc.HardDelete(c.UserContext(), c.Params("id")); err != nil {
		return fromError(c, err)
	}
	return ok(c, "categoría eliminada definitivamente", nil)
}
