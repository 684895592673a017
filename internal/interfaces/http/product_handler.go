package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fromError(c, err)
	}
	return created(c, "producto creado", out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Param        includeDeleted  query  bool  false  "Incluir eliminados"
// @Success      200  {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"), c.QueryBool("includeDeleted"))
	if err != nil {
		return fromError(c, err)
	}
	if out == nil {
		return fail(c, fiber.StatusNotFound, "producto no encontrado")
	}
	return ok(c, "producto", out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página (1-based)"  default(1)
// @Param        limit       query  int     false  "Límite"            default(20)
// @Param        search      query  string  false  "Búsqueda por nombre, SKU o barcode"
// @Param        categoryId  query  string  false  "Filtro por categoría"
// @Param        status      query  string  false  "active | inactive"
// @Success      200  {object}  dto.Envelope{data=dto.ProductListResponse}
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var in dto.ListProductsRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, "productos", out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      404   {object}  dto.Envelope
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return fromError(c, err)
	}
	if out == nil {
		return fail(c, fiber.StatusNotFound, "producto no encontrado")
	}
	return ok(c, "producto actualizado", out)
}

// Delete godoc
// @Summary      Eliminar producto (soft delete)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return fromError(c, err)
	}
	return ok(c, "producto eliminado", nil)
}

// Restore godoc
// @Summary      Restaurar producto eliminado
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope
// @Router       /api/products/{id}/restore [post]
func (h *ProductHandler) Restore(c *fiber.Ctx) error {
	if err := h.uc.Restore(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return fromError(c, err)
	}
	return ok(c, "producto restaurado", nil)
}

// HardDelete godoc
// @Summary      Eliminar producto definitivamente (solo admin)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope
// @Router       /api/products/{id}/hard [delete]
func (h *ProductHandler) HardDelete(c *fiber.Ctx) error {
	if err := h.uc.HardDelete(c.UserContext(), c.Params("id")); err != nil {
		return fromError(c, err)
	}
	return ok(c, "producto eliminado definitivamente", nil)
}
