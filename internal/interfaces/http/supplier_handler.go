package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// SupplierHandler maneja las peticiones HTTP para Supplier (protegido).
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.Envelope{data=dto.SupplierResponse}
// @Failure      409   {object}  dto.Envelope
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fromError(c, err)
	}
	return created(c, "proveedor creado", out)
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.Envelope{data=dto.SupplierResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"), c.QueryBool("includeDeleted"))
	if err != nil {
		return fromError(c, err)
	}
	if out == nil {
		return fail(c, fiber.StatusNotFound, "proveedor no encontrado")
	}
	return ok(c, "proveedor", out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.SupplierListResponse}
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	var in dto.ListSuppliersRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, "proveedores", out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.UpdateSupplierRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope{data=dto.SupplierResponse}
// @Router       /api/suppliers/{id} [patch]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSupplierRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return fromError(c, err)
	}
	if out == nil {
		return fail(c, fiber.StatusNotFound, "proveedor no encontrado")
	}
	return ok(c, "proveedor actualizado", out)
}

// Delete godoc
// @Summary      Eliminar proveedor (soft delete)
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.Envelope
// @Router       /api/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return fromError(c, err)
	}
	return ok(c, "proveedor eliminado", nil)
}

// Restore godoc
// @Summary      Restaurar proveedor eliminado
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.Envelope
// @Router       /api/suppliers/{id}/restore [post]
func (h *SupplierHandler) Restore(c *fiber.Ctx) error {
	if err := h.uc.Restore(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return fromError(c, err)
	}
	return ok(c, "proveedor restaurado", nil)
}

// HardDelete godoc
// @Summary      Eliminar proveedor definitivamente (solo admin)
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.Envelope
// @Router       /api/suppliers/{id}/hard [delete]
func (h *SupplierHandler) HardDelete(c *fiber.Ctx) error {
	if err := h.uc.HardDelete(c.UserContext(), c.Params("id")); err != nil {
		return fromError(c, err)
	}
	return ok(c, "proveedor eliminado definitivamente", nil)
}
