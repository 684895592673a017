package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/purchasing"
)

// PurchaseOrderHandler maneja las peticiones HTTP de órdenes de compra (protegido).
type PurchaseOrderHandler struct {
	uc *purchasing.UseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *purchasing.UseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra (estado DRAFT)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Proveedor y renglones"
// @Success      201   {object}  dto.Envelope{data=dto.PurchaseOrderResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fromError(c, err)
	}
	return created(c, "orden de compra creada", out)
}

// GetByID godoc
// @Summary      Obtener orden de compra por ID
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.Envelope{data=dto.PurchaseOrderResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"), c.QueryBool("includeDeleted"))
	if err != nil {
		return fromError(c, err)
	}
	if out == nil {
		return fail(c, fiber.StatusNotFound, "orden de compra no encontrada")
	}
	return ok(c, "orden de compra", out)
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        supplierId  query  string  false  "Filtro por proveedor"
// @Param        status      query  string  false  "DRAFT | ORDERED | PARTIALLY_RECEIVED | RECEIVED | CANCELLED"
// @Success      200  {object}  dto.Envelope{data=dto.PurchaseOrderListResponse}
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	var in dto.ListPurchaseOrdersRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, "órdenes de compra", out)
}

// Update godoc
// @Summary      Actualizar orden de compra (solo DRAFT)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdatePurchaseOrderRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope{data=dto.PurchaseOrderResponse}
// @Failure      409   {object}  dto.Envelope  "la orden ya no es DRAFT"
// @Router       /api/purchase-orders/{id} [patch]
func (h *PurchaseOrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseOrderRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return fromError(c, err)
	}
	if out == nil {
		return fail(c, fiber.StatusNotFound, "orden de compra no encontrada")
	}
	return ok(c, "orden de compra actualizada", out)
}

// Approve godoc
// @Summary      Aprobar orden (DRAFT -> ORDERED)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.Envelope{data=dto.PurchaseOrderResponse}
// @Failure      409  {object}  dto.Envelope  "transición no permitida"
// @Router       /api/purchase-orders/{id}/approve [post]
func (h *PurchaseOrderHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, "orden aprobada", out)
}

// Cancel godoc
// @Summary      Cancelar orden (sin recepciones previas)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.Envelope{data=dto.PurchaseOrderResponse}
// @Failure      409  {object}  dto.Envelope
// @Router       /api/purchase-orders/{id}/cancel [post]
func (h *PurchaseOrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, "orden cancelada", out)
}

// Receive godoc
// @Summary      Recibir mercancía de la orden (parcial o total)
// @Description  Actualiza renglones, entra el stock y escribe el libro IN en una sola transacción.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ReceivePurchaseOrderRequest  true  "Renglones recibidos"
// @Success      200   {object}  dto.Envelope{data=dto.PurchaseOrderResponse}
// @Failure      409   {object}  dto.Envelope  "cantidad excede lo pendiente o estado inválido"
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseOrderRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Receive(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, "recepción registrada", out)
}

// PDF godoc
// @Summary      Descargar la orden de compra en PDF
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.Envelope
// @Router       /api/purchase-orders/{id}/pdf [get]
func (h *PurchaseOrderHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return fromError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// Delete godoc
// @Summary      Eliminar orden (soft delete)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.Envelope
// @Router       /api/purchase-orders/{id} [delete]
func (h *PurchaseOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return fromError(c, err)
	}
	return ok(c, "orden eliminada", nil)
}

// Restore godoc
// @Summary      Restaurar orden eliminada
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.Envelope
// @Router       /api/purchase-orders/{id}/restore [post]
func (h *PurchaseOrderHandler) Restore(c *fiber.Ctx) error {
	if err := h.uc.Restore(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return fromError(c, err)
	}
	return ok(c, "orden restaurada", nil)
}

// HardDelete godoc
// @Summary      Eliminar orden definitivamente (solo DRAFT/CANCELLED, solo admin)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Router       /api/purchase-orders/{id}/hard [delete]
func (h *PurchaseOrderHandler) HardDelete(c *fiber.Ctx) error {
	if err := h.uc.HardDelete(c.UserContext(), c.Params("id")); err != nil {
		return fromError(c, err)
	}
	return ok(c, "orden eliminada definitivamente", nil)
}
