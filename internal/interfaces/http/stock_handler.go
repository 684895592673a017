package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
)

// StockHandler maneja las operaciones de stock y el libro de movimientos (protegido).
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// operation factoriza el patrón común de las cinco operaciones de stock:
// parsear el cuerpo, ejecutar y responder con los niveles resultantes.
func (h *StockHandler) operation(
	c *fiber.Ctx,
	message string,
	run func(ctx *fiber.Ctx, productID, userID string, in dto.StockOperationRequest) (*dto.StockResponse, error),
) error {
	var in dto.StockOperationRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := run(c, c.Params("id"), GetUserID(c), in)
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, message, out)
}

// Receive godoc
// @Summary      Registrar entrada de stock (IN)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.StockOperationRequest  true  "Cantidad, costo unitario y referencia"
// @Success      200   {object}  dto.Envelope{data=dto.StockResponse}
// @Failure      409   {object}  dto.Envelope
// @Router       /api/stock/{id}/receive [post]
func (h *StockHandler) Receive(c *fiber.Ctx) error {
	return h.operation(c, "entrada registrada", func(fc *fiber.Ctx, productID, userID string, in dto.StockOperationRequest) (*dto.StockResponse, error) {
		return h.uc.Receive(fc.UserContext(), productID, userID, in)
	})
}

// Issue godoc
// @Summary      Registrar salida de stock (OUT)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.StockOperationRequest  true  "Cantidad y referencia"
// @Success      200   {object}  dto.Envelope{data=dto.StockResponse}
// @Failure      409   {object}  dto.Envelope  "stock insuficiente"
// @Router       /api/stock/{id}/issue [post]
func (h *StockHandler) Issue(c *fiber.Ctx) error {
	return h.operation(c, "salida registrada", func(fc *fiber.Ctx, productID, userID string, in dto.StockOperationRequest) (*dto.StockResponse, error) {
		return h.uc.Issue(fc.UserContext(), productID, userID, in)
	})
}

// Adjust godoc
// @Summary      Ajustar stock por conteo físico (la cantidad lleva signo)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.StockOperationRequest  true  "Cantidad con signo y nota"
// @Success      200   {object}  dto.Envelope{data=dto.StockResponse}
// @Router       /api/stock/{id}/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	return h.operation(c, "ajuste registrado", func(fc *fiber.Ctx, productID, userID string, in dto.StockOperationRequest) (*dto.StockResponse, error) {
		return h.uc.Adjust(fc.UserContext(), productID, userID, in)
	})
}

// Reserve godoc
// @Summary      Reservar stock (disponible -> reservado)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.StockOperationRequest  true  "Cantidad y referencia"
// @Success      200   {object}  dto.Envelope{data=dto.StockResponse}
// @Failure      409   {object}  dto.Envelope  "disponible insuficiente"
// @Router       /api/stock/{id}/reserve [post]
func (h *StockHandler) Reserve(c *fiber.Ctx) error {
	return h.operation(c, "reserva registrada", func(fc *fiber.Ctx, productID, userID string, in dto.StockOperationRequest) (*dto.StockResponse, error) {
		return h.uc.Reserve(fc.UserContext(), productID, userID, in)
	})
}

// Release godoc
// @Summary      Liberar stock reservado (reservado -> disponible)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.StockOperationRequest  true  "Cantidad y referencia"
// @Success      200   {object}  dto.Envelope{data=dto.StockResponse}
// @Failure      409   {object}  dto.Envelope  "reservado insuficiente"
// @Router       /api/stock/{id}/release [post]
func (h *StockHandler) Release(c *fiber.Ctx) error {
	return h.operation(c, "liberación registrada", func(fc *fiber.Ctx, productID, userID string, in dto.StockOperationRequest) (*dto.StockResponse, error) {
		return h.uc.Release(fc.UserContext(), productID, userID, in)
	})
}

// Get godoc
// @Summary      Consultar niveles de stock de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope{data=dto.StockResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/stock/{id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, "stock", out)
}

// SetReorderPoint godoc
// @Summary      Fijar el punto de reorden de un producto
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ReorderPointRequest  true  "Punto de reorden"
// @Success      200   {object}  dto.Envelope
// @Router       /api/stock/{id}/reorder-point [put]
func (h *StockHandler) SetReorderPoint(c *fiber.Ctx) error {
	var in dto.ReorderPointRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.uc.SetReorderPoint(c.UserContext(), c.Params("id"), GetUserID(c), in); err != nil {
		return fromError(c, err)
	}
	return ok(c, "punto de reorden actualizado", nil)
}

// List godoc
// @Summary      Listar stock con datos de producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        search        query  string  false  "Búsqueda por nombre o SKU"
// @Param        belowReorder  query  bool    false  "Solo bajo punto de reorden"
// @Success      200  {object}  dto.Envelope{data=dto.StockListResponse}
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var in dto.ListStockRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, "stock", out)
}

// Transactions godoc
// @Summary      Libro de movimientos de stock de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del producto"
// @Param        type  query  string  false  "IN | OUT | ADJUSTMENT | RESERVED | RELEASED"
// @Success      200  {object}  dto.Envelope{data=dto.TransactionListResponse}
// @Router       /api/stock/{id}/transactions [get]
func (h *StockHandler) Transactions(c *fiber.Ctx) error {
	var in dto.ListTransactionsRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := h.uc.Transactions(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, "movimientos", out)
}

// LowStockReport godoc
// @Summary      Reporte de productos bajo punto de reorden (cacheado)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.LowStockReportResponse}
// @Router       /api/stock/reports/low [get]
func (h *StockHandler) LowStockReport(c *fiber.Ctx) error {
	out, err := h.uc.LowStockReport(c.UserContext())
	if err != nil {
		return fromError(c, err)
	}
	return ok(c, "reporte de reposición", out)
}
