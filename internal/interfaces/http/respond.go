package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// respond escribe el sobre uniforme de la API.
func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.Envelope{
		StatusCode: status,
		Success:    status < 400,
		Message:    message,
		Data:       data,
	})
}

// ok respuesta 200 con datos.
func ok(c *fiber.Ctx, message string, data any) error {
	return respond(c, fiber.StatusOK, message, data)
}

// created respuesta 201 con datos.
func created(c *fiber.Ctx, message string, data any) error {
	return respond(c, fiber.StatusCreated, message, data)
}

// fail respuesta de error con el sobre (data = nil).
func fail(c *fiber.Ctx, status int, message string) error {
	return respond(c, status, message, nil)
}

// fromError traduce errores de dominio a códigos HTTP.
func fromError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrAlreadyDeleted),
		errors.Is(err, domain.ErrNotDeleted),
		errors.Is(err, domain.ErrInvalidTransition):
		return fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrAIUnavailable):
		return fail(c, fiber.StatusServiceUnavailable, err.Error())
	}
	return fail(c, fiber.StatusInternalServerError, "error interno del servidor")
}
