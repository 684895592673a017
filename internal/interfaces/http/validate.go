package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validate instancia única del validador, con los nombres de campo tomados
// del tag json para que los mensajes de error coincidan con el payload.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody deserializa y valida el cuerpo JSON de la petición.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("cuerpo inválido")
	}
	return validationError(validate.Struct(out))
}

// parseQuery deserializa y valida los query params de la petición.
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return fmt.Errorf("parámetros inválidos")
	}
	return validationError(validate.Struct(out))
}

// validationError convierte los errores del validador en un mensaje legible.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validación fallida")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: regla '%s' no cumplida", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("validación fallida: %s", strings.Join(msgs, "; "))
}
