package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
)

// localsError guarda el error interno para el log del request; nunca se devuelve al cliente.
const localsError = "error"

func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// writeError traduce errores de dominio a HTTP. notFound es el mensaje para ErrNotFound.
func writeError(c *fiber.Ctx, err error, notFound string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", notFound)
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return errorJSON(c, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado")
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return errorJSON(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, "FORBIDDEN", "se requiere rol ADMIN")
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas")
	case errors.Is(err, domain.ErrUserInactive):
		return errorJSON(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "cuenta desactivada")
	case errors.Is(err, domain.ErrUpstream):
		return errorJSON(c, fiber.StatusInternalServerError, "REPORT_FAILED", err.Error())
	default:
		c.Locals(localsError, err)
		return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor")
	}
}

// idParam valida :id como UUID. Un id mal formado no puede existir y se responde 404 como
// cualquier fila ausente; ok=false indica que la respuesta ya fue escrita.
func idParam(c *fiber.Ctx, notFound string) (id string, ok bool, err error) {
	id = c.Params("id")
	if _, perr := uuid.Parse(id); perr != nil {
		return "", false, writeError(c, domain.ErrNotFound, notFound)
	}
	return id, true, nil
}

// ErrorHandler para fiber.Config: errores no manejados por los handlers (404 de ruta, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "INTERNAL"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			code = "INVALID_BODY"
		case fiber.StatusRequestEntityTooLarge:
			code = "BODY_TOO_LARGE"
		}
		return errorJSON(c, fe.Code, code, fe.Message)
	}
	c.Locals(localsError, err)
	return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor")
}
