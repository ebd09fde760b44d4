package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := dto.ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// parseBody decodifica y valida el cuerpo. Si devuelve false la respuesta de error ya fue escrita.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, errorJSON(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validate.Struct(out); err != nil {
		return false, errorJSON(c, fiber.StatusBadRequest, "VALIDATION", validationMessage(err))
	}
	return true, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " es requerido"
	case "email":
		return field + " debe ser un email válido"
	case "uuid":
		return field + " debe ser un UUID"
	case "isodate":
		return field + " debe tener formato YYYY-MM-DD"
	case "min":
		return fmt.Sprintf("%s debe ser como mínimo %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s debe ser como máximo %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s no es válido (%s)", field, fe.Tag())
	}
}

// pageParams limit/offset de la query con los límites de dto.PageRequest.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p.Limit, p.Offset
}
