package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strconv"
	"strings"

	"go-mesinkasir/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Message string              `json:"message"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Response{Message: message, Data: data})
}

// ErrorHandler renders errors returned by handlers (and fiber itself) into
// the envelope. Unknown errors are logged and hidden behind a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var validation *service.ValidationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(Response{
			Message: validation.Error(),
			Errors:  validation.Fields,
		})
	case errors.Is(err, service.ErrForbidden):
		return respond(c, fiber.StatusForbidden, err.Error(), nil)
	case errors.Is(err, service.ErrNotFound):
		return respond(c, fiber.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrConflict):
		return respond(c, fiber.StatusConflict, err.Error(), nil)
	case errors.Is(err, service.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, err.Error(), nil)
	case errors.As(err, &fiberErr):
		return respond(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.Printf("%s %s: %v", c.Method(), c.OriginalURL(), err)
	return respond(c, fiber.StatusInternalServerError, "Internal Server Error", nil)
}

var errInvalidJSON = fiber.NewError(fiber.StatusBadRequest, "Invalid JSON")

// parseBody decodes the request body into dst. An empty body decodes as {}.
// A value of the wrong type becomes a 422 on that field.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if len(bytes.TrimSpace(c.Body())) == 0 {
		return nil
	}

	err := c.BodyParser(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		v := &service.ValidationError{}
		v.Add(field, typeMessage(field, typeErr.Type))
		return v
	}

	// unsupported content type
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr
	}
	return errInvalidJSON
}

func typeMessage(field string, t reflect.Type) string {
	name := strings.ReplaceAll(field, "_", " ")
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("The %s field must be an integer.", name)
	case reflect.Bool:
		return fmt.Sprintf("The %s field must be true or false.", name)
	case reflect.String:
		return fmt.Sprintf("The %s field must be a string.", name)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}

// paramID reads a numeric path parameter. Anything that cannot be an id
// resolves to notFound, like an id that does not exist.
func paramID(c *fiber.Ctx, name string, notFound error) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, notFound
	}
	return uint(id), nil
}

// actorRole is the role RequireAuth stored for the request.
func actorRole(c *fiber.Ctx) string {
	role, _ := c.Locals("user_role").(string)
	return role
}

func actorID(c *fiber.Ctx) uint {
	id, _ := c.Locals("user_id").(uint)
	return id
}

// queryBool follows the loose boolean parsing of the POS frontend:
// 1, true, on and yes are true, anything else is false.
func queryBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
