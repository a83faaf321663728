// Package validators holds the request checks shared by the area validators.
package validators

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"filings/middleware"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct validates v and returns field → message for every failed rule.
func Struct(v any) map[string]string {
	errors := make(map[string]string)
	err := validate.Struct(v)
	if err == nil {
		return errors
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["request"] = err.Error()
		return errors
	}
	for _, fe := range verrs {
		errors[fe.Field()] = message(fe)
	}
	return errors
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", fe.Field())
	case "email":
		return "Invalid email!"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long!", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s!", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters!", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s!", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("Invalid %s! Allowed: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "len":
		return fmt.Sprintf("%s must be %s characters long!", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("Invalid %s!", fe.Field())
}

// Body parses the request body into a new T, validates it and stores it in
// c.Locals under key.
func Body[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errors := Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		c.Locals(key, reqData)
		return c.Next()
	}
}

// Query is Body for query strings.
func Query[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}
		if errors := Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		c.Locals(key, reqData)
		return c.Next()
	}
}

// ParamID checks that the route parameter name is a positive integer and
// stores it in c.Locals under name as uint.
func ParamID(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt(name)
		if err != nil || id <= 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{name: fmt.Sprintf("Invalid %s!", name)})
		}
		c.Locals(name, uint(id))
		return c.Next()
	}
}

// FormFile reads the multipart file named field, rejecting files over max
// bytes.
func FormFile(c *fiber.Ctx, field string, max int64) (string, []byte, string) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil, fmt.Sprintf("%s is required!", field)
	}
	if fh.Size > max {
		return "", nil, fmt.Sprintf("File must not exceed %d MB!", max>>20)
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, "Failed to read file!"
	}
	defer f.Close()

	buf := make([]byte, fh.Size)
	if _, err := io.ReadFull(f, buf); err != nil {
		return "", nil, "Failed to read file!"
	}
	return fh.Filename, buf, ""
}
