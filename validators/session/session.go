package sessionValidator

import (
	"github.com/gofiber/fiber/v2"

	"filings/middleware"
	"filings/session"
)

// SetFlagsRequest holds the flags to change; an empty value clears a flag.
type SetFlagsRequest struct {
	Values map[session.Key]string
}

// SetFlags accepts {"<key>": "<value>", ...} and rejects unknown keys.
func SetFlags() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := make(map[string]string)
		if err := c.BodyParser(&raw); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		reqData := &SetFlagsRequest{Values: make(map[session.Key]string, len(raw))}
		for k, v := range raw {
			key, err := session.ParseKey(k)
			if err != nil {
				errors[k] = "Unknown session key!"
				continue
			}
			// Catch malformed ticket ids here rather than in the store
			var probe session.Flags
			if err := probe.Set(key, v); err != nil {
				errors[k] = "Invalid ticket id!"
				continue
			}
			reqData.Values[key] = v
		}
		if len(raw) == 0 {
			errors["request"] = "At least one flag is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFlags", reqData)
		return c.Next()
	}
}
