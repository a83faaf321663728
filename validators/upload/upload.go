package uploadValidator

import (
	"github.com/gofiber/fiber/v2"

	"filings/middleware"
	"filings/validators"
	"filings/wizard"
)

type UploadFileRequest struct {
	Name     string
	Content  []byte
	TicketID string
}

func UploadFile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, content, fileErr := validators.FormFile(c, "file", wizard.MaxUploadBytes)
		if fileErr != "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"file": fileErr})
		}
		c.Locals("validatedUpload", &UploadFileRequest{
			Name:     name,
			Content:  content,
			TicketID: c.Query("ticketId"),
		})
		return c.Next()
	}
}
