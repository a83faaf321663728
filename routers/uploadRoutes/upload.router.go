package uploadRoutes

import (
	"github.com/gofiber/fiber/v2"

	uploadControllers "filings/controllers/upload"
	"filings/middleware"
	uploadValidators "filings/validators/upload"
)

func SetupUploadRoutes(app *fiber.App) {
	app.Post("/upload", middleware.JWTMiddleware, uploadValidators.UploadFile(), uploadControllers.UploadFile)
}
