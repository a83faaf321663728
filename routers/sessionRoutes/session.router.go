package sessionRoutes

import (
	"github.com/gofiber/fiber/v2"

	sessionControllers "filings/controllers/session"
	"filings/middleware"
	sessionValidators "filings/validators/session"
)

func SetupSessionRoutes(app *fiber.App) {
	group := app.Group("/session", middleware.JWTMiddleware)

	group.Get("/", sessionControllers.GetFlags)
	group.Patch("/", sessionValidators.SetFlags(), sessionControllers.SetFlags)
	group.Delete("/", sessionControllers.ClearFlags)
}
