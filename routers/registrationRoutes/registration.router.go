package registrationRoutes

import (
	"github.com/gofiber/fiber/v2"

	registrationControllers "filings/controllers/registration"
)

func SetupRegistrationRoutes(app *fiber.App) {
	group := app.Group("/registrations")

	group.Get("/", registrationControllers.ListRegistrations)
	group.Get("/:type", registrationControllers.GetRegistration)
	group.Get("/:type/form", registrationControllers.GetSchema)
	group.Get("/:type/packages", registrationControllers.GetPackages)
}
