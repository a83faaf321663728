package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authControllers "filings/controllers/auth"
	"filings/middleware"
	authValidators "filings/validators/auth"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, authControllers.Profile)
}
