// Package routers assembles the HTTP application.
package routers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"filings/middleware"
	"filings/routers/authRoutes"
	"filings/routers/paymentRoutes"
	"filings/routers/registrationRoutes"
	"filings/routers/sessionRoutes"
	"filings/routers/ticketRoutes"
	"filings/routers/uploadRoutes"
	"filings/wizard"
)

// Options tune the app for where it runs.
type Options struct {
	// UploadDir is served under /uploads when set.
	UploadDir string
	// AccessLog turns on request logging.
	AccessLog bool
}

// NewApp builds the fiber app with every route group.
func NewApp(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		// Room for a full-size document plus multipart framing
		BodyLimit:    wizard.MaxUploadBytes + 1<<20,
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
		}))
	}

	if opts.UploadDir != "" {
		app.Static("/uploads", opts.UploadDir)
	}

	authRoutes.SetupAuthRoutes(app)
	registrationRoutes.SetupRegistrationRoutes(app)
	ticketRoutes.SetupTicketRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	uploadRoutes.SetupUploadRoutes(app)
	sessionRoutes.SetupSessionRoutes(app)

	return app
}
