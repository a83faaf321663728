package paymentRoutes

import (
	"github.com/gofiber/fiber/v2"

	paymentControllers "filings/controllers/payment"
	"filings/middleware"
	paymentValidators "filings/validators/payment"
)

func SetupPaymentRoutes(app *fiber.App) {
	group := app.Group("/payments", middleware.JWTMiddleware)

	group.Post("/init", paymentValidators.InitPayment(), paymentControllers.InitPayment)
	group.Get("/", paymentValidators.ListPayments(), paymentControllers.PaymentHistory)
}
