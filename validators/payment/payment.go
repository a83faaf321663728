package paymentValidator

import (
	"github.com/gofiber/fiber/v2"

	"filings/validators"
)

type InitPaymentRequest struct {
	PackageID uint `json:"packageId" validate:"required"`
}

type ListPaymentsRequest struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

func InitPayment() fiber.Handler {
	return validators.Body[InitPaymentRequest]("validatedPayment")
}

func ListPayments() fiber.Handler {
	return validators.Query[ListPaymentsRequest]("validatedPaymentList")
}
