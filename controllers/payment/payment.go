package paymentController

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"filings/database"
	"filings/middleware"
	"filings/models"
	"filings/services/payment"
	"filings/session"
	"filings/utils"
	paymentValidator "filings/validators/payment"
	"filings/wizard"
)

const paymentFailedMessage = "Payment failed. Please try again."

// InitPayment buys a package. A cancelled checkout is not an error; a
// successful one opens the draft ticket for the registration.
func InitPayment(c *fiber.Ctx) error {
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", middleware.UserID(c), false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	reqData, ok := c.Locals("validatedPayment").(*paymentValidator.InitPaymentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var pkg models.Package
	if err := db.Where("id = ? AND is_deleted = ?", reqData.PackageID, false).First(&pkg).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Package not found!", nil)
	}
	schema, ok := wizard.Lookup(pkg.RegistrationType)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown registration type!", nil)
	}

	txn := models.PaymentTransaction{
		UserID:           user.ID,
		PackageID:        pkg.ID,
		RegistrationType: pkg.RegistrationType,
		Amount:           pkg.Price,
		Currency:         "INR",
		Status:           models.PaymentPending,
		Receipt:          "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20],
		TransactionDate:  time.Now(),
	}
	if err := db.Create(&txn).Error; err != nil {
		log.WithError(err).WithField("userId", user.ID).Error("Error recording payment")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start payment!", nil)
	}

	entry := log.WithFields(log.Fields{"userId": user.ID, "packageId": pkg.ID, "receipt": txn.Receipt})

	result, err := payment.Default.InitPayment(c.UserContext(), payment.Order{
		Receipt:          txn.Receipt,
		PackageID:        pkg.ID,
		PackageName:      pkg.Name,
		RegistrationType: pkg.RegistrationType,
		Amount:           pkg.Price,
		Currency:         txn.Currency,
		CustomerName:     user.Name,
		CustomerEmail:    user.Email,
		CustomerMobile:   user.Mobile,
	})
	if errors.Is(err, payment.ErrPaymentCancelled) {
		db.Model(&txn).Update("status", models.PaymentCancelled)
		entry.Info("Payment cancelled by customer")
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment cancelled", nil)
	}
	if err != nil {
		msg := failureMessage(err)
		db.Model(&txn).Updates(map[string]interface{}{"status": models.PaymentFailed, "failure_reason": err.Error()})
		entry.WithError(err).Warn("Payment failed")
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, msg, nil)
	}

	var ticket models.Ticket
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		if ticket, err = models.NewDraftTicket(user.ID, schema, pkg.ID); err != nil {
			return err
		}
		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}
		return tx.Model(&txn).Updates(map[string]interface{}{
			"status":           models.PaymentCompleted,
			"ticket_id":        ticket.ID,
			"payment_order_id": result.OrderID,
			"payment_id":       result.PaymentID,
			"redirect":         result.Redirect,
		}).Error
	})
	if err != nil {
		entry.WithError(err).Error("Error opening ticket after payment")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Payment received but the ticket could not be opened!", nil)
	}
	entry.WithField("ticketId", ticket.ID).Info("Payment completed")

	ctx := c.UserContext()
	flags, err := session.Default.Load(ctx, user.ID)
	if err == nil {
		flags.Track(ticket.RegistrationType, ticket.Title, ticket.ID, false)
		err = session.Default.Save(ctx, user.ID, flags)
	}
	if err != nil {
		entry.WithError(err).Warn("Error saving session flags")
	}

	utils.SendPaymentReceivedEmail(user.Email, user.Name, pkg.Name, pkg.Price, ticket.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment successful.", fiber.Map{
		"success":   result.Success,
		"redirect":  result.Redirect,
		"showPopup": result.ShowPopup,
		"ticket":    ticket,
	})
}

// failureMessage is the gateway's reason, or a generic one.
func failureMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), payment.ErrGateway.Error())
	msg = strings.TrimSpace(strings.TrimPrefix(msg, ":"))
	if msg == "" || !errors.Is(err, payment.ErrGateway) {
		return paymentFailedMessage
	}
	return msg
}

// PaymentHistory lists the signed-in user's payment attempts.
func PaymentHistory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPaymentList").(*paymentValidator.ListPaymentsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}
	page, limit := 1, 10
	if reqData.Page > 0 {
		page = reqData.Page
	}
	if reqData.Limit > 0 {
		limit = reqData.Limit
	}

	db := database.Database.Db.Model(&models.PaymentTransaction{}).
		Where("user_id = ?", middleware.UserID(c)).
		Session(&gorm.Session{})

	var total int64
	db.Count(&total)

	var txns []models.PaymentTransaction
	if err := db.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&txns).Error; err != nil {
		log.WithError(err).Error("Error listing payments")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", fiber.Map{
		"payments": txns,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
