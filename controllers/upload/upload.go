package uploadController

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"filings/database"
	"filings/middleware"
	"filings/models"
	"filings/services/storage"
	"filings/session"
	uploadValidator "filings/validators/upload"
	"filings/wizard"
)

// UploadFile stores a document in the folder of the ticket the user is
// working on and returns its URL.
func UploadFile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	reqData, ok := c.Locals("validatedUpload").(*uploadValidator.UploadFileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if _, err := wizard.CheckUpload(reqData.Content); err != nil {
		if errors.Is(err, wizard.ErrFileTooLarge) || errors.Is(err, wizard.ErrFileType) {
			return middleware.ValidationErrorResponse(c, map[string]string{"file": err.Error()})
		}
		return err
	}

	flags, err := session.Default.Load(c.UserContext(), userID)
	if err != nil {
		log.WithError(err).WithField("userId", userID).Warn("Error loading session flags")
	}
	ticketID := storage.TicketFor(flags, reqData.TicketID)
	if ticketID != 0 {
		if err := canUploadTo(userID, ticketID); err != nil {
			return err
		}
	}
	folder := storage.TicketFolder(ticketID)

	url, err := storage.Default.UploadFileDirect(c.UserContext(), reqData.Content, folder, storage.ObjectName(reqData.Name))
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"userId": userID, "folder": folder}).Error("Error uploading file")
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to upload file!", nil)
	}

	log.WithFields(log.Fields{"userId": userID, "folder": folder}).Info("File uploaded")
	return middleware.JsonResponse(c, fiber.StatusOK, true, "File uploaded.", fiber.Map{"s3Url": url})
}

// canUploadTo checks that the ticket exists and belongs to the user, unless
// the user is an admin.
func canUploadTo(userID, ticketID uint) error {
	db := database.Database.Db
	var ticket models.Ticket
	err := db.Select("id", "user_id").Where("id = ? AND is_deleted = ?", ticketID, false).First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Ticket not found!")
	}
	if err != nil {
		log.WithError(err).WithField("ticketId", ticketID).Error("Error fetching ticket")
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch ticket!")
	}
	if ticket.UserID == userID {
		return nil
	}
	var user models.User
	if err := db.Select("id", "role").First(&user, userID).Error; err != nil || !user.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, "Access Denied!")
	}
	return nil
}
