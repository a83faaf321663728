package ticketController

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"filings/database"
	"filings/middleware"
	"filings/models"
	"filings/session"
	ticketValidator "filings/validators/ticket"
	"filings/wizard"
)

// CreateTicket opens a draft for a registration type. A user who already has
// a draft for that type gets it back instead of a new one.
func CreateTicket(c *fiber.Ctx) error {
	actor, err := loadActor(c)
	if err != nil {
		return err
	}
	reqData, ok := c.Locals("validatedTicket").(*ticketValidator.CreateTicketRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	schema, ok := wizard.Lookup(reqData.RegistrationType)
	if !ok {
		return middleware.ValidationErrorResponse(c, map[string]string{"registrationType": "Unknown registration type!"})
	}

	db := database.Database.Db

	owner := actor.ID
	if reqData.OnBehalfOf != 0 && reqData.OnBehalfOf != actor.ID {
		if !actor.IsAdmin() {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins can file on behalf of a customer!", nil)
		}
		if err := db.Where("id = ? AND is_deleted = ?", reqData.OnBehalfOf, false).First(&models.User{}).Error; err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"onBehalfOf": "Customer not found!"})
		}
		owner = reqData.OnBehalfOf
	}

	if reqData.PackageID != 0 {
		var pkg models.Package
		err := db.Where("id = ? AND registration_type = ? AND is_deleted = ?", reqData.PackageID, schema.Key, false).First(&pkg).Error
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"packageId": "Package not found for this registration type!"})
		}
	}

	entry := log.WithFields(log.Fields{"userId": owner, "registrationType": schema.Key})

	var ticket models.Ticket
	err = db.Where("user_id = ? AND registration_type = ? AND status = ? AND is_deleted = ?", owner, schema.Key, models.TicketDraft, false).
		Order("updated_at DESC").
		First(&ticket).Error
	switch {
	case err == nil:
		entry.WithField("ticketId", ticket.ID).Info("Resuming saved draft")
		rememberTicket(c, actor, owner, ticket)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Saved draft resumed.", ticket)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		entry.WithError(err).Error("Error looking up drafts")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ticket!", nil)
	}

	ticket, err = models.NewDraftTicket(owner, schema, reqData.PackageID)
	if err != nil {
		entry.WithError(err).Error("Error building draft")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ticket!", nil)
	}
	if owner != actor.ID {
		ticket.FiledByID = actor.ID
	}
	if err := db.Create(&ticket).Error; err != nil {
		entry.WithError(err).Error("Error saving ticket")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ticket!", nil)
	}

	entry.WithField("ticketId", ticket.ID).Info("Draft created")
	rememberTicket(c, actor, owner, ticket)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Ticket created successfully!", ticket)
}

// rememberTicket points the actor's session flags at ticket so uploads land
// in its folder.
func rememberTicket(c *fiber.Ctx, actor models.User, owner uint, ticket models.Ticket) {
	ctx := c.UserContext()
	flags, err := session.Default.Load(ctx, actor.ID)
	if err != nil {
		log.WithError(err).WithField("userId", actor.ID).Warn("Error loading session flags")
	}
	flags.Track(ticket.RegistrationType, ticket.Title, ticket.ID, owner != actor.ID)
	if err := session.Default.Save(ctx, actor.ID, flags); err != nil {
		log.WithError(err).WithField("userId", actor.ID).Warn("Error saving session flags")
	}
}

// GetTicket returns a ticket with its wizard document.
func GetTicket(c *fiber.Ctx) error {
	fc, err := openForm(c)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket fetched successfully!", fc.view())
}

func listTickets(c *fiber.Ctx, db *gorm.DB) error {
	reqData, ok := c.Locals("validatedTicketList").(*ticketValidator.ListTicketsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	page := 1
	limit := 10
	if reqData.Page > 0 {
		page = reqData.Page
	}
	if reqData.Limit > 0 {
		limit = reqData.Limit
	}
	offset := (page - 1) * limit

	db = db.Model(&models.Ticket{}).Where("is_deleted = ?", false)
	if reqData.Status != "" {
		db = db.Where("status = ?", reqData.Status)
	}
	if reqData.Type != "" {
		db = db.Where("registration_type = ?", reqData.Type)
	}

	// Count and Find must not share a statement
	db = db.Session(&gorm.Session{})

	var total int64
	db.Count(&total)

	var tickets []models.Ticket
	if err := db.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&tickets).Error; err != nil {
		log.WithError(err).Error("Error listing tickets")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tickets fetched successfully!", fiber.Map{
		"tickets": tickets,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// TicketList lists the signed-in user's tickets.
func TicketList(c *fiber.Ctx) error {
	return listTickets(c, database.Database.Db.Where("user_id = ?", middleware.UserID(c)))
}

// AdminTicketList lists every customer's tickets.
func AdminTicketList(c *fiber.Ctx) error {
	db := database.Database.Db
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"userId": "Invalid userId!"})
		}
		db = db.Where("user_id = ?", id)
	}
	return listTickets(c, db)
}

// UpdateStatus moves a ticket along its lifecycle.
func UpdateStatus(c *fiber.Ctx) error {
	actor, err := loadActor(c)
	if err != nil {
		return err
	}
	ticket, err := loadTicket(c, actor)
	if err != nil {
		return err
	}
	reqData, ok := c.Locals("validatedStatus").(*ticketValidator.UpdateStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if !ticket.Status.CanMoveTo(reqData.Status) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false,
			fmt.Sprintf("Ticket cannot move from %s to %s!", ticket.Status, reqData.Status), nil)
	}

	if err := database.Database.Db.Model(&ticket).Update("status", reqData.Status).Error; err != nil {
		log.WithError(err).WithField("ticketId", ticket.ID).Error("Error updating ticket status")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update status!", nil)
	}
	ticket.Status = reqData.Status

	log.WithFields(log.Fields{"ticketId": ticket.ID, "status": reqData.Status, "adminId": actor.ID}).Info("Ticket status updated")
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket status updated!", ticket)
}

// DeleteTicket discards a draft.
func DeleteTicket(c *fiber.Ctx) error {
	actor, err := loadActor(c)
	if err != nil {
		return err
	}
	ticket, err := loadTicket(c, actor)
	if err != nil {
		return err
	}
	if ticket.Status != models.TicketDraft {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only drafts can be deleted!", nil)
	}
	if err := database.Database.Db.Model(&ticket).Update("is_deleted", true).Error; err != nil {
		log.WithError(err).WithField("ticketId", ticket.ID).Error("Error deleting ticket")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete ticket!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Draft deleted.", nil)
}
