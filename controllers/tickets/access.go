package ticketController

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"filings/database"
	"filings/middleware"
	"filings/models"
	"filings/wizard"
)

// loadActor fetches the signed-in user.
func loadActor(c *fiber.Ctx) (models.User, error) {
	var user models.User
	err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", middleware.UserID(c), false).
		First(&user).Error
	if err != nil {
		return user, fiber.NewError(fiber.StatusUnauthorized, "User not found!")
	}
	return user, nil
}

// loadTicket fetches the ticket of route param :id and checks that actor
// owns it or is an admin.
func loadTicket(c *fiber.Ctx, actor models.User) (models.Ticket, error) {
	var ticket models.Ticket
	id, _ := c.Locals("id").(uint)

	err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ticket, fiber.NewError(fiber.StatusNotFound, "Ticket not found!")
	}
	if err != nil {
		log.WithError(err).WithField("ticketId", id).Error("Error fetching ticket")
		return ticket, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch ticket!")
	}
	if ticket.UserID != actor.ID && !actor.IsAdmin() {
		return ticket, fiber.NewError(fiber.StatusForbidden, "Access Denied!")
	}
	return ticket, nil
}

// openForm loads the ticket and its wizard document for a read.
func openForm(c *fiber.Ctx) (*formCtx, error) {
	actor, err := loadActor(c)
	if err != nil {
		return nil, err
	}
	ticket, err := loadTicket(c, actor)
	if err != nil {
		return nil, err
	}
	schema, err := ticket.Schema()
	if err != nil {
		log.WithError(err).WithField("ticketId", ticket.ID).Error("Ticket has no wizard")
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Unknown registration type!")
	}
	fd, err := ticket.Form()
	if err != nil {
		log.WithError(err).WithField("ticketId", ticket.ID).Error("Error decoding form data")
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to read form data!")
	}
	return &formCtx{actor: actor, ticket: ticket, schema: schema, form: fd}, nil
}

// editForm is openForm for a write: the ticket must still be editable.
func editForm(c *fiber.Ctx) (*formCtx, error) {
	fc, err := openForm(c)
	if err != nil {
		return nil, err
	}
	if !fc.ticket.Editable(fc.actor) {
		return nil, fiber.NewError(fiber.StatusConflict, "Ticket can no longer be edited!")
	}
	return fc, nil
}

type formCtx struct {
	actor  models.User
	ticket models.Ticket
	schema *wizard.Schema
	form   wizard.FormData
}

// save stores fd on the ticket. Admin edits on a customer's ticket are
// recorded as filed on behalf.
func (fc *formCtx) save(fd wizard.FormData) error {
	if err := fc.ticket.SetForm(fd); err != nil {
		return err
	}
	if fc.actor.ID != fc.ticket.UserID {
		fc.ticket.FiledByID = fc.actor.ID
	}
	err := database.Database.Db.Model(&fc.ticket).
		Select("form_data", "filed_by_id").
		Updates(&fc.ticket).Error
	if err != nil {
		return err
	}
	fc.form = fd
	return nil
}

// view is the response body of every form operation.
func (fc *formCtx) view() fiber.Map {
	visible := make(map[wizard.StepKey][]string, len(fc.schema.Steps))
	for _, st := range fc.schema.Steps {
		for _, def := range wizard.VisibleFields(fc.schema, fc.form, st.Key) {
			visible[st.Key] = append(visible[st.Key], def.Name)
		}
	}
	return fiber.Map{
		"ticket":        fc.ticket,
		"formData":      fc.form.Document(fc.schema),
		"visibleFields": visible,
		"missing":       wizard.Missing(fc.schema, fc.form),
	}
}

// formError maps a rejected edit to a response. State is unchanged.
func formError(c *fiber.Ctx, fc *formCtx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	entry := log.WithFields(log.Fields{"ticketId": fc.ticket.ID, "userId": fc.actor.ID})
	switch {
	case errors.Is(err, wizard.ErrPaidUpExceedsAuthorized),
		errors.Is(err, wizard.ErrInvalidValue),
		errors.Is(err, wizard.ErrFileTooLarge),
		errors.Is(err, wizard.ErrFileType):
		entry.WithError(err).Debug("Form edit rejected")
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	case errors.Is(err, wizard.ErrUnknownStep),
		errors.Is(err, wizard.ErrUnknownField),
		errors.Is(err, wizard.ErrDirectorIndex),
		errors.Is(err, wizard.ErrNoDirectors):
		entry.WithError(err).Debug("Form edit rejected")
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}
	entry.WithError(err).Error("Form edit failed")
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update form!", nil)
}
