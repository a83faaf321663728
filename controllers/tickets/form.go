package ticketController

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"filings/database"
	"filings/middleware"
	"filings/models"
	"filings/services/storage"
	"filings/utils"
	ticketValidator "filings/validators/ticket"
	"filings/wizard"
)

// PatchStep merges field values into one step of the wizard.
func PatchStep(c *fiber.Ctx) error {
	fc, err := editForm(c)
	if err != nil {
		return err
	}
	reqData, ok := c.Locals("validatedStep").(*ticketValidator.PatchStepRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	fd, err := wizard.Dispatch(fc.schema, fc.form, wizard.StepKey(c.Params("step")), reqData.Values)
	if err != nil {
		return formError(c, fc, err)
	}
	if err := fc.save(fd); err != nil {
		return formError(c, fc, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Step saved.", fc.view())
}

// ToggleOption checks or unchecks one option of a multiselect field.
func ToggleOption(c *fiber.Ctx) error {
	fc, err := editForm(c)
	if err != nil {
		return err
	}
	reqData, ok := c.Locals("validatedToggle").(*ticketValidator.ToggleOptionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	fd, err := wizard.ToggleOption(fc.schema, fc.form, wizard.StepKey(c.Params("step")), reqData.Field, reqData.Option)
	if err != nil {
		return formError(c, fc, err)
	}
	if err := fc.save(fd); err != nil {
		return formError(c, fc, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Step saved.", fc.view())
}

// PatchDirector merges field values into one director.
func PatchDirector(c *fiber.Ctx) error {
	fc, err := editForm(c)
	if err != nil {
		return err
	}
	reqData, ok := c.Locals("validatedDirector").(*ticketValidator.PatchDirectorRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"index": "Invalid director index!"})
	}

	fd, err := wizard.UpdateDirector(fc.schema, fc.form, index, reqData.Values)
	if err != nil {
		return formError(c, fc, err)
	}
	if err := fc.save(fd); err != nil {
		return formError(c, fc, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Director saved.", fc.view())
}

// AttachFile stores a document in a file field. In stage mode the file is
// kept inline as a data URL until submit; in upload mode it goes to storage
// right away.
func AttachFile(c *fiber.Ctx) error {
	fc, err := editForm(c)
	if err != nil {
		return err
	}
	reqData, ok := c.Locals("validatedFile").(*ticketValidator.AttachFileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Director >= 0 {
		err = wizard.CheckDirectorFileField(fc.schema, fc.form, reqData.Director, reqData.Field)
	} else {
		err = wizard.CheckFileField(fc.schema, fc.form, reqData.Step, reqData.Field)
	}
	if err != nil {
		return formError(c, fc, err)
	}
	mime, err := wizard.CheckUpload(reqData.Content)
	if err != nil {
		return formError(c, fc, err)
	}

	var ref wizard.FileRef
	switch reqData.Mode {
	case ticketValidator.ModeUpload:
		url, err := storage.Default.UploadFileDirect(c.UserContext(), reqData.Content, storage.TicketFolder(fc.ticket.ID), storage.ObjectName(reqData.Name))
		if err != nil {
			log.WithError(err).WithField("ticketId", fc.ticket.ID).Error("Error uploading file")
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to upload file!", nil)
		}
		ref = wizard.UploadedFile(reqData.Name, url)
	default:
		dataURL, err := wizard.FileToBase64(bytes.NewReader(reqData.Content), mime)
		if err != nil {
			return formError(c, fc, err)
		}
		ref = wizard.PendingFile(reqData.Name, mime, dataURL)
	}

	var fd wizard.FormData
	if reqData.Director >= 0 {
		fd, err = wizard.SetDirectorFile(fc.schema, fc.form, reqData.Director, reqData.Field, ref)
	} else {
		fd, err = wizard.SetFile(fc.schema, fc.form, reqData.Step, reqData.Field, ref)
	}
	if err != nil {
		return formError(c, fc, err)
	}
	if err := fc.save(fd); err != nil {
		return formError(c, fc, err)
	}

	log.WithFields(log.Fields{"ticketId": fc.ticket.ID, "field": reqData.Field, "state": ref.Kind()}).Info("File attached")
	return middleware.JsonResponse(c, fiber.StatusOK, true, "File attached.", fc.view())
}

// Review lists the answered fields the way the review page shows them.
func Review(c *fiber.Ctx) error {
	fc, err := openForm(c)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review.", fiber.Map{
		"ticket":  fc.ticket,
		"lines":   wizard.Review(fc.schema, fc.form),
		"missing": wizard.Missing(fc.schema, fc.form),
	})
}

// Submit finalizes a draft: every required field must be filled, staged
// files are uploaded, and the customer is emailed.
func Submit(c *fiber.Ctx) error {
	fc, err := openForm(c)
	if err != nil {
		return err
	}
	if fc.ticket.Status != models.TicketDraft {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Ticket is already submitted!", nil)
	}

	if missing := wizard.Missing(fc.schema, fc.form); len(missing) > 0 {
		errs := make(map[string]string, len(missing))
		for _, m := range missing {
			errs[m] = "This field is required!"
		}
		return middleware.ValidationErrorResponse(c, errs)
	}

	entry := log.WithFields(log.Fields{"ticketId": fc.ticket.ID, "userId": fc.actor.ID})

	folder := storage.TicketFolder(fc.ticket.ID)
	upload := func(ctx context.Context, name, _ string, content []byte) (string, error) {
		return storage.Default.UploadFileDirect(ctx, content, folder, storage.ObjectName(name))
	}
	fd, promoted, err := wizard.PromotePending(c.UserContext(), fc.form, upload)
	if err != nil {
		entry.WithError(err).Error("Error uploading staged files")
		if errors.Is(err, storage.ErrUpload) {
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to upload documents!", nil)
		}
		return formError(c, fc, err)
	}

	if err := fc.ticket.SetForm(fd); err != nil {
		return formError(c, fc, err)
	}
	now := time.Now()
	fc.ticket.Status = models.TicketSubmitted
	fc.ticket.SubmittedAt = &now
	if fc.actor.ID != fc.ticket.UserID {
		fc.ticket.FiledByID = fc.actor.ID
	}
	err = database.Database.Db.Model(&fc.ticket).
		Select("form_data", "status", "submitted_at", "filed_by_id").
		Updates(&fc.ticket).Error
	if err != nil {
		entry.WithError(err).Error("Error submitting ticket")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit ticket!", nil)
	}
	fc.form = fd
	entry.WithField("uploaded", promoted).Info("Ticket submitted")

	var owner models.User
	if err := database.Database.Db.Select("name", "email").First(&owner, fc.ticket.UserID).Error; err == nil {
		utils.SendTicketSubmittedEmail(owner.Email, owner.Name, fc.ticket.Title, fc.ticket.ID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket submitted successfully!", fc.view())
}
