package ticketValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"filings/middleware"
	"filings/models"
	"filings/validators"
	"filings/wizard"
)

type CreateTicketRequest struct {
	RegistrationType string `json:"registrationType" validate:"required"`
	PackageID        uint   `json:"packageId"`
	// OnBehalfOf lets an admin open a ticket for a customer.
	OnBehalfOf uint `json:"onBehalfOf"`
}

type ListTicketsRequest struct {
	Page   int    `query:"page" json:"page" validate:"omitempty,min=1"`
	Limit  int    `query:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
	Status string `query:"status" json:"status" validate:"omitempty,oneof=DRAFT SUBMITTED IN_PROGRESS COMPLETED"`
	Type   string `query:"type" json:"type"`
}

type PatchStepRequest struct {
	Values map[string]any `json:"values" validate:"required"`
}

type ToggleOptionRequest struct {
	Field  string `json:"field" validate:"required"`
	Option string `json:"option" validate:"required"`
}

type PatchDirectorRequest struct {
	Values map[string]any `json:"values" validate:"required"`
}

type UpdateStatusRequest struct {
	Status models.TicketStatus `json:"status" validate:"required,oneof=DRAFT SUBMITTED IN_PROGRESS COMPLETED"`
}

// AttachFileRequest is the multipart form of a file upload.
type AttachFileRequest struct {
	Step     wizard.StepKey
	Field    string
	Director int // -1 for step fields
	Mode     string
	Name     string
	Content  []byte
}

const (
	ModeStage  = "stage"
	ModeUpload = "upload"
)

func CreateTicket() fiber.Handler {
	return validators.Body[CreateTicketRequest]("validatedTicket")
}

func ListTickets() fiber.Handler {
	return validators.Query[ListTicketsRequest]("validatedTicketList")
}

func PatchStep() fiber.Handler {
	return validators.Body[PatchStepRequest]("validatedStep")
}

func ToggleOption() fiber.Handler {
	return validators.Body[ToggleOptionRequest]("validatedToggle")
}

func PatchDirector() fiber.Handler {
	return validators.Body[PatchDirectorRequest]("validatedDirector")
}

func UpdateStatus() fiber.Handler {
	return validators.Body[UpdateStatusRequest]("validatedStatus")
}

// AttachFile validates a multipart upload. The file itself is checked
// against the upload policy by the controller.
func AttachFile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		reqData := &AttachFileRequest{
			Step:     wizard.StepKey(strings.TrimSpace(c.FormValue("step"))),
			Field:    strings.TrimSpace(c.FormValue("field")),
			Mode:     strings.ToLower(strings.TrimSpace(c.FormValue("mode", ModeStage))),
			Director: -1,
		}

		if reqData.Field == "" {
			errors["field"] = "field is required!"
		}
		if raw := strings.TrimSpace(c.FormValue("director")); raw != "" {
			idx, err := strconv.Atoi(raw)
			if err != nil || idx < 0 {
				errors["director"] = "Invalid director!"
			}
			reqData.Director = idx
		} else if reqData.Step == "" {
			errors["step"] = "step is required!"
		}
		if reqData.Mode != ModeStage && reqData.Mode != ModeUpload {
			errors["mode"] = "Invalid mode! Allowed: stage, upload"
		}

		name, content, fileErr := validators.FormFile(c, "file", wizard.MaxUploadBytes)
		if fileErr != "" {
			errors["file"] = fileErr
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		reqData.Name = name
		reqData.Content = content

		c.Locals("validatedFile", reqData)
		return c.Next()
	}
}
