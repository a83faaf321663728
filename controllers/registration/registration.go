package registrationController

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"filings/database"
	"filings/middleware"
	"filings/models"
	"filings/wizard"
)

// Tabs every registration detail page shows, in order.
var Tabs = []string{"packages", "process", "documents", "prerequisites", "about", "faq"}

type registrationSummary struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

type processStep struct {
	Step  wizard.StepKey `json:"step"`
	Title string         `json:"title"`
}

func unknownType(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown registration type!", nil)
}

// ListRegistrations returns every registration type on offer.
func ListRegistrations(c *fiber.Ctx) error {
	list := lo.Map(wizard.Registrations(), func(s *wizard.Schema, _ int) registrationSummary {
		return registrationSummary{Key: s.Key, Title: s.Title}
	})
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registrations.", list)
}

// GetRegistration returns the detail page data of one registration type.
func GetRegistration(c *fiber.Ctx) error {
	s, ok := wizard.Lookup(c.Params("type"))
	if !ok {
		return unknownType(c)
	}

	process := lo.Map(s.Steps, func(st wizard.Step, _ int) processStep {
		return processStep{Step: st.Key, Title: st.Title}
	})

	// Prerequisites are the documents asked for regardless of answers
	var prerequisites []string
	for _, f := range s.FileFields() {
		if f.Required && f.VisibleWhen == nil {
			prerequisites = append(prerequisites, f.Label)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registration details.", fiber.Map{
		"key":           s.Key,
		"title":         s.Title,
		"tabs":          Tabs,
		"process":       process,
		"documents":     wizard.RequiredDocuments(s),
		"prerequisites": lo.Uniq(prerequisites),
	})
}

// GetSchema returns the wizard definition a client renders the form from.
func GetSchema(c *fiber.Ctx) error {
	s, ok := wizard.Lookup(c.Params("type"))
	if !ok {
		return unknownType(c)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registration form.", fiber.Map{
		"schema":         s,
		"directorFields": lo.Ternary(s.HasDirectors(), wizard.DirectorFields, []wizard.FieldDef(nil)),
		"maxDirectors":   wizard.MaxDirectors,
	})
}

// GetPackages lists the packages of one registration type.
func GetPackages(c *fiber.Ctx) error {
	s, ok := wizard.Lookup(c.Params("type"))
	if !ok {
		return unknownType(c)
	}

	var packages []models.Package
	if err := database.Database.Db.
		Where("registration_type = ? AND is_deleted = ?", s.Key, false).
		Order("price ASC").
		Find(&packages).Error; err != nil {
		log.WithError(err).WithField("registrationType", s.Key).Error("Error fetching packages")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch packages!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Packages.", fiber.Map{
		"packages": packages,
		"loading":  false,
	})
}
