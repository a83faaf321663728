package sessionController

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"filings/middleware"
	"filings/session"
	sessionValidator "filings/validators/session"
)

// GetFlags returns the signed-in user's workflow flags.
func GetFlags(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	flags, err := session.Default.Load(c.UserContext(), userID)
	if err != nil {
		log.WithError(err).WithField("userId", userID).Error("Error loading session flags")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load session!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session flags.", flags)
}

// SetFlags changes some flags and leaves the rest alone.
func SetFlags(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	reqData, ok := c.Locals("validatedFlags").(*sessionValidator.SetFlagsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ctx := c.UserContext()
	flags, err := session.Default.Load(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("userId", userID).Error("Error loading session flags")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load session!", nil)
	}
	for k, v := range reqData.Values {
		if err := flags.Set(k, v); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{string(k): err.Error()})
		}
	}
	if err := session.Default.Save(ctx, userID, flags); err != nil {
		log.WithError(err).WithField("userId", userID).Error("Error saving session flags")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save session!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session updated.", flags)
}

// ClearFlags forgets every flag, as on logout.
func ClearFlags(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if err := session.Default.Clear(c.UserContext(), userID); err != nil {
		log.WithError(err).WithField("userId", userID).Error("Error clearing session flags")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to clear session!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session cleared.", session.Flags{})
}
