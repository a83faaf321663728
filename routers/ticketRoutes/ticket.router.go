package ticketRoutes

import (
	"github.com/gofiber/fiber/v2"

	taskControllers "filings/controllers/tasks"
	ticketControllers "filings/controllers/tickets"
	"filings/middleware"
	"filings/models"
	"filings/validators"
	taskValidators "filings/validators/task"
	ticketValidators "filings/validators/ticket"
)

func SetupTicketRoutes(app *fiber.App) {
	tickets := app.Group("/tickets", middleware.JWTMiddleware)
	admin := middleware.RequireRole(models.RoleAdmin)
	id := validators.ParamID("id")

	tickets.Post("/", ticketValidators.CreateTicket(), ticketControllers.CreateTicket)
	tickets.Get("/", ticketValidators.ListTickets(), ticketControllers.TicketList)
	tickets.Get("/admin", admin, ticketValidators.ListTickets(), ticketControllers.AdminTicketList)

	tickets.Get("/:id", id, ticketControllers.GetTicket)
	tickets.Delete("/:id", id, ticketControllers.DeleteTicket)
	tickets.Patch("/:id/status", id, admin, ticketValidators.UpdateStatus(), ticketControllers.UpdateStatus)

	tickets.Patch("/:id/steps/:step", id, ticketValidators.PatchStep(), ticketControllers.PatchStep)
	tickets.Post("/:id/steps/:step/toggle", id, ticketValidators.ToggleOption(), ticketControllers.ToggleOption)
	tickets.Patch("/:id/directors/:index", id, ticketValidators.PatchDirector(), ticketControllers.PatchDirector)
	tickets.Post("/:id/files", id, ticketValidators.AttachFile(), ticketControllers.AttachFile)
	tickets.Get("/:id/review", id, ticketControllers.Review)
	tickets.Post("/:id/submit", id, ticketControllers.Submit)

	tickets.Get("/:id/tasks", id, taskControllers.ListTasks)
	tickets.Post("/:id/tasks", id, admin, taskValidators.AddTask(), taskControllers.AddTask)
	tickets.Put("/:id/tasks", id, admin, taskValidators.SaveTasks(), taskControllers.SaveTaskList)
	tickets.Patch("/:id/tasks/:taskId", id, admin, taskValidators.EditTask(), taskControllers.EditTask)
	tickets.Delete("/:id/tasks/:taskId", id, admin, taskControllers.DeleteTask)
}
