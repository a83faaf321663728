package taskController

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"filings/database"
	"filings/middleware"
	"filings/models"
	"filings/tasklist"
	"filings/utils"
	taskValidator "filings/validators/task"
)

// LoadTasks reads a ticket's task list in order.
func LoadTasks(db *gorm.DB, ticketID uint) ([]tasklist.Task, error) {
	var rows []models.TicketTask
	if err := db.Where("ticket_id = ?", ticketID).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return lo.Map(rows, func(r models.TicketTask, _ int) tasklist.Task { return r.Task() }), nil
}

// SaveTasks replaces a ticket's task list in one transaction.
func SaveTasks(db *gorm.DB, ticketID uint, list []tasklist.Task) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("ticket_id = ?", ticketID).Delete(&models.TicketTask{}).Error; err != nil {
			return err
		}
		if len(list) == 0 {
			return nil
		}
		rows := lo.Map(list, func(t tasklist.Task, i int) models.TicketTask {
			return models.NewTicketTask(ticketID, i, t)
		})
		return tx.Create(&rows).Error
	})
}

// loadTicket fetches the ticket of route param :id; customers only see
// their own.
func loadTicket(c *fiber.Ctx) (models.Ticket, error) {
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", middleware.UserID(c), false).First(&user).Error; err != nil {
		return models.Ticket{}, fiber.NewError(fiber.StatusUnauthorized, "User not found!")
	}

	var ticket models.Ticket
	id, _ := c.Locals("id").(uint)
	err := db.Where("id = ? AND is_deleted = ?", id, false).First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ticket, fiber.NewError(fiber.StatusNotFound, "Ticket not found!")
	}
	if err != nil {
		log.WithError(err).WithField("ticketId", id).Error("Error fetching ticket")
		return ticket, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch ticket!")
	}
	if ticket.UserID != user.ID && !user.IsAdmin() {
		return ticket, fiber.NewError(fiber.StatusForbidden, "Access Denied!")
	}
	return ticket, nil
}

// ListTasks returns a ticket's task list. Customers see it on their profile.
func ListTasks(c *fiber.Ctx) error {
	ticket, err := loadTicket(c)
	if err != nil {
		return err
	}
	list, err := LoadTasks(database.Database.Db, ticket.ID)
	if err != nil {
		log.WithError(err).WithField("ticketId", ticket.ID).Error("Error fetching tasks")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tasks!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tasks fetched successfully!", fiber.Map{
		"tasks":   list,
		"overdue": tasklist.Overdue(list, time.Now()),
	})
}

// editList runs op on the ticket's task list and stores the result.
func editList(c *fiber.Ctx, op func([]tasklist.Task) ([]tasklist.Task, error)) error {
	ticket, err := loadTicket(c)
	if err != nil {
		return err
	}
	db := database.Database.Db
	entry := log.WithFields(log.Fields{"ticketId": ticket.ID, "adminId": middleware.UserID(c)})

	list, err := LoadTasks(db, ticket.ID)
	if err != nil {
		entry.WithError(err).Error("Error fetching tasks")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tasks!", nil)
	}
	next, err := op(list)
	if errors.Is(err, tasklist.ErrTaskNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Task not found!", nil)
	}
	if err != nil {
		return err
	}
	if err := SaveTasks(db, ticket.ID, next); err != nil {
		entry.WithError(err).Error("Error saving tasks")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save tasks!", nil)
	}
	entry.WithField("tasks", len(next)).Info("Task list updated")

	var owner models.User
	if err := db.Select("name", "email").First(&owner, ticket.UserID).Error; err == nil {
		open := len(next) - len(tasklist.ByStatus(next, tasklist.StatusDone))
		utils.SendTaskListUpdatedEmail(owner.Email, owner.Name, ticket.Title, ticket.ID, open)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tasks saved.", fiber.Map{"tasks": next})
}

func AddTask(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTask").(*taskValidator.AddTaskRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	return editList(c, func(list []tasklist.Task) ([]tasklist.Task, error) {
		return tasklist.Add(list, reqData.Task()), nil
	})
}

func EditTask(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTaskPatch").(*taskValidator.EditTaskRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	id := c.Params("taskId")
	return editList(c, func(list []tasklist.Task) ([]tasklist.Task, error) {
		return tasklist.Edit(list, id, reqData.Patch())
	})
}

func DeleteTask(c *fiber.Ctx) error {
	id := c.Params("taskId")
	return editList(c, func(list []tasklist.Task) ([]tasklist.Task, error) {
		return tasklist.Delete(list, id)
	})
}

// SaveTaskList replaces the whole list, as the admin table's save button does.
func SaveTaskList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTasks").(*taskValidator.SaveTasksRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	return editList(c, func([]tasklist.Task) ([]tasklist.Task, error) {
		var next []tasklist.Task
		for _, r := range reqData.Tasks {
			t := r.Task()
			t.ID = r.ID
			next = tasklist.Add(next, t)
		}
		return next, nil
	})
}
