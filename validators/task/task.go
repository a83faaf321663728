package taskValidator

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"filings/tasklist"
	"filings/validators"
)

type AddTaskRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description string          `json:"description" validate:"max=2000"`
	Status      tasklist.Status `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS DONE"`
	Assignee    string          `json:"assignee" validate:"max=100"`
	DueDate     *time.Time      `json:"dueDate"`
}

type EditTaskRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Status      *tasklist.Status `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS DONE"`
	Assignee    *string          `json:"assignee" validate:"omitempty,max=100"`
	DueDate     *time.Time       `json:"dueDate"`
}

// Patch converts the request into a task list edit.
func (r EditTaskRequest) Patch() tasklist.Patch {
	return tasklist.Patch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Assignee:    r.Assignee,
		DueDate:     r.DueDate,
	}
}

type SaveTasksRequest struct {
	Tasks []AddTaskRequestWithID `json:"tasks" validate:"dive"`
}

type AddTaskRequestWithID struct {
	ID string `json:"id"`
	AddTaskRequest
}

func (r AddTaskRequest) Task() tasklist.Task {
	return tasklist.Task{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Assignee:    r.Assignee,
		DueDate:     r.DueDate,
	}
}

func AddTask() fiber.Handler {
	return validators.Body[AddTaskRequest]("validatedTask")
}

func EditTask() fiber.Handler {
	return validators.Body[EditTaskRequest]("validatedTaskPatch")
}

func SaveTasks() fiber.Handler {
	return validators.Body[SaveTasksRequest]("validatedTasks")
}
