package models

import (
	"time"

	"gorm.io/gorm"

	"filings/tasklist"
)

// TicketTask is one row of a ticket's compliance task list.
type TicketTask struct {
	gorm.Model
	TicketID    uint            `gorm:"not null;index" json:"ticketId"`
	Position    int             `gorm:"not null" json:"position"`
	TaskID      string          `gorm:"type:varchar(64);not null" json:"taskId"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Status      tasklist.Status `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	Assignee    string          `gorm:"type:varchar(100)" json:"assignee"`
	DueDate     *time.Time      `json:"dueDate"`
}

func (TicketTask) TableName() string {
	return "ticket_tasks"
}

func (r TicketTask) Task() tasklist.Task {
	return tasklist.Task{
		ID:          r.TaskID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Assignee:    r.Assignee,
		DueDate:     r.DueDate,
	}
}

func NewTicketTask(ticketID uint, position int, t tasklist.Task) TicketTask {
	return TicketTask{
		TicketID:    ticketID,
		Position:    position,
		TaskID:      t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Assignee:    t.Assignee,
		DueDate:     t.DueDate,
	}
}
