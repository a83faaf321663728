// Package tasklist edits the compliance task list an admin keeps per ticket.
// Every operation works on a copy of the whole list; callers persist the
// result in one save.
package tasklist

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var ErrTaskNotFound = errors.New("task not found")

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusDone
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Assignee    string     `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// Patch carries the fields an edit changes; nil fields are left alone.
type Patch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *Status    `json:"status"`
	Assignee    *string    `json:"assignee"`
	DueDate     *time.Time `json:"dueDate"`
}

// Add appends t, filling in an id and the pending status when missing.
func Add(list []Task, t Task) []Task {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	out := make([]Task, 0, len(list)+1)
	out = append(out, list...)
	return append(out, t)
}

// Index finds a task by id with a linear search.
func Index(list []Task, id string) int {
	_, i, ok := lo.FindIndexOf(list, func(t Task) bool { return t.ID == id })
	if !ok {
		return -1
	}
	return i
}

// Edit applies p to the task with id.
func Edit(list []Task, id string, p Patch) ([]Task, error) {
	i := Index(list, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	out := append([]Task(nil), list...)
	t := &out[i]
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Assignee != nil {
		t.Assignee = *p.Assignee
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	return out, nil
}

// Delete removes the task with id.
func Delete(list []Task, id string) ([]Task, error) {
	i := Index(list, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return lo.Filter(list, func(_ Task, j int) bool { return j != i }), nil
}

// ByStatus keeps the tasks in status s.
func ByStatus(list []Task, s Status) []Task {
	return lo.Filter(list, func(t Task, _ int) bool { return t.Status == s })
}

// Overdue keeps unfinished tasks due before now.
func Overdue(list []Task, now time.Time) []Task {
	return lo.Filter(list, func(t Task, _ int) bool {
		return t.Status != StatusDone && t.DueDate != nil && t.DueDate.Before(now)
	})
}
