package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"filings/wizard"
)

// TicketStatus tracks a filing from draft to completion.
type TicketStatus string

const (
	TicketDraft      TicketStatus = "DRAFT"
	TicketSubmitted  TicketStatus = "SUBMITTED"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketCompleted  TicketStatus = "COMPLETED"
)

// CanMoveTo reports whether an admin may move a ticket from s to next.
// Statuses only advance one at a time, and DRAFT is left only by submitting.
func (s TicketStatus) CanMoveTo(next TicketStatus) bool {
	switch s {
	case TicketSubmitted:
		return next == TicketInProgress
	case TicketInProgress:
		return next == TicketCompleted
	}
	return false
}

// Ticket is one registration a customer is filing: the package bought and
// the wizard document being filled.
type Ticket struct {
	gorm.Model
	UserID           uint           `gorm:"not null;index" json:"userId"`
	RegistrationType string         `gorm:"type:varchar(50);not null;index" json:"registrationType"`
	Title            string         `gorm:"type:varchar(255)" json:"title"`
	PackageID        uint           `gorm:"default:0" json:"packageId"`
	Status           TicketStatus   `gorm:"type:varchar(20);default:'DRAFT';index" json:"status"`
	FormData         datatypes.JSON `json:"-"`
	FiledByID        uint           `gorm:"default:0" json:"filedById"` // admin filling on behalf
	SubmittedAt      *time.Time     `json:"submittedAt,omitempty"`
	IsDeleted        bool           `gorm:"default:false" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// Schema returns the wizard of the ticket's registration type.
func (t *Ticket) Schema() (*wizard.Schema, error) {
	s, ok := wizard.Lookup(t.RegistrationType)
	if !ok {
		return nil, fmt.Errorf("ticket %d: unknown registration type %q", t.ID, t.RegistrationType)
	}
	return s, nil
}

// Form decodes the stored wizard document, starting an empty one when the
// ticket has none yet.
func (t *Ticket) Form() (wizard.FormData, error) {
	s, err := t.Schema()
	if err != nil {
		return wizard.FormData{}, err
	}
	if len(t.FormData) == 0 || string(t.FormData) == "null" {
		return wizard.NewFormData(s), nil
	}
	var fd wizard.FormData
	if err := json.Unmarshal(t.FormData, &fd); err != nil {
		return wizard.FormData{}, fmt.Errorf("ticket %d: decode form data: %w", t.ID, err)
	}
	for _, st := range s.Steps {
		if fd.Steps[st.Key] == nil {
			fd.Steps[st.Key] = wizard.Values{}
		}
	}
	return fd, nil
}

// SetForm stores fd on the ticket.
func (t *Ticket) SetForm(fd wizard.FormData) error {
	b, err := json.Marshal(fd)
	if err != nil {
		return err
	}
	t.FormData = datatypes.JSON(b)
	return nil
}

// NewDraftTicket starts a ticket for userID with an empty wizard document.
func NewDraftTicket(userID uint, s *wizard.Schema, packageID uint) (Ticket, error) {
	t := Ticket{
		UserID:           userID,
		RegistrationType: s.Key,
		Title:            s.Title,
		PackageID:        packageID,
		Status:           TicketDraft,
	}
	if err := t.SetForm(wizard.NewFormData(s)); err != nil {
		return Ticket{}, err
	}
	return t, nil
}

// Editable reports whether the wizard document may still change. Admins keep
// editing access until the ticket is completed.
func (t *Ticket) Editable(actor User) bool {
	if t.Status == TicketDraft {
		return true
	}
	return actor.IsAdmin() && t.Status != TicketCompleted
}
