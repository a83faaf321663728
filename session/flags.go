// Package session keeps the per-user workflow flags the client carries
// between pages: which registration type is selected and which ticket is
// being edited or filled on someone's behalf.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

var ErrUnknownKey = errors.New("unknown session key")

// Key names one flag.
type Key string

const (
	SelectedRegistrationType  Key = "selectedRegistrationType"
	SelectedRegistrationTitle Key = "selectedRegistrationTitle"
	EditingTicketID           Key = "editingTicketId"
	FillingOnBehalfTicketID   Key = "fillingOnBehalfTicketId"
)

var Keys = []Key{SelectedRegistrationType, SelectedRegistrationTitle, EditingTicketID, FillingOnBehalfTicketID}

// ParseKey maps a raw key onto a Key.
func ParseKey(raw string) (Key, error) {
	for _, k := range Keys {
		if string(k) == raw {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, raw)
}

type Flags struct {
	SelectedRegistrationType  string `json:"selectedRegistrationType,omitempty"`
	SelectedRegistrationTitle string `json:"selectedRegistrationTitle,omitempty"`
	EditingTicketID           uint   `json:"editingTicketId,omitempty"`
	FillingOnBehalfTicketID   uint   `json:"fillingOnBehalfTicketId,omitempty"`
}

// Set assigns one flag from its string form. An empty value clears it.
func (f *Flags) Set(k Key, value string) error {
	switch k {
	case SelectedRegistrationType:
		f.SelectedRegistrationType = value
	case SelectedRegistrationTitle:
		f.SelectedRegistrationTitle = value
	case EditingTicketID, FillingOnBehalfTicketID:
		var id uint
		if value != "" {
			n, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return fmt.Errorf("%s must be a ticket id: %w", k, err)
			}
			id = uint(n)
		}
		if k == EditingTicketID {
			f.EditingTicketID = id
		} else {
			f.FillingOnBehalfTicketID = id
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, k)
	}
	return nil
}

// Get returns one flag in string form.
func (f Flags) Get(k Key) string {
	switch k {
	case SelectedRegistrationType:
		return f.SelectedRegistrationType
	case SelectedRegistrationTitle:
		return f.SelectedRegistrationTitle
	case EditingTicketID:
		return idString(f.EditingTicketID)
	case FillingOnBehalfTicketID:
		return idString(f.FillingOnBehalfTicketID)
	}
	return ""
}

// Track points the flags at a ticket being filled. onBehalf marks an admin
// filling a customer's ticket.
func (f *Flags) Track(regType, title string, ticketID uint, onBehalf bool) {
	f.SelectedRegistrationType = regType
	f.SelectedRegistrationTitle = title
	if onBehalf {
		f.FillingOnBehalfTicketID = ticketID
		f.EditingTicketID = 0
	} else {
		f.EditingTicketID = ticketID
		f.FillingOnBehalfTicketID = 0
	}
}

// TicketID is the ticket the user is working on, if any.
func (f Flags) TicketID() uint {
	if f.EditingTicketID != 0 {
		return f.EditingTicketID
	}
	return f.FillingOnBehalfTicketID
}

func idString(id uint) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

// Store persists flags per user.
type Store interface {
	Load(ctx context.Context, userID uint) (Flags, error)
	Save(ctx context.Context, userID uint, f Flags) error
	Clear(ctx context.Context, userID uint) error
}

// Default is the store the HTTP layer uses; main wires it.
var Default Store = NewMemoryStore(DefaultTTL)
