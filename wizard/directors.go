package wizard

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
)

const (
	// CountField is the step1 field that declares how many directors,
	// partners or promoters the registration has.
	CountField = "numberOfDirectorsPartners"
	// DirectorsField is the key the directors array is rendered under.
	DirectorsField = "directors"

	DefaultDirectorCount = 1
	MaxDirectors         = 15
)

// Director is one director, partner or promoter.
type Director struct {
	Name                     string  `json:"name"`
	Email                    string  `json:"email"`
	ContactNumber            string  `json:"contactNumber"`
	DIN                      string  `json:"din"`
	AadhaarCard              FileRef `json:"aadhaarCard"`
	PanCard                  FileRef `json:"panCard"`
	IsAuthorizedSignatory    string  `json:"isAuthorizedSignatory"`
	IsDirectorInOtherCompany string  `json:"isDirectorInOtherCompany"`
	OtherCompanyName         string  `json:"otherCompanyName,omitempty"`
	OtherCompanyPosition     string  `json:"otherCompanyPosition,omitempty"`
}

// DefaultDirector is the record new slots are filled with.
func DefaultDirector() Director {
	return Director{
		AadhaarCard:              EmptyFile(),
		PanCard:                  EmptyFile(),
		IsAuthorizedSignatory:    No,
		IsDirectorInOtherCompany: No,
	}
}

// DirectorFields describes the director sub-form.
var DirectorFields = []FieldDef{
	field("name", "Full Name", KindText, true),
	field("email", "Email", KindEmail, true),
	field("contactNumber", "Contact Number", KindPhone, true),
	field("din", "DIN (if allotted)", KindText, false),
	field("aadhaarCard", "Aadhaar Card", KindFile, true),
	field("panCard", "PAN Card", KindFile, true),
	choice("isAuthorizedSignatory", "Authorized Signatory?", KindYesNo, true, Yes, No),
	choice("isDirectorInOtherCompany", "Is Director in Other Company?", KindYesNo, true, Yes, No),
	field("otherCompanyName", "Other Company Name", KindText, true).when("isDirectorInOtherCompany", Yes),
	field("otherCompanyPosition", "Position Held", KindText, true).when("isDirectorInOtherCompany", Yes),
}

// ResizeDirectors returns exactly count directors: existing entries are kept
// by index and new slots get DefaultDirector.
func ResizeDirectors(count int, existing []Director) []Director {
	if count < 0 {
		count = 0
	}
	return lo.Times(count, func(i int) Director {
		if i < len(existing) {
			return existing[i]
		}
		return DefaultDirector()
	})
}

// SetAuthorizedSignatory sets the flag of directors[index]. Setting it to Yes
// clears it on every other director.
func SetAuthorizedSignatory(directors []Director, index int, value string) ([]Director, error) {
	if index < 0 || index >= len(directors) {
		return nil, fmt.Errorf("%w: %d", ErrDirectorIndex, index)
	}
	if value != Yes && value != No {
		return nil, fmt.Errorf("%w: isAuthorizedSignatory must be Yes or No", ErrInvalidValue)
	}
	out := append([]Director(nil), directors...)
	for i := range out {
		switch {
		case i == index:
			out[i].IsAuthorizedSignatory = value
		case value == Yes:
			out[i].IsAuthorizedSignatory = No
		}
	}
	return out, nil
}

// DirectorCount reads the declared count from step1, defaulting to 1.
func DirectorCount(fd FormData) int {
	n, err := strconv.Atoi(fd.Step("step1").String(CountField))
	if err != nil || n < 1 {
		return DefaultDirectorCount
	}
	return n
}

func countOptions() []string {
	return lo.Times(MaxDirectors, func(i int) string { return strconv.Itoa(i + 1) })
}

func (d Director) get(name string) any {
	switch name {
	case "name":
		return d.Name
	case "email":
		return d.Email
	case "contactNumber":
		return d.ContactNumber
	case "din":
		return d.DIN
	case "aadhaarCard":
		return d.AadhaarCard
	case "panCard":
		return d.PanCard
	case "isAuthorizedSignatory":
		return d.IsAuthorizedSignatory
	case "isDirectorInOtherCompany":
		return d.IsDirectorInOtherCompany
	case "otherCompanyName":
		return d.OtherCompanyName
	case "otherCompanyPosition":
		return d.OtherCompanyPosition
	}
	return nil
}

func (d *Director) set(name string, v any) {
	s, _ := v.(string)
	f, _ := v.(FileRef)
	switch name {
	case "name":
		d.Name = s
	case "email":
		d.Email = s
	case "contactNumber":
		d.ContactNumber = s
	case "din":
		d.DIN = s
	case "aadhaarCard":
		d.AadhaarCard = f
	case "panCard":
		d.PanCard = f
	case "isAuthorizedSignatory":
		d.IsAuthorizedSignatory = s
	case "isDirectorInOtherCompany":
		d.IsDirectorInOtherCompany = s
	case "otherCompanyName":
		d.OtherCompanyName = s
	case "otherCompanyPosition":
		d.OtherCompanyPosition = s
	}
}

// values exposes the director as Values for visibility checks.
func (d Director) values() Values {
	out := make(Values, len(DirectorFields))
	for _, f := range DirectorFields {
		out[f.Name] = d.get(f.Name)
	}
	return out
}
