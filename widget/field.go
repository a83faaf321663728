// Package widget holds the state of the controlled inputs the registration
// wizard is built from: labelled fields, dropdowns, multi-selects and file
// pickers.
package widget

// Field is a label with an optional required marker. It carries no state.
type Field struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required,omitempty"`
}

// Caption is the label as shown to the user.
func (f Field) Caption() string {
	if f.Required {
		return f.Label + " *"
	}
	return f.Label
}
