package wizard

import (
	"fmt"

	"github.com/samber/lo"

	"filings/widget"
)

// StepKey names one page of a wizard, e.g. "step1".
type StepKey string

// Kind is the value type a field accepts.
type Kind string

const (
	KindText        Kind = "text"
	KindNumber      Kind = "number"
	KindEmail       Kind = "email"
	KindPhone       Kind = "phone"
	KindPAN         Kind = "pan"
	KindAadhaar     Kind = "aadhaar"
	KindSelect      Kind = "select"
	KindYesNo       Kind = "yesno"
	KindCheckbox    Kind = "checkbox"
	KindMultiSelect Kind = "multiselect"
	KindFile        Kind = "file"
)

const (
	Yes = "Yes"
	No  = "No"
)

// Condition shows a field only while a sibling field equals a value.
type Condition struct {
	Field  string `json:"field"`
	Equals string `json:"equals"`
}

// FieldDef describes one input of a step.
type FieldDef struct {
	widget.Field
	Kind        Kind            `json:"kind"`
	Options     []widget.Option `json:"options,omitempty"`
	VisibleWhen *Condition      `json:"visibleWhen,omitempty"`
}

// Step is one page of the wizard.
type Step struct {
	Key    StepKey    `json:"key"`
	Title  string     `json:"title"`
	Fields []FieldDef `json:"fields"`
}

// Field looks up a field definition by name.
func (s Step) Field(name string) (FieldDef, bool) {
	return lo.Find(s.Fields, func(f FieldDef) bool { return f.Name == name })
}

// CapitalRule ties paid-up capital to authorized capital within one step.
type CapitalRule struct {
	Step       StepKey
	Authorized string
	PaidUp     string
}

// Schema is the wizard of one registration type.
type Schema struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Steps []Step `json:"steps"`

	// DirectorsStep hosts the directors array; empty when the type has none.
	DirectorsStep StepKey      `json:"directorsStep,omitempty"`
	Capital       *CapitalRule `json:"-"`
}

// Step looks up a step by key.
func (s *Schema) Step(key StepKey) (Step, bool) {
	return lo.Find(s.Steps, func(st Step) bool { return st.Key == key })
}

// HasDirectors reports whether the schema carries a directors array.
func (s *Schema) HasDirectors() bool { return s.DirectorsStep != "" }

// FileFields lists every file field with its step, in step order.
func (s *Schema) FileFields() []FieldDef {
	var out []FieldDef
	for _, st := range s.Steps {
		out = append(out, lo.Filter(st.Fields, func(f FieldDef, _ int) bool { return f.Kind == KindFile })...)
	}
	return out
}

func field(name, label string, kind Kind, required bool) FieldDef {
	return FieldDef{Field: widget.Field{Name: name, Label: label, Required: required}, Kind: kind}
}

func choice(name, label string, kind Kind, required bool, options ...string) FieldDef {
	f := field(name, label, kind, required)
	f.Options = widget.Strings(options...)
	return f
}

// choiceOf is choice for options given as strings or {value,label} pairs.
func choiceOf(name, label string, kind Kind, required bool, options ...any) FieldDef {
	resolved, err := widget.ResolveOptions(options)
	if err != nil {
		panic(fmt.Sprintf("field %s: %v", name, err))
	}
	f := field(name, label, kind, required)
	f.Options = resolved
	return f
}

func (f FieldDef) when(sibling, equals string) FieldDef {
	f.VisibleWhen = &Condition{Field: sibling, Equals: equals}
	return f
}
