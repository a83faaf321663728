package widget

import (
	"strings"

	"github.com/samber/lo"
)

// ToggleValue adds v when absent and removes it when present.
func ToggleValue(selected []string, v string) []string {
	if lo.Contains(selected, v) {
		return lo.Without(selected, v)
	}
	out := make([]string, 0, len(selected)+1)
	out = append(out, selected...)
	return append(out, v)
}

// MultiSelect is a checkbox list with the same open/close contract as Dropdown.
type MultiSelect struct {
	Options     []Option
	Placeholder string
	OnChange    func(values []string)

	open        bool
	selected    []string
	unsubscribe func()
}

func NewMultiSelect(options []Option, placeholder string, onChange func([]string)) *MultiSelect {
	return &MultiSelect{Options: options, Placeholder: placeholder, OnChange: onChange}
}

func (m *MultiSelect) Mount(bus *ClickBus) {
	if m.unsubscribe != nil {
		return
	}
	m.unsubscribe = bus.Subscribe(func(target any) {
		if target != m {
			m.open = false
		}
	})
}

func (m *MultiSelect) Unmount() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *MultiSelect) Sync(values []string) { m.selected = append([]string(nil), values...) }
func (m *MultiSelect) Toggle()              { m.open = !m.open }
func (m *MultiSelect) IsOpen() bool         { return m.open }
func (m *MultiSelect) Selected() []string   { return append([]string(nil), m.selected...) }

// Check toggles one option. The menu stays open so several can be picked.
func (m *MultiSelect) Check(value string) {
	m.selected = ToggleValue(m.selected, value)
	if m.OnChange != nil {
		m.OnChange(m.Selected())
	}
}

// Label joins the labels of the selected options.
func (m *MultiSelect) Label() string {
	if len(m.selected) == 0 {
		return m.Placeholder
	}
	return strings.Join(lo.Map(m.selected, func(v string, _ int) string {
		return LabelFor(m.Options, v)
	}), ", ")
}
