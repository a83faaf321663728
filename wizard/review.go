package wizard

import (
	"strings"

	"github.com/samber/lo"

	"filings/widget"
)

// ReviewLine is one answered field as shown on the review page.
type ReviewLine struct {
	Step  StepKey `json:"step"`
	Label string  `json:"label"`
	Value string  `json:"value"`
}

// Review renders the visible, filled fields with option labels resolved.
func Review(s *Schema, fd FormData) []ReviewLine {
	var out []ReviewLine
	for _, st := range s.Steps {
		vals := fd.Step(st.Key)
		for _, def := range VisibleFields(s, fd, st.Key) {
			v := vals[def.Name]
			if isBlank(v) {
				continue
			}
			out = append(out, ReviewLine{Step: st.Key, Label: def.Label, Value: display(def, v)})
		}
	}
	return out
}

func display(def FieldDef, v any) string {
	switch t := v.(type) {
	case string:
		return widget.LabelFor(def.Options, t)
	case bool:
		if t {
			return Yes
		}
		return No
	case []string:
		return strings.Join(lo.Map(t, func(s string, _ int) string {
			return widget.LabelFor(def.Options, s)
		}), ", ")
	case FileRef:
		return t.Name
	}
	return ""
}
