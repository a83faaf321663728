package widget

import (
	"fmt"

	"github.com/samber/lo"
)

// Option is one selectable entry of a dropdown.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ResolveOption accepts either a plain string or a {value,label} pair.
// A plain string is used as both value and label.
func ResolveOption(raw any) (Option, error) {
	switch v := raw.(type) {
	case string:
		return Option{Value: v, Label: v}, nil
	case Option:
		if v.Label == "" {
			v.Label = v.Value
		}
		return v, nil
	case map[string]any:
		value, _ := v["value"].(string)
		label, _ := v["label"].(string)
		if value == "" {
			return Option{}, fmt.Errorf("option %v has no value", v)
		}
		if label == "" {
			label = value
		}
		return Option{Value: value, Label: label}, nil
	default:
		return Option{}, fmt.Errorf("unsupported option type %T", raw)
	}
}

// ResolveOptions resolves every item, failing on the first bad one.
func ResolveOptions(raw []any) ([]Option, error) {
	out := make([]Option, 0, len(raw))
	for _, r := range raw {
		o, err := ResolveOption(r)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// Strings builds options whose value and label are the same.
func Strings(values ...string) []Option {
	return lo.Map(values, func(v string, _ int) Option {
		return Option{Value: v, Label: v}
	})
}

// LabelFor returns the label of the option holding value, or value itself
// when no option matches.
func LabelFor(options []Option, value string) string {
	if o, ok := lo.Find(options, func(o Option) bool { return o.Value == value }); ok {
		return o.Label
	}
	return value
}

// HasValue reports whether value is one of the options.
func HasValue(options []Option, value string) bool {
	return lo.ContainsBy(options, func(o Option) bool { return o.Value == value })
}
